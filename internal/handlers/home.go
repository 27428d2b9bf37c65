package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/models"
	"github.com/travelqa/staysuite/internal/services"
)

// RoomTypes are the room sizes offered by the landing page menu
var RoomTypes = []string{"Single room", "Double room", "Twin room", "Family room"}

// DefaultRoom is preselected until another room size is picked
const DefaultRoom = "Double room"

// HomeData represents the data passed to the landing page template
type HomeData struct {
	Destinations []models.Destination
	RoomTypes    []string
	DefaultRoom  string
}

// HomeHandler handles the landing page with the search form
type HomeHandler struct {
	template *template.Template
	catalog  services.CatalogService
	log      logrus.FieldLogger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(templatePath string, catalog services.CatalogService, log logrus.FieldLogger) (*HomeHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &HomeHandler{
		template: tmpl,
		catalog:  catalog,
		log:      log,
	}, nil
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	destinations, err := h.catalog.Destinations("")
	if err != nil {
		h.log.WithError(err).Error("Error listing destinations")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := HomeData{
		Destinations: destinations,
		RoomTypes:    RoomTypes,
		DefaultRoom:  DefaultRoom,
	}
	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("Error rendering template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
