package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/services"
)

// DestinationsHandler answers the landing page autocomplete
type DestinationsHandler struct {
	catalog services.CatalogService
	log     logrus.FieldLogger
}

// NewDestinationsHandler creates a new destinations API handler
func NewDestinationsHandler(catalog services.CatalogService, log logrus.FieldLogger) *DestinationsHandler {
	return &DestinationsHandler{
		catalog: catalog,
		log:     log,
	}
}

// DestinationResponse is one autocomplete suggestion
type DestinationResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ServeHTTP handles GET /api/destinations?q=
func (h *DestinationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	destinations, err := h.catalog.Destinations(r.URL.Query().Get("q"))
	if err != nil {
		h.log.WithError(err).Error("Error listing destinations")
		sendErrorResponse(w, "Failed to list destinations", http.StatusInternalServerError)
		return
	}

	resp := make([]DestinationResponse, 0, len(destinations))
	for _, d := range destinations {
		resp = append(resp, DestinationResponse{City: d.City, Country: d.Country})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.WithError(err).Error("Error encoding response")
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
