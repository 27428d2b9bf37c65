package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travelqa/staysuite/internal/models"
	"github.com/travelqa/staysuite/internal/services"
)

// Toolbar labels of the filter selector
const (
	SelectLabel        = "Select"
	FilterAppliedLabel = "(1) Filter"
)

const dateLayout = "2006-01-02"

// ResultsData represents the data passed to the results template
type ResultsData struct {
	Location    string
	CheckIn     string
	CheckOut    string
	Nights      int
	Room        string
	Filter      string
	FilterLabel string
	Amenities   []string
	Hotels      []*models.Hotel
}

// ResultsHandler handles the hotel results page with its filter panel
type ResultsHandler struct {
	template *template.Template
	catalog  services.CatalogService
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(templatePath string, catalog services.CatalogService, log logrus.FieldLogger) (*ResultsHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &ResultsHandler{
		template: tmpl,
		catalog:  catalog,
		log:      log,
		now:      time.Now,
	}, nil
}

// ServeHTTP handles GET /results?location=&checkin=&checkout=&room=&filter=
func (h *ResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	checkIn, checkOut, err := h.stayDates(q.Get("checkin"), q.Get("checkout"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	location := strings.TrimSpace(q.Get("location"))
	filter := strings.TrimSpace(q.Get("filter"))
	hotels, err := h.catalog.Search(location, filter)
	switch {
	case errors.Is(err, services.ErrMissingLocation), errors.Is(err, models.ErrUnknownAmenity):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.log.WithError(err).Error("Error searching hotels")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := ResultsData{
		Location:    location,
		CheckIn:     checkIn.Format(dateLayout),
		CheckOut:    checkOut.Format(dateLayout),
		Nights:      int(checkOut.Sub(checkIn).Hours() / 24),
		Room:        q.Get("room"),
		FilterLabel: SelectLabel,
		Amenities:   h.catalog.Amenities(),
		Hotels:      hotels,
	}
	if data.Room == "" {
		data.Room = DefaultRoom
	}
	if filter != "" {
		data.Filter, _ = models.CanonicalAmenity(filter)
		data.FilterLabel = FilterAppliedLabel
	}

	h.log.WithFields(logrus.Fields{
		"location": location,
		"filter":   data.Filter,
		"hotels":   len(hotels),
	}).Debug("Rendering results")

	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("Error rendering template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// stayDates parses the stay. A missing check-in is today and a missing or
// non-positive stay lasts one night.
func (h *ResultsHandler) stayDates(in, out string) (time.Time, time.Time, error) {
	now := h.now()
	checkIn := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in != "" {
		t, err := time.Parse(dateLayout, in)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid checkin date %q", in)
		}
		checkIn = t
	}

	checkOut := checkIn.AddDate(0, 0, 1)
	if out != "" {
		t, err := time.Parse(dateLayout, out)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid checkout date %q", out)
		}
		if t.After(checkIn) {
			checkOut = t
		}
	}
	return checkIn, checkOut, nil
}
