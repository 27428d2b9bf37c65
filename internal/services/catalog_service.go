package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/travelqa/staysuite/internal/models"
)

// ErrMissingLocation is returned when a search names no city
var ErrMissingLocation = errors.New("location is required")

// HotelRepository defines the interface for catalog persistence
type HotelRepository interface {
	ListHotelsByCity(city string) ([]*models.Hotel, error)
	ListDestinations() ([]models.Destination, error)
}

// CatalogService answers the fixture site's search and autocomplete queries
type CatalogService interface {
	Search(city, amenity string) ([]*models.Hotel, error)
	Destinations(query string) ([]models.Destination, error)
	Amenities() []string
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	hotelRepo HotelRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(hotelRepo HotelRepository) CatalogService {
	return &CatalogServiceImpl{
		hotelRepo: hotelRepo,
	}
}

// Search returns the hotels in city, restricted to amenity when one is
// given, ordered by rank then name.
func (s *CatalogServiceImpl) Search(city, amenity string) ([]*models.Hotel, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrMissingLocation
	}

	var want string
	if strings.TrimSpace(amenity) != "" {
		canonical, ok := models.CanonicalAmenity(amenity)
		if !ok {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownAmenity, amenity)
		}
		want = canonical
	}

	hotels, err := s.hotelRepo.ListHotelsByCity(city)
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}

	matched := make([]*models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if want == "" || h.HasAmenity(want) {
			matched = append(matched, h)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Rank != matched[j].Rank {
			return matched[i].Rank < matched[j].Rank
		}
		return matched[i].Name < matched[j].Name
	})
	return matched, nil
}

// Destinations returns the cities or countries containing query, ignoring
// case. An empty query matches everything.
func (s *CatalogServiceImpl) Destinations(query string) ([]models.Destination, error) {
	all, err := s.hotelRepo.ListDestinations()
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var matched []models.Destination
	for _, d := range all {
		if strings.Contains(strings.ToLower(d.City), q) || strings.Contains(strings.ToLower(d.Country), q) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// Amenities returns the filterable amenities in display order
func (s *CatalogServiceImpl) Amenities() []string {
	return append([]string(nil), models.Amenities...)
}
