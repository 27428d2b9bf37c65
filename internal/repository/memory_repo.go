package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/travelqa/staysuite/internal/models"
)

// MemoryHotelRepository keeps the catalog in process, for running the
// fixture site without PostgreSQL
type MemoryHotelRepository struct {
	mu     sync.RWMutex
	hotels []*models.Hotel
}

// NewMemoryHotelRepository creates a repository holding copies of hotels
func NewMemoryHotelRepository(hotels ...*models.Hotel) *MemoryHotelRepository {
	r := &MemoryHotelRepository{}
	for _, h := range hotels {
		r.hotels = append(r.hotels, clone(h))
	}
	return r
}

func (r *MemoryHotelRepository) CreateHotel(hotel *models.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.hotels {
		if h.Name == hotel.Name {
			return fmt.Errorf("failed to create hotel: duplicate name %q", hotel.Name)
		}
	}
	r.hotels = append(r.hotels, clone(hotel))
	return nil
}

func (r *MemoryHotelRepository) GetHotelByName(name string) (*models.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.hotels {
		if h.Name == name {
			return clone(h), nil
		}
	}
	return nil, models.ErrHotelNotFound
}

func (r *MemoryHotelRepository) ListHotelsByCity(city string) ([]*models.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var hotels []*models.Hotel
	for _, h := range r.hotels {
		if h.InCity(city) {
			hotels = append(hotels, clone(h))
		}
	}
	sort.SliceStable(hotels, func(i, j int) bool {
		if hotels[i].Rank != hotels[j].Rank {
			return hotels[i].Rank < hotels[j].Rank
		}
		return hotels[i].Name < hotels[j].Name
	})
	return hotels, nil
}

func (r *MemoryHotelRepository) ListDestinations() ([]models.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	var destinations []models.Destination
	for _, h := range r.hotels {
		key := strings.ToLower(h.City)
		if seen[key] {
			continue
		}
		seen[key] = true
		destinations = append(destinations, models.Destination{City: h.City, Country: h.Country})
	}
	sort.Slice(destinations, func(i, j int) bool { return destinations[i].City < destinations[j].City })
	return destinations, nil
}

func clone(h *models.Hotel) *models.Hotel {
	c := *h
	c.Amenities = append([]string(nil), h.Amenities...)
	return &c
}
