package repository

import (
	"errors"
	"fmt"

	"github.com/travelqa/staysuite/internal/models"
)

// HotelWriter is implemented by both catalog repositories
type HotelWriter interface {
	GetHotelByName(name string) (*models.Hotel, error)
	CreateHotel(hotel *models.Hotel) error
}

// Seed creates the hotels repo does not hold yet, matched by name, and
// returns how many it created. Seeding twice is a no-op.
func Seed(repo HotelWriter, hotels []*models.Hotel) (int, error) {
	created := 0
	for _, h := range hotels {
		_, err := repo.GetHotelByName(h.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrHotelNotFound) {
			return created, fmt.Errorf("failed to seed hotel %q: %w", h.Name, err)
		}
		if err := repo.CreateHotel(h); err != nil {
			return created, fmt.Errorf("failed to seed hotel %q: %w", h.Name, err)
		}
		created++
	}
	return created, nil
}
