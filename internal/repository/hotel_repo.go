package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/travelqa/staysuite/internal/database"
	"github.com/travelqa/staysuite/internal/models"
)

// HotelRepository handles database operations for the hotel catalog
type HotelRepository struct {
	db *sql.DB
}

// NewHotelRepository creates a hotel repository on the shared connection
func NewHotelRepository() *HotelRepository {
	return &HotelRepository{
		db: database.DB,
	}
}

// NewHotelRepositoryWithDB creates a hotel repository with a specific database connection
func NewHotelRepositoryWithDB(db *sql.DB) *HotelRepository {
	return &HotelRepository{
		db: db,
	}
}

// CreateHotel inserts a hotel
func (r *HotelRepository) CreateHotel(hotel *models.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, city, country, rank, price_from, currency, amenities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		hotel.ID,
		hotel.Name,
		hotel.City,
		hotel.Country,
		hotel.Rank,
		hotel.PriceFrom,
		hotel.Currency,
		pq.Array(hotel.Amenities),
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

// GetHotelByName retrieves a hotel by its exact name
func (r *HotelRepository) GetHotelByName(name string) (*models.Hotel, error) {
	query := `
		SELECT id, name, city, country, rank, price_from, currency, amenities
		FROM hotels
		WHERE name = $1
	`

	hotel, err := scanHotel(r.db.QueryRow(query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return hotel, nil
}

// ListHotelsByCity returns the hotels in city, ignoring case, by rank then name
func (r *HotelRepository) ListHotelsByCity(city string) ([]*models.Hotel, error) {
	query := `
		SELECT id, name, city, country, rank, price_from, currency, amenities
		FROM hotels
		WHERE lower(city) = lower($1)
		ORDER BY rank, name
	`

	rows, err := r.db.Query(query, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*models.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, nil
}

// ListDestinations returns every city with at least one hotel
func (r *HotelRepository) ListDestinations() ([]models.Destination, error) {
	rows, err := r.db.Query(`SELECT DISTINCT city, country FROM hotels ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.City, &d.Country); err != nil {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(row scanner) (*models.Hotel, error) {
	hotel := &models.Hotel{}
	err := row.Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.City,
		&hotel.Country,
		&hotel.Rank,
		&hotel.PriceFrom,
		&hotel.Currency,
		pq.Array(&hotel.Amenities),
	)
	if err != nil {
		return nil, err
	}
	return hotel, nil
}
