package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Amenities offered by the catalog's filter
const (
	AmenitySpa      = "Spa"
	AmenityFreeWiFi = "Free WiFi"
	AmenityPool     = "Pool"
	AmenityParking  = "Parking"
	AmenityGym      = "Gym"
)

// Amenities lists every filterable amenity in display order
var Amenities = []string{AmenitySpa, AmenityFreeWiFi, AmenityPool, AmenityParking, AmenityGym}

// Hotel is one bookable property in the catalog
type Hotel struct {
	ID        string
	Name      string
	City      string
	Country   string
	Rank      int
	PriceFrom int64
	Currency  string
	Amenities []string
}

// Destination is a location offered by the landing page's autocomplete
type Destination struct {
	City    string
	Country string
}

// Domain errors
var (
	ErrInvalidHotelName = errors.New("hotel name cannot be empty")
	ErrInvalidCity      = errors.New("hotel city cannot be empty")
	ErrInvalidRank      = errors.New("hotel rank must not be negative")
	ErrInvalidPrice     = errors.New("hotel price must be positive")
	ErrInvalidCurrency  = errors.New("currency code must be 3 characters")
	ErrUnknownAmenity   = errors.New("unknown amenity")
	ErrHotelNotFound    = errors.New("hotel not found")
)

// NewHotel creates a hotel with validation
func NewHotel(name, city, country string, rank int, priceFrom int64, currency string, amenities ...string) (*Hotel, error) {
	h := &Hotel{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		City:      strings.TrimSpace(city),
		Country:   strings.TrimSpace(country),
		Rank:      rank,
		PriceFrom: priceFrom,
		Currency:  currency,
	}
	for _, a := range amenities {
		canonical, ok := CanonicalAmenity(a)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAmenity, a)
		}
		if !h.HasAmenity(canonical) {
			h.Amenities = append(h.Amenities, canonical)
		}
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks the fields a stored hotel must carry
func (h *Hotel) Validate() error {
	if h.Name == "" {
		return ErrInvalidHotelName
	}
	if h.City == "" {
		return ErrInvalidCity
	}
	if h.Rank < 0 {
		return ErrInvalidRank
	}
	if h.PriceFrom <= 0 {
		return ErrInvalidPrice
	}
	if len(h.Currency) != 3 {
		return ErrInvalidCurrency
	}
	return nil
}

// HasAmenity reports whether the hotel offers amenity, ignoring case
func (h *Hotel) HasAmenity(amenity string) bool {
	for _, a := range h.Amenities {
		if strings.EqualFold(a, amenity) {
			return true
		}
	}
	return false
}

// InCity reports whether the hotel is located in city, ignoring case
func (h *Hotel) InCity(city string) bool {
	return strings.EqualFold(h.City, strings.TrimSpace(city))
}

// GetFormattedPrice returns the nightly price formatted with currency
func (h *Hotel) GetFormattedPrice() string {
	return fmt.Sprintf("from %.2f %s", float64(h.PriceFrom)/100.0, h.Currency)
}

// CanonicalAmenity returns the catalog spelling of amenity
func CanonicalAmenity(amenity string) (string, bool) {
	amenity = strings.TrimSpace(amenity)
	for _, a := range Amenities {
		if strings.EqualFold(a, amenity) {
			return a, true
		}
	}
	return "", false
}

// SeedHotels returns the demo catalog the fixture site is served with
func SeedHotels() []*Hotel {
	seed := []struct {
		name, city string
		rank       int
		price      int64
		amenities  []string
	}{
		{"The River Lee", "Cork", 1, 18900, []string{AmenitySpa, AmenityFreeWiFi, AmenityGym}},
		{"Cork International Hotel", "Cork", 2, 12900, []string{AmenityFreeWiFi, AmenityParking}},
		{"Jurys Inn Cork", "Cork", 3, 9900, nil},
		{"Hayfield Manor", "Cork", 4, 29900, []string{AmenitySpa, AmenityFreeWiFi, AmenityPool}},
		{"The Shelbourne", "Dublin", 1, 34900, []string{AmenitySpa, AmenityFreeWiFi, AmenityGym}},
		{"Maldron Hotel Parnell Square", "Dublin", 2, 14900, []string{AmenityFreeWiFi}},
		{"The g Hotel & Spa", "Galway", 1, 21900, []string{AmenitySpa, AmenityFreeWiFi, AmenityPool}},
		{"Jurys Inn Galway", "Galway", 2, 10900, []string{AmenityParking}},
	}

	hotels := make([]*Hotel, 0, len(seed))
	for _, s := range seed {
		h, err := NewHotel(s.name, s.city, "Ireland", s.rank, s.price, "EUR", s.amenities...)
		if err != nil {
			panic(fmt.Sprintf("invalid seed hotel %q: %v", s.name, err))
		}
		hotels = append(hotels, h)
	}
	return hotels
}
