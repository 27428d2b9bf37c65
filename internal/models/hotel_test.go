package models

import (
	"errors"
	"testing"
)

func TestNewHotel(t *testing.T) {
	tests := []struct {
		name      string
		hotelName string
		city      string
		rank      int
		price     int64
		currency  string
		amenities []string
		wantErr   error
	}{
		{
			name:      "valid hotel",
			hotelName: "The River Lee",
			city:      "Cork",
			rank:      1,
			price:     18900,
			currency:  "EUR",
			amenities: []string{"spa", "FREE WIFI"},
		},
		{
			name:      "empty name",
			hotelName: "  ",
			city:      "Cork",
			price:     100,
			currency:  "EUR",
			wantErr:   ErrInvalidHotelName,
		},
		{
			name:      "empty city",
			hotelName: "Jurys Inn Cork",
			price:     100,
			currency:  "EUR",
			wantErr:   ErrInvalidCity,
		},
		{
			name:      "negative rank",
			hotelName: "Jurys Inn Cork",
			city:      "Cork",
			rank:      -1,
			price:     100,
			currency:  "EUR",
			wantErr:   ErrInvalidRank,
		},
		{
			name:      "zero price",
			hotelName: "Jurys Inn Cork",
			city:      "Cork",
			currency:  "EUR",
			wantErr:   ErrInvalidPrice,
		},
		{
			name:      "invalid currency",
			hotelName: "Jurys Inn Cork",
			city:      "Cork",
			price:     100,
			currency:  "EURO",
			wantErr:   ErrInvalidCurrency,
		},
		{
			name:      "unknown amenity",
			hotelName: "Jurys Inn Cork",
			city:      "Cork",
			price:     100,
			currency:  "EUR",
			amenities: []string{"Helipad"},
			wantErr:   ErrUnknownAmenity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hotel, err := NewHotel(tt.hotelName, tt.city, "Ireland", tt.rank, tt.price, tt.currency, tt.amenities...)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewHotel() error = %v, wantErr %v", err, tt.wantErr)
				}
				if hotel != nil {
					t.Error("Expected hotel to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewHotel() unexpected error = %v", err)
			}
			if hotel.ID == "" {
				t.Error("Hotel ID should not be empty")
			}
			if len(hotel.Amenities) != 2 || hotel.Amenities[0] != AmenitySpa || hotel.Amenities[1] != AmenityFreeWiFi {
				t.Errorf("Amenities = %v, want canonical spelling", hotel.Amenities)
			}
		})
	}
}

func TestHotel_HasAmenity(t *testing.T) {
	hotel, err := NewHotel("Cork International Hotel", "Cork", "Ireland", 2, 12900, "EUR", AmenityFreeWiFi, AmenityFreeWiFi)
	if err != nil {
		t.Fatal(err)
	}

	if len(hotel.Amenities) != 1 {
		t.Errorf("duplicate amenity kept: %v", hotel.Amenities)
	}
	if !hotel.HasAmenity("free wifi") {
		t.Error("expected Free WiFi")
	}
	if hotel.HasAmenity(AmenitySpa) {
		t.Error("unexpected Spa")
	}
	if !hotel.InCity(" cork ") {
		t.Error("expected hotel in Cork")
	}
}

func TestHotel_GetFormattedPrice(t *testing.T) {
	hotel := &Hotel{PriceFrom: 12950, Currency: "EUR"}
	if got := hotel.GetFormattedPrice(); got != "from 129.50 EUR" {
		t.Errorf("GetFormattedPrice() = %q", got)
	}
}

func TestSeedHotels(t *testing.T) {
	byName := map[string]*Hotel{}
	for _, h := range SeedHotels() {
		byName[h.Name] = h
	}

	tests := []struct {
		hotel string
		spa   bool
		wifi  bool
	}{
		{hotel: "The River Lee", spa: true, wifi: true},
		{hotel: "Cork International Hotel", spa: false, wifi: true},
		{hotel: "Jurys Inn Cork", spa: false, wifi: false},
	}
	for _, tt := range tests {
		h, ok := byName[tt.hotel]
		if !ok {
			t.Fatalf("%s missing from seed", tt.hotel)
		}
		if h.HasAmenity(AmenitySpa) != tt.spa || h.HasAmenity(AmenityFreeWiFi) != tt.wifi {
			t.Errorf("%s amenities = %v", tt.hotel, h.Amenities)
		}
	}
}
