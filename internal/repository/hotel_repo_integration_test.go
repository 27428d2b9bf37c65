//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"

	"github.com/travelqa/staysuite/internal/models"
	"github.com/travelqa/staysuite/internal/repository/testutil"
)

func TestHotelRepository_Seed_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	seed := models.SeedHotels()
	repo := NewHotelRepositoryWithDB(testDB.DB)
	inserted, err := Seed(repo, seed)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if inserted != len(seed) {
		t.Errorf("Seed() inserted %d, want %d", inserted, len(seed))
	}

	// seeding twice is a no-op
	inserted, err = Seed(repo, models.SeedHotels())
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if inserted != 0 {
		t.Errorf("second Seed() inserted %d, want 0", inserted)
	}
}

func TestHotelRepository_ListHotelsByCity_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	if _, err := Seed(NewHotelRepositoryWithDB(testDB.DB), models.SeedHotels()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	repo := NewHotelRepositoryWithDB(testDB.DB)

	hotels, err := repo.ListHotelsByCity("cork")
	if err != nil {
		t.Fatalf("ListHotelsByCity() error = %v", err)
	}

	want := []string{"The River Lee", "Cork International Hotel", "Jurys Inn Cork", "Hayfield Manor"}
	if len(hotels) != len(want) {
		t.Fatalf("got %d hotels, want %d", len(hotels), len(want))
	}
	for i, name := range want {
		if hotels[i].Name != name {
			t.Errorf("hotels[%d] = %q, want %q", i, hotels[i].Name, name)
		}
	}
	if !hotels[0].HasAmenity(models.AmenitySpa) {
		t.Errorf("amenities not round-tripped: %v", hotels[0].Amenities)
	}
	if len(hotels[2].Amenities) != 0 {
		t.Errorf("expected no amenities, got %v", hotels[2].Amenities)
	}
}

func TestHotelRepository_CreateAndGet_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewHotelRepositoryWithDB(testDB.DB)
	hotel, err := models.NewHotel("Imperial Hotel", "Cork", "Ireland", 5, 15900, "EUR", models.AmenitySpa)
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.CreateHotel(hotel); err != nil {
		t.Fatalf("CreateHotel() error = %v", err)
	}
	if err := repo.CreateHotel(hotel); err == nil {
		t.Error("expected duplicate insert to fail")
	}

	got, err := repo.GetHotelByName("Imperial Hotel")
	if err != nil {
		t.Fatalf("GetHotelByName() error = %v", err)
	}
	if got.ID != hotel.ID || got.PriceFrom != hotel.PriceFrom {
		t.Errorf("GetHotelByName() = %+v, want %+v", got, hotel)
	}

	_, err = repo.GetHotelByName("Nowhere Inn")
	if !errors.Is(err, models.ErrHotelNotFound) {
		t.Errorf("GetHotelByName() error = %v, want ErrHotelNotFound", err)
	}

	destinations, err := repo.ListDestinations()
	if err != nil {
		t.Fatalf("ListDestinations() error = %v", err)
	}
	if len(destinations) != 1 || destinations[0].City != "Cork" {
		t.Errorf("ListDestinations() = %v", destinations)
	}
}
