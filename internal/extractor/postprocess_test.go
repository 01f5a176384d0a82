package extractor

import (
	"testing"

	"github.com/propwatch/baliscrape/pkg/models"
)

func TestBackfill_FillsOnlyDefaults(t *testing.T) {
	b := models.NewRecord("https://baliexception.com/listing/a", models.CategoryForSale)
	b.Bedrooms = 4 // already extracted, must survive
	b.Features = map[string]string{
		"Property ID":   "BE-1042",
		"Bedroom":       "2",
		"Bathroom":      "3",
		"Land Area":     "450 m²",
		"Property Size": "280",
		"Furnish":       "Semi Furnished",
		"Leasehold":     "30 Years",
		"Year Built":    "2018",
		"Status":        "Leasehold",
		"Area":          "Seminyak",
		"Label":         "Sold",
		"Pool Size":     "8x3",
	}

	backfill(b)

	if b.PropertyID != "BE-1042" {
		t.Errorf("PropertyID = %q", b.PropertyID)
	}
	if b.Bedrooms != 4 {
		t.Errorf("Bedrooms = %d, back-fill must not overwrite extracted value", b.Bedrooms)
	}
	if b.Bathrooms != 3 {
		t.Errorf("Bathrooms = %d", b.Bathrooms)
	}
	if b.LandSizeSqm != 450 {
		t.Errorf("LandSizeSqm = %v", b.LandSizeSqm)
	}
	if b.BuildingSizeSqm != 280 {
		t.Errorf("BuildingSizeSqm = %v", b.BuildingSizeSqm)
	}
	if b.Furnish != "Semi Furnished" {
		t.Errorf("Furnish = %q", b.Furnish)
	}
	if b.LeaseDurationYears != 30 {
		t.Errorf("LeaseDurationYears = %d, want leading token of %q", b.LeaseDurationYears, "30 Years")
	}
	if b.YearBuilt != 2018 {
		t.Errorf("YearBuilt = %d", b.YearBuilt)
	}
	if b.Status != "Leasehold" {
		t.Errorf("Status = %q", b.Status)
	}
	if b.Location != "Seminyak" {
		t.Errorf("Location = %q", b.Location)
	}
	if b.ListingStatus != "Sold" {
		t.Errorf("ListingStatus = %q", b.ListingStatus)
	}
	if b.PoolSize != 8 {
		t.Errorf("PoolSize = %v, want first number of %q", b.PoolSize, "8x3")
	}
}

func TestBackfill_TypeOnlyWhenUnknown(t *testing.T) {
	b := models.NewRecord("u", models.CategoryForSale)
	b.Features["Type"] = "Villa Complex"

	backfill(b)
	if b.PropertyType != models.TypeVilla {
		t.Errorf("PropertyType = %q, want villa from Type feature", b.PropertyType)
	}

	b2 := models.NewRecord("u", models.CategoryForSale)
	b2.PropertyType = models.TypeLand
	b2.Features["Type"] = "Villa"

	backfill(b2)
	if b2.PropertyType != models.TypeLand {
		t.Errorf("PropertyType = %q, derived type must not overwrite", b2.PropertyType)
	}
}

func TestDetectPool(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amenities   []string
		wantPresent bool
		wantType    string
	}{
		{
			name:        "private plunge pool in description",
			description: "Comes with a private plunge pool overlooking the valley",
			wantPresent: true,
			wantType:    "Private",
		},
		{
			name:        "shared pool in amenities",
			amenities:   []string{"Shared pool", "Gym"},
			wantPresent: true,
			wantType:    "Shared",
		},
		{
			name:        "jacuzzi counts as pool",
			description: "Rooftop jacuzzi with sunset views",
			wantPresent: true,
			wantType:    "Jacuzzi",
		},
		{
			name:        "no pool text",
			description: "Garden and carport",
			wantPresent: false,
			wantType:    "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := models.NewRecord("u", models.CategoryForSale)
			b.Description = tc.description
			b.Amenities = tc.amenities

			detectPool(b)

			if b.PoolPresent != tc.wantPresent {
				t.Errorf("PoolPresent = %v, want %v", b.PoolPresent, tc.wantPresent)
			}
			if b.PoolType != tc.wantType {
				t.Errorf("PoolType = %q, want %q", b.PoolType, tc.wantType)
			}
		})
	}
}

func TestEstimateLeaseExpiry(t *testing.T) {
	b := models.NewRecord("u", models.CategoryForSale)
	b.YearBuilt = 2015
	b.LeaseDurationYears = 25
	estimateLeaseExpiry(b)
	if b.LeaseExpiryYear != 2040 {
		t.Errorf("LeaseExpiryYear = %d, want 2040", b.LeaseExpiryYear)
	}

	b2 := models.NewRecord("u", models.CategoryForSale)
	b2.YearBuilt = 2015
	estimateLeaseExpiry(b2)
	if b2.LeaseExpiryYear != 0 {
		t.Errorf("LeaseExpiryYear = %d, want 0 without a lease duration", b2.LeaseExpiryYear)
	}
}

func TestDeriveType(t *testing.T) {
	tests := []struct {
		title string
		want  models.PropertyType
	}{
		{"Beachfront Villa Canggu", models.TypeVilla},
		{"Prime Land Plot", models.TypeLand},
		{"Family House Sanur", models.TypeHouse},
		{"Commercial Space Denpasar", models.TypeUnknown},
		{"", models.TypeUnknown},
	}
	for _, tc := range tests {
		if got := deriveType(tc.title); got != tc.want {
			t.Errorf("deriveType(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
