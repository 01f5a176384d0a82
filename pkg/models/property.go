package models

// Category is a top-level listing segment with its own base URL and markup.
type Category string

const (
	CategoryForSale Category = "for-sale"
	CategoryForRent Category = "for-rent"
)

// AllCategories lists the supported categories in their canonical order.
func AllCategories() []Category {
	return []Category{CategoryForSale, CategoryForRent}
}

// Valid reports whether the category is one of the supported segments.
func (c Category) Valid() bool {
	return c == CategoryForSale || c == CategoryForRent
}

// PropertyType is derived from keyword matching in the listing title.
type PropertyType string

const (
	TypeVilla   PropertyType = "villa"
	TypeLand    PropertyType = "land"
	TypeHouse   PropertyType = "house"
	TypeUnknown PropertyType = "unknown"
)

// PropertyRecord is one real-world listing. The URL is its natural identity:
// a later extraction of the same URL replaces the earlier record wholesale.
type PropertyRecord struct {
	PropertyID         string            `json:"property_id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	PriceUSD           float64           `json:"price_usd"`
	PriceIDR           int64             `json:"price_idr"`
	Location           string            `json:"location"`
	PropertyType       PropertyType      `json:"property_type"`
	ListingDate        string            `json:"listing_date,omitempty"`
	Status             string            `json:"status"`
	Bedrooms           int               `json:"bedrooms"`
	Bathrooms          int               `json:"bathrooms"`
	LandSizeSqm        float64           `json:"land_size_sqm"`
	BuildingSizeSqm    float64           `json:"building_size_sqm"`
	LeaseDurationYears int               `json:"lease_duration_years"`
	LeaseExpiryYear    int               `json:"lease_expiry_year,omitempty"`
	YearBuilt          int               `json:"year_built"`
	URL                string            `json:"url"`
	ListingStatus      string            `json:"listing_status"`
	Furnish            string            `json:"furnish"`
	Amenities          []string          `json:"amenities"`
	PoolPresent        bool              `json:"pool_present"`
	PoolType           string            `json:"pool_type"`
	PoolSize           float64           `json:"pool_size"`
	KeyInformation     []string          `json:"key_information"`
	KeyFeatures        []string          `json:"key_features"`
	Features           map[string]string `json:"features"`
	Category           Category          `json:"category"`
	ExtractionErrors   []string          `json:"extraction_errors,omitempty"`
}

// Usable reports whether the record survived extraction well enough to keep.
// A record with an empty title after all retries is a failed extraction.
func (r *PropertyRecord) Usable() bool {
	return r.Title != ""
}
