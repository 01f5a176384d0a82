package extractor

import (
	"strings"

	"github.com/propwatch/baliscrape/internal/fields"
	"github.com/propwatch/baliscrape/pkg/models"
)

// Finalize runs the post-processing pipeline on a parsed record: back-fill
// scalar fields from the raw feature map, infer pool information from free
// text, and estimate the lease expiry year. The order is fixed and each
// step is independent of the others' outcomes.
func Finalize(b *models.RecordBuilder) {
	backfill(b)
	detectPool(b)
	estimateLeaseExpiry(b)
}

// backfill copies values from the raw feature-label map into structured
// fields that are still at their defaults after primary extraction.
func backfill(b *models.RecordBuilder) {
	steps := []struct {
		label string
		apply func(string)
	}{
		{"Property ID", func(v string) {
			if b.PropertyID == "" {
				b.PropertyID = v
			}
		}},
		{"Bedroom", func(v string) {
			if b.Bedrooms == 0 {
				b.Bedrooms = fields.Int(v)
			}
		}},
		{"Bathroom", func(v string) {
			if b.Bathrooms == 0 {
				b.Bathrooms = fields.Int(v)
			}
		}},
		{"Land Area", func(v string) {
			if b.LandSizeSqm == 0 {
				b.LandSizeSqm = fields.Number(v)
			}
		}},
		{"Property Size", func(v string) {
			if b.BuildingSizeSqm == 0 {
				b.BuildingSizeSqm = fields.Number(v)
			}
		}},
		{"Furnish", func(v string) {
			if b.Furnish == "" {
				b.Furnish = v
			}
		}},
		{"Leasehold", func(v string) {
			// Values arrive like "25 Years"; only the leading token
			// carries the duration.
			if b.LeaseDurationYears == 0 {
				b.LeaseDurationYears = fields.Int(fields.FirstToken(v))
			}
		}},
		{"Year Built", func(v string) {
			if b.YearBuilt == 0 {
				b.YearBuilt = fields.Int(v)
			}
		}},
		{"Status", func(v string) {
			if b.Status == "" {
				b.Status = v
			}
		}},
		{"Type", func(v string) {
			if b.PropertyType == models.TypeUnknown {
				if derived := deriveType(v); derived != models.TypeUnknown {
					b.PropertyType = derived
				}
			}
		}},
		{"Area", func(v string) {
			if b.Location == "" {
				b.Location = v
			}
		}},
		{"Label", func(v string) {
			if b.ListingStatus == "" {
				b.ListingStatus = v
			}
		}},
		{"Pool Size", func(v string) {
			if b.PoolSize == 0 {
				b.PoolSize = fields.Number(v)
			}
		}},
	}

	for _, step := range steps {
		if value, ok := b.Features[step.label]; ok && value != "" {
			step.apply(value)
		}
	}
}

var poolKeywords = []string{"pool", "swimming pool", "plunge pool", "lap pool", "infinity pool", "jacuzzi"}

// poolTypes in priority order; the first hit wins.
var poolTypes = []string{"private", "shared", "communal", "infinity", "plunge", "lap", "jacuzzi"}

// detectPool scans the record's free text for pool presence and type.
func detectPool(b *models.RecordBuilder) {
	var sources []string
	sources = append(sources, b.Description)
	sources = append(sources, b.KeyInformation...)
	sources = append(sources, b.KeyFeatures...)
	sources = append(sources, b.Amenities...)
	allText := strings.ToLower(strings.Join(sources, " "))

	for _, kw := range poolKeywords {
		if strings.Contains(allText, kw) {
			b.PoolPresent = true
			break
		}
	}

	b.PoolType = ""
	for _, t := range poolTypes {
		if strings.Contains(allText, t) {
			b.PoolType = strings.ToUpper(t[:1]) + t[1:]
			break
		}
	}
}

// estimateLeaseExpiry derives the lease expiry year when both the lease
// duration and build year are known; otherwise it stays absent.
func estimateLeaseExpiry(b *models.RecordBuilder) {
	if b.LeaseDurationYears > 0 && b.YearBuilt > 0 {
		b.LeaseExpiryYear = b.YearBuilt + b.LeaseDurationYears
	} else {
		b.LeaseExpiryYear = 0
	}
}
