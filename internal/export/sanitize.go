// Package export renders scraped property records into tabular outputs: a
// flat CSV file or an Excel workbook sheet. Both formats share one
// flattening step so a record always produces the same columns in the same
// order.
package export

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/propwatch/baliscrape/internal/fields"
	"github.com/propwatch/baliscrape/pkg/models"
)

// Headers returns the fixed column order shared by every tabular export.
func Headers() []string {
	return []string{
		"property_id",
		"title",
		"description",
		"price_usd",
		"price_idr",
		"location",
		"property_type",
		"listing_date",
		"status",
		"bedrooms",
		"bathrooms",
		"land_size_sqm",
		"building_size_sqm",
		"lease_duration_years",
		"lease_expiry_year",
		"year_built",
		"url",
		"listing_status",
		"furnish",
		"amenities",
		"pool_present",
		"pool_type",
		"pool_size",
		"key_information",
		"key_features",
		"features",
		"category",
		"extraction_errors",
	}
}

// Flatten renders one record as a row aligned with Headers. Collections
// are joined, the feature map is rendered in sorted key order, and
// non-finite numbers become empty cells so spreadsheet software never sees
// NaN or Inf.
func Flatten(rec models.PropertyRecord) []string {
	return []string{
		cell(rec.PropertyID),
		cell(rec.Title),
		cell(rec.Description),
		floatCell(rec.PriceUSD),
		strconv.FormatInt(rec.PriceIDR, 10),
		cell(rec.Location),
		string(rec.PropertyType),
		cell(rec.ListingDate),
		cell(rec.Status),
		strconv.Itoa(rec.Bedrooms),
		strconv.Itoa(rec.Bathrooms),
		floatCell(rec.LandSizeSqm),
		floatCell(rec.BuildingSizeSqm),
		strconv.Itoa(rec.LeaseDurationYears),
		strconv.Itoa(rec.LeaseExpiryYear),
		strconv.Itoa(rec.YearBuilt),
		cell(rec.URL),
		cell(rec.ListingStatus),
		cell(rec.Furnish),
		joinList(rec.Amenities),
		strconv.FormatBool(rec.PoolPresent),
		cell(rec.PoolType),
		floatCell(rec.PoolSize),
		joinList(rec.KeyInformation),
		joinList(rec.KeyFeatures),
		featureCell(rec.Features),
		string(rec.Category),
		joinList(rec.ExtractionErrors),
	}
}

// Rows flattens every record, header row first.
func Rows(records []models.PropertyRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Headers())
	for _, rec := range records {
		rows = append(rows, Flatten(rec))
	}
	return rows
}

func cell(s string) string {
	return fields.Printable(s)
}

func floatCell(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	cleaned := make([]string, len(items))
	for i, item := range items {
		cleaned[i] = fields.Printable(item)
	}
	return strings.Join(cleaned, "; ")
}

func featureCell(features map[string]string) string {
	if len(features) == 0 {
		return ""
	}
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s: %s", fields.Printable(k), fields.Printable(features[k]))
	}
	return strings.Join(pairs, "; ")
}
