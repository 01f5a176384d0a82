// Package extractor encapsulates everything that differs between listing
// categories: base URLs, listing endpoints, CSS targets, and the parsing
// quirks of each category's detail pages. The discovery and detail loops
// stay category-agnostic by working through the Extractor interface.
package extractor

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/propwatch/baliscrape/internal/browser"
	"github.com/propwatch/baliscrape/pkg/models"
)

// Exchange rate applied when a page only exposes an IDR display price.
const usdRateIDR = 16350

// Extractor is the capability set one listing category must provide.
type Extractor interface {
	// Category returns the listing segment this extractor serves.
	Category() models.Category
	// BaseURL is the scheme+host all relative hrefs resolve against.
	BaseURL() string
	// Endpoint is the listing path under BaseURL.
	Endpoint() string
	// CardSelector matches the listing-card elements whose presence
	// signals a rendered listing page.
	CardSelector() string
	// TitleSelectors is the ordered strategy list of title-like elements
	// on a detail page; the first structural match wins.
	TitleSelectors() []string
	// LazyLoad reports whether the listing page only renders cards after
	// scroll-triggering.
	LazyLoad() bool
	// ExtractURLs returns the absolute detail-page URLs found on the
	// rendered listing page. It never fails; no matches yields an empty
	// slice.
	ExtractURLs(doc *goquery.Document) []string
	// NextPage tries to activate the control for currentPage+1 and
	// reports whether it succeeded. A false return means the last page
	// was reached, not an error.
	NextPage(ctx context.Context, s browser.Session, currentPage int) bool
	// ParseDetails parses the rendered detail page into a record builder
	// and runs the post-processing pipeline. Single-field failures leave
	// defaults in place and never abort the rest of the parse.
	ParseDetails(doc *goquery.Document, url string) *models.RecordBuilder
}

// Registry returns the category→extractor mapping, selected once per
// category at the start of discovery.
func Registry() map[models.Category]Extractor {
	return map[models.Category]Extractor{
		models.CategoryForSale: NewForSale(),
		models.CategoryForRent: NewForRent(),
	}
}

// deriveType classifies a property from keywords in its title.
func deriveType(title string) models.PropertyType {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "villa"):
		return models.TypeVilla
	case strings.Contains(lower, "land"):
		return models.TypeLand
	case strings.Contains(lower, "house"):
		return models.TypeHouse
	default:
		return models.TypeUnknown
	}
}

// firstText returns the trimmed text of the first selector in the ordered
// list that matches a non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// Section-header sentinel phrases that partition a detail page's free-text
// body, in document order.
const (
	sentinelAmenities      = "WE LOVE"
	sentinelKeyInformation = "KEY INFORMATION"
	sentinelKeyFeatures    = "Key Features Include"
)

// splitSections partitions body paragraphs into description, amenities,
// key information, and key features. Paragraphs before the first sentinel
// belong to the description.
func splitSections(b *models.RecordBuilder, paragraphs []string) {
	section := "description"
	var description []string

	for _, text := range paragraphs {
		text = strings.TrimSpace(text)
		switch {
		case strings.Contains(text, sentinelAmenities):
			section = "amenities"
			continue
		case strings.Contains(text, sentinelKeyInformation):
			section = "key_information"
			continue
		case strings.Contains(text, sentinelKeyFeatures):
			section = "key_features"
			continue
		}
		if text == "" {
			continue
		}

		switch section {
		case "description":
			description = append(description, text)
		case "amenities":
			b.Amenities = append(b.Amenities, text)
		case "key_information":
			b.KeyInformation = append(b.KeyInformation, text)
		case "key_features":
			b.KeyFeatures = append(b.KeyFeatures, text)
		}
	}

	b.Description = strings.Join(description, "\n")
}

// paragraphTexts collects the trimmed text of every element matched by
// selector, keeping document order and dropping blanks.
func paragraphTexts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}
