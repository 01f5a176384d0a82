package extractor

import (
	"context"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/propwatch/baliscrape/internal/browser"
	"github.com/propwatch/baliscrape/internal/fields"
	urlutil "github.com/propwatch/baliscrape/internal/utils/url"
	"github.com/propwatch/baliscrape/pkg/models"
)

// ForRent extracts rental listings from the villas subdomain, whose
// listing page lazy-loads cards on scroll.
type ForRent struct{}

// NewForRent returns the for-rent category extractor.
func NewForRent() *ForRent {
	return &ForRent{}
}

func (e *ForRent) Category() models.Category { return models.CategoryForRent }
func (e *ForRent) BaseURL() string           { return "https://villas.baliexception.com" }
func (e *ForRent) Endpoint() string          { return "/find-rental/" }
func (e *ForRent) LazyLoad() bool            { return true }

func (e *ForRent) CardSelector() string {
	return "div.brxe-tdjmvf a"
}

func (e *ForRent) TitleSelectors() []string {
	return []string{"h1.brxe-post-title", `h1[class*="title"]`, "h1"}
}

// ExtractURLs pulls detail-page links off the rental cards.
func (e *ForRent) ExtractURLs(doc *goquery.Document) []string {
	var links []string
	doc.Find(e.CardSelector()).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, urlutil.Resolve(e.BaseURL(), href))
		}
	})
	return links
}

// NextPage activates the numbered pagination control for the next page.
func (e *ForRent) NextPage(ctx context.Context, s browser.Session, currentPage int) bool {
	return clickNextPage(ctx, s, currentPage)
}

// ParseDetails parses a rendered rental detail page. Rentals carry their
// price in a single display span and their features in listing-data
// wrappers rather than the sale site's feature list.
func (e *ForRent) ParseDetails(doc *goquery.Document, url string) *models.RecordBuilder {
	b := models.NewRecord(url, models.CategoryForRent)

	b.Title = firstText(doc, e.TitleSelectors())
	if b.Title == "" {
		log.Warn().Str("url", url).Msg("Title element not found")
	}
	b.PropertyType = deriveType(b.Title)

	e.parsePrice(doc, b)

	if date, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		b.ListingDate = date
	}

	if location := strings.TrimSpace(doc.Find("div.jet-listing-dynamic-field__content").First().Text()); location != "" {
		b.Location = location
	}

	e.parseListingData(doc, b)
	splitSections(b, paragraphTexts(doc, "div.x-read-more_content"))

	Finalize(b)
	return b
}

// parsePrice reads the rental price span: digits only, IDR native, USD at
// the fixed conversion rate.
func (e *ForRent) parsePrice(doc *goquery.Document, b *models.RecordBuilder) {
	raw := strings.TrimSpace(doc.Find("span.wpcs_price").First().Text())
	digits := fields.Digits(raw)
	if digits == "" {
		log.Debug().Str("url", b.URL).Str("raw", raw).Msg("No usable price text")
		return
	}
	idr := fields.Number(digits)
	b.PriceIDR = int64(idr)
	b.PriceUSD = math.Round(idr/usdRateIDR*100) / 100
}

// parseListingData reads the rental feature wrappers. A wrapper can carry
// several label elements for one value; each label maps to the value.
func (e *ForRent) parseListingData(doc *goquery.Document, b *models.RecordBuilder) {
	doc.Find("div.listing-data__wrapper").Each(func(_ int, wrapper *goquery.Selection) {
		value := strings.TrimSpace(wrapper.Find("div.listing-data__text").First().Text())
		if value == "" {
			return
		}
		wrapper.Find("div.brxe-block > div.brxe-text-basic:not(.listing-data_text)").Each(func(_ int, keyEl *goquery.Selection) {
			if key := strings.TrimSpace(keyEl.Text()); key != "" {
				b.Features[key] = value
			}
		})
	})
}
