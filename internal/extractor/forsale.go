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

// ForSale extracts listings from the main Bali Exception site.
type ForSale struct{}

// NewForSale returns the for-sale category extractor.
func NewForSale() *ForSale {
	return &ForSale{}
}

func (e *ForSale) Category() models.Category { return models.CategoryForSale }
func (e *ForSale) BaseURL() string           { return "https://baliexception.com" }
func (e *ForSale) Endpoint() string          { return "/properties" }
func (e *ForSale) LazyLoad() bool            { return false }

func (e *ForSale) CardSelector() string {
	return "h2.brxe-gzgohv.brxe-heading.propertyCard__title a"
}

func (e *ForSale) TitleSelectors() []string {
	return []string{"h1.brxe-post-title", `h1[class*="title"]`, "h1"}
}

// ExtractURLs pulls detail-page links off the listing cards, resolving
// relative hrefs against the base URL.
func (e *ForSale) ExtractURLs(doc *goquery.Document) []string {
	var links []string
	doc.Find(e.CardSelector()).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, urlutil.Resolve(e.BaseURL(), href))
		}
	})
	return links
}

// NextPage activates the numbered pagination control for the next page.
func (e *ForSale) NextPage(ctx context.Context, s browser.Session, currentPage int) bool {
	return clickNextPage(ctx, s, currentPage)
}

// ParseDetails parses a rendered for-sale detail page. Fields are
// populated in a fixed order: title, price, date, body sections, feature
// list; each step recovers locally so one broken selector cannot sink the
// record.
func (e *ForSale) ParseDetails(doc *goquery.Document, url string) *models.RecordBuilder {
	b := models.NewRecord(url, models.CategoryForSale)

	b.Title = firstText(doc, e.TitleSelectors())
	if b.Title == "" {
		log.Warn().Str("url", url).Msg("Title element not found")
	}
	b.PropertyType = deriveType(b.Title)

	e.parsePrice(doc, b)

	if date, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		b.ListingDate = date
	}

	splitSections(b, paragraphTexts(doc, "div.brxe-post-content p"))
	e.parseFeatureList(doc, b)

	Finalize(b)
	return b
}

// parsePrice prefers the machine-readable price attributes on the
// converted-price element; failing that it strips the displayed text down
// to digits and converts at the fixed rate.
func (e *ForSale) parsePrice(doc *goquery.Document, b *models.RecordBuilder) {
	converted := doc.Find("p.converted-price").First()
	if converted.Length() > 0 {
		usd, hasUSD := converted.Attr("data-usd-price")
		idr, hasIDR := converted.Attr("data-idr-price")
		if hasUSD || hasIDR {
			b.PriceUSD = fields.Number(usd)
			b.PriceIDR = int64(fields.Number(idr))
			return
		}
	}

	// Displayed-text fallback, trying the price shapes seen across the
	// site's templates in priority order.
	for _, sel := range []string{"p.converted-price", "span.wpcs_price"} {
		raw := strings.TrimSpace(doc.Find(sel).First().Text())
		digits := fields.Digits(raw)
		if digits == "" {
			continue
		}
		idr := fields.Number(digits)
		b.PriceIDR = int64(idr)
		b.PriceUSD = math.Round(idr/usdRateIDR*100) / 100
		return
	}
	log.Debug().Str("url", b.URL).Msg("No price found on detail page")
}

// parseFeatureList reads the label/value feature list, tolerating the two
// markup shapes the site uses for values: an explicit content div or an
// anchor term link.
func (e *ForSale) parseFeatureList(doc *goquery.Document, b *models.RecordBuilder) {
	doc.Find("ul.featureList__wrapper li").Each(func(_ int, item *goquery.Selection) {
		label := strings.TrimSpace(item.Find("div.brxe-text-basic.featureList").First().Text())
		if label == "" {
			return
		}
		value := strings.TrimSpace(item.Find("div.jet-listing-dynamic-field__content").First().Text())
		if value == "" {
			value = strings.TrimSpace(item.Find("a.jet-listing-dynamic-terms__link").First().Text())
		}
		if value != "" {
			b.Features[label] = value
		}
	})
}
