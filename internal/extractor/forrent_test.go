package extractor

import (
	"testing"

	"github.com/propwatch/baliscrape/pkg/models"
)

const forRentDetailHTML = `<!DOCTYPE html>
<html>
<head>
	<meta property="article:published_time" content="2025-01-15T10:00:00+08:00">
</head>
<body>
	<h1 class="brxe-post-title">Modern Villa with Shared Pool in Ubud</h1>
	<span class="wpcs_price">Rp 32.700.000 / month</span>
	<div class="jet-listing-dynamic-field__content">Ubud</div>
	<div class="listing-data__wrapper">
		<div class="brxe-block">
			<div class="brxe-text-basic">Bedroom</div>
		</div>
		<div class="listing-data__text">2</div>
	</div>
	<div class="listing-data__wrapper">
		<div class="brxe-block">
			<div class="brxe-text-basic">Furnish</div>
			<div class="brxe-text-basic">Status</div>
		</div>
		<div class="listing-data__text">Fully Furnished</div>
	</div>
	<div class="listing-data__wrapper">
		<div class="brxe-block">
			<div class="brxe-text-basic">Property Size</div>
		</div>
		<div class="listing-data__text">180 m²</div>
	</div>
	<div class="x-read-more_content">A calm rice-field view villa.</div>
	<div class="x-read-more_content">WE LOVE</div>
	<div class="x-read-more_content">Shared pool access</div>
</body>
</html>`

func TestForRent_ParseDetails(t *testing.T) {
	e := NewForRent()
	doc := mustDoc(t, forRentDetailHTML)

	rec := e.ParseDetails(doc, "https://villas.baliexception.com/rental/villa-9").Build()

	if rec.Title != "Modern Villa with Shared Pool in Ubud" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Category != models.CategoryForRent {
		t.Errorf("Category = %q", rec.Category)
	}
	if rec.PropertyType != models.TypeVilla {
		t.Errorf("PropertyType = %q, want villa", rec.PropertyType)
	}

	// Displayed price: digits only, IDR native, USD at the fixed rate.
	if rec.PriceIDR != 32700000 {
		t.Errorf("PriceIDR = %d, want 32700000", rec.PriceIDR)
	}
	if rec.PriceUSD != 2000 {
		t.Errorf("PriceUSD = %v, want 2000", rec.PriceUSD)
	}

	if rec.ListingDate != "2025-01-15T10:00:00+08:00" {
		t.Errorf("ListingDate = %q", rec.ListingDate)
	}
	if rec.Location != "Ubud" {
		t.Errorf("Location = %q, want Ubud", rec.Location)
	}

	// One wrapper, one label.
	if rec.Features["Bedroom"] != "2" {
		t.Errorf("Features[Bedroom] = %q", rec.Features["Bedroom"])
	}
	// One wrapper, two labels sharing a value.
	if rec.Features["Furnish"] != "Fully Furnished" || rec.Features["Status"] != "Fully Furnished" {
		t.Errorf("Shared-value labels = %q / %q", rec.Features["Furnish"], rec.Features["Status"])
	}

	// Back-fill from the feature map.
	if rec.Bedrooms != 2 {
		t.Errorf("Bedrooms = %d, want 2", rec.Bedrooms)
	}
	if rec.Furnish != "Fully Furnished" {
		t.Errorf("Furnish = %q", rec.Furnish)
	}
	if rec.BuildingSizeSqm != 180 {
		t.Errorf("BuildingSizeSqm = %v, want 180", rec.BuildingSizeSqm)
	}

	if rec.Description != "A calm rice-field view villa." {
		t.Errorf("Description = %q", rec.Description)
	}
	if len(rec.Amenities) != 1 || rec.Amenities[0] != "Shared pool access" {
		t.Errorf("Amenities = %v", rec.Amenities)
	}
	if !rec.PoolPresent || rec.PoolType != "Shared" {
		t.Errorf("Pool = %v/%q, want present/Shared", rec.PoolPresent, rec.PoolType)
	}
}

func TestForRent_ParseDetails_NoPrice(t *testing.T) {
	html := `<html><body>
		<h1 class="brxe-post-title">Cozy House</h1>
		<span class="wpcs_price">Price on request</span>
	</body></html>`

	rec := NewForRent().ParseDetails(mustDoc(t, html), "https://villas.baliexception.com/rental/x").Build()

	if rec.PriceIDR != 0 || rec.PriceUSD != 0 {
		t.Errorf("Non-numeric price text must leave prices zero, got IDR=%d USD=%v", rec.PriceIDR, rec.PriceUSD)
	}
	if rec.PropertyType != models.TypeHouse {
		t.Errorf("PropertyType = %q, want house", rec.PropertyType)
	}
}

func TestForRent_ExtractURLs(t *testing.T) {
	html := `<html><body>
		<div class="brxe-tdjmvf"><a href="/rental/one">One</a></div>
		<div class="brxe-tdjmvf"><a href="https://villas.baliexception.com/rental/two">Two</a></div>
	</body></html>`

	urls := NewForRent().ExtractURLs(mustDoc(t, html))

	want := []string{
		"https://villas.baliexception.com/rental/one",
		"https://villas.baliexception.com/rental/two",
	}
	if len(urls) != len(want) {
		t.Fatalf("Got %d URLs: %v", len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestRegistry_CoversAllCategories(t *testing.T) {
	reg := Registry()
	for _, cat := range models.AllCategories() {
		ex, ok := reg[cat]
		if !ok {
			t.Fatalf("No extractor registered for %q", cat)
		}
		if ex.Category() != cat {
			t.Errorf("Extractor for %q reports category %q", cat, ex.Category())
		}
	}
	if NewForSale().LazyLoad() {
		t.Error("For-sale listing page should not lazy-load")
	}
	if !NewForRent().LazyLoad() {
		t.Error("For-rent listing page should lazy-load")
	}
}
