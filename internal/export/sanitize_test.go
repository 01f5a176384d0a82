package export

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/propwatch/baliscrape/pkg/models"
)

func sampleRecord() models.PropertyRecord {
	b := models.NewRecord("https://baliexception.com/listing/a", models.CategoryForSale)
	b.PropertyID = "BE-7"
	b.Title = "Villa A"
	b.PriceUSD = 450000
	b.PriceIDR = 7357500000
	b.Location = "Canggu"
	b.PropertyType = models.TypeVilla
	b.Bedrooms = 3
	b.Amenities = []string{"Pool", "Gym"}
	b.Features = map[string]string{"Land Area": "350 m²", "Bedroom": "3"}
	b.PoolPresent = true
	b.PoolType = "Private"
	return b.Build()
}

func TestFlatten_AlignsWithHeaders(t *testing.T) {
	row := Flatten(sampleRecord())
	headers := Headers()
	if len(row) != len(headers) {
		t.Fatalf("Row has %d cells, headers %d", len(row), len(headers))
	}

	at := func(name string) string {
		t.Helper()
		for i, h := range headers {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("No column %q", name)
		return ""
	}

	if at("title") != "Villa A" {
		t.Errorf("title = %q", at("title"))
	}
	if at("price_usd") != "450000" {
		t.Errorf("price_usd = %q", at("price_usd"))
	}
	if at("price_idr") != "7357500000" {
		t.Errorf("price_idr = %q", at("price_idr"))
	}
	if at("amenities") != "Pool; Gym" {
		t.Errorf("amenities = %q", at("amenities"))
	}
	if at("features") != "Bedroom: 3; Land Area: 350 m²" {
		t.Errorf("features = %q, want sorted key order", at("features"))
	}
	if at("pool_present") != "true" {
		t.Errorf("pool_present = %q", at("pool_present"))
	}
	if at("category") != "for-sale" {
		t.Errorf("category = %q", at("category"))
	}
}

func TestFlatten_NonFiniteNumbersBlank(t *testing.T) {
	rec := sampleRecord()
	rec.PriceUSD = math.NaN()
	rec.LandSizeSqm = math.Inf(1)

	headers := Headers()
	row := Flatten(rec)
	for i, h := range headers {
		if h == "price_usd" || h == "land_size_sqm" {
			if row[i] != "" {
				t.Errorf("%s = %q, want empty cell", h, row[i])
			}
		}
	}
}

func TestFlatten_StripsNonPrintableText(t *testing.T) {
	rec := sampleRecord()
	rec.Title = "Villa\x00 A\x07"

	row := Flatten(rec)
	if row[1] != "Villa A" {
		t.Errorf("title = %q, want control characters stripped", row[1])
	}
}

func TestSaveCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.csv")
	records := []models.PropertyRecord{sampleRecord()}

	if err := SaveCSV(records, path); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		t.Fatalf("CSV parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Got %d rows, want header + 1 record", len(rows))
	}
	if rows[0][0] != "property_id" {
		t.Errorf("First header = %q", rows[0][0])
	}
	if rows[1][1] != "Villa A" {
		t.Errorf("Record title = %q", rows[1][1])
	}
}

func TestSaveCSV_EmptyRecordsStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := SaveCSV(nil, path); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(raw), "property_id,title,") {
		t.Errorf("Header row missing, got %q", string(raw)[:40])
	}
}
