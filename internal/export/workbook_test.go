package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/quote"
	"github.com/Simplici0/sanquote/internal/services"
)

func TestWorkbook_CarpetQuote(t *testing.T) {
	def, _ := services.Lookup(services.Carpet)
	in := services.Inputs{
		Quantities: map[string]float64{"area": 1300},
		Frequency:  pricing.Quarterly,
		Notes:      "=HYPERLINK(\"x\")",
	}
	rec := quote.Record{
		Ref:       "q-1",
		Title:     "Harbor Deli",
		Service:   services.Carpet,
		Inputs:    in,
		Outputs:   def.Compute(in, def.Defaults()),
		Overrides: map[services.Field]float64{services.FieldAnnualTotal: 1900},
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := Workbook(rec)
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != quoteSheet || sheets[1] != inputsSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	title, _ := f.GetCellValue(quoteSheet, "A1")
	if title != "Harbor Deli" {
		t.Fatalf("title = %q", title)
	}
	item, _ := f.GetCellValue(quoteSheet, "A7")
	if item != "area" {
		t.Fatalf("first line item = %q, want area", item)
	}

	rows, err := f.GetRows(inputsSheet)
	if err != nil {
		t.Fatalf("read inputs: %v", err)
	}
	last := rows[len(rows)-1]
	if last[0] != "notes" || last[1][0] != '\'' {
		t.Fatalf("notes should be escaped, got %v", last)
	}
}

func TestSanitizeCell(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"plain":  "plain",
		"=1+1":   "'=1+1",
		"-5":     "'-5",
		"@SUM()": "'@SUM()",
	}
	for in, want := range cases {
		if got := sanitizeCell(in); got != want {
			t.Fatalf("sanitizeCell(%q) = %q, want %q", in, got, want)
		}
	}
}
