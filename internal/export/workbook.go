// Package export renders accepted quotes as spreadsheets for the document
// generation hand-off.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/sanquote/internal/quote"
	"github.com/Simplici0/sanquote/internal/services"
)

const (
	quoteSheet  = "Quote"
	inputsSheet = "Inputs"
)

var fieldLabels = map[services.Field]string{
	services.FieldPerVisit:       "Per visit",
	services.FieldFirstVisit:     "First visit",
	services.FieldMonthlyBase:    "Monthly base",
	services.FieldMonthlyTrip:    "Monthly trip",
	services.FieldMonthlyTotal:   "Monthly total",
	services.FieldInstallFee:     "Installation",
	services.FieldFirstPeriod:    "First period",
	services.FieldContractTotal:  "Contract total",
	services.FieldAnnualTotal:    "Annual total",
	services.FieldVisitsPerYear:  "Visits per year",
	services.FieldVisitsPerMonth: "Visits per month",
}

// Workbook renders rec with its line items, totals and inputs. Overridden
// totals are marked so the reader can tell them from computed ones.
func Workbook(rec quote.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quoteSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(inputsSheet); err != nil {
		return nil, fmt.Errorf("add inputs sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	for col, width := range map[string]float64{"A": 22, "B": 12, "C": 12, "D": 12, "E": 14, "F": 10} {
		if err := f.SetColWidth(quoteSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	set := func(sheet, cell string, v any) {
		if s, ok := v.(string); ok {
			v = sanitizeCell(s)
		}
		_ = f.SetCellValue(sheet, cell, v)
	}

	out := rec.Outputs
	set(quoteSheet, "A1", rec.Title)
	_ = f.SetCellStyle(quoteSheet, "A1", "A1", titleStyle)
	set(quoteSheet, "A2", "Ref: "+rec.Ref)
	set(quoteSheet, "A3", fmt.Sprintf("Service: %s  Frequency: %s  Region: %s  Tier: %s  Contract: %d months",
		out.Service, out.Frequency, out.Region, out.Tier, out.ContractMonths))
	if !rec.CreatedAt.IsZero() {
		set(quoteSheet, "A4", "Date: "+rec.CreatedAt.Format("2006-01-02"))
	}

	headers := []string{"Line item", "Quantity", "Unit rate", "Minimum", "Amount", "Floor"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		set(quoteSheet, cell, h)
	}
	_ = f.SetCellStyle(quoteSheet, "A6", "F6", headerStyle)

	row := 7
	for _, li := range out.Lines {
		r := fmt.Sprint(row)
		set(quoteSheet, "A"+r, li.Name)
		set(quoteSheet, "B"+r, li.Quantity)
		set(quoteSheet, "C"+r, li.UnitRate)
		set(quoteSheet, "D"+r, li.Minimum)
		set(quoteSheet, "E"+r, li.Applied)
		if li.MinimumApplied {
			set(quoteSheet, "F"+r, "min")
		}
		_ = f.SetCellStyle(quoteSheet, "C"+r, "E"+r, moneyStyle)
		row++
	}

	row++
	for _, field := range services.Fields {
		v, _ := out.Value(field)
		r := fmt.Sprint(row)
		set(quoteSheet, "A"+r, fieldLabels[field])
		set(quoteSheet, "E"+r, v)
		if field != services.FieldVisitsPerYear && field != services.FieldVisitsPerMonth {
			_ = f.SetCellStyle(quoteSheet, "E"+r, "E"+r, moneyStyle)
		}
		if _, ok := rec.Overrides[field]; ok {
			set(quoteSheet, "F"+r, "manual")
		}
		row++
	}

	if err := writeInputs(f, rec.Inputs, set); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInputs(f *excelize.File, in services.Inputs, set func(sheet, cell string, v any)) error {
	if err := f.SetColWidth(inputsSheet, "A", "A", 20); err != nil {
		return fmt.Errorf("set inputs width: %w", err)
	}

	names := make([]string, 0, len(in.Quantities))
	for k := range in.Quantities {
		names = append(names, k)
	}
	sort.Strings(names)

	row := 1
	put := func(label string, v any) {
		set(inputsSheet, fmt.Sprintf("A%d", row), label)
		set(inputsSheet, fmt.Sprintf("B%d", row), v)
		row++
	}
	for _, k := range names {
		put(k, in.Quantity(k))
	}
	put("install", in.Install)
	put("dirty", in.Dirty)
	put("tripCharge", in.TripCharge)
	put("parking", in.Parking)
	put("bundle", in.Bundle)
	put("exactArea", in.ExactArea)
	if in.Notes != "" {
		put("notes", in.Notes)
	}
	return nil
}

// sanitizeCell keeps user text from being read as a formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
