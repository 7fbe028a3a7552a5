package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

var ledgerHeader = []string{
	"Datum",
	"Typ",
	"Beskrivning",
	"Mottagare/Leverantör",
	"Belopp ex moms",
	"Momssats",
	"Momsbelopp",
	"Belopp inkl moms",
	"Kvittonummer",
	"Fakturanummer",
	"Antal burkar",
	"Notering",
}

var ledgerColumnWidths = []float64{12, 12, 32, 24, 14, 10, 12, 16, 14, 14, 12, 32}

// Workbook renders a year's ledger entries as an xlsx kassabok with a
// styled header and a sum row.
func Workbook(entries []models.LedgerEntry, year int) ([]byte, error) {
	f := excelize.NewFile()

	sheet := "Kassabok"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF3C4"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, title := range ledgerHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("style header %s: %w", cell, err)
		}
	}
	for col, width := range ledgerColumnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	var sumExVAT, sumVAT, sumIncVAT float64
	for i, entry := range entries {
		row := i + 2
		values := EntryRow(entry)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("entry cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		sumExVAT += entry.AmountExVAT
		sumVAT += entry.VATAmount
		sumIncVAT += entry.AmountIncVAT
	}

	sumRow := len(entries) + 2
	sums := map[int]any{
		1: fmt.Sprintf("Summa %d", year),
		5: sumExVAT,
		7: sumVAT,
		8: sumIncVAT,
	}
	for col, value := range sums {
		cell, err := excelize.CoordinatesToCellName(col, sumRow)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("sum cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			f.Close()
			return nil, fmt.Errorf("set sum %s: %w", cell, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// EntryRow flattens a ledger entry into the kassabok column order shared
// by the xlsx export and the spreadsheet mirror.
func EntryRow(entry models.LedgerEntry) []any {
	row := []any{
		entry.Date.Format("2006-01-02"),
		entry.Kind,
		entry.Description,
		deref(entry.Counterparty),
		entry.AmountExVAT,
		entry.VATRate,
		entry.VATAmount,
		entry.AmountIncVAT,
		deref(entry.ReceiptNumber),
		deref(entry.InvoiceNumber),
		derefInt(entry.JarCount),
		deref(entry.Note),
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}
