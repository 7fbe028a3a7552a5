package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

func TestWorkbookLayout(t *testing.T) {
	buyer := "Kontantkund"
	receipt := "KV26001"
	jars := 6
	entries := []models.LedgerEntry{
		{
			Date:          time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC),
			Kind:          models.LedgerKindSale,
			Description:   "KV26001 - Honungsförsäljning",
			AmountExVAT:   300,
			VATRate:       0.12,
			VATAmount:     36,
			AmountIncVAT:  336,
			Counterparty:  &buyer,
			JarCount:      &jars,
			ReceiptNumber: &receipt,
		},
		{
			Date:         time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
			Kind:         models.LedgerKindPurchase,
			Description:  "Ramar och vax",
			AmountExVAT:  200,
			VATRate:      0.25,
			VATAmount:    50,
			AmountIncVAT: 250,
		},
	}

	data, err := Workbook(entries, 2026)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Kassabok")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	require.Equal(t, "Datum", rows[0][0])
	require.Equal(t, "2026-06-12", rows[1][0])
	require.Equal(t, models.LedgerKindSale, rows[1][1])
	require.Equal(t, "KV26001", rows[1][8])

	sum, err := f.GetCellValue("Kassabok", "A4")
	require.NoError(t, err)
	require.Equal(t, "Summa 2026", sum)

	sumIncVAT, err := f.GetCellValue("Kassabok", "H4")
	require.NoError(t, err)
	require.Equal(t, "586", sumIncVAT)
}

func TestWorkbookEmptyYear(t *testing.T) {
	data, err := Workbook(nil, 2026)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Kassabok")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Summa 2026", rows[1][0])
}
