package billing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

func TestBreakdown(t *testing.T) {
	vat, inclusive := Breakdown(100, 0.12)
	require.InDelta(t, 12.0, vat, 1e-9)
	require.InDelta(t, 112.0, inclusive, 1e-9)

	vat, inclusive = Breakdown(0, 0.25)
	require.Zero(t, vat)
	require.Zero(t, inclusive)
}

func TestFromInclusiveInvertsBreakdown(t *testing.T) {
	for _, base := range []float64{0, 1, 99.99, 100, 1234.56} {
		for _, rate := range []float64{0.06, 0.12, 0.25} {
			_, inclusive := Breakdown(base, rate)
			gotBase, gotVAT := FromInclusive(inclusive, rate)
			require.InDelta(t, base, gotBase, 1e-9)
			require.InDelta(t, base*rate, gotVAT, 1e-9)
		}
	}
}

func TestComputeLineTotals(t *testing.T) {
	lines := []models.InvoiceLine{
		{Description: "Honung 500g", Quantity: 10, UnitPrice: 8, VATRate: 0.12},
		{Description: "Bivax", Quantity: 2, UnitPrice: 25, VATRate: 0.25},
	}

	exVAT, vat := ComputeLineTotals(lines)
	require.InDelta(t, 130.0, exVAT, 1e-9)
	require.InDelta(t, 19.5, vat, 1e-9)
	require.InDelta(t, 80.0, lines[0].Amount, 1e-9)
	require.InDelta(t, 50.0, lines[1].Amount, 1e-9)
}

func TestComputeLineTotalsDefaultsRate(t *testing.T) {
	lines := []models.InvoiceLine{
		{Description: "Honung", Quantity: 1, UnitPrice: 100},
	}

	exVAT, vat := ComputeLineTotals(lines)
	require.InDelta(t, 100.0, exVAT, 1e-9)
	require.InDelta(t, 12.0, vat, 1e-9)
	require.Equal(t, models.DefaultVATRate, lines[0].VATRate)
}
