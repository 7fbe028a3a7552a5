package billing

import "github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"

// Breakdown computes the VAT amount and tax-inclusive total for a
// tax-exclusive base amount and a fractional rate.
func Breakdown(base, rate float64) (vat, inclusive float64) {
	vat = base * rate
	return vat, base + vat
}

// FromInclusive derives the tax-exclusive base and VAT amount from a
// tax-inclusive total. Inverse of Breakdown within floating-point tolerance.
func FromInclusive(inclusive, rate float64) (base, vat float64) {
	base = inclusive / (1 + rate)
	return base, inclusive - base
}

// ComputeLineTotals fills in each line's derived amount
// (quantity * unit price) and returns the invoice totals. A line without an
// explicit VAT rate gets the default rate, as the original did.
func ComputeLineTotals(lines []models.InvoiceLine) (exVAT, vat float64) {
	for i := range lines {
		if lines[i].VATRate == 0 {
			lines[i].VATRate = models.DefaultVATRate
		}
		lines[i].Amount = lines[i].Quantity * lines[i].UnitPrice
		exVAT += lines[i].Amount
		vat += lines[i].Amount * lines[i].VATRate
	}
	return exVAT, vat
}
