package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger entry kinds (kassabok transaction types).
const (
	LedgerKindSale     = "Försäljning"
	LedgerKindPurchase = "Inköp"
)

// LedgerKinds enumerates all valid ledger entry kinds.
var LedgerKinds = []string{LedgerKindSale, LedgerKindPurchase}

// LedgerEntry is one row in the kassabok: a sale or purchase with its VAT
// breakdown. Entries link back to an invoice when posted by marking the
// invoice paid, and carry a receipt number when issued for a cash sale.
type LedgerEntry struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"index;not null" json:"datum"`
	Kind          string    `gorm:"index;not null" json:"handelseTyp"`
	Description   string    `gorm:"not null" json:"beskrivning"`
	AmountExVAT   float64   `json:"beloppExMoms"`
	VATRate       float64   `json:"momsSats"`
	VATAmount     float64   `json:"momsBelopp"`
	AmountIncVAT  float64   `json:"beloppInklMoms"`
	Counterparty  *string   `json:"mottagare"`
	JarCount      *int      `json:"antalBurkar"`
	UnitPrice     *float64  `json:"prisPerEnhet"`
	ReceiptNumber *string   `gorm:"index" json:"kvittoNummer"`
	InvoiceNumber *string   `json:"fakturaNummer"`
	InvoiceID     *string   `gorm:"index" json:"fakturaId"`
	Note          *string   `json:"notering"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"faktura,omitempty"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }

func (e *LedgerEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ValidLedgerKind reports whether k is one of the known kinds.
func ValidLedgerKind(k string) bool {
	return k == LedgerKindSale || k == LedgerKindPurchase
}
