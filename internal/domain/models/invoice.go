package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses as exposed on the wire.
const (
	InvoiceStatusDraft = "Utkast"
	InvoiceStatusSent  = "Skickad"
	InvoiceStatusPaid  = "Betald"
)

// InvoiceStatuses enumerates all valid invoice statuses.
var InvoiceStatuses = []string{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid}

// DefaultVATRate is applied to invoice lines and ledger entries that do not
// carry an explicit rate.
const DefaultVATRate = 0.12

// InvoiceLine is a single row on an invoice. Belopp is derived
// (antal * prisPerEnhet) and recomputed whenever lines are written.
type InvoiceLine struct {
	Description string  `json:"beskrivning"`
	Quantity    float64 `json:"antal"`
	UnitPrice   float64 `json:"prisPerEnhet"`
	VATRate     float64 `json:"momsSats"`
	Amount      float64 `json:"belopp"`
}

// InvoiceLines persists as a JSON array in a single text column, matching
// the original schema.
type InvoiceLines []InvoiceLine

func (l InvoiceLines) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice lines: %w", err)
	}
	return string(data), nil
}

func (l *InvoiceLines) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported invoice lines source %T", src)
	}
}

// Invoice is a numbered bill issued to a customer. Totals are computed from
// the lines, never accepted from the client.
type Invoice struct {
	ID          string       `gorm:"primaryKey" json:"id"`
	Number      string       `gorm:"uniqueIndex;not null" json:"fakturaNummer"`
	CustomerID  string       `gorm:"index;not null" json:"kundId"`
	InvoiceDate time.Time    `json:"fakturaDatum"`
	DueDate     time.Time    `json:"forfallDatum"`
	Lines       InvoiceLines `gorm:"type:text" json:"rader"`
	TotalExVAT  float64      `json:"totaltExMoms"`
	TotalVAT    float64      `json:"totaltMoms"`
	TotalIncVAT float64      `json:"totaltInklMoms"`
	Status      string       `gorm:"not null;default:Utkast" json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	Customer      *Customer     `gorm:"foreignKey:CustomerID" json:"kund,omitempty"`
	LedgerEntries []LedgerEntry `gorm:"foreignKey:InvoiceID" json:"transactions,omitempty"`
}

func (Invoice) TableName() string { return "invoices" }

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InvoiceStatusDraft
	}
	return nil
}

// ValidInvoiceStatus reports whether s is one of the known statuses.
func ValidInvoiceStatus(s string) bool {
	for _, known := range InvoiceStatuses {
		if s == known {
			return true
		}
	}
	return false
}
