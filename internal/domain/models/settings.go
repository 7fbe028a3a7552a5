package models

import "time"

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = "default"

// Settings is the singleton company profile plus the invoice sequence
// counter. It is read-or-created with defaults on first access.
type Settings struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	CompanyName       *string   `json:"foretagsnamn"`
	OrgNumber         *string   `json:"organisationsnummer"`
	Address           *string   `json:"adress"`
	PostalCode        *string   `json:"postnummer"`
	City              *string   `json:"ort"`
	Phone             *string   `json:"telefon"`
	Email             *string   `json:"epost"`
	Bankgiro          *string   `json:"bankgiro"`
	Swish             *string   `json:"swish"`
	VATRegistered     bool      `gorm:"default:false" json:"momsRegistrerad"`
	NextInvoiceNumber int       `gorm:"default:1" json:"nastaFakturaNummer"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (Settings) TableName() string { return "settings" }

// DefaultSettings returns the row created on first access.
func DefaultSettings() Settings {
	return Settings{ID: SettingsID, NextInvoiceNumber: 1}
}
