package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a billable party owning zero or more invoices.
type Customer struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"namn"`
	Address    *string   `json:"adress"`
	PostalCode *string   `json:"postnummer"`
	City       *string   `json:"ort"`
	Email      *string   `json:"epost"`
	Phone      *string   `json:"telefon"`
	OrgNumber  *string   `json:"organisationsnummer"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"invoices,omitempty"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
