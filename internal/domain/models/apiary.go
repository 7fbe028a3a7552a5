package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Apiary represents a physical site hosting bee colonies.
type Apiary struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"namn"`
	Address     *string   `json:"adress"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Description *string   `json:"beskrivning"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Colonies []Colony `gorm:"foreignKey:ApiaryID" json:"colonies,omitempty"`
}

func (Apiary) TableName() string { return "apiaries" }

func (a *Apiary) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
