package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event types as exposed on the wire.
const (
	EventTypeInspection    = "Inspektion"
	EventTypeHarvest       = "Skörd"
	EventTypeWinterization = "Invintring"
	EventTypeSplit         = "Avläggare"
	EventTypeHealthAction  = "Hälsoåtgärd"
	EventTypeNote          = "Anteckning"
)

// EventTypes enumerates all valid event types.
var EventTypes = []string{
	EventTypeInspection,
	EventTypeHarvest,
	EventTypeWinterization,
	EventTypeSplit,
	EventTypeHealthAction,
	EventTypeNote,
}

// Event is a dated observation on a colony. Data holds the type-specific
// payload; its schema is validated against Type on create and update.
type Event struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	ColonyID    string          `gorm:"index;not null" json:"samhalleId"`
	Type        string          `gorm:"index;not null" json:"handelseTyp"`
	Date        time.Time       `gorm:"index;not null" json:"datum"`
	Description *string         `json:"beskrivning"`
	Data        json.RawMessage `gorm:"type:text" json:"data,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Colony *Colony `gorm:"foreignKey:ColonyID" json:"samhalle,omitempty"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t string) bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}
