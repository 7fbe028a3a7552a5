package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder recurrence rules.
const (
	RepetitionNone    = "Ingen"
	RepetitionWeekly  = "Varje vecka"
	RepetitionMonthly = "Varje månad"
	RepetitionYearly  = "Varje år"
)

// ReminderRepetitions enumerates all valid recurrence rules.
var ReminderRepetitions = []string{
	RepetitionNone,
	RepetitionWeekly,
	RepetitionMonthly,
	RepetitionYearly,
}

// ReminderCategories enumerates the known reminder categories.
var ReminderCategories = []string{
	"Varroabehandling",
	"Inspektion",
	"Invintring",
	"Utfodring",
	"Skörd",
	"Övrigt",
}

// Reminder is a dated task, optionally tied to a colony or apiary.
// LeadDays controls how many days before the due date it surfaces as
// upcoming. Completing a recurring reminder spawns the next occurrence.
type Reminder struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"titel"`
	Description *string    `json:"beskrivning"`
	Date        time.Time  `gorm:"index;not null" json:"datum"`
	LeadDays    int        `gorm:"default:1" json:"paminnaFor"`
	Category    string     `gorm:"not null" json:"kategori"`
	ColonyID    *string    `gorm:"index" json:"samhalleId"`
	ApiaryID    *string    `gorm:"index" json:"bigardId"`
	Done        bool       `gorm:"default:false" json:"utford"`
	DoneAt      *time.Time `json:"utfordDatum"`
	Recurrence  *string    `json:"upprepning"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Colony *Colony `gorm:"foreignKey:ColonyID" json:"samhalle,omitempty"`
	Apiary *Apiary `gorm:"foreignKey:ApiaryID" json:"bigard,omitempty"`
}

func (Reminder) TableName() string { return "reminders" }

func (r *Reminder) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ValidRepetition reports whether rep is one of the known recurrence rules.
func ValidRepetition(rep string) bool {
	for _, known := range ReminderRepetitions {
		if rep == known {
			return true
		}
	}
	return false
}
