package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Colony statuses as exposed on the wire.
const (
	ColonyStatusActive = "Aktiv"
	ColonyStatusLost   = "Förlorat"
	ColonyStatusSold   = "Avyttrat"
	ColonyStatusMerged = "Sammanslagen"
)

// ColonyStatuses enumerates all valid colony statuses.
var ColonyStatuses = []string{
	ColonyStatusActive,
	ColonyStatusLost,
	ColonyStatusSold,
	ColonyStatusMerged,
}

// Colony represents a single managed bee colony at an apiary site.
// CreatedFromID links a colony back to the one it was split from; the
// reverse association (Splits) lists colonies founded from this one.
type Colony struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	ApiaryID         string    `gorm:"index;not null" json:"bigardId"`
	Name             string    `gorm:"not null" json:"namn"`
	SiteNumber       *int      `json:"platsNummer"`
	QueenRace        *string   `json:"drottningRas"`
	QueenYear        *int      `json:"drottningAr"`
	QueenWingClipped bool      `json:"drottningVingklippt"`
	HiveType         *string   `json:"kupaTyp"`
	BroodFrameType   *string   `json:"ramTypYngelrum"`
	SuperFrameType   *string   `json:"ramTypSkattlador"`
	Status           string    `gorm:"not null;default:Aktiv" json:"status"`
	Notes            *string   `json:"anteckningar"`
	CreatedFromID    *string   `gorm:"index" json:"skapadFranId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Apiary      *Apiary  `gorm:"foreignKey:ApiaryID" json:"bigard,omitempty"`
	Events      []Event  `gorm:"foreignKey:ColonyID" json:"events,omitempty"`
	CreatedFrom *Colony  `gorm:"foreignKey:CreatedFromID" json:"skapadFran,omitempty"`
	Splits      []Colony `gorm:"foreignKey:CreatedFromID" json:"avlaggare,omitempty"`

	// EventCount is populated on list reads, never stored.
	EventCount int `gorm:"-" json:"eventCount"`
}

func (Colony) TableName() string { return "colonies" }

func (c *Colony) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ColonyStatusActive
	}
	return nil
}

// ValidColonyStatus reports whether s is one of the known statuses.
func ValidColonyStatus(s string) bool {
	for _, known := range ColonyStatuses {
		if s == known {
			return true
		}
	}
	return false
}
