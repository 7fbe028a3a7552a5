package models

import (
	"encoding/json"
	"fmt"
)

// Strength and temperament scales used by inspections and winterizations.
var (
	StrengthLevels    = []string{"Svagt", "Medel", "Starkt"}
	TemperamentLevels = []string{"Lugnt", "Neutralt", "Upprörd"}
	HealthActionTypes = []string{"Varroabehandling", "Drönarram utskuren", "Annan behandling"}
)

// InspectionData is the payload of an Inspektion event.
type InspectionData struct {
	Strength    string `json:"styrka"`
	Temperament string `json:"temperament"`
	QueenSeen   bool   `json:"drottningSynlig"`
	QueenCells  bool   `json:"drottningceller"`
	Notes       string `json:"anteckningar,omitempty"`
}

// HarvestData is the payload of a Skörd event.
type HarvestData struct {
	AmountKg   float64 `json:"mangdKg"`
	FrameCount int     `json:"antalRamar"`
	Notes      string  `json:"anteckningar,omitempty"`
}

// WinterizationData is the payload of an Invintring event.
type WinterizationData struct {
	FrameCount   int     `json:"antalRamar"`
	FeedAmountKg float64 `json:"fodermangdKg"`
	GeneralState string  `json:"allmanntSkick"`
	Notes        string  `json:"anteckningar,omitempty"`
}

// SplitData is the payload of an Avläggare event. When CreateColony is set
// the fields below seed the new colony; CreatedColonyID is written back once
// the colony exists.
type SplitData struct {
	CreateColony       bool   `json:"skapaNyttSamhalle,omitempty"`
	NewColonyName      string `json:"nyttSamhalleNamn,omitempty"`
	NewColonyApiaryID  string `json:"nyttSamhalleBigardId,omitempty"`
	NewColonyQueenRace string `json:"nyttSamhalleDrottningRas,omitempty"`
	NewColonyQueenYear int    `json:"nyttSamhalleDrottningAr,omitempty"`
	ColonyCreated      bool   `json:"nyttSamhalleSkapad,omitempty"`
	CreatedColonyID    string `json:"nyttSamhalleId,omitempty"`
	Notes              string `json:"anteckningar,omitempty"`
}

// HealthActionData is the payload of a Hälsoåtgärd event.
type HealthActionData struct {
	ActionType string `json:"atgardstyp"`
	Method     string `json:"metodPreparat,omitempty"`
	Notes      string `json:"anteckningar,omitempty"`
}

// NoteData is the payload of an Anteckning event.
type NoteData struct {
	Notes string `json:"anteckningar"`
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// ValidateEventData decodes raw against the schema for the given event type
// and rejects payloads that do not fit it. A nil payload is accepted for
// every type; the original UI omits it for bare observations.
func ValidateEventData(eventType string, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	dec := func(v any) error {
		return json.Unmarshal(raw, v)
	}

	switch eventType {
	case EventTypeInspection:
		var d InspectionData
		if err := dec(&d); err != nil {
			return fmt.Errorf("invalid inspection payload: %w", err)
		}
		if d.Strength != "" && !oneOf(d.Strength, StrengthLevels) {
			return fmt.Errorf("unknown strength level %q", d.Strength)
		}
		if d.Temperament != "" && !oneOf(d.Temperament, TemperamentLevels) {
			return fmt.Errorf("unknown temperament %q", d.Temperament)
		}
	case EventTypeHarvest:
		var d HarvestData
		if err := dec(&d); err != nil {
			return fmt.Errorf("invalid harvest payload: %w", err)
		}
		if d.AmountKg < 0 {
			return fmt.Errorf("harvest amount must not be negative")
		}
	case EventTypeWinterization:
		var d WinterizationData
		if err := dec(&d); err != nil {
			return fmt.Errorf("invalid winterization payload: %w", err)
		}
		if d.GeneralState != "" && !oneOf(d.GeneralState, StrengthLevels) {
			return fmt.Errorf("unknown general state %q", d.GeneralState)
		}
	case EventTypeSplit:
		var d SplitData
		if err := dec(&d); err != nil {
			return fmt.Errorf("invalid split payload: %w", err)
		}
	case EventTypeHealthAction:
		var d HealthActionData
		if err := dec(&d); err != nil {
			return fmt.Errorf("invalid health action payload: %w", err)
		}
		if d.ActionType != "" && !oneOf(d.ActionType, HealthActionTypes) {
			return fmt.Errorf("unknown health action %q", d.ActionType)
		}
	case EventTypeNote:
		var d NoteData
		if err := dec(&d); err != nil {
			return fmt.Errorf("invalid note payload: %w", err)
		}
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}

	return nil
}
