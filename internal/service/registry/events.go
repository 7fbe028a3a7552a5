package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// EventInput carries the wire payload for event create/update.
type EventInput struct {
	ColonyID    string          `json:"samhalleId"`
	Type        string          `json:"handelseTyp"`
	Date        string          `json:"datum"`
	Description *string         `json:"beskrivning"`
	Data        json.RawMessage `json:"data"`
}

// EventResult is the create response. NewColonyID is set when a split
// event spawned a child colony.
type EventResult struct {
	Event       *models.Event `json:"event"`
	NewColonyID string        `json:"newColonyId,omitempty"`
	Message     string        `json:"message,omitempty"`
}

// CreateEvent validates and stores an event. A split event whose payload
// asks for it also creates the child colony in the same transaction.
func (s *Service) CreateEvent(ctx context.Context, in EventInput) (*EventResult, error) {
	if in.ColonyID == "" {
		return nil, fmt.Errorf("%w: samhalleId is required", ErrInvalidInput)
	}
	if !models.ValidEventType(in.Type) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, in.Type)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateEventData(in.Type, in.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := &EventResult{}
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		parent, err := tx.Colonies().Get(ctx, in.ColonyID)
		if err != nil {
			return err
		}

		event := &models.Event{
			ColonyID:    in.ColonyID,
			Type:        in.Type,
			Date:        date,
			Description: in.Description,
			Data:        in.Data,
		}

		if in.Type == models.EventTypeSplit {
			child, err := s.createSplitColony(ctx, tx, parent, event)
			if err != nil {
				return err
			}
			if child != nil {
				result.NewColonyID = child.ID
				result.Message = fmt.Sprintf("Nytt samhälle %q skapat", child.Name)
			}
		}

		if err := tx.Events().Create(ctx, event); err != nil {
			return err
		}
		result.Event = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.store.Events().Get(ctx, result.Event.ID)
	if err == nil {
		result.Event = full
	}
	return result, nil
}

// createSplitColony creates the child colony for a split event when the
// payload requests one, defaulting unset queen fields from the parent and
// stamping the lineage note. The child's id is written back into the
// event payload.
func (s *Service) createSplitColony(ctx context.Context, tx repository.Store, parent *models.Colony, event *models.Event) (*models.Colony, error) {
	var data models.SplitData
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: bad split payload: %v", ErrInvalidInput, err)
		}
	}
	if !data.CreateColony {
		return nil, nil
	}

	name := data.NewColonyName
	if name == "" {
		name = parent.Name + " - avläggare"
	}
	apiaryID := data.NewColonyApiaryID
	if apiaryID == "" {
		apiaryID = parent.ApiaryID
	} else if apiaryID != parent.ApiaryID {
		if _, err := tx.Apiaries().Get(ctx, apiaryID); err != nil {
			return nil, err
		}
	}
	queenRace := parent.QueenRace
	if data.NewColonyQueenRace != "" {
		queenRace = &data.NewColonyQueenRace
	}
	queenYear := event.Date.Year()
	if data.NewColonyQueenYear != 0 {
		queenYear = data.NewColonyQueenYear
	}

	note := fmt.Sprintf("Avläggare skapad %s från %s",
		event.Date.Format(dateLayout), parent.Name)
	if data.Notes != "" {
		note = note + ". " + data.Notes
	}

	child := &models.Colony{
		ApiaryID:       apiaryID,
		Name:           name,
		QueenRace:      queenRace,
		QueenYear:      &queenYear,
		HiveType:       parent.HiveType,
		BroodFrameType: parent.BroodFrameType,
		SuperFrameType: parent.SuperFrameType,
		Status:         models.ColonyStatusActive,
		CreatedFromID:  &parent.ID,
		Notes:          &note,
	}
	if err := tx.Colonies().Create(ctx, child); err != nil {
		return nil, err
	}

	data.ColonyCreated = true
	data.CreatedColonyID = child.ID
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	event.Data = raw

	s.logger.Info("split colony created",
		zap.String("parent", parent.ID), zap.String("child", child.ID))
	return child, nil
}

// GetEvent returns one event with its colony and apiary.
func (s *Service) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.store.Events().Get(ctx, id)
}

// ListEvents returns events newest first, filtered by colony, type and
// date range.
func (s *Service) ListEvents(ctx context.Context, filter repository.EventFilter) ([]models.Event, error) {
	if filter.Type != "" && !models.ValidEventType(filter.Type) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, filter.Type)
	}
	return s.store.Events().List(ctx, filter)
}

// UpdateEvent rewrites an event. The split side effect only runs on
// create; updates never spawn colonies.
func (s *Service) UpdateEvent(ctx context.Context, id string, in EventInput) (*models.Event, error) {
	existing, err := s.store.Events().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	eventType := in.Type
	if eventType == "" {
		eventType = existing.Type
	}
	if !models.ValidEventType(eventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, eventType)
	}
	date := existing.Date
	if in.Date != "" {
		date, err = parseDate(in.Date)
		if err != nil {
			return nil, err
		}
	}
	data := existing.Data
	if in.Data != nil {
		if err := models.ValidateEventData(eventType, in.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		data = in.Data
	}
	description := existing.Description
	if in.Description != nil {
		description = in.Description
	}

	event := &models.Event{
		ID:          id,
		ColonyID:    existing.ColonyID,
		Type:        eventType,
		Date:        date,
		Description: description,
		Data:        data,
	}
	if err := s.store.Events().Update(ctx, event); err != nil {
		return nil, err
	}
	return s.store.Events().Get(ctx, id)
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.store.Events().Delete(ctx, id)
}
