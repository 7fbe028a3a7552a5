package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// ErrInvalidInput marks validation failures the handler maps to 400.
var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

// Service owns reminder scheduling, completion and recurrence.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a reminder service.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: datum is required", ErrInvalidInput)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, value)
	}
	return t, nil
}

// Input carries the wire payload for reminder create/update.
type Input struct {
	Title       string  `json:"titel"`
	Description *string `json:"beskrivning"`
	Date        string  `json:"datum"`
	LeadDays    *int    `json:"paminnaFor"`
	Category    string  `json:"kategori"`
	ColonyID    *string `json:"samhalleId"`
	ApiaryID    *string `json:"bigardId"`
	Recurrence  *string `json:"upprepning"`
}

func (in Input) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: titel is required", ErrInvalidInput)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: kategori is required", ErrInvalidInput)
	}
	if in.Recurrence != nil && *in.Recurrence != "" && !models.ValidRepetition(*in.Recurrence) {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidInput, *in.Recurrence)
	}
	if in.LeadDays != nil && *in.LeadDays < 0 {
		return fmt.Errorf("%w: paminnaFor must not be negative", ErrInvalidInput)
	}
	return nil
}

// Create stores a new reminder.
func (s *Service) Create(ctx context.Context, in Input) (*models.Reminder, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.ColonyID != nil && *in.ColonyID != "" {
		if _, err := s.store.Colonies().Get(ctx, *in.ColonyID); err != nil {
			return nil, err
		}
	}
	if in.ApiaryID != nil && *in.ApiaryID != "" {
		if _, err := s.store.Apiaries().Get(ctx, *in.ApiaryID); err != nil {
			return nil, err
		}
	}

	leadDays := 1
	if in.LeadDays != nil {
		leadDays = *in.LeadDays
	}
	reminder := &models.Reminder{
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		LeadDays:    leadDays,
		Category:    in.Category,
		ColonyID:    in.ColonyID,
		ApiaryID:    in.ApiaryID,
		Recurrence:  in.Recurrence,
	}
	if err := s.store.Reminders().Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// Get returns one reminder with its colony and apiary.
func (s *Service) Get(ctx context.Context, id string) (*models.Reminder, error) {
	return s.store.Reminders().Get(ctx, id)
}

// List returns reminders filtered and ordered by due date.
func (s *Service) List(ctx context.Context, filter repository.ReminderFilter) ([]models.Reminder, error) {
	return s.store.Reminders().List(ctx, filter)
}

// Update rewrites a reminder's fields. Completion state is managed by
// SetDone.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Reminder, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.Reminders().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = in.Title
	existing.Description = in.Description
	existing.Date = date
	if in.LeadDays != nil {
		existing.LeadDays = *in.LeadDays
	}
	existing.Category = in.Category
	existing.ColonyID = in.ColonyID
	existing.ApiaryID = in.ApiaryID
	existing.Recurrence = in.Recurrence

	if err := s.store.Reminders().Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.store.Reminders().Get(ctx, id)
}

// SetDone toggles completion. Completing a recurring reminder spawns the
// next occurrence in the same transaction; un-completing clears the
// completion timestamp.
func (s *Service) SetDone(ctx context.Context, id string, done bool) (*models.Reminder, error) {
	var result *models.Reminder
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		reminder, err := tx.Reminders().Get(ctx, id)
		if err != nil {
			return err
		}
		if reminder.Done == done {
			result = reminder
			return nil
		}

		reminder.Done = done
		if done {
			doneAt := s.now()
			reminder.DoneAt = &doneAt
		} else {
			reminder.DoneAt = nil
		}
		if err := tx.Reminders().Update(ctx, reminder); err != nil {
			return err
		}

		if done {
			if next := nextOccurrence(reminder); next != nil {
				if err := tx.Reminders().Create(ctx, next); err != nil {
					return err
				}
				s.logger.Info("recurring reminder rescheduled",
					zap.String("id", reminder.ID),
					zap.Time("next", next.Date))
			}
		}
		result = reminder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a reminder.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Reminders().Delete(ctx, id)
}

// nextOccurrence returns the follow-up reminder for a recurring one, or
// nil when the reminder does not recur.
func nextOccurrence(done *models.Reminder) *models.Reminder {
	if done.Recurrence == nil {
		return nil
	}

	var date time.Time
	switch *done.Recurrence {
	case models.RepetitionWeekly:
		date = done.Date.AddDate(0, 0, 7)
	case models.RepetitionMonthly:
		date = done.Date.AddDate(0, 1, 0)
	case models.RepetitionYearly:
		date = done.Date.AddDate(1, 0, 0)
	default:
		return nil
	}

	return &models.Reminder{
		Title:       done.Title,
		Description: done.Description,
		Date:        date,
		LeadDays:    done.LeadDays,
		Category:    done.Category,
		ColonyID:    done.ColonyID,
		ApiaryID:    done.ApiaryID,
		Recurrence:  done.Recurrence,
	}
}

// Due returns incomplete reminders whose notification window has opened,
// meaning today >= date - leadDays. The scheduler mails these as a digest.
func (s *Service) Due(ctx context.Context) ([]models.Reminder, error) {
	open := false
	all, err := s.store.Reminders().List(ctx, repository.ReminderFilter{Done: &open})
	if err != nil {
		return nil, err
	}

	today := s.now().Truncate(24 * time.Hour)
	due := make([]models.Reminder, 0, len(all))
	for _, r := range all {
		windowOpens := r.Date.AddDate(0, 0, -r.LeadDays)
		if !today.Before(windowOpens) {
			due = append(due, r)
		}
	}
	return due, nil
}
