package sqlitedb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

type eventRepo struct {
	db *gorm.DB
}

func (r *eventRepo) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *eventRepo) Get(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Colony").
		Preload("Colony.Apiary").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error) {
	q := r.db.WithContext(ctx).
		Preload("Colony").
		Preload("Colony.Apiary").
		Order("date DESC")
	if filter.ColonyID != "" {
		q = q.Where("colony_id = ?", filter.ColonyID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("date < ?", filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) Update(ctx context.Context, event *models.Event) error {
	res := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", event.ID).
		Select("Type", "Date", "Description", "Data").
		Updates(event)
	if res.Error != nil {
		return fmt.Errorf("update event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
