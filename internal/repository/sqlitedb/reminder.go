package sqlitedb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

type reminderRepo struct {
	db *gorm.DB
}

func (r *reminderRepo) Create(ctx context.Context, reminder *models.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *reminderRepo) Get(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.WithContext(ctx).
		Preload("Colony").
		Preload("Colony.Apiary").
		Preload("Apiary").
		First(&reminder, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

func (r *reminderRepo) List(ctx context.Context, filter repository.ReminderFilter) ([]models.Reminder, error) {
	q := r.db.WithContext(ctx).
		Preload("Colony").
		Preload("Colony.Apiary").
		Preload("Apiary").
		Order("date ASC")
	if filter.ColonyID != "" {
		q = q.Where("colony_id = ?", filter.ColonyID)
	}
	if filter.ApiaryID != "" {
		q = q.Where("apiary_id = ?", filter.ApiaryID)
	}
	if filter.Done != nil {
		q = q.Where("done = ?", *filter.Done)
	}
	if filter.Upcoming {
		days := filter.UpcomingDays
		if days <= 0 {
			days = 30
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		q = q.Where("done = ? AND date >= ? AND date <= ?",
			false, today, today.AddDate(0, 0, days))
	}

	var reminders []models.Reminder
	if err := q.Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (r *reminderRepo) Update(ctx context.Context, reminder *models.Reminder) error {
	res := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ?", reminder.ID).
		Select("Title", "Description", "Date", "LeadDays", "Category",
			"ColonyID", "ApiaryID", "Done", "DoneAt", "Recurrence").
		Updates(reminder)
	if res.Error != nil {
		return fmt.Errorf("update reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Reminder{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
