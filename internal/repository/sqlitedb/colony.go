package sqlitedb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

type colonyRepo struct {
	db *gorm.DB
}

func (r *colonyRepo) Create(ctx context.Context, colony *models.Colony) error {
	if err := r.db.WithContext(ctx).Create(colony).Error; err != nil {
		return fmt.Errorf("create colony: %w", err)
	}
	return nil
}

func (r *colonyRepo) Get(ctx context.Context, id string) (*models.Colony, error) {
	var colony models.Colony
	err := r.db.WithContext(ctx).
		Preload("Apiary").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Preload("CreatedFrom").
		Preload("Splits").
		First(&colony, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &colony, nil
}

func (r *colonyRepo) List(ctx context.Context, filter repository.ColonyFilter) ([]models.Colony, error) {
	q := r.db.WithContext(ctx).Model(&models.Colony{}).Preload("Apiary")
	if filter.ApiaryID != "" {
		q = q.Where("apiary_id = ?", filter.ApiaryID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var colonies []models.Colony
	err := q.
		Joins("LEFT JOIN apiaries ON apiaries.id = colonies.apiary_id").
		Order("apiaries.name ASC, colonies.site_number ASC").
		Find(&colonies).Error
	if err != nil {
		return nil, fmt.Errorf("list colonies: %w", err)
	}

	for i := range colonies {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Event{}).
			Where("colony_id = ?", colonies[i].ID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count colony events: %w", err)
		}
		colonies[i].EventCount = int(count)
	}

	return colonies, nil
}

func (r *colonyRepo) Update(ctx context.Context, colony *models.Colony) error {
	res := r.db.WithContext(ctx).Model(&models.Colony{}).
		Where("id = ?", colony.ID).
		Select("ApiaryID", "Name", "SiteNumber", "QueenRace", "QueenYear",
			"QueenWingClipped", "HiveType", "BroodFrameType", "SuperFrameType",
			"Status", "Notes").
		Updates(colony)
	if res.Error != nil {
		return fmt.Errorf("update colony: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *colonyRepo) Delete(ctx context.Context, id string) error {
	// Events cascade; reminders and child colonies only lose the reference.
	if err := r.db.WithContext(ctx).Where("colony_id = ?", id).Delete(&models.Event{}).Error; err != nil {
		return fmt.Errorf("delete colony events: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("colony_id = ?", id).
		Update("colony_id", nil).Error; err != nil {
		return fmt.Errorf("detach colony reminders: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Colony{}).
		Where("created_from_id = ?", id).
		Update("created_from_id", nil).Error; err != nil {
		return fmt.Errorf("detach colony splits: %w", err)
	}

	res := r.db.WithContext(ctx).Delete(&models.Colony{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete colony: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *colonyRepo) CountByApiary(ctx context.Context, apiaryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Colony{}).
		Where("apiary_id = ?", apiaryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count colonies: %w", err)
	}
	return count, nil
}
