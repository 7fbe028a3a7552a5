package sqlitedb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

type apiaryRepo struct {
	db *gorm.DB
}

func (r *apiaryRepo) Create(ctx context.Context, apiary *models.Apiary) error {
	if err := r.db.WithContext(ctx).Create(apiary).Error; err != nil {
		return fmt.Errorf("create apiary: %w", err)
	}
	return nil
}

func (r *apiaryRepo) Get(ctx context.Context, id string) (*models.Apiary, error) {
	var apiary models.Apiary
	err := r.db.WithContext(ctx).
		Preload("Colonies", func(db *gorm.DB) *gorm.DB {
			return db.Order("site_number ASC")
		}).
		First(&apiary, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &apiary, nil
}

func (r *apiaryRepo) List(ctx context.Context) ([]models.Apiary, error) {
	var apiaries []models.Apiary
	err := r.db.WithContext(ctx).
		Preload("Colonies").
		Order("name ASC").
		Find(&apiaries).Error
	if err != nil {
		return nil, fmt.Errorf("list apiaries: %w", err)
	}
	return apiaries, nil
}

func (r *apiaryRepo) Update(ctx context.Context, apiary *models.Apiary) error {
	res := r.db.WithContext(ctx).Model(&models.Apiary{}).
		Where("id = ?", apiary.ID).
		Select("Name", "Address", "Latitude", "Longitude", "Description").
		Updates(apiary)
	if res.Error != nil {
		return fmt.Errorf("update apiary: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *apiaryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Apiary{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete apiary: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
