package sqlitedb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

type customerRepo struct {
	db *gorm.DB
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *customerRepo) Get(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_date DESC")
		}).
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context, search string) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Preload("Invoices").Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"name LIKE ? OR email LIKE ? OR phone LIKE ? OR city LIKE ?",
			like, like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Select("Name", "Address", "PostalCode", "City", "Email", "Phone", "OrgNumber").
		Updates(customer)
	if res.Error != nil {
		return fmt.Errorf("update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *customerRepo) CountInvoices(ctx context.Context, customerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count customer invoices: %w", err)
	}
	return count, nil
}
