package sqlitedb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

type invoiceRepo struct {
	db *gorm.DB
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepo) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("LedgerEntries").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).Preload("Customer").Order("invoice_date DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	res := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", invoice.ID).
		Select("InvoiceDate", "DueDate", "Lines", "TotalExVAT", "TotalVAT",
			"TotalIncVAT", "Status").
		Updates(invoice)
	if res.Error != nil {
		return fmt.Errorf("update invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
