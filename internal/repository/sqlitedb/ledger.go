package sqlitedb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

type ledgerRepo struct {
	db *gorm.DB
}

func (r *ledgerRepo) Create(ctx context.Context, entry *models.LedgerEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepo) Get(ctx context.Context, id string) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.WithContext(ctx).
		Preload("Invoice").
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *ledgerRepo) List(ctx context.Context, filter repository.LedgerFilter) ([]models.LedgerEntry, error) {
	q := r.db.WithContext(ctx).Preload("Invoice").Order("date DESC")
	if filter.Year > 0 {
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}

	var entries []models.LedgerEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepo) Update(ctx context.Context, entry *models.LedgerEntry) error {
	res := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("id = ?", entry.ID).
		Select("Date", "Kind", "Description", "AmountExVAT", "VATRate",
			"VATAmount", "AmountIncVAT", "Counterparty", "JarCount",
			"UnitPrice", "InvoiceNumber", "Note").
		Updates(entry)
	if res.Error != nil {
		return fmt.Errorf("update ledger entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *ledgerRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.LedgerEntry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete ledger entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *ledgerRepo) ExistsForInvoice(ctx context.Context, invoiceID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check ledger entry for invoice: %w", err)
	}
	return count > 0, nil
}

func (r *ledgerRepo) DeleteByInvoice(ctx context.Context, invoiceID string) error {
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&models.LedgerEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete ledger entries for invoice: %w", err)
	}
	return nil
}

func (r *ledgerRepo) MaxReceiptNumber(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("receipt_number LIKE ?", prefix+"%").
		Order("receipt_number DESC").
		Limit(1).
		Pluck("receipt_number", &numbers).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("find max receipt number: %w", err)
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}
