package sqlitedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// Store implements repository.Store on top of a GORM-managed SQLite file.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Apiary{},
		&models.Colony{},
		&models.Event{},
		&models.Customer{},
		&models.Invoice{},
		&models.LedgerEntry{},
		&models.Reminder{},
		&models.Settings{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a single database transaction. SQLite
// serializes writers, so sequence allocation and ledger posting inside fn
// cannot interleave with other writes.
func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Apiaries() repository.ApiaryRepository { return &apiaryRepo{db: s.db} }
func (s *Store) Colonies() repository.ColonyRepository { return &colonyRepo{db: s.db} }
func (s *Store) Events() repository.EventRepository { return &eventRepo{db: s.db} }
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{db: s.db} }
func (s *Store) Invoices() repository.InvoiceRepository { return &invoiceRepo{db: s.db} }
func (s *Store) Ledger() repository.LedgerRepository { return &ledgerRepo{db: s.db} }
func (s *Store) Reminders() repository.ReminderRepository { return &reminderRepo{db: s.db} }
func (s *Store) Settings() repository.SettingsRepository { return &settingsRepo{db: s.db} }

// translate maps GORM sentinel errors onto the repository's.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
