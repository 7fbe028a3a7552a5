package repository

import (
	"context"
	"time"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

// Store bundles the per-aggregate repositories behind a single transactional
// boundary. Transaction runs fn against a store bound to one database
// transaction; the multi-step writes (sequence allocation, ledger posting,
// split colony creation) depend on it.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	Apiaries() ApiaryRepository
	Colonies() ColonyRepository
	Events() EventRepository
	Customers() CustomerRepository
	Invoices() InvoiceRepository
	Ledger() LedgerRepository
	Reminders() ReminderRepository
	Settings() SettingsRepository
}

// ApiaryRepository manages apiary persistence.
type ApiaryRepository interface {
	Create(ctx context.Context, apiary *models.Apiary) error
	Get(ctx context.Context, id string) (*models.Apiary, error)
	List(ctx context.Context) ([]models.Apiary, error)
	Update(ctx context.Context, apiary *models.Apiary) error
	Delete(ctx context.Context, id string) error
}

// ColonyFilter narrows colony listings.
type ColonyFilter struct {
	ApiaryID string
	Status   string
}

// ColonyRepository manages colony persistence.
type ColonyRepository interface {
	Create(ctx context.Context, colony *models.Colony) error
	Get(ctx context.Context, id string) (*models.Colony, error)
	List(ctx context.Context, filter ColonyFilter) ([]models.Colony, error)
	Update(ctx context.Context, colony *models.Colony) error
	// Delete removes the colony together with its events and detaches any
	// reminders pointing at it.
	Delete(ctx context.Context, id string) error
	CountByApiary(ctx context.Context, apiaryID string) (int64, error)
}

// EventFilter narrows event listings.
type EventFilter struct {
	ColonyID string
	Type     string
	From     time.Time
	To       time.Time
	Limit    int
}

// EventRepository manages event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// CustomerRepository manages customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Get(ctx context.Context, id string) (*models.Customer, error)
	// List returns customers ordered by name, optionally filtered by a
	// free-text search over name, email, phone and city.
	List(ctx context.Context, search string) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
	CountInvoices(ctx context.Context, customerID string) (int64, error)
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status     string
	CustomerID string
}

// InvoiceRepository manages invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Get(ctx context.Context, id string) (*models.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
}

// LedgerFilter narrows ledger listings.
type LedgerFilter struct {
	Year int
	Kind string
}

// LedgerRepository manages kassabok persistence.
type LedgerRepository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
	Get(ctx context.Context, id string) (*models.LedgerEntry, error)
	List(ctx context.Context, filter LedgerFilter) ([]models.LedgerEntry, error)
	Update(ctx context.Context, entry *models.LedgerEntry) error
	Delete(ctx context.Context, id string) error
	ExistsForInvoice(ctx context.Context, invoiceID string) (bool, error)
	DeleteByInvoice(ctx context.Context, invoiceID string) error
	// MaxReceiptNumber returns the highest receipt number starting with
	// prefix, or "" when none exists.
	MaxReceiptNumber(ctx context.Context, prefix string) (string, error)
}

// ReminderFilter narrows reminder listings.
type ReminderFilter struct {
	ColonyID string
	ApiaryID string
	Done     *bool
	// Upcoming limits results to incomplete reminders due within the
	// window [today, today+UpcomingDays].
	Upcoming     bool
	UpcomingDays int
}

// ReminderRepository manages reminder persistence.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	Get(ctx context.Context, id string) (*models.Reminder, error)
	List(ctx context.Context, filter ReminderFilter) ([]models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository manages the singleton settings row.
type SettingsRepository interface {
	// Get returns the settings row, creating it with defaults when absent.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}
