package sqlitedb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenMigratesSchema(t *testing.T) {
	store := newTestStore(t)

	for _, table := range []string{
		"apiaries", "colonies", "events", "customers",
		"invoices", "ledger_entries", "reminders", "settings",
	} {
		require.True(t, store.db.Migrator().HasTable(table), "table %s not found", table)
	}
}

func TestSettingsGetOrCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	settings, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, models.SettingsID, settings.ID)
	require.Equal(t, 1, settings.NextInvoiceNumber)

	settings.NextInvoiceNumber = 7
	require.NoError(t, store.Settings().Save(ctx, settings))

	again, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, again.NextInvoiceNumber)
}

func TestNotFoundTranslation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Apiaries().Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = store.Colonies().Delete(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Apiaries().Create(ctx, &models.Apiary{Name: "Hemma"}); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	apiaries, err := store.Apiaries().List(ctx)
	require.NoError(t, err)
	require.Empty(t, apiaries)
}

func TestMaxReceiptNumber(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	last, err := store.Ledger().MaxReceiptNumber(ctx, "KV26")
	require.NoError(t, err)
	require.Empty(t, last)

	for _, number := range []string{"KV26001", "KV26003", "KV26002", "KV25009"} {
		n := number
		require.NoError(t, store.Ledger().Create(ctx, &models.LedgerEntry{
			Date:          time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			Kind:          models.LedgerKindSale,
			Description:   "Kontantförsäljning",
			ReceiptNumber: &n,
		}))
	}

	last, err = store.Ledger().MaxReceiptNumber(ctx, "KV26")
	require.NoError(t, err)
	require.Equal(t, "KV26003", last)

	last, err = store.Ledger().MaxReceiptNumber(ctx, "KV25")
	require.NoError(t, err)
	require.Equal(t, "KV25009", last)
}

func TestCustomerSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	city := "Uppsala"
	email := "erik@example.com"
	require.NoError(t, store.Customers().Create(ctx, &models.Customer{Name: "Anna Karlsson", City: &city}))
	require.NoError(t, store.Customers().Create(ctx, &models.Customer{Name: "Erik Berg", Email: &email}))

	all, err := store.Customers().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Anna Karlsson", all[0].Name)

	matched, err := store.Customers().List(ctx, "uppsala")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Anna Karlsson", matched[0].Name)

	matched, err = store.Customers().List(ctx, "erik@")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Erik Berg", matched[0].Name)
}

func TestEventFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	apiary := &models.Apiary{Name: "Hemma"}
	require.NoError(t, store.Apiaries().Create(ctx, apiary))
	colony := &models.Colony{ApiaryID: apiary.ID, Name: "Samhälle 1"}
	require.NoError(t, store.Colonies().Create(ctx, colony))

	dates := []time.Time{
		time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		require.NoError(t, store.Events().Create(ctx, &models.Event{
			ColonyID: colony.ID,
			Type:     models.EventTypeInspection,
			Date:     date,
		}))
	}

	newest, err := store.Events().List(ctx, repository.EventFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, newest, 1)
	require.True(t, newest[0].Date.Equal(dates[2]))

	windowed, err := store.Events().List(ctx, repository.EventFilter{
		From: dates[1],
		To:   dates[2],
	})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	require.True(t, windowed[0].Date.Equal(dates[1]))
}
