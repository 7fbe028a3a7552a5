package billing

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository/sqlitedb"
)

func newTestService(t *testing.T) (*Service, repository.Store) {
	t.Helper()

	store, err := sqlitedb.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store, nil, nil), store
}

func createCustomer(t *testing.T, svc *Service) *models.Customer {
	t.Helper()

	customer, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Anna Karlsson"})
	require.NoError(t, err)
	return customer
}

func TestCreateInvoiceAllocatesSequentialNumbers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc)

	in := CreateInvoiceInput{
		CustomerID:  customer.ID,
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
		Lines: []models.InvoiceLine{
			{Description: "Honung 500g", Quantity: 10, UnitPrice: 80, VATRate: 0.12},
		},
	}

	first, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "F0001", first.Number)
	require.Equal(t, models.InvoiceStatusDraft, first.Status)
	require.InDelta(t, 800.0, first.TotalExVAT, 1e-9)
	require.InDelta(t, 96.0, first.TotalVAT, 1e-9)
	require.InDelta(t, 896.0, first.TotalIncVAT, 1e-9)

	second, err := svc.CreateInvoice(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "F0002", second.Number)

	settings, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, settings.NextInvoiceNumber)
}

func TestCreateInvoiceRejectsMissingCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		CustomerID:  "nope",
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
		Lines:       []models.InvoiceLine{{Description: "Honung", Quantity: 1, UnitPrice: 80}},
	})
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		CustomerID:  "nope",
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPaidInvoicePostsLedgerOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc)

	invoice, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		CustomerID:  customer.ID,
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
		Lines:       []models.InvoiceLine{{Description: "Honung", Quantity: 5, UnitPrice: 100, VATRate: 0.12}},
	})
	require.NoError(t, err)

	paid, err := svc.UpdateInvoice(ctx, invoice.ID, UpdateInvoiceInput{Status: models.InvoiceStatusPaid})
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPaid, paid.Status)

	entries, err := store.Ledger().List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.LedgerKindSale, entries[0].Kind)
	require.Equal(t, "Faktura F0001", entries[0].Description)
	require.InDelta(t, 500.0, entries[0].AmountExVAT, 1e-9)
	require.InDelta(t, 60.0, entries[0].VATAmount, 1e-9)
	require.NotNil(t, entries[0].Counterparty)
	require.Equal(t, customer.Name, *entries[0].Counterparty)
	require.NotNil(t, entries[0].InvoiceID)
	require.Equal(t, invoice.ID, *entries[0].InvoiceID)

	// Marking it paid again must not duplicate the posting.
	_, err = svc.UpdateInvoice(ctx, invoice.ID, UpdateInvoiceInput{Status: models.InvoiceStatusPaid})
	require.NoError(t, err)

	entries, err = store.Ledger().List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDeleteInvoiceRemovesLedgerRows(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc)

	invoice, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		CustomerID:  customer.ID,
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
		Lines:       []models.InvoiceLine{{Description: "Honung", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(ctx, invoice.ID, UpdateInvoiceInput{Status: models.InvoiceStatusPaid})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(ctx, invoice.ID))

	entries, err := store.Ledger().List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = svc.GetInvoice(ctx, invoice.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordCashPaymentAllocatesReceiptNumbers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2026, time.June, 12, 10, 0, 0, 0, time.UTC) }

	jars := 6
	first, err := svc.RecordCashPayment(ctx, CashPaymentInput{
		Date:        "2026-06-12",
		Description: "Honungsförsäljning torget",
		BuyerName:   "Kontantkund",
		JarCount:    &jars,
		AmountExVAT: 300,
		WantReceipt: true,
	})
	require.NoError(t, err)
	require.True(t, first.Success)
	require.NotNil(t, first.ReceiptNumber)
	require.Equal(t, "KV26001", *first.ReceiptNumber)

	second, err := svc.RecordCashPayment(ctx, CashPaymentInput{
		Date:        "2026-06-13",
		Description: "Honungsförsäljning gårdsbutik",
		AmountExVAT: 150,
		WantReceipt: true,
	})
	require.NoError(t, err)
	require.Equal(t, "KV26002", *second.ReceiptNumber)

	entry, err := store.Ledger().Get(ctx, first.AccountingID)
	require.NoError(t, err)
	require.Equal(t, "KV26001 - Honungsförsäljning torget", entry.Description)
	require.InDelta(t, 36.0, entry.VATAmount, 1e-9)
	require.InDelta(t, 336.0, entry.AmountIncVAT, 1e-9)
	require.NotNil(t, entry.JarCount)
	require.Equal(t, 6, *entry.JarCount)
}

func TestRecordCashPaymentWithoutReceipt(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.RecordCashPayment(context.Background(), CashPaymentInput{
		Date:        "2026-06-12",
		Description: "Honungsförsäljning",
		AmountExVAT: 100,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Nil(t, result.ReceiptNumber)
}

func TestLedgerEntryDefaultsVATRate(t *testing.T) {
	svc, _ := newTestService(t)

	entry, err := svc.CreateEntry(context.Background(), LedgerEntryInput{
		Date:        "2026-02-01",
		Kind:        models.LedgerKindPurchase,
		Description: "Ramar och vax",
		AmountExVAT: 200,
	})
	require.NoError(t, err)
	require.Equal(t, models.DefaultVATRate, entry.VATRate)
	require.InDelta(t, 24.0, entry.VATAmount, 1e-9)
	require.InDelta(t, 224.0, entry.AmountIncVAT, 1e-9)
}

func TestDeleteCustomerGuardedByInvoices(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc)

	_, err := svc.CreateInvoice(ctx, CreateInvoiceInput{
		CustomerID:  customer.ID,
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
		Lines:       []models.InvoiceLine{{Description: "Honung", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	err = svc.DeleteCustomer(ctx, customer.ID)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSettingsGetOrCreateAndUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, models.SettingsID, settings.ID)
	require.Equal(t, 1, settings.NextInvoiceNumber)

	name := "Bigården AB"
	registered := true
	updated, err := svc.UpdateSettings(ctx, SettingsInput{
		CompanyName:   &name,
		VATRegistered: &registered,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompanyName)
	require.Equal(t, name, *updated.CompanyName)
	require.True(t, updated.VATRegistered)

	again, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, again.CompanyName)
	require.Equal(t, name, *again.CompanyName)
}
