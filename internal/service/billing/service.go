package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// ErrInvalidInput indicates the request payload failed validation.
var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

// LedgerSink receives a copy of every ledger entry written, for external
// bookkeeping mirrors. Append failures are logged, never surfaced.
type LedgerSink interface {
	AppendEntry(ctx context.Context, entry models.LedgerEntry) error
}

// Service owns invoicing, cash receipts and the kassabok: VAT computation,
// sequential number allocation and ledger posting, each inside a single
// store transaction.
type Service struct {
	store  repository.Store
	sink   LedgerSink
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a billing service. sink may be nil.
func NewService(store repository.Store, sink LedgerSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, sink: sink, logger: logger, now: time.Now}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, value)
	}
	return t, nil
}

// CreateInvoiceInput carries the wire payload for invoice creation.
type CreateInvoiceInput struct {
	CustomerID  string               `json:"kundId"`
	InvoiceDate string               `json:"fakturaDatum"`
	DueDate     string               `json:"forfallDatum"`
	Lines       []models.InvoiceLine `json:"rader"`
	Status      string               `json:"status"`
}

// CreateInvoice computes totals, allocates the next F-number from the
// settings counter and persists the invoice, all in one transaction.
func (s *Service) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: kundId is required", ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one invoice line is required", ErrInvalidInput)
	}
	invoiceDate, err := parseDate(in.InvoiceDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	if !models.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	lines := make([]models.InvoiceLine, len(in.Lines))
	copy(lines, in.Lines)
	exVAT, vat := ComputeLineTotals(lines)

	invoice := &models.Invoice{
		CustomerID:  in.CustomerID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Lines:       lines,
		TotalExVAT:  exVAT,
		TotalVAT:    vat,
		TotalIncVAT: exVAT + vat,
		Status:      status,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Customers().Get(ctx, in.CustomerID); err != nil {
			return err
		}

		settings, err := tx.Settings().Get(ctx)
		if err != nil {
			return err
		}
		invoice.Number = fmt.Sprintf("F%04d", settings.NextInvoiceNumber)
		settings.NextInvoiceNumber++
		if err := tx.Settings().Save(ctx, settings); err != nil {
			return err
		}

		return tx.Invoices().Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("number", invoice.Number))

	return s.store.Invoices().Get(ctx, invoice.ID)
}

// GetInvoice returns a single invoice with its customer and ledger rows.
func (s *Service) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return s.store.Invoices().Get(ctx, id)
}

// ListInvoices returns invoices filtered by status and customer.
func (s *Service) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]models.Invoice, error) {
	if filter.Status != "" && !models.ValidInvoiceStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.store.Invoices().List(ctx, filter)
}

// UpdateInvoiceInput carries the wire payload for invoice updates. Nil
// fields keep their stored values.
type UpdateInvoiceInput struct {
	InvoiceDate string                `json:"fakturaDatum"`
	DueDate     string                `json:"forfallDatum"`
	Lines       *[]models.InvoiceLine `json:"rader"`
	Status      string                `json:"status"`
}

// UpdateInvoice applies the changes and, when the status lands on Betald,
// posts the kassabok entry. Status update and ledger posting share one
// transaction so a paid invoice can never commit without its ledger trace;
// the posting is idempotent per invoice.
func (s *Service) UpdateInvoice(ctx context.Context, id string, in UpdateInvoiceInput) (*models.Invoice, error) {
	if in.Status != "" && !models.ValidInvoiceStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}

	var posted *models.LedgerEntry
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		invoice, err := tx.Invoices().Get(ctx, id)
		if err != nil {
			return err
		}

		if in.InvoiceDate != "" {
			if invoice.InvoiceDate, err = parseDate(in.InvoiceDate); err != nil {
				return err
			}
		}
		if in.DueDate != "" {
			if invoice.DueDate, err = parseDate(in.DueDate); err != nil {
				return err
			}
		}
		if in.Lines != nil {
			lines := make([]models.InvoiceLine, len(*in.Lines))
			copy(lines, *in.Lines)
			exVAT, vat := ComputeLineTotals(lines)
			invoice.Lines = lines
			invoice.TotalExVAT = exVAT
			invoice.TotalVAT = vat
			invoice.TotalIncVAT = exVAT + vat
		}
		if in.Status != "" {
			invoice.Status = in.Status
		}

		if err := tx.Invoices().Update(ctx, invoice); err != nil {
			return err
		}

		if invoice.Status != models.InvoiceStatusPaid {
			return nil
		}
		exists, err := tx.Ledger().ExistsForInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		var counterparty *string
		if invoice.Customer != nil {
			name := invoice.Customer.Name
			counterparty = &name
		}
		entry := &models.LedgerEntry{
			Date:          s.now(),
			Kind:          models.LedgerKindSale,
			Description:   fmt.Sprintf("Faktura %s", invoice.Number),
			AmountExVAT:   invoice.TotalExVAT,
			VATRate:       models.DefaultVATRate,
			VATAmount:     invoice.TotalVAT,
			AmountIncVAT:  invoice.TotalIncVAT,
			Counterparty:  counterparty,
			InvoiceNumber: &invoice.Number,
			InvoiceID:     &invoice.ID,
		}
		if err := tx.Ledger().Create(ctx, entry); err != nil {
			return err
		}
		posted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	if posted != nil {
		s.logger.Info("ledger entry posted for paid invoice",
			zap.String("invoice_id", id),
			zap.String("entry_id", posted.ID))
		s.mirror(ctx, *posted)
	}

	return s.store.Invoices().Get(ctx, id)
}

// DeleteInvoice removes the invoice and any kassabok rows referencing it.
func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Ledger().DeleteByInvoice(ctx, id); err != nil {
			return err
		}
		return tx.Invoices().Delete(ctx, id)
	})
}

// CashPaymentInput carries the wire payload for a direct cash sale.
type CashPaymentInput struct {
	Date        string  `json:"datum"`
	Description string  `json:"beskrivning"`
	BuyerName   string  `json:"koparensNamn"`
	JarCount    *int    `json:"antalBurkar"`
	AmountExVAT float64 `json:"beloppExMoms"`
	VATRate     float64 `json:"momsSats"`
	WantReceipt bool    `json:"kvittoOnskas"`
}

// CashPaymentResult echoes the allocated receipt number and ledger row id.
type CashPaymentResult struct {
	Success       bool    `json:"success"`
	ReceiptNumber *string `json:"kvittoNummer"`
	AccountingID  string  `json:"accountingId"`
}

// RecordCashPayment posts a kassabok sale entry, allocating the next
// per-year receipt number (KV<yy><nnn>) when a receipt is requested. The
// number scan and insert run in one transaction so back-to-back sales get
// unique, strictly increasing numbers.
func (s *Service) RecordCashPayment(ctx context.Context, in CashPaymentInput) (*CashPaymentResult, error) {
	if in.Description == "" {
		return nil, fmt.Errorf("%w: beskrivning is required", ErrInvalidInput)
	}
	if in.AmountExVAT < 0 {
		return nil, fmt.Errorf("%w: beloppExMoms must not be negative", ErrInvalidInput)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	rate := in.VATRate
	if rate == 0 {
		rate = models.DefaultVATRate
	}
	vat, inclusive := Breakdown(in.AmountExVAT, rate)

	entry := &models.LedgerEntry{
		Date:         date,
		Kind:         models.LedgerKindSale,
		Description:  in.Description,
		AmountExVAT:  in.AmountExVAT,
		VATRate:      rate,
		VATAmount:    vat,
		AmountIncVAT: inclusive,
		JarCount:     in.JarCount,
	}
	if in.BuyerName != "" {
		entry.Counterparty = &in.BuyerName
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if in.WantReceipt {
			number, err := s.nextReceiptNumber(ctx, tx)
			if err != nil {
				return err
			}
			entry.ReceiptNumber = &number
			entry.Description = fmt.Sprintf("%s - %s", number, in.Description)
		}
		return tx.Ledger().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cash payment recorded",
		zap.String("entry_id", entry.ID),
		zap.Float64("amount_inc_vat", entry.AmountIncVAT))
	s.mirror(ctx, *entry)

	return &CashPaymentResult{
		Success:       true,
		ReceiptNumber: entry.ReceiptNumber,
		AccountingID:  entry.ID,
	}, nil
}

// nextReceiptNumber allocates KV<yy><nnn>, restarting at 001 each year.
func (s *Service) nextReceiptNumber(ctx context.Context, tx repository.Store) (string, error) {
	prefix := fmt.Sprintf("KV%02d", s.now().Year()%100)
	last, err := tx.Ledger().MaxReceiptNumber(ctx, prefix)
	if err != nil {
		return "", err
	}
	next := 1
	if last != "" {
		n, err := strconv.Atoi(last[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("malformed receipt number %q: %w", last, err)
		}
		next = n + 1
	}
	return fmt.Sprintf("%s%03d", prefix, next), nil
}

// LedgerEntryInput carries the wire payload for kassabok CRUD. VATRate nil
// means the default rate.
type LedgerEntryInput struct {
	Date          string   `json:"datum"`
	Kind          string   `json:"handelseTyp"`
	Description   string   `json:"beskrivning"`
	AmountExVAT   float64  `json:"beloppExMoms"`
	VATRate       *float64 `json:"momsSats"`
	Counterparty  *string  `json:"mottagare"`
	JarCount      *int     `json:"antalBurkar"`
	UnitPrice     *float64 `json:"prisPerEnhet"`
	InvoiceNumber *string  `json:"fakturaNummer"`
	Note          *string  `json:"notering"`
}

func (in LedgerEntryInput) toEntry() (*models.LedgerEntry, error) {
	if !models.ValidLedgerKind(in.Kind) {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, in.Kind)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: beskrivning is required", ErrInvalidInput)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	rate := models.DefaultVATRate
	if in.VATRate != nil {
		rate = *in.VATRate
	}
	vat, inclusive := Breakdown(in.AmountExVAT, rate)

	return &models.LedgerEntry{
		Date:          date,
		Kind:          in.Kind,
		Description:   in.Description,
		AmountExVAT:   in.AmountExVAT,
		VATRate:       rate,
		VATAmount:     vat,
		AmountIncVAT:  inclusive,
		Counterparty:  in.Counterparty,
		JarCount:      in.JarCount,
		UnitPrice:     in.UnitPrice,
		InvoiceNumber: in.InvoiceNumber,
		Note:          in.Note,
	}, nil
}

// CreateEntry records a kassabok entry with server-side VAT computation.
func (s *Service) CreateEntry(ctx context.Context, in LedgerEntryInput) (*models.LedgerEntry, error) {
	entry, err := in.toEntry()
	if err != nil {
		return nil, err
	}
	if err := s.store.Ledger().Create(ctx, entry); err != nil {
		return nil, err
	}
	s.mirror(ctx, *entry)
	return entry, nil
}

// GetEntry returns a single kassabok entry.
func (s *Service) GetEntry(ctx context.Context, id string) (*models.LedgerEntry, error) {
	return s.store.Ledger().Get(ctx, id)
}

// ListEntries returns kassabok entries filtered by year and kind.
func (s *Service) ListEntries(ctx context.Context, filter repository.LedgerFilter) ([]models.LedgerEntry, error) {
	if filter.Kind != "" && !models.ValidLedgerKind(filter.Kind) {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, filter.Kind)
	}
	return s.store.Ledger().List(ctx, filter)
}

// UpdateEntry rewrites a kassabok entry, recomputing the VAT breakdown.
func (s *Service) UpdateEntry(ctx context.Context, id string, in LedgerEntryInput) (*models.LedgerEntry, error) {
	entry, err := in.toEntry()
	if err != nil {
		return nil, err
	}
	entry.ID = id
	if err := s.store.Ledger().Update(ctx, entry); err != nil {
		return nil, err
	}
	return s.store.Ledger().Get(ctx, id)
}

// DeleteEntry removes a kassabok entry.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.store.Ledger().Delete(ctx, id)
}

func (s *Service) mirror(ctx context.Context, entry models.LedgerEntry) {
	if s.sink == nil {
		return
	}
	if err := s.sink.AppendEntry(ctx, entry); err != nil {
		s.logger.Warn("ledger mirror append failed",
			zap.String("entry_id", entry.ID), zap.Error(err))
	}
}
