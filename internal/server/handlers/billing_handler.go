package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/billing"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/export"
)

// BillingHandler serves the customer, invoice, kassabok and settings
// endpoints.
type BillingHandler struct {
	svc    *billing.Service
	logger *zap.Logger
}

// NewBillingHandler constructs the HTTP handler adapter.
func NewBillingHandler(svc *billing.Service, logger *zap.Logger) *BillingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingHandler{svc: svc, logger: logger}
}

// ListCustomers returns customers, optionally matching ?search=.
func (h *BillingHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// CreateCustomer stores a new customer.
func (h *BillingHandler) CreateCustomer(c *gin.Context) {
	var in billing.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	customer, err := h.svc.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomer returns one customer with their invoices.
func (h *BillingHandler) GetCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer rewrites a customer.
func (h *BillingHandler) UpdateCustomer(c *gin.Context) {
	var in billing.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	customer, err := h.svc.UpdateCustomer(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer unless they have invoices.
func (h *BillingHandler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListInvoices returns invoices filtered by status and customer.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	filter := repository.InvoiceFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customerId"),
	}
	invoices, err := h.svc.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// CreateInvoice allocates the next invoice number and stores the invoice.
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var in billing.CreateInvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	invoice, err := h.svc.CreateInvoice(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoice returns one invoice with customer and ledger rows.
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.svc.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice rewrites an invoice; marking it Betald posts to the
// ledger.
func (h *BillingHandler) UpdateInvoice(c *gin.Context) {
	var in billing.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	invoice, err := h.svc.UpdateInvoice(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice removes an invoice together with its ledger rows.
func (h *BillingHandler) DeleteInvoice(c *gin.Context) {
	if err := h.svc.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RecordCashPayment stores a cash sale as a ledger row, optionally with a
// receipt number.
func (h *BillingHandler) RecordCashPayment(c *gin.Context) {
	var in billing.CashPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	result, err := h.svc.RecordCashPayment(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func yearQuery(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("year must be an integer")
	}
	return year, nil
}

// ListEntries returns ledger rows filtered by year and type.
func (h *BillingHandler) ListEntries(c *gin.Context) {
	year, err := yearQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter := repository.LedgerFilter{
		Year: year,
		Kind: c.Query("type"),
	}
	entries, err := h.svc.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateEntry stores a ledger row, computing its VAT amounts.
func (h *BillingHandler) CreateEntry(c *gin.Context) {
	var in billing.LedgerEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	entry, err := h.svc.CreateEntry(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetEntry returns one ledger row.
func (h *BillingHandler) GetEntry(c *gin.Context) {
	entry, err := h.svc.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateEntry rewrites a ledger row.
func (h *BillingHandler) UpdateEntry(c *gin.Context) {
	var in billing.LedgerEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	entry, err := h.svc.UpdateEntry(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes a ledger row.
func (h *BillingHandler) DeleteEntry(c *gin.Context) {
	if err := h.svc.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportLedger streams the year's kassabok as an xlsx workbook.
func (h *BillingHandler) ExportLedger(c *gin.Context) {
	year, err := yearQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if year == 0 {
		year = time.Now().Year()
	}

	entries, err := h.svc.ListEntries(c.Request.Context(), repository.LedgerFilter{Year: year})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	workbook, err := export.Workbook(entries, year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("kassabok-%d.xlsx", year)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// GetSettings returns the settings singleton.
func (h *BillingHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial settings update.
func (h *BillingHandler) UpdateSettings(c *gin.Context) {
	var in billing.SettingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	settings, err := h.svc.UpdateSettings(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
