package billing

import (
	"context"
	"fmt"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// CustomerInput carries the wire payload for customer create/update.
type CustomerInput struct {
	Name       string  `json:"namn"`
	Address    *string `json:"adress"`
	PostalCode *string `json:"postnummer"`
	City       *string `json:"ort"`
	Email      *string `json:"epost"`
	Phone      *string `json:"telefon"`
	OrgNumber  *string `json:"organisationsnummer"`
}

func (in CustomerInput) toModel() (*models.Customer, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: namn is required", ErrInvalidInput)
	}
	return &models.Customer{
		Name:       in.Name,
		Address:    in.Address,
		PostalCode: in.PostalCode,
		City:       in.City,
		Email:      in.Email,
		Phone:      in.Phone,
		OrgNumber:  in.OrgNumber,
	}, nil
}

// CreateCustomer stores a new customer.
func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	customer, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns one customer with their invoices.
func (s *Service) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.Customers().Get(ctx, id)
}

// ListCustomers returns customers ordered by name, optionally matching a
// free-text search over name, email, phone and city.
func (s *Service) ListCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	return s.store.Customers().List(ctx, search)
}

// UpdateCustomer rewrites a customer's fields.
func (s *Service) UpdateCustomer(ctx context.Context, id string, in CustomerInput) (*models.Customer, error) {
	customer, err := in.toModel()
	if err != nil {
		return nil, err
	}
	customer.ID = id
	if err := s.store.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.store.Customers().Get(ctx, id)
}

// DeleteCustomer removes a customer. Rejected while any invoice
// references them.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	count, err := s.store.Customers().CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: customer has invoices", ErrInvalidInput)
	}
	return s.store.Customers().Delete(ctx, id)
}

// GetSettings returns the settings singleton, creating defaults on first
// read.
func (s *Service) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.store.Settings().Get(ctx)
}

// SettingsInput carries the wire payload for settings updates. The invoice
// counter is managed by invoice creation and cannot be set here.
type SettingsInput struct {
	CompanyName   *string `json:"foretagsnamn"`
	OrgNumber     *string `json:"organisationsnummer"`
	Address       *string `json:"adress"`
	PostalCode    *string `json:"postnummer"`
	City          *string `json:"ort"`
	Phone         *string `json:"telefon"`
	Email         *string `json:"epost"`
	Bankgiro      *string `json:"bankgiro"`
	Swish         *string `json:"swish"`
	VATRegistered *bool   `json:"momsRegistrerad"`
}

// UpdateSettings applies a partial update to the settings singleton.
func (s *Service) UpdateSettings(ctx context.Context, in SettingsInput) (*models.Settings, error) {
	var updated *models.Settings
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		settings, err := tx.Settings().Get(ctx)
		if err != nil {
			return err
		}
		if in.CompanyName != nil {
			settings.CompanyName = in.CompanyName
		}
		if in.OrgNumber != nil {
			settings.OrgNumber = in.OrgNumber
		}
		if in.Address != nil {
			settings.Address = in.Address
		}
		if in.PostalCode != nil {
			settings.PostalCode = in.PostalCode
		}
		if in.City != nil {
			settings.City = in.City
		}
		if in.Phone != nil {
			settings.Phone = in.Phone
		}
		if in.Email != nil {
			settings.Email = in.Email
		}
		if in.Bankgiro != nil {
			settings.Bankgiro = in.Bankgiro
		}
		if in.Swish != nil {
			settings.Swish = in.Swish
		}
		if in.VATRegistered != nil {
			settings.VATRegistered = *in.VATRegistered
		}
		if err := tx.Settings().Save(ctx, settings); err != nil {
			return err
		}
		updated = settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
