package dto

import (
	"net/mail"
	"strconv"
	"strings"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/paemuri/brdoc"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	CPF       string           `json:"cpf"`
	Income    *decimal.Decimal `json:"income"`
	Email     string           `json:"email"`
	Password  string           `json:"password"`
	ZipCode   string           `json:"zipCode"`
	Street    string           `json:"street"`
}

func (r *CreateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return apperrors.NewValidationError("firstName", "first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return apperrors.NewValidationError("lastName", "last name is required")
	}
	if strings.TrimSpace(r.CPF) == "" {
		return apperrors.NewValidationError("cpf", "cpf is required")
	}
	if !brdoc.IsCPF(r.CPF) {
		return apperrors.NewValidationError("cpf", "invalid cpf")
	}
	if r.Income == nil {
		return apperrors.NewValidationError("income", "income is required")
	}
	if r.Income.IsNegative() {
		return apperrors.NewValidationError("income", "income cannot be negative")
	}
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return apperrors.NewValidationError("email", "invalid email")
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		return apperrors.NewValidationError("zipCode", "zip code is required")
	}
	if strings.TrimSpace(r.Street) == "" {
		return apperrors.NewValidationError("street", "street is required")
	}
	return nil
}

// ToCustomer builds a customer entity with an unset id; storage assigns it.
func (r *CreateCustomerRequest) ToCustomer() *customer.Customer {
	return customer.NewCustomer(
		r.FirstName,
		r.LastName,
		r.CPF,
		r.Email,
		r.Password,
		*r.Income,
		customer.Address{ZipCode: r.ZipCode, Street: r.Street},
	)
}

type UpdateCustomerRequest struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Income    *decimal.Decimal `json:"income"`
	ZipCode   string           `json:"zipCode"`
	Street    string           `json:"street"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return apperrors.NewValidationError("firstName", "first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return apperrors.NewValidationError("lastName", "last name is required")
	}
	if r.Income == nil {
		return apperrors.NewValidationError("income", "income is required")
	}
	if r.Income.IsNegative() {
		return apperrors.NewValidationError("income", "income cannot be negative")
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		return apperrors.NewValidationError("zipCode", "zip code is required")
	}
	if strings.TrimSpace(r.Street) == "" {
		return apperrors.NewValidationError("street", "street is required")
	}
	return nil
}

func (r *UpdateCustomerRequest) ToUpdateFields() customer.UpdateFields {
	return customer.UpdateFields{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Income:    *r.Income,
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
}

// CustomerResponse never carries the password.
type CustomerResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Income    decimal.Decimal `json:"income"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		ID:        strconv.FormatInt(cust.ID, 10),
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Email:     cust.Email,
		Income:    cust.Income,
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
	}
}
