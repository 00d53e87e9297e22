package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is embedded in Customer and has no identity of its own.
type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

type Customer struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Income    decimal.Decimal `json:"income"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Address   Address         `json:"address"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCustomer(firstName, lastName, cpf, email, password string, income decimal.Decimal, address Address) *Customer {
	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Password:  password,
		Income:    income,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateFields carries the only attributes a partial update may change.
// CPF, email and password are immutable after creation.
type UpdateFields struct {
	FirstName string
	LastName  string
	Income    decimal.Decimal
	ZipCode   string
	Street    string
}

// MergeUpdate returns a new Customer with the update fields merged over the
// receiver. The receiver is never mutated; ID, CPF, Email, Password and
// CreatedAt carry over unchanged.
func (c *Customer) MergeUpdate(fields UpdateFields) *Customer {
	updated := *c
	updated.FirstName = fields.FirstName
	updated.LastName = fields.LastName
	updated.Income = fields.Income
	updated.Address = Address{
		ZipCode: fields.ZipCode,
		Street:  fields.Street,
	}
	updated.UpdatedAt = time.Now()
	return &updated
}
