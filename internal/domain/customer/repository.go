package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateCPF = errors.New("cpf already registered to another customer")

	ErrDuplicateEmail = errors.New("email already registered to another customer")

	ErrHasCredits = errors.New("customer has associated credits and cannot be deleted")
)

type CustomerRepository interface {
	// Save inserts the customer when ID is zero and updates it otherwise.
	// Uniqueness of cpf and email is enforced by the storage layer; a
	// violation surfaces as ErrDuplicateCPF or ErrDuplicateEmail.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// Delete removes the customer. Deletion is blocked by the storage layer
	// while credits reference the customer; that surfaces as ErrHasCredits.
	Delete(ctx context.Context, customerID int64) error
}
