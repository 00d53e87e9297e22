package credit

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("credit not found")

	ErrDuplicateCreditCode = errors.New("credit code already exists")
)

type Repository interface {
	// Save inserts the credit. Credits are never updated or deleted through
	// this surface.
	Save(ctx context.Context, credit *Credit) error

	// FindAllByCustomerID returns every credit referencing the customer, with
	// the customer record joined in. An empty slice is not an error.
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)

	// FindByCustomerIDAndCreditCode matches both predicates in a single
	// query. A credit code that exists under a different customer is
	// ErrNotFound, never another customer's record.
	FindByCustomerIDAndCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)
}
