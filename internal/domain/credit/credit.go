package credit

import (
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinInstallments = 1
	MaxInstallments = 48
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusSettled    Status = "SETTLED"
	StatusCancelled  Status = "CANCELLED"
)

type Credit struct {
	ID                   int64
	CreditCode           uuid.UUID
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               Status
	CustomerID           int64
	Customer             *customer.Customer
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewCredit builds a credit with a freshly generated credit code and the
// initial status. The customer reference carries only the id; the full record
// is resolved by the service before the credit is persisted.
func NewCredit(creditValue decimal.Decimal, dayFirstInstallment time.Time, numberOfInstallments int, customerID int64) (*Credit, error) {
	if !creditValue.IsPositive() {
		return nil, fmt.Errorf("%w: credit value must be positive", apperrors.ErrInvalidArgument)
	}
	if numberOfInstallments < MinInstallments || numberOfInstallments > MaxInstallments {
		return nil, fmt.Errorf("%w: number of installments must be between %d and %d", apperrors.ErrInvalidArgument, MinInstallments, MaxInstallments)
	}
	if !dayFirstInstallment.After(Today()) {
		return nil, fmt.Errorf("%w: day of first installment must be after the current date", apperrors.ErrInvalidArgument)
	}
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id is required", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	return &Credit{
		CreditCode:           uuid.New(),
		CreditValue:          creditValue,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: numberOfInstallments,
		Status:               StatusInProgress,
		CustomerID:           customerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// Today is the local calendar date at UTC midnight, the same
// representation a parsed plain date carries. Installment dates must
// compare against this, never against an instant, or the day boundary
// shifts with the host timezone.
func Today() time.Time {
	year, month, day := time.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
