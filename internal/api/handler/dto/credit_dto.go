package dto

import (
	"time"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const installmentDateLayout = "2006-01-02"

type CreateCreditRequest struct {
	CreditValue          *decimal.Decimal `json:"creditValue"`
	DayFirstInstallment  string           `json:"dayFirstInstallment"`
	NumberOfInstallments int              `json:"numberOfInstallments"`
	CustomerID           int64            `json:"customerId"`
}

func (r *CreateCreditRequest) Validate() error {
	if r.CreditValue == nil {
		return apperrors.NewValidationError("creditValue", "credit value is required")
	}
	if !r.CreditValue.IsPositive() {
		return apperrors.NewValidationError("creditValue", "credit value must be positive")
	}
	firstInstallment, err := time.Parse(installmentDateLayout, r.DayFirstInstallment)
	if err != nil {
		return apperrors.NewValidationError("dayFirstInstallment", "must be a date in YYYY-MM-DD format")
	}
	if !firstInstallment.After(credit.Today()) {
		return apperrors.NewValidationError("dayFirstInstallment", "must be a future date")
	}
	if r.NumberOfInstallments < credit.MinInstallments || r.NumberOfInstallments > credit.MaxInstallments {
		return apperrors.NewValidationError("numberOfInstallments", "number of installments must be between 1 and 48")
	}
	if r.CustomerID <= 0 {
		return apperrors.NewValidationError("customerId", "customer id is required")
	}
	return nil
}

func (r *CreateCreditRequest) ToCredit() (*credit.Credit, error) {
	firstInstallment, err := time.Parse(installmentDateLayout, r.DayFirstInstallment)
	if err != nil {
		return nil, apperrors.NewValidationError("dayFirstInstallment", "must be a date in YYYY-MM-DD format")
	}

	return credit.NewCredit(*r.CreditValue, firstInstallment, r.NumberOfInstallments, r.CustomerID)
}

// CreditResponse is the detail view of a credit joined with its customer.
type CreditResponse struct {
	CreditCode           string          `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	Status               string          `json:"status"`
	EmailCustomer        string          `json:"emailCustomer"`
	IncomeCustomer       decimal.Decimal `json:"incomeCustomer"`
}

func NewCreditResponse(cred *credit.Credit) CreditResponse {
	if cred == nil {
		return CreditResponse{}
	}

	resp := CreditResponse{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue,
		NumberOfInstallments: cred.NumberOfInstallments,
		Status:               string(cred.Status),
	}
	if cred.Customer != nil {
		resp.EmailCustomer = cred.Customer.Email
		resp.IncomeCustomer = cred.Customer.Income
	}
	return resp
}

// CreditListItemResponse is the summary view returned when listing a
// customer's credits.
type CreditListItemResponse struct {
	CreditCode           string          `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
}

func NewCreditListResponse(credits []*credit.Credit) []CreditListItemResponse {
	items := make([]CreditListItemResponse, 0, len(credits))
	for _, cred := range credits {
		items = append(items, CreditListItemResponse{
			CreditCode:           cred.CreditCode.String(),
			CreditValue:          cred.CreditValue,
			NumberOfInstallments: cred.NumberOfInstallments,
		})
	}
	return items
}
