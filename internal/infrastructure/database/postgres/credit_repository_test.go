package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupCreditRepo(t *testing.T) (context.Context, *CreditRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCreditRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func testCredit() *credit.Credit {
	return &credit.Credit{
		CreditCode:           uuid.New(),
		CreditValue:          decimal.NewFromFloat(1500.00),
		DayFirstInstallment:  time.Now().AddDate(0, 0, 5),
		NumberOfInstallments: 5,
		Status:               credit.StatusInProgress,
		CustomerID:           1,
	}
}

const insertCreditQuery = `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

func creditRowColumns() []string {
	return []string{
		"id", "credit_code", "credit_value", "day_first_installment", "number_of_installments", "status", "customer_id",
		"cu_id", "first_name", "last_name", "cpf", "income", "email", "password", "zip_code", "street", "cu_created_at", "cu_updated_at",
		"created_at", "updated_at",
	}
}

func addCreditRow(rows *pgxmock.Rows, cred *credit.Credit, cust *customer.Customer) *pgxmock.Rows {
	return rows.AddRow(
		cred.ID, cred.CreditCode, cred.CreditValue, cred.DayFirstInstallment, cred.NumberOfInstallments, string(cred.Status), cred.CustomerID,
		cust.ID, cust.FirstName, cust.LastName, cust.CPF, cust.Income, cust.Email, cust.Password, cust.Address.ZipCode, cust.Address.Street, cust.CreatedAt, cust.UpdatedAt,
		time.Now(), time.Now(),
	)
}

func TestSaveCreditWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := testCredit()

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		string(cred.Status),
		cred.CustomerID,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(10), time.Now(), time.Now()))

	err := repo.Save(ctx, cred)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), cred.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveCreditDuplicateCode(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := testCredit()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "credits_credit_code_key"}
	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		string(cred.Status),
		cred.CustomerID,
	).WillReturnError(pgErr)

	err := repo.Save(ctx, cred)
	assert.ErrorIs(t, err, credit.ErrDuplicateCreditCode)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveCreditMissingCustomer(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := testCredit()

	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "credits_customer_id_fkey"}
	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		string(cred.Status),
		cred.CustomerID,
	).WillReturnError(pgErr)

	err := repo.Save(ctx, cred)
	assert.ErrorIs(t, err, customer.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveCreditGenericError(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := testCredit()

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		string(cred.Status),
		cred.CustomerID,
	).WillReturnError(errors.New("connection reset"))

	err := repo.Save(ctx, cred)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DB_ERROR", appErr.Code)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllByCustomerIDReturnsCredits(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := testCredit()
	cred.ID = 10
	cust := testCustomer()

	rows := addCreditRow(pgxmock.NewRows(creditRowColumns()), cred, cust)
	mockPool.ExpectQuery("SELECT(.|\n)*FROM credits c(.|\n)*WHERE c.customer_id = \\$1").
		WithArgs(cust.ID).
		WillReturnRows(rows)

	credits, err := repo.FindAllByCustomerID(ctx, cust.ID)
	assert.NoError(t, err)
	assert.Len(t, credits, 1)
	assert.Equal(t, cred.CreditCode, credits[0].CreditCode)
	assert.NotNil(t, credits[0].Customer)
	assert.Equal(t, cust.Email, credits[0].Customer.Email)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllByCustomerIDReturnsEmptySlice(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT(.|\n)*FROM credits c(.|\n)*WHERE c.customer_id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(creditRowColumns()))

	credits, err := repo.FindAllByCustomerID(ctx, 5)
	assert.NoError(t, err)
	assert.NotNil(t, credits)
	assert.Empty(t, credits)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindByCustomerIDAndCreditCodeReturnsOne(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	cred := testCredit()
	cred.ID = 10
	cust := testCustomer()

	rows := addCreditRow(pgxmock.NewRows(creditRowColumns()), cred, cust)
	mockPool.ExpectQuery("SELECT(.|\n)*WHERE c.customer_id = \\$1 AND c.credit_code = \\$2").
		WithArgs(cust.ID, cred.CreditCode).
		WillReturnRows(rows)

	result, err := repo.FindByCustomerIDAndCreditCode(ctx, cust.ID, cred.CreditCode)
	assert.NoError(t, err)
	assert.Equal(t, cred.CreditCode, result.CreditCode)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindByCustomerIDAndCreditCodeReturnsNone(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	code := uuid.New()
	mockPool.ExpectQuery("SELECT(.|\n)*WHERE c.customer_id = \\$1 AND c.credit_code = \\$2").
		WithArgs(int64(2), code).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindByCustomerIDAndCreditCode(ctx, 2, code)
	assert.ErrorIs(t, err, credit.ErrNotFound)
	assert.Nil(t, result)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
