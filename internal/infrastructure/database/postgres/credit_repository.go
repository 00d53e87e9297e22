package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ credit.Repository = (*CreditRepository)(nil)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	if db == nil {
		panic("DBPool cannot be nil for CreditRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditRepository, using default stderr handler")
	}
	return &CreditRepository{
		db:     db,
		logger: logger.With("component", "CreditRepository"),
	}
}

func (r *CreditRepository) Save(ctx context.Context, cred *credit.Credit) error {
	if cred == nil {
		return fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new credit", slog.String("creditCode", cred.CreditCode.String()))

	query := `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		string(cred.Status),
		cred.CustomerID,
	).Scan(
		&cred.ID,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgErrCodeUniqueViolation && strings.Contains(pgErr.ConstraintName, "credit_code") {
				r.logger.WarnContext(ctx, "Credit code unique constraint violation", slog.String("constraint", pgErr.ConstraintName))
				return credit.ErrDuplicateCreditCode
			}
			if pgErr.Code == pgErrCodeForeignKeyViolation {
				r.logger.WarnContext(ctx, "Credit insert references missing customer", slog.String("constraint", pgErr.ConstraintName))
				return customer.ErrNotFound
			}
		}
		r.logger.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to insert credit")
	}

	r.logger.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", cred.ID))
	return nil
}

const creditSelectColumns = `
        c.id, c.credit_code, c.credit_value, c.day_first_installment, c.number_of_installments, c.status, c.customer_id,
        cu.id, cu.first_name, cu.last_name, cu.cpf, cu.income, cu.email, cu.password, cu.zip_code, cu.street, cu.created_at, cu.updated_at,
        c.created_at, c.updated_at`

func (r *CreditRepository) scanCredit(row pgx.Row) (*credit.Credit, error) {
	var cred credit.Credit
	var cust customer.Customer
	var status string

	err := row.Scan(
		&cred.ID,
		&cred.CreditCode,
		&cred.CreditValue,
		&cred.DayFirstInstallment,
		&cred.NumberOfInstallments,
		&status,
		&cred.CustomerID,
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.CPF,
		&cust.Income,
		&cust.Email,
		&cust.Password,
		&cust.Address.ZipCode,
		&cust.Address.Street,
		&cust.CreatedAt,
		&cust.UpdatedAt,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cred.Status = credit.Status(status)
	cred.Customer = &cust
	return &cred, nil
}

func (r *CreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credits by customer ID", slog.Int64("customerID", customerID))

	query := `
        SELECT` + creditSelectColumns + `
        FROM credits c
        JOIN customers cu ON cu.id = c.customer_id
        WHERE c.customer_id = $1
        ORDER BY c.id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credits", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query credits")
	}
	defer rows.Close()

	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		cred, err := r.scanCredit(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan credit row")
		}
		credits = append(credits, cred)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating credit rows", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "error iterating credit rows")
	}

	r.logger.InfoContext(ctx, "Finished finding credits", slog.Int("count", len(credits)))
	return credits, nil
}

func (r *CreditRepository) FindByCustomerIDAndCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credit by customer ID and credit code",
		slog.Int64("customerID", customerID), slog.String("creditCode", creditCode.String()))

	// Both predicates belong in the query: a matching code under another
	// customer must come back as no rows.
	query := `
        SELECT` + creditSelectColumns + `
        FROM credits c
        JOIN customers cu ON cu.id = c.customer_id
        WHERE c.customer_id = $1 AND c.credit_code = $2`

	cred, err := r.scanCredit(r.db.QueryRow(ctx, query, customerID, creditCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit not found for customer and code")
			return nil, credit.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan credit", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to get credit by code")
	}

	r.logger.InfoContext(ctx, "Credit found successfully", slog.Int64("creditID", cred.ID))
	return cred, nil
}
