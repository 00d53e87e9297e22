package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/event"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CreditService interface {
	// CreateCredit resolves the customer reference before persisting, so a
	// credit can never be durably stored pointing at a nonexistent customer.
	CreateCredit(ctx context.Context, cred *Credit) (*Credit, error)

	ListByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)

	GetByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            Repository
	customerService customer.CustomerService
	pub             event.EventPublisher
	maxInstallments int
	logger          *slog.Logger
}

// NewCreditService builds the credit service. maxInstallments is the
// operator-configured ceiling for new credits; values outside
// [MinInstallments, MaxInstallments] fall back to MaxInstallments.
func NewCreditService(repo Repository, customerService customer.CustomerService, eventPublisher event.EventPublisher, maxInstallments int, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if customerService == nil {
		panic("customer service cannot be nil")
	}
	if eventPublisher == nil {
		eventPublisher = event.NewNoopPublisher()
	}
	if maxInstallments < MinInstallments || maxInstallments > MaxInstallments {
		maxInstallments = MaxInstallments
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditService, using default stderr handler")
	}

	return &creditService{
		repo:            repo,
		customerService: customerService,
		pub:             eventPublisher,
		maxInstallments: maxInstallments,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) CreateCredit(ctx context.Context, cred *Credit) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to create new credit")

	if cred == nil {
		return nil, errors.New("credit cannot be nil")
	}

	if cred.NumberOfInstallments > s.maxInstallments {
		s.logger.WarnContext(ctx, "Credit exceeds configured installment ceiling",
			slog.Int("numberOfInstallments", cred.NumberOfInstallments),
			slog.Int("maxInstallments", s.maxInstallments))
		return nil, apperrors.NewValidationError("numberOfInstallments",
			fmt.Sprintf("number of installments must not exceed %d", s.maxInstallments))
	}

	cust, err := s.customerService.GetCustomer(ctx, cred.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer referenced by credit does not exist", slog.Int64("customerID", cred.CustomerID))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to resolve customer for credit", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve customer %d: %w", cred.CustomerID, err)
	}

	cred.Customer = cust
	cred.CustomerID = cust.ID

	s.logger.InfoContext(ctx, "Customer resolved, calling repository Save", slog.String("creditCode", cred.CreditCode.String()))
	if err := s.repo.Save(ctx, cred); err != nil {
		if errors.Is(err, ErrDuplicateCreditCode) {
			s.logger.WarnContext(ctx, "Credit code collision detected during save", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new credit", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new credit: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully saved new credit, publishing creation event", slog.Int64("creditID", cred.ID))
	createdEvent := event.CreditCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.CreditEventPayload{
			CreditID:             cred.ID,
			CreditCode:           cred.CreditCode.String(),
			CreditValue:          cred.CreditValue.String(),
			NumberOfInstallments: cred.NumberOfInstallments,
			Status:               string(cred.Status),
			CustomerID:           cred.CustomerID,
			DayFirstInstallment:  cred.DayFirstInstallment,
			CreatedAt:            cred.CreatedAt,
		},
	}
	if pubErr := s.pub.PublishCreditCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Credit created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	return cred, nil
}

func (s *creditService) ListByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to list credits by customer", slog.Int64("customerID", customerID))

	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing credits by customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved credits", slog.Int("count", len(credits)))
	return credits, nil
}

func (s *creditService) GetByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to find credit by code", slog.Int64("customerID", customerID), slog.String("creditCode", creditCode.String()))

	cred, err := s.repo.FindByCustomerIDAndCreditCode(ctx, customerID, creditCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit not found for customer and code")
			return nil, fmt.Errorf("%w: Credit code %s not found", ErrNotFound, creditCode)
		}
		s.logger.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get credit %s: %w", creditCode, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved credit")
	return cred, nil
}
