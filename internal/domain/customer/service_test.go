package customer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"credit-engine/internal/domain/customer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupTest() (*customer.MockCustomerRepository, customer.CustomerService) {
	mockRepo := new(customer.MockCustomerRepository)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := customer.NewCustomerService(mockRepo, nil, logger)
	return mockRepo, service
}

func validCustomer() *customer.Customer {
	return customer.NewCustomer(
		"Enio", "Viana", "345.091.580-09", "enio@teste.com.br", "plaintext",
		decimal.NewFromFloat(1000.00),
		customer.Address{ZipCode: "12345", Street: "Rua do Enio"},
	)
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := validCustomer()
		expectedCustomerID := int64(1)

		mockRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			// The service must have hashed the password before saving.
			hashOK := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte("plaintext")) == nil
			if hashOK {
				c.ID = expectedCustomerID
			}
			return hashOK
		})).Return(nil).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		if created != nil {
			assert.Equal(t, expectedCustomerID, created.ID)
			assert.Equal(t, "Enio", created.FirstName)
			assert.NotEqual(t, "plaintext", created.Password)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Duplicate CPF propagates as conflict", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).
			Return(customer.ErrDuplicateCPF).Once()

		created, err := service.CreateCustomer(ctx, validCustomer())

		assert.Nil(t, created)
		assert.ErrorIs(t, err, customer.ErrDuplicateCPF)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Duplicate email propagates as conflict", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).
			Return(customer.ErrDuplicateEmail).Once()

		created, err := service.CreateCustomer(ctx, validCustomer())

		assert.Nil(t, created)
		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Save Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("database connection failed")

		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(dbError).Once()

		created, err := service.CreateCustomer(ctx, validCustomer())

		assert.Nil(t, created)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		expected := validCustomer()
		expected.ID = 42

		mockRepo.On("FindByID", ctx, int64(42)).Return(expected, nil).Once()

		cust, err := service.GetCustomer(ctx, 42)

		assert.NoError(t, err)
		assert.Equal(t, expected, cust)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found carries the id in the message", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("FindByID", ctx, int64(99)).Return(nil, customer.ErrNotFound).Once()

		cust, err := service.GetCustomer(ctx, 99)

		assert.Nil(t, cust)
		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.Contains(t, err.Error(), "Id 99 not found")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("connection refused")

		mockRepo.On("FindByID", ctx, int64(1)).Return(nil, dbError).Once()

		cust, err := service.GetCustomer(ctx, 1)

		assert.Nil(t, cust)
		assert.ErrorIs(t, err, dbError)
		assert.NotErrorIs(t, err, customer.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()

	updateFields := customer.UpdateFields{
		FirstName: "NewFirst",
		LastName:  "NewLast",
		Income:    decimal.NewFromInt(2000),
		ZipCode:   "54321",
		Street:    "Rua Alterada",
	}

	t.Run("Success - only updatable fields change", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := validCustomer()
		existing.ID = 5
		existing.Password = "stored-hash"

		mockRepo.On("FindByID", ctx, int64(5)).Return(existing, nil).Once()
		mockRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.ID == 5 &&
				c.FirstName == "NewFirst" &&
				c.LastName == "NewLast" &&
				c.Income.Equal(decimal.NewFromInt(2000)) &&
				c.Address.ZipCode == "54321" &&
				c.Address.Street == "Rua Alterada" &&
				c.CPF == existing.CPF &&
				c.Email == existing.Email &&
				c.Password == "stored-hash"
		})).Return(nil).Once()

		updated, err := service.UpdateCustomer(ctx, 5, updateFields)

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		// The loaded record was merged into a fresh value, not mutated.
		assert.Equal(t, "Enio", existing.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Customer Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("FindByID", ctx, int64(8)).Return(nil, customer.ErrNotFound).Once()

		updated, err := service.UpdateCustomer(ctx, 8, updateFields)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.Contains(t, err.Error(), "Id 8 not found")
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error - Save Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := validCustomer()
		existing.ID = 5
		dbError := errors.New("write failed")

		mockRepo.On("FindByID", ctx, int64(5)).Return(existing, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(dbError).Once()

		updated, err := service.UpdateCustomer(ctx, 5, updateFields)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := validCustomer()
		existing.ID = 3

		mockRepo.On("FindByID", ctx, int64(3)).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, int64(3)).Return(nil).Once()

		err := service.DeleteCustomer(ctx, 3)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found performs no delete", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("FindByID", ctx, int64(77)).Return(nil, customer.ErrNotFound).Once()

		err := service.DeleteCustomer(ctx, 77)

		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.Contains(t, err.Error(), "Id 77 not found")
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Error - Deletion blocked while credits exist", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := validCustomer()
		existing.ID = 3

		mockRepo.On("FindByID", ctx, int64(3)).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, int64(3)).Return(fmt.Errorf("%w", customer.ErrHasCredits)).Once()

		err := service.DeleteCustomer(ctx, 3)

		assert.ErrorIs(t, err, customer.ErrHasCredits)
		mockRepo.AssertExpectations(t)
	})
}
