package credit

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Save(ctx context.Context, credit *Credit) error {
	ret := _m.Called(ctx, credit)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Credit) error); ok {
		r0 = rf(ctx, credit)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Credit
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Credit); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Credit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindByCustomerIDAndCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	ret := _m.Called(ctx, customerID, creditCode)

	var r0 *Credit
	if rf, ok := ret.Get(0).(func(context.Context, int64, uuid.UUID) *Credit); ok {
		r0 = rf(ctx, customerID, creditCode)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Credit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, uuid.UUID) error); ok {
		r1 = rf(ctx, customerID, creditCode)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
