package loanoffer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

func (m *MockRepository) Save(ctx context.Context, offer *LoanOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, offerID int64) (*LoanOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoanOffer), args.Error(1)
}

func (m *MockRepository) Stats(ctx context.Context) (PortfolioStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(PortfolioStats), args.Error(1)
}
