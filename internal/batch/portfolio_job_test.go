package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/infrastructure/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerCounter struct {
	mock.Mock
}

func (m *MockCustomerCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLoanOfferService struct {
	mock.Mock
}

func (m *MockLoanOfferService) CreateLoanOffer(ctx context.Context, input loanoffer.CreateInput) (*loanoffer.LoanOffer, error) {
	args := m.Called(ctx, input)
	if o, ok := args.Get(0).(*loanoffer.LoanOffer); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanOfferService) GetLoanOffer(ctx context.Context, offerID int64) (*loanoffer.LoanOffer, error) {
	args := m.Called(ctx, offerID)
	if o, ok := args.Get(0).(*loanoffer.LoanOffer); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanOfferService) Portfolio(ctx context.Context) (loanoffer.PortfolioStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(loanoffer.PortfolioStats), args.Error(1)
}

func TestNewPortfolioSnapshotJob_PanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { NewPortfolioSnapshotJob(nil, new(MockLoanOfferService), logger) })
	assert.Panics(t, func() { NewPortfolioSnapshotJob(new(MockCustomerCounter), nil, logger) })
	assert.Panics(t, func() { NewPortfolioSnapshotJob(new(MockCustomerCounter), new(MockLoanOfferService), nil) })
}

func TestPortfolioSnapshotJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("records gauges", func(t *testing.T) {
		counter := new(MockCustomerCounter)
		offers := new(MockLoanOfferService)
		job := NewPortfolioSnapshotJob(counter, offers, logger)
		at := time.Unix(1760000000, 0)
		job.now = func() time.Time { return at }

		counter.On("Count", ctx).Return(int64(12), nil).Once()
		offers.On("Portfolio", ctx).Return(loanoffer.PortfolioStats{
			Offers:              4,
			TotalAmount:         decimal.RequireFromString("42000.50"),
			AverageInterestRate: decimal.RequireFromString("6.25"),
		}, nil).Once()

		require.NoError(t, job.Run(ctx))

		assert.Equal(t, 12.0, testutil.ToFloat64(monitoring.Portfolio.Customers))
		assert.Equal(t, 4.0, testutil.ToFloat64(monitoring.Portfolio.LoanOffers))
		assert.Equal(t, 42000.5, testutil.ToFloat64(monitoring.Portfolio.OfferedAmount))
		assert.Equal(t, 6.25, testutil.ToFloat64(monitoring.Portfolio.AverageInterestRate))
		assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(monitoring.Portfolio.LastSnapshot))
		counter.AssertExpectations(t)
		offers.AssertExpectations(t)
	})

	t.Run("customer count failure aborts", func(t *testing.T) {
		counter := new(MockCustomerCounter)
		offers := new(MockLoanOfferService)
		job := NewPortfolioSnapshotJob(counter, offers, logger)

		dbErr := errors.New("connection reset")
		counter.On("Count", ctx).Return(int64(0), dbErr).Once()

		err := job.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		offers.AssertNotCalled(t, "Portfolio", mock.Anything)
	})

	t.Run("stats failure aborts", func(t *testing.T) {
		counter := new(MockCustomerCounter)
		offers := new(MockLoanOfferService)
		job := NewPortfolioSnapshotJob(counter, offers, logger)

		statsErr := errors.New("timeout")
		counter.On("Count", ctx).Return(int64(3), nil).Once()
		offers.On("Portfolio", ctx).Return(loanoffer.PortfolioStats{}, statsErr).Once()

		err := job.Run(ctx)
		assert.ErrorIs(t, err, statsErr)
	})
}
