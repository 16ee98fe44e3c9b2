package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/infrastructure/monitoring"
)

// CustomerCounter is the slice of customer.CustomerRepository the job reads.
type CustomerCounter interface {
	Count(ctx context.Context) (int64, error)
}

type PortfolioSnapshotJob struct {
	customers CustomerCounter
	offers    loanoffer.LoanOfferService
	logger    *slog.Logger
	now       func() time.Time
}

func NewPortfolioSnapshotJob(customers CustomerCounter, offers loanoffer.LoanOfferService, logger *slog.Logger) *PortfolioSnapshotJob {
	if customers == nil || offers == nil || logger == nil {
		panic("PortfolioSnapshotJob dependencies cannot be nil")
	}
	return &PortfolioSnapshotJob{
		customers: customers,
		offers:    offers,
		logger:    logger.With("job", "PortfolioSnapshot"),
		now:       time.Now,
	}
}

// Run refreshes the portfolio gauges. Gauges keep their previous values when
// either read fails.
func (j *PortfolioSnapshotJob) Run(ctx context.Context) error {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting portfolio snapshot job.")

	customers, err := j.customers.Count(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("portfolio snapshot: counting customers: %w", err)
	}

	stats, err := j.offers.Portfolio(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to read loan offer stats, aborting job.", slog.Any("error", err))
		return fmt.Errorf("portfolio snapshot: reading loan offers: %w", err)
	}

	total, _ := stats.TotalAmount.Float64()
	avgRate, _ := stats.AverageInterestRate.Float64()
	monitoring.RecordPortfolioSnapshot(customers, stats.Offers, total, avgRate, j.now())

	j.logger.InfoContext(ctx, "Portfolio snapshot job finished.",
		slog.Int64("customers", customers),
		slog.Int64("loanOffers", stats.Offers),
		slog.String("offeredAmount", stats.TotalAmount.StringFixed(2)),
		slog.String("averageInterestRate", stats.AverageInterestRate.StringFixed(2)),
		slog.Duration("duration", j.now().Sub(startTime)),
	)
	return nil
}
