package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-offers/internal/domain/customer"
	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/pkg/apperrors"
)

type LoanOfferRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loanoffer.Repository = (*LoanOfferRepository)(nil)

func NewLoanOfferRepository(db DBPool, logger *slog.Logger) *LoanOfferRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanOfferRepository")
	}
	return &LoanOfferRepository{db: db, logger: logger.With("component", "LoanOfferRepository")}
}

func (r *LoanOfferRepository) Save(ctx context.Context, offer *loanoffer.LoanOffer) error {
	if offer == nil {
		return fmt.Errorf("%w: loan offer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.Int64("customerID", offer.CustomerID))
	logCtx.DebugContext(ctx, "Attempting to insert new loan offer")

	query := `
        INSERT INTO loan_offers (customer_id, loan_amount, interest_rate, loan_term, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		offer.CustomerID,
		offer.LoanAmount,
		offer.InterestRate,
		offer.LoanTerm,
	).Scan(&offer.ID, &offer.CreatedAt)
	observeQuery("InsertLoanOffer", start, err)

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrReference) {
			logCtx.WarnContext(ctx, "Failed to insert loan offer, customer does not exist")
			return translatedErr
		}
		logCtx.ErrorContext(ctx, "Failed to insert loan offer", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to insert loan offer")
	}

	logCtx.InfoContext(ctx, "Loan offer inserted successfully", slog.Int64("loanOfferID", offer.ID))
	return nil
}

func (r *LoanOfferRepository) FindByID(ctx context.Context, offerID int64) (*loanoffer.LoanOffer, error) {
	query := `
        SELECT o.id, o.customer_id, o.loan_amount, o.interest_rate, o.loan_term, o.created_at,
               c.first_name, c.last_name, c.email, c.created_at
        FROM loan_offers o
        JOIN customers c ON c.id = o.customer_id
        WHERE o.id = $1`

	start := time.Now()
	var o loanoffer.LoanOffer
	var c customer.Customer
	err := r.db.QueryRow(ctx, query, offerID).Scan(
		&o.ID, &o.CustomerID, &o.LoanAmount, &o.InterestRate, &o.LoanTerm, &o.CreatedAt,
		&c.FirstName, &c.LastName, &c.Email, &c.CreatedAt,
	)
	observeQuery("FindLoanOfferByID", start, err)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			r.logger.DebugContext(ctx, "Loan offer not found", "loanOfferID", offerID)
			return nil, fmt.Errorf("%w: loan offer %d", apperrors.ErrNotFound, offerID)
		}
		r.logger.ErrorContext(ctx, "Failed to find loan offer by ID", "loanOfferID", offerID, slog.Any("error", err))
		return nil, translatedErr
	}

	c.ID = o.CustomerID
	o.Customer = &c
	return &o, nil
}

func (r *LoanOfferRepository) Stats(ctx context.Context) (loanoffer.PortfolioStats, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(loan_amount), 0), COALESCE(AVG(interest_rate), 0)
        FROM loan_offers`

	start := time.Now()
	var stats loanoffer.PortfolioStats
	err := r.db.QueryRow(ctx, query).Scan(&stats.Offers, &stats.TotalAmount, &stats.AverageInterestRate)
	observeQuery("LoanOfferStats", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to compute loan offer stats", slog.Any("error", err))
		return loanoffer.PortfolioStats{}, translateDBError(err, r.logger)
	}
	return stats, nil
}
