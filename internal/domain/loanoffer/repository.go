package loanoffer

import (
	"context"
	"fmt"

	"loan-offers/internal/pkg/apperrors"
)

var ErrNotFound = fmt.Errorf("loan offer: %w", apperrors.ErrNotFound)

type Repository interface {
	// Save inserts the offer and fills its ID and CreatedAt. A customer that no
	// longer exists is reported as apperrors.ErrReference.
	Save(ctx context.Context, offer *LoanOffer) error

	FindByID(ctx context.Context, offerID int64) (*LoanOffer, error)

	Stats(ctx context.Context) (PortfolioStats, error)
}
