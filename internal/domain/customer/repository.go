package customer

import (
	"context"
	"fmt"

	"loan-offers/internal/pkg/apperrors"
)

var ErrNotFound = fmt.Errorf("customer: %w", apperrors.ErrNotFound)

type CustomerRepository interface {
	// Save inserts the customer and fills its ID and CreatedAt. A duplicate
	// email is reported as apperrors.ErrAlreadyExists.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Count(ctx context.Context) (int64, error)
}
