package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"loan-offers/internal/domain/customer"
	"loan-offers/internal/pkg/apperrors"
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.ID != 0 {
		return fmt.Errorf("%w: customer %d is already stored", apperrors.ErrInvalidArgument, cust.ID)
	}

	r.logger.DebugContext(ctx, "Attempting to insert new customer")

	query := `
        INSERT INTO customers (first_name, last_name, email, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Email,
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
	)
	observeQuery("InsertCustomer", start, err)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to insert customer")
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, created_at
        FROM customers
        WHERE id = $1`

	start := time.Now()
	var c customer.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.CreatedAt,
	)
	observeQuery("FindCustomerByID", start, err)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			r.logger.DebugContext(ctx, "Customer not found", "customerID", customerID)
			return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
		}
		r.logger.ErrorContext(ctx, "Failed to find customer by ID", "customerID", customerID, slog.Any("error", err))
		return nil, translatedErr
	}

	return &c, nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`

	start := time.Now()
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	observeQuery("CustomerEmailExists", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to check email uniqueness", slog.Any("error", err))
		return false, translateDBError(err, r.logger)
	}
	return exists, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`

	start := time.Now()
	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	observeQuery("CountCustomers", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}
	return count, nil
}
