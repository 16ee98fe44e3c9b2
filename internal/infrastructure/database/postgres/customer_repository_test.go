package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"loan-offers/internal/domain/customer"
	"loan-offers/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertCustomerQuery = regexp.QuoteMeta("INSERT INTO customers (first_name, last_name, email, created_at)")
	selectCustomerQuery = regexp.QuoteMeta("SELECT id, first_name, last_name, email, created_at")
	emailExistsQuery    = regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)")
	countCustomersQuery = regexp.QuoteMeta("SELECT COUNT(*) FROM customers")
)

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	return context.Background(), NewCustomerRepository(mockPool, logger), mockPool
}

func TestCustomerRepository_SaveWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cust := customer.NewCustomer("Glen", "Lohja", "glen@example.com")

	mockPool.ExpectQuery(insertCustomerQuery).
		WithArgs("Glen", "Lohja", "glen@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	err := repo.Save(ctx, cust)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cust.ID)
	assert.Equal(t, created, cust.CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_SaveDuplicateEmail(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(insertCustomerQuery).
		WithArgs("Glen", "Lohja", "glen@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"})

	err := repo.Save(ctx, customer.NewCustomer("Glen", "Lohja", "glen@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_SaveDatabaseError(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(insertCustomerQuery).
		WithArgs("Glen", "Lohja", "glen@example.com").
		WillReturnError(errors.New("connection reset"))

	err := repo.Save(ctx, customer.NewCustomer("Glen", "Lohja", "glen@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.False(t, errors.Is(err, apperrors.ErrAlreadyExists))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DB_ERROR", appErr.Code)
	assert.Equal(t, "failed to insert customer", appErr.Message)
}

func TestCustomerRepository_SaveRejectsInvalidArguments(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	assert.ErrorIs(t, repo.Save(ctx, nil), apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, repo.Save(ctx, &customer.Customer{ID: 4}), apperrors.ErrInvalidArgument)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_FindByIDReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery(selectCustomerQuery).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name", "email", "created_at"}).
			AddRow(int64(1), "Glen", "Lohja", "glen@example.com", created))

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &customer.Customer{ID: 1, FirstName: "Glen", LastName: "Lohja", Email: "glen@example.com", CreatedAt: created}, got)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_FindByIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(selectCustomerQuery).WithArgs(int64(999)).WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByID(ctx, 999)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_FindByIDDatabaseError(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(selectCustomerQuery).WithArgs(int64(1)).WillReturnError(errors.New("timeout"))

	_, err := repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCustomerRepository_ExistsByEmail(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(emailExistsQuery).WithArgs("glen@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mockPool.ExpectQuery(emailExistsQuery).WithArgs("new@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mockPool.ExpectQuery(emailExistsQuery).WithArgs("err@example.com").
		WillReturnError(errors.New("timeout"))

	exists, err := repo.ExistsByEmail(ctx, "glen@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.ExistsByEmail(ctx, "err@example.com")
	assert.ErrorIs(t, err, apperrors.ErrDatabase)

	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_Count(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(countCustomersQuery).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
