//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	root "loan-offers"
	"loan-offers/internal/config"
	"loan-offers/internal/domain/customer"
	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/infrastructure/database/postgres"
	"loan-offers/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "loan_test"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", testUser, testPassword, host, port.Int(), testDB)
	pool, err := postgres.NewConnectionPool(ctx, config.DatabaseConfig{URL: url, MaxConns: 20}, discard)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := postgres.NewMigrator(postgres.OpenSQLDB(pool), root.Migrations, discard)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(ctx))

	return pool
}

func TestIntegration_CustomerAndLoanOfferLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	customers := postgres.NewCustomerRepository(pool, discard)
	offers := postgres.NewLoanOfferRepository(pool, discard)

	cust := customer.NewCustomer("Glen", "Lohja", "glenlohja@example.com")
	require.NoError(t, customers.Save(ctx, cust))
	require.NotZero(t, cust.ID)

	err := customers.Save(ctx, customer.NewCustomer("Other", "Person", "glenlohja@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	offer := loanoffer.NewLoanOffer(cust.ID, decimal.RequireFromString("10000"), decimal.RequireFromString("5.5"), 24)
	require.NoError(t, offers.Save(ctx, offer))

	stored, err := offers.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", stored.LoanAmount.StringFixed(2))
	assert.Equal(t, "5.50", stored.InterestRate.StringFixed(2))
	assert.Equal(t, int32(24), stored.LoanTerm)
	assert.Equal(t, "Loan for Glen Lohja - Amount: 10000.00", stored.String())

	err = offers.Save(ctx, loanoffer.NewLoanOffer(999999, decimal.NewFromInt(1), decimal.NewFromInt(1), 1))
	assert.ErrorIs(t, err, apperrors.ErrReference)

	stats, err := offers.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Offers)
	assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(10000)))

	_, err = pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", cust.ID)
	require.NoError(t, err)
	_, err = offers.FindByID(ctx, offer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "offers are removed with their customer")
}

func TestIntegration_ConcurrentDuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	svc := customer.NewCustomerService(postgres.NewCustomerRepository(pool, discard), nil, discard)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateCustomer(ctx, customer.CreateInput{
				FirstName: "Racer",
				LastName:  fmt.Sprintf("No%d", i),
				Email:     "race@example.com",
			})

			mu.Lock()
			defer mu.Unlock()
			var fe *apperrors.FieldErrors
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &fe) && fe.Has(customer.FieldEmail):
				assert.Equal(t, []string{customer.MsgDuplicateEmail}, fe.Messages(customer.FieldEmail))
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)

	count, err := postgres.NewCustomerRepository(pool, discard).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
