package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loan-offers/internal/domain/customer"
	"loan-offers/internal/domain/loanoffer"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, input customer.CreateInput) (*customer.Customer, error) {
	args := m.Called(ctx, input)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
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

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out))
	return out
}
