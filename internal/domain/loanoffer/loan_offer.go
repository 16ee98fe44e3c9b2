package loanoffer

import (
	"fmt"
	"time"

	"loan-offers/internal/domain/customer"

	"github.com/shopspring/decimal"
)

const (
	FieldCustomer     = "customer"
	FieldLoanAmount   = "loan_amount"
	FieldInterestRate = "interest_rate"
	FieldLoanTerm     = "loan_term"

	// Column precision of loan_amount NUMERIC(10,2) and interest_rate NUMERIC(5,2).
	LoanAmountMaxDigits   = 10
	InterestRateMaxDigits = 5
	DecimalPlaces         = 2

	MaxLoanTerm = 2147483647
	MinLoanTerm = -2147483648
)

type LoanOffer struct {
	ID           int64
	CustomerID   int64
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	LoanTerm     int32
	CreatedAt    time.Time

	// Customer is set when the offer was created or loaded together with its
	// owner. It is never persisted through the offer.
	Customer *customer.Customer
}

func NewLoanOffer(customerID int64, amount, rate decimal.Decimal, term int32) *LoanOffer {
	return &LoanOffer{
		CustomerID:   customerID,
		LoanAmount:   amount.Round(DecimalPlaces),
		InterestRate: rate.Round(DecimalPlaces),
		LoanTerm:     term,
	}
}

func (o *LoanOffer) String() string {
	owner := fmt.Sprintf("customer %d", o.CustomerID)
	if o.Customer != nil {
		owner = o.Customer.String()
	}
	return fmt.Sprintf("Loan for %s - Amount: %s", owner, o.LoanAmount.StringFixed(DecimalPlaces))
}

// PortfolioStats summarizes every stored offer.
type PortfolioStats struct {
	Offers              int64
	TotalAmount         decimal.Decimal
	AverageInterestRate decimal.Decimal
}
