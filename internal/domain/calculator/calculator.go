// Package calculator computes fixed monthly repayments with the standard
// amortization formula. It has no persistence side effects.
package calculator

import (
	"fmt"
	"math"

	"loan-offers/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	FieldLoanAmount   = "loan_amount"
	FieldInterestRate = "interest_rate"
	FieldLoanTerm     = "loan_term"

	MsgLoanAmountPositive      = "Loan amount must be a positive value."
	MsgInterestRateNonNegative = "Interest rate must be a non-negative value."
	MsgLoanTermPositive        = "Loan term must be a positive value."
)

// ErrPaymentOutOfRange is returned when the payment cannot be represented as
// a finite float64.
var ErrPaymentOutOfRange = fmt.Errorf("%w: monthly payment is out of range", apperrors.ErrInvalidArgument)

// Input holds the calculator parameters. InterestRate is an annual percentage
// and LoanTerm a number of months.
type Input struct {
	LoanAmount   float64
	InterestRate float64
	LoanTerm     int64
}

// Validate reports the first rule the input breaks. Unlike loan offers, a zero
// interest rate is accepted here.
func (in Input) Validate() error {
	if in.LoanAmount <= 0 {
		return apperrors.NewValidationError(FieldLoanAmount, MsgLoanAmountPositive)
	}
	if in.InterestRate < 0 {
		return apperrors.NewValidationError(FieldInterestRate, MsgInterestRateNonNegative)
	}
	if in.LoanTerm <= 0 {
		return apperrors.NewValidationError(FieldLoanTerm, MsgLoanTermPositive)
	}
	return nil
}

// MonthlyPayment validates in and returns the payment rounded to cents.
func MonthlyPayment(in Input) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return RoundCents(rawMonthlyPayment(in.LoanAmount, in.InterestRate, in.LoanTerm))
}

// rawMonthlyPayment uses the negative exponent form, which stays finite for
// any term.
func rawMonthlyPayment(amount, annualRate float64, term int64) float64 {
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return amount / float64(term)
	}
	denominator := 1 - math.Pow(1+monthlyRate, -float64(term))
	if denominator == 0 {
		// 1+monthlyRate rounds to 1.
		return amount / float64(term)
	}
	return amount * (monthlyRate / denominator)
}

// RoundCents rounds half away from zero on the shortest decimal form of v, so
// 1.005 becomes 1.01 rather than falling to 1.00 through binary error.
func RoundCents(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrPaymentOutOfRange
	}
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded, nil
}
