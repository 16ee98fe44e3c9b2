package loanoffer

import (
	"fmt"
	"strconv"

	"loan-offers/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	MsgLoanAmountPositive   = "Loan amount must be a positive value."
	MsgInterestRatePositive = "Interest rate must be a positive value."
	MsgLoanTermPositive     = "Loan term must be a positive value."
)

// CreateInput carries the decoded values of a create request. Fields listed in
// Invalid already failed while decoding; their values are meaningless.
type CreateInput struct {
	CustomerID   int64
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	LoanTerm     int64
	Invalid      *apperrors.FieldErrors
}

// MsgInvalidPK formats the reference error for pk as it was submitted.
func MsgInvalidPK(pk any) string {
	return fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", pk)
}

func MsgMaxValue(limit int64) string {
	return "Ensure this value is less than or equal to " + strconv.FormatInt(limit, 10) + "."
}

func MsgMinValue(limit int64) string {
	return "Ensure this value is greater than or equal to " + strconv.FormatInt(limit, 10) + "."
}

// PrecisionError returns the message for a value that does not fit a NUMERIC
// column of maxDigits total digits with places fractional digits, or "" when it
// fits. The value's own exponent counts, so 1.500 has three decimal places.
func PrecisionError(d decimal.Decimal, maxDigits, places int) string {
	coef := d.Coefficient()
	digits := len(coef.Abs(coef).String())
	exp := int(d.Exponent())

	var total, whole, fractional int
	switch {
	case exp >= 0:
		total = digits + exp
		whole = total
	case digits > -exp:
		total = digits
		whole = digits + exp
		fractional = -exp
	default:
		total = -exp
		fractional = total
	}

	if total > maxDigits {
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits)
	}
	if fractional > places {
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", places)
	}
	if whole > maxDigits-places {
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxDigits-places)
	}
	return ""
}

// validateValues checks the numeric fields that decoded cleanly. Customer
// existence is checked by the service.
func validateValues(in CreateInput, errs *apperrors.FieldErrors) {
	validateDecimal(errs, in.Invalid, FieldLoanAmount, in.LoanAmount, LoanAmountMaxDigits, MsgLoanAmountPositive)
	validateDecimal(errs, in.Invalid, FieldInterestRate, in.InterestRate, InterestRateMaxDigits, MsgInterestRatePositive)

	if in.Invalid.Has(FieldLoanTerm) {
		copyMessages(errs, in.Invalid, FieldLoanTerm)
		return
	}
	switch {
	case in.LoanTerm > MaxLoanTerm:
		errs.Add(FieldLoanTerm, MsgMaxValue(MaxLoanTerm))
	case in.LoanTerm < MinLoanTerm:
		errs.Add(FieldLoanTerm, MsgMinValue(MinLoanTerm))
	case in.LoanTerm <= 0:
		errs.Add(FieldLoanTerm, MsgLoanTermPositive)
	}
}

func validateDecimal(errs, invalid *apperrors.FieldErrors, field string, value decimal.Decimal, maxDigits int, positiveMsg string) {
	if invalid.Has(field) {
		copyMessages(errs, invalid, field)
		return
	}
	if msg := PrecisionError(value, maxDigits, DecimalPlaces); msg != "" {
		errs.Add(field, msg)
		return
	}
	if value.Sign() <= 0 {
		errs.Add(field, positiveMsg)
	}
}

func copyMessages(dst, src *apperrors.FieldErrors, field string) {
	for _, m := range src.Messages(field) {
		dst.Add(field, m)
	}
}
