package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"loan-offers/internal/domain/calculator"
	"loan-offers/internal/pkg/apperrors"
)

// MsgInvalidInput is returned when any calculator parameter is missing or
// is not a number.
const MsgInvalidInput = "Invalid input values"

var ErrInvalidCalculatorInput = fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, MsgInvalidInput)

type LoanCalculatorRequest struct {
	LoanAmount   float64 `json:"loan_amount" example:"10000"`
	InterestRate float64 `json:"interest_rate" example:"5.5"`
	LoanTerm     int     `json:"loan_term" example:"24"`
}

type LoanCalculatorResponse struct {
	MonthlyPayment float64 `json:"monthly_payment" example:"440.96"`
}

// CalculatorErrorResponse carries a single message keyed by the failing
// field, or by "error" for unparsable input.
type CalculatorErrorResponse map[string]string

// ParseLoanCalculatorRequest reads the three calculator parameters. Numbers
// and numeric strings are accepted; a fractional numeric loan_term is
// truncated toward zero.
func ParseLoanCalculatorRequest(body []byte) (calculator.Input, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return calculator.Input{}, ErrInvalidCalculatorInput
	}

	amount, ok := calcFloat(fields[calculator.FieldLoanAmount])
	if !ok {
		return calculator.Input{}, ErrInvalidCalculatorInput
	}
	rate, ok := calcFloat(fields[calculator.FieldInterestRate])
	if !ok {
		return calculator.Input{}, ErrInvalidCalculatorInput
	}
	term, ok := calcInt(fields[calculator.FieldLoanTerm])
	if !ok {
		return calculator.Input{}, ErrInvalidCalculatorInput
	}

	return calculator.Input{LoanAmount: amount, InterestRate: rate, LoanTerm: term}, nil
}

func calcFloat(raw json.RawMessage) (float64, bool) {
	var text string
	switch kindOf(raw) {
	case kindNumber:
		text = strings.TrimSpace(string(raw))
	case kindString:
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
		if strings.ContainsAny(text, "xX_") {
			return 0, false
		}
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func calcInt(raw json.RawMessage) (int64, bool) {
	switch kindOf(raw) {
	case kindNumber:
		lit := strings.TrimSpace(string(raw))
		if integerLiteral.MatchString(lit) {
			n, err := strconv.ParseInt(lit, 10, 64)
			return n, err == nil
		}
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
			return 0, false
		}
		return int64(math.Trunc(f)), true
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if !integerLiteral.MatchString(s) {
			return 0, false
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
