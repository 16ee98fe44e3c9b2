package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/pkg/apperrors"
)

type CreateLoanOfferRequest struct {
	Customer     int64   `json:"customer" example:"1"`
	LoanAmount   float64 `json:"loan_amount" example:"10000.00"`
	InterestRate float64 `json:"interest_rate" example:"5.5"`
	LoanTerm     int     `json:"loan_term" example:"24"`
}

func ParseCreateLoanOfferRequest(body []byte) (loanoffer.CreateInput, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return loanoffer.CreateInput{}, err
	}

	invalid := apperrors.NewFieldErrors()
	in := loanoffer.CreateInput{
		CustomerID:   pkField(fields, loanoffer.FieldCustomer, invalid),
		LoanAmount:   decimalField(fields, loanoffer.FieldLoanAmount, invalid),
		InterestRate: decimalField(fields, loanoffer.FieldInterestRate, invalid),
		LoanTerm:     integerField(fields, loanoffer.FieldLoanTerm, invalid),
		Invalid:      invalid,
	}
	return in, nil
}

func msgIncorrectPKType(raw json.RawMessage) string {
	return fmt.Sprintf("Incorrect type. Expected pk value, received %s.", typeName(raw))
}

// pkField decodes a reference to another record by primary key.
func pkField(fields map[string]json.RawMessage, name string, errs *apperrors.FieldErrors) int64 {
	raw, ok := fields[name]
	if !ok {
		errs.Add(name, MsgRequired)
		return 0
	}

	switch kindOf(raw) {
	case kindNull:
		errs.Add(name, MsgNull)
		return 0
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs.Add(name, msgIncorrectPKType(raw))
			return 0
		}
		return parsePK(raw, strings.TrimSpace(s), s, name, errs)
	case kindNumber:
		if isFloatLiteral(raw) {
			errs.Add(name, msgIncorrectPKType(raw))
			return 0
		}
		lit := strings.TrimSpace(string(raw))
		return parsePK(raw, lit, lit, name, errs)
	default:
		errs.Add(name, msgIncorrectPKType(raw))
		return 0
	}
}

func parsePK(raw json.RawMessage, text, submitted string, name string, errs *apperrors.FieldErrors) int64 {
	if !integerLiteral.MatchString(text) {
		errs.Add(name, msgIncorrectPKType(raw))
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(text, "+"), 10, 64)
	if err != nil {
		// No stored row can have an id outside int64.
		errs.Add(name, loanoffer.MsgInvalidPK(submitted))
		return 0
	}
	return id
}

type LoanOfferResponse struct {
	ID           int64  `json:"id" example:"1"`
	Customer     int64  `json:"customer" example:"1"`
	LoanAmount   string `json:"loan_amount" example:"10000.00"`
	InterestRate string `json:"interest_rate" example:"5.50"`
	LoanTerm     int32  `json:"loan_term" example:"24"`
}

func NewLoanOfferResponse(offer *loanoffer.LoanOffer) LoanOfferResponse {
	if offer == nil {
		return LoanOfferResponse{}
	}
	return LoanOfferResponse{
		ID:           offer.ID,
		Customer:     offer.CustomerID,
		LoanAmount:   offer.LoanAmount.StringFixed(loanoffer.DecimalPlaces),
		InterestRate: offer.InterestRate.StringFixed(loanoffer.DecimalPlaces),
		LoanTerm:     offer.LoanTerm,
	}
}
