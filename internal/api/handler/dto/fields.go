package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"loan-offers/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	MsgRequired       = "This field is required."
	MsgNull           = "This field may not be null."
	MsgInvalidString  = "Not a valid string."
	MsgInvalidNumber  = "A valid number is required."
	MsgInvalidInteger = "A valid integer is required."

	fieldNonField = "non_field_errors"
)

type jsonKind int

const (
	kindNull jsonKind = iota
	kindString
	kindNumber
	kindBool
	kindObject
	kindArray
)

var (
	integerLiteral  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	trailingZeroDot = regexp.MustCompile(`\.0*\s*$`)
)

// decodeObject splits a JSON object body into its raw members. An empty body
// has no members; valid JSON that is not an object is reported as a non-field
// validation error.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: request body is not valid JSON", apperrors.ErrInvalidArgument)
	}

	kind := kindOf(trimmed)
	if kind != kindObject {
		errs := apperrors.NewFieldErrors()
		errs.Add(fieldNonField, fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", typeName(trimmed)))
		return nil, errs
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	return fields, nil
}

func kindOf(raw json.RawMessage) jsonKind {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return kindNull
	}
	switch raw[0] {
	case 'n':
		return kindNull
	case '"':
		return kindString
	case 't', 'f':
		return kindBool
	case '{':
		return kindObject
	case '[':
		return kindArray
	default:
		return kindNumber
	}
}

// typeName names the decoded type of raw as it appears in error messages.
func typeName(raw json.RawMessage) string {
	switch kindOf(raw) {
	case kindNull:
		return "NoneType"
	case kindString:
		return "str"
	case kindBool:
		return "bool"
	case kindObject:
		return "dict"
	case kindArray:
		return "list"
	default:
		if isFloatLiteral(raw) {
			return "float"
		}
		return "int"
	}
}

// numberText renders a JSON number the way it reads once decoded: integer
// literals keep their digits, anything else is a float in its shortest form
// with at least one fractional digit.
func numberText(raw json.RawMessage) (string, bool) {
	lit := string(bytes.TrimSpace(raw))
	if integerLiteral.MatchString(lit) {
		return lit, true
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	return floatText(f), true
}

func floatText(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func isFloatLiteral(raw json.RawMessage) bool {
	return !integerLiteral.Match(bytes.TrimSpace(raw))
}

// stringField decodes a text field. Numbers are accepted and kept as text.
func stringField(fields map[string]json.RawMessage, name string, errs *apperrors.FieldErrors) string {
	raw, ok := fields[name]
	if !ok {
		errs.Add(name, MsgRequired)
		return ""
	}
	switch kindOf(raw) {
	case kindNull:
		errs.Add(name, MsgNull)
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs.Add(name, MsgInvalidString)
			return ""
		}
		return s
	case kindNumber:
		if s, ok := numberText(raw); ok {
			return s
		}
		errs.Add(name, MsgInvalidString)
	default:
		errs.Add(name, MsgInvalidString)
	}
	return ""
}

// decimalField decodes a fixed point field keeping the exponent of the
// submitted value, so 1.500 still carries three decimal places.
func decimalField(fields map[string]json.RawMessage, name string, errs *apperrors.FieldErrors) decimal.Decimal {
	raw, ok := fields[name]
	if !ok {
		errs.Add(name, MsgRequired)
		return decimal.Zero
	}

	var text string
	switch kindOf(raw) {
	case kindNull:
		errs.Add(name, MsgNull)
		return decimal.Zero
	case kindString:
		if err := json.Unmarshal(raw, &text); err != nil {
			errs.Add(name, MsgInvalidNumber)
			return decimal.Zero
		}
		text = strings.TrimSpace(text)
	case kindNumber:
		if text, ok = numberText(raw); !ok {
			errs.Add(name, MsgInvalidNumber)
			return decimal.Zero
		}
	default:
		errs.Add(name, MsgInvalidNumber)
		return decimal.Zero
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		errs.Add(name, MsgInvalidNumber)
		return decimal.Zero
	}
	return d
}

// integerField decodes a whole number field. Values such as 24.0 or "24.00"
// are accepted; values outside int64 are clamped so range checks still fire.
func integerField(fields map[string]json.RawMessage, name string, errs *apperrors.FieldErrors) int64 {
	raw, ok := fields[name]
	if !ok {
		errs.Add(name, MsgRequired)
		return 0
	}

	var text string
	switch kindOf(raw) {
	case kindNull:
		errs.Add(name, MsgNull)
		return 0
	case kindString:
		if err := json.Unmarshal(raw, &text); err != nil {
			errs.Add(name, MsgInvalidInteger)
			return 0
		}
	case kindNumber:
		if text, ok = numberText(raw); !ok {
			errs.Add(name, MsgInvalidInteger)
			return 0
		}
	default:
		errs.Add(name, MsgInvalidInteger)
		return 0
	}

	text = strings.TrimSpace(trailingZeroDot.ReplaceAllString(text, ""))
	if !integerLiteral.MatchString(text) {
		errs.Add(name, MsgInvalidInteger)
		return 0
	}
	return clampInt64(text)
}

func clampInt64(text string) int64 {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(text, "+"), 10)
	if !ok {
		return 0
	}
	switch {
	case n.IsInt64():
		return n.Int64()
	case n.Sign() > 0:
		return math.MaxInt64
	default:
		return math.MinInt64
	}
}
