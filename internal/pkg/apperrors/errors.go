package apperrors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrReference = errors.New("referenced resource does not exist")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// FieldErrors collects every validation failure of a request, keyed by field.
// Fields keep the order in which their first error was added.
type FieldErrors struct {
	fields   []string
	messages map[string][]string
}

func NewFieldErrors() *FieldErrors {
	return &FieldErrors{messages: make(map[string][]string)}
}

func (e *FieldErrors) Add(field, message string) {
	if e.messages == nil {
		e.messages = make(map[string][]string)
	}
	if _, ok := e.messages[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.messages[field] = append(e.messages[field], message)
}

func (e *FieldErrors) Has(field string) bool {
	if e == nil {
		return false
	}
	_, ok := e.messages[field]
	return ok
}

func (e *FieldErrors) Messages(field string) []string {
	if e == nil {
		return nil
	}
	return e.messages[field]
}

func (e *FieldErrors) Fields() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.fields...)
}

func (e *FieldErrors) Empty() bool {
	return e == nil || len(e.fields) == 0
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, field := range e.fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.messages[field], " ")))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

func (e *FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e *FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range e.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(e.messages[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
