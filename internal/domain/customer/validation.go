package customer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"loan-offers/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

const (
	MsgBlank          = "This field may not be blank."
	MsgInvalidEmail   = "Enter a valid email address."
	MsgDuplicateEmail = "customer with this email already exists."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateInput carries the decoded values of a create request. Fields listed in
// Invalid already failed while decoding and are reported as they are.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Invalid   *apperrors.FieldErrors
}

func MsgMaxLength(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// Normalize trims surrounding whitespace from every value.
func (in CreateInput) Normalize() CreateInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// validateInput collects every field error of a normalized input, in field
// declaration order. exists is consulted only for a well formed email.
func validateInput(ctx context.Context, in CreateInput, exists func(context.Context, string) (bool, error)) (*apperrors.FieldErrors, error) {
	errs := apperrors.NewFieldErrors()

	for _, f := range []struct {
		name  string
		value string
	}{
		{FieldFirstName, in.FirstName},
		{FieldLastName, in.LastName},
	} {
		if in.Invalid.Has(f.name) {
			addAll(errs, f.name, in.Invalid.Messages(f.name))
			continue
		}
		validateName(errs, f.name, f.value)
	}

	if in.Invalid.Has(FieldEmail) {
		addAll(errs, FieldEmail, in.Invalid.Messages(FieldEmail))
		return errs, nil
	}

	if in.Email == "" {
		errs.Add(FieldEmail, MsgBlank)
		return errs, nil
	}
	if utf8.RuneCountInString(in.Email) > MaxEmailLength {
		errs.Add(FieldEmail, MsgMaxLength(MaxEmailLength))
	}
	if !IsValidEmail(in.Email) {
		errs.Add(FieldEmail, MsgInvalidEmail)
		return errs, nil
	}

	taken, err := exists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		errs.Add(FieldEmail, MsgDuplicateEmail)
	}
	return errs, nil
}

func validateName(errs *apperrors.FieldErrors, field, value string) {
	if value == "" {
		errs.Add(field, MsgBlank)
		return
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		errs.Add(field, MsgMaxLength(MaxNameLength))
	}
}

func addAll(errs *apperrors.FieldErrors, field string, messages []string) {
	for _, m := range messages {
		errs.Add(field, m)
	}
}
