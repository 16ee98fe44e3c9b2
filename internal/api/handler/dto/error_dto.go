package dto

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// FieldErrorsResponse documents the validation error body: every failing
// field mapped to its messages.
type FieldErrorsResponse map[string][]string

type TokenRequest struct {
	Username string `json:"username" example:"loan-officer"`
}

type TokenResponse struct {
	Token string `json:"token" example:"Bearer eyJhbGciOi..."`
}
