package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	routingKeyCustomerCreated  = "customer.created"
	routingKeyLoanOfferCreated = "loanoffer.created"
	publisherAppID             = "loan-offers"
)

type CustomerPayload struct {
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LoanOfferPayload struct {
	LoanOfferID  int64     `json:"loanOfferId"`
	CustomerID   int64     `json:"customerId"`
	LoanAmount   string    `json:"loanAmount"`
	InterestRate string    `json:"interestRate"`
	LoanTerm     int32     `json:"loanTerm"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CustomerCreatedEvent struct {
	EventID   string          `json:"eventId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   CustomerPayload `json:"payload"`
}

type LoanOfferCreatedEvent struct {
	EventID   string           `json:"eventId"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   LoanOfferPayload `json:"payload"`
}

func NewCustomerCreatedEvent(payload CustomerPayload) CustomerCreatedEvent {
	return CustomerCreatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func NewLoanOfferCreatedEvent(payload LoanOfferPayload) LoanOfferCreatedEvent {
	return LoanOfferCreatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
