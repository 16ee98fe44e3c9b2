package customer

import (
	"strings"
	"time"
)

const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"

	MaxNameLength  = 100
	MaxEmailLength = 254
)

type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
}

// NewCustomer builds an unsaved customer from already trimmed values. The ID
// and CreatedAt are assigned by the store.
func NewCustomer(firstName, lastName, email string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Customer) String() string {
	return c.FullName()
}
