package dto

import (
	"loan-offers/internal/domain/customer"
	"loan-offers/internal/pkg/apperrors"
)

type CreateCustomerRequest struct {
	FirstName string `json:"first_name" example:"Glen"`
	LastName  string `json:"last_name" example:"Lohja"`
	Email     string `json:"email" example:"glenlohja@example.com"`
}

// ParseCreateCustomerRequest decodes a create customer body. Type problems
// are returned inside the input so they are reported with the domain rules.
func ParseCreateCustomerRequest(body []byte) (customer.CreateInput, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return customer.CreateInput{}, err
	}

	invalid := apperrors.NewFieldErrors()
	in := customer.CreateInput{
		FirstName: stringField(fields, customer.FieldFirstName, invalid),
		LastName:  stringField(fields, customer.FieldLastName, invalid),
		Email:     stringField(fields, customer.FieldEmail, invalid),
		Invalid:   invalid,
	}
	return in, nil
}

type CustomerResponse struct {
	ID        int64  `json:"id" example:"1"`
	FirstName string `json:"first_name" example:"Glen"`
	LastName  string `json:"last_name" example:"Lohja"`
	Email     string `json:"email" example:"glenlohja@example.com"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		Email:     cust.Email,
	}
}
