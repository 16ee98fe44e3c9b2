package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"loan-offers/internal/event"
	"loan-offers/internal/infrastructure/monitoring"
	"loan-offers/internal/pkg/apperrors"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, input CreateInput) (*Customer, error)

	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
}

type customerServiceImpl struct {
	repo      CustomerRepository
	publisher event.EventPublisher
	logger    *slog.Logger
}

func NewCustomerService(repo CustomerRepository, publisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &customerServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With("component", "CustomerService"),
	}
}

func (s *customerServiceImpl) CreateCustomer(ctx context.Context, input CreateInput) (*Customer, error) {
	s.logger.DebugContext(ctx, "Creating new customer")
	input = input.Normalize()

	errs, err := validateInput(ctx, input, s.repo.ExistsByEmail)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check email uniqueness", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not check email uniqueness: %v", apperrors.ErrInternalServer, err)
	}
	if !errs.Empty() {
		s.logger.InfoContext(ctx, "Customer validation failed", "fields", errs.Fields())
		monitoring.RecordValidationFailure("customer")
		return nil, errs
	}

	cust := NewCustomer(input.FirstName, input.LastName, input.Email)
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.InfoContext(ctx, "Email taken by a concurrent request", slog.Any("error", err))
			monitoring.RecordValidationFailure("customer")
			dup := apperrors.NewFieldErrors()
			dup.Add(FieldEmail, MsgDuplicateEmail)
			return nil, dup
		}
		s.logger.ErrorContext(ctx, "Failed to save customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save customer: %v", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordCustomerCreated()
	s.logger.InfoContext(ctx, "Customer created successfully", "customerID", cust.ID)
	s.publishCreated(ctx, cust)

	return cust, nil
}

func (s *customerServiceImpl) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.DebugContext(ctx, "Getting customer", "customerID", customerID)
	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.InfoContext(ctx, "Customer not found", "customerID", customerID)
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Failed to get customer", "customerID", customerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer %d: %v", apperrors.ErrInternalServer, customerID, err)
	}
	return cust, nil
}

func (s *customerServiceImpl) publishCreated(ctx context.Context, cust *Customer) {
	evt := event.NewCustomerCreatedEvent(event.CustomerPayload{
		CustomerID: cust.ID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Email:      cust.Email,
		CreatedAt:  cust.CreatedAt,
	})
	if err := s.publisher.PublishCustomerCreated(ctx, evt); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish customer created event", "customerID", cust.ID, slog.Any("error", err))
		monitoring.RecordEventPublished("customer.created", "failure")
		return
	}
	monitoring.RecordEventPublished("customer.created", "success")
}
