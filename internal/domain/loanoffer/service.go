package loanoffer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"loan-offers/internal/domain/customer"
	"loan-offers/internal/event"
	"loan-offers/internal/infrastructure/monitoring"
	"loan-offers/internal/pkg/apperrors"
)

type LoanOfferService interface {
	CreateLoanOffer(ctx context.Context, input CreateInput) (*LoanOffer, error)

	GetLoanOffer(ctx context.Context, offerID int64) (*LoanOffer, error)

	Portfolio(ctx context.Context) (PortfolioStats, error)
}

type loanOfferServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	publisher       event.EventPublisher
	logger          *slog.Logger
}

func NewLoanOfferService(repo Repository, cs customer.CustomerService, publisher event.EventPublisher, logger *slog.Logger) LoanOfferService {
	if repo == nil {
		panic("loan offer repository cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &loanOfferServiceImpl{
		repo:            repo,
		customerService: cs,
		publisher:       publisher,
		logger:          logger.With("component", "LoanOfferService"),
	}
}

func (s *loanOfferServiceImpl) CreateLoanOffer(ctx context.Context, input CreateInput) (*LoanOffer, error) {
	s.logger.DebugContext(ctx, "Creating new loan offer", "customerID", input.CustomerID)
	errs := apperrors.NewFieldErrors()

	var owner *customer.Customer
	if input.Invalid.Has(FieldCustomer) {
		copyMessages(errs, input.Invalid, FieldCustomer)
	} else {
		cust, err := s.customerService.GetCustomer(ctx, input.CustomerID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			errs.Add(FieldCustomer, MsgInvalidPK(input.CustomerID))
		case err != nil:
			s.logger.ErrorContext(ctx, "Failed to verify customer", "customerID", input.CustomerID, slog.Any("error", err))
			return nil, fmt.Errorf("failed to verify customer %d: %w", input.CustomerID, err)
		default:
			owner = cust
		}
	}

	validateValues(input, errs)
	if !errs.Empty() {
		s.logger.InfoContext(ctx, "Loan offer validation failed", "fields", errs.Fields())
		monitoring.RecordValidationFailure("loanoffer")
		return nil, errs
	}

	offer := NewLoanOffer(input.CustomerID, input.LoanAmount, input.InterestRate, int32(input.LoanTerm))
	offer.Customer = owner

	if err := s.repo.Save(ctx, offer); err != nil {
		if errors.Is(err, apperrors.ErrReference) {
			s.logger.InfoContext(ctx, "Customer removed before the offer was stored", "customerID", input.CustomerID)
			monitoring.RecordValidationFailure("loanoffer")
			ref := apperrors.NewFieldErrors()
			ref.Add(FieldCustomer, MsgInvalidPK(input.CustomerID))
			return nil, ref
		}
		s.logger.ErrorContext(ctx, "Failed to save loan offer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan offer: %v", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordLoanOfferCreated()
	s.logger.InfoContext(ctx, "Loan offer created successfully", "loanOfferID", offer.ID, "customerID", offer.CustomerID, "offer", offer.String())
	s.publishCreated(ctx, offer)

	return offer, nil
}

func (s *loanOfferServiceImpl) GetLoanOffer(ctx context.Context, offerID int64) (*LoanOffer, error) {
	s.logger.DebugContext(ctx, "Getting loan offer", "loanOfferID", offerID)
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.InfoContext(ctx, "Loan offer not found", "loanOfferID", offerID)
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, offerID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan offer", "loanOfferID", offerID, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get loan offer %d: %v", apperrors.ErrInternalServer, offerID, err)
	}
	return offer, nil
}

func (s *loanOfferServiceImpl) Portfolio(ctx context.Context) (PortfolioStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to compute portfolio stats", slog.Any("error", err))
		return PortfolioStats{}, fmt.Errorf("%w: failed to compute portfolio stats: %v", apperrors.ErrInternalServer, err)
	}
	return stats, nil
}

func (s *loanOfferServiceImpl) publishCreated(ctx context.Context, offer *LoanOffer) {
	evt := event.NewLoanOfferCreatedEvent(event.LoanOfferPayload{
		LoanOfferID:  offer.ID,
		CustomerID:   offer.CustomerID,
		LoanAmount:   offer.LoanAmount.StringFixed(DecimalPlaces),
		InterestRate: offer.InterestRate.StringFixed(DecimalPlaces),
		LoanTerm:     offer.LoanTerm,
		CreatedAt:    offer.CreatedAt,
	})
	if err := s.publisher.PublishLoanOfferCreated(ctx, evt); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish loan offer created event", "loanOfferID", offer.ID, slog.Any("error", err))
		monitoring.RecordEventPublished("loanoffer.created", "failure")
		return
	}
	monitoring.RecordEventPublished("loanoffer.created", "success")
}
