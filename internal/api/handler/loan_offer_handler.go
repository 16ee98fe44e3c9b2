package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"loan-offers/internal/api/handler/dto"
	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/pkg/apperrors"
)

type LoanOfferHandler struct {
	service loanoffer.LoanOfferService
	logger  *slog.Logger
}

func NewLoanOfferHandler(s loanoffer.LoanOfferService, l *slog.Logger) *LoanOfferHandler {
	if s == nil {
		panic("loan offer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &LoanOfferHandler{
		service: s,
		logger:  l.With("component", "LoanOfferHandler"),
	}
}

// CreateLoanOffer handles POST /loanoffers
// @Summary Create a loan offer
// @Description Creates a loan offer for an existing customer. Amount, rate and term must all be strictly positive.
// @Tags LoanOffers
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanOfferRequest true "Loan offer creation request"
// @Success 201 {object} dto.LoanOfferResponse "Loan offer successfully created"
// @Failure 400 {object} dto.FieldErrorsResponse "Field validation or reference errors"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loanoffers [post]
// @Security BearerAuth
func (h *LoanOfferHandler) CreateLoanOffer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create loan offer request")

	body, err := readBody(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	input, err := dto.ParseCreateLoanOfferRequest(body)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	offer, err := h.service.CreateLoanOffer(r.Context(), input)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelInfo
		}
		h.logger.Log(r.Context(), level, "Service failed to create loan offer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanOfferResponse(offer)
	h.logger.InfoContext(r.Context(), "Loan offer created successfully",
		slog.Int64("loanOfferID", resp.ID), slog.String("createdBy", requestSubject(r.Context())))
	respondJSON(w, http.StatusCreated, resp)
}

// GetLoanOffer handles GET /loanoffers/{loanOfferID}
// @Summary Retrieve a loan offer
// @Tags LoanOffers
// @Produce json
// @Param loanOfferID path int true "Loan offer ID"
// @Success 200 {object} dto.LoanOfferResponse "Loan offer retrieved"
// @Failure 404 {object} dto.ErrorResponse "Loan offer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loanoffers/{loanOfferID} [get]
// @Security BearerAuth
func (h *LoanOfferHandler) GetLoanOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := getIDFromURL(r, "loanOfferID")
	if err != nil {
		respondError(w, err)
		return
	}

	offer, err := h.service.GetLoanOffer(r.Context(), offerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get loan offer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanOfferResponse(offer))
}
