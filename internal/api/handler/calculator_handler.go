package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"loan-offers/internal/api/handler/dto"
	"loan-offers/internal/domain/calculator"
	"loan-offers/internal/infrastructure/monitoring"
	"loan-offers/internal/pkg/apperrors"
)

type CalculatorHandler struct {
	logger *slog.Logger
}

func NewCalculatorHandler(l *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{logger: l.With("component", "CalculatorHandler")}
}

// CalculateMonthlyPayment handles POST /loan-calculator
// @Summary Calculate a monthly payment
// @Description Computes the fixed monthly repayment for an amortized loan. A zero interest rate is allowed. Nothing is stored.
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.LoanCalculatorRequest true "Calculator parameters"
// @Success 200 {object} dto.LoanCalculatorResponse "Monthly payment rounded to cents"
// @Failure 400 {object} dto.CalculatorErrorResponse "Invalid parameter"
// @Router /loan-calculator [post]
// @Security BearerAuth
func (h *CalculatorHandler) CalculateMonthlyPayment(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	input, err := dto.ParseLoanCalculatorRequest(body)
	if err != nil {
		h.logger.InfoContext(r.Context(), "Rejected calculator input", slog.Any("error", err))
		monitoring.RecordCalculation("invalid_input")
		respondJSON(w, http.StatusBadRequest, dto.CalculatorErrorResponse{"error": dto.MsgInvalidInput})
		return
	}

	payment, err := calculator.MonthlyPayment(input)
	if errors.Is(err, calculator.ErrPaymentOutOfRange) {
		h.logger.InfoContext(r.Context(), "Calculator result out of range", slog.Any("error", err))
		monitoring.RecordCalculation("invalid_input")
		respondJSON(w, http.StatusBadRequest, dto.CalculatorErrorResponse{"error": dto.MsgInvalidInput})
		return
	}
	if err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			h.logger.InfoContext(r.Context(), "Calculator validation failed", "field", ve.Field)
			monitoring.RecordCalculation("validation_failed")
			respondJSON(w, http.StatusBadRequest, dto.CalculatorErrorResponse{ve.Field: ve.Message})
			return
		}
		respondError(w, err)
		return
	}

	monitoring.RecordCalculation("success")
	respondJSON(w, http.StatusOK, dto.LoanCalculatorResponse{MonthlyPayment: payment})
}
