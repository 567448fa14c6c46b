package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	confirmPayment "github.com/m04kA/ACS-ConsultationService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные подтверждения"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotConfirmed       = "оплата ещё не подтверждена платёжным шлюзом"
	msgSlotTaken          = "слот уже занят другим оплаченным бронированием"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/confirm - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrNotConfirmed):
			h.logger.Warn("POST /payments/confirm - Not confirmed by gateway: booking_id=%d, order_id=%s",
				req.BookingID, req.OrderID)
			handlers.RespondError(w, http.StatusConflict, msgNotConfirmed)

		case errors.Is(err, confirmPayment.ErrSlotTaken):
			h.logger.Warn("POST /payments/confirm - Slot taken by another paid booking: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("POST /payments/confirm - Failed to confirm payment: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/confirm - Payment confirmed: booking_id=%d, already_paid=%t",
		result.BookingID, result.AlreadyPaid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
