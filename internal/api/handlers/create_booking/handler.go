package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	createBooking "github.com/m04kA/ACS-ConsultationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgDateInPast         = "нельзя забронировать дату в прошлом"
	msgDateBlocked        = "выбранная дата недоступна для бронирования"
	msgSlotNotOffered     = "выбранный слот не предлагается в этот день"
	msgSlotTaken          = "выбранный слот уже занят"
	msgPaymentInit        = "не удалось создать платёжную сессию, попробуйте оплатить позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDateBlocked)

		case errors.Is(err, createBooking.ErrSlotNotOffered):
			h.logger.Warn("POST /bookings - Slot not offered: date=%s, slot=%q", req.Date, req.TimeSlot)
			handlers.RespondBadRequest(w, msgSlotNotOffered)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: date=%s, slot=%q", req.Date, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrPaymentInit):
			h.logger.Error("POST /bookings - Payment init failed: date=%s, slot=%q, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentInit)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%q, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, date=%s, slot=%q, promo_applied=%t",
		result.BookingID, req.Date, req.TimeSlot, result.PromoApplied)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
