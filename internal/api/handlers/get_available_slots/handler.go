package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	getAvailableSlots "github.com/m04kA/ACS-ConsultationService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "параметр date обязателен"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast  = "дата в прошлом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date %q: %v", dateParam, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /availability/slots - Date in past: %s", dateParam)
			handlers.RespondBadRequest(w, msgDateInPast)

		default:
			h.logger.Error("GET /availability/slots - Failed to get slots for %s: %v", dateParam, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
