package get_taken_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

const msgInvalidFrom = "некорректный формат параметра from, ожидается YYYY-MM-DD"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/taken?from=YYYY-MM-DD
// Без параметра from отдаёт занятые слоты начиная с сегодняшнего дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from := time.Now().Truncate(24 * time.Hour)
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(domain.DateFormat, fromParam)
		if err != nil {
			h.logger.Warn("GET /availability/taken - Invalid from %q: %v", fromParam, err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	taken, err := h.service.ListTakenSlots(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /availability/taken - Failed to list taken slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainTakenSlots(taken))
}
