package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings"
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings/models"
)

const (
	msgInvalidQuery  = "некорректные параметры фильтра"
	msgInvalidPeriod = "некорректный период, ожидаются параметры from и to в формате YYYY-MM-DD"
)

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

// Handle GET /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStats GET /api/v1/admin/bookings/stats?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, errFrom := time.Parse(domain.DateFormat, query.Get("from"))
	to, errTo := time.Parse(domain.DateFormat, query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /admin/bookings/stats - Invalid period: from=%q, to=%q",
			query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	stats, err := h.service.Stats(r.Context(), &models.StatsRequest{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/bookings/stats - Failed to get stats: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainStats(from, to, stats))
}
