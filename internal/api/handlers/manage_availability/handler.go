package manage_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	"github.com/m04kA/ACS-ConsultationService/internal/service/availability"
	"github.com/m04kA/ACS-ConsultationService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные расписания"
	msgInvalidTemplateID   = "некорректный ID шаблона"
	msgInvalidBlockedID    = "некорректный ID заблокированной даты"
	msgInvalidFrom         = "некорректный формат параметра from, ожидается YYYY-MM-DD"
	msgTemplateExists      = "шаблон для этого дня недели и слота уже существует"
	msgTemplateNotFound    = "шаблон не найден"
	msgDateAlreadyBlocked  = "дата уже заблокирована"
	msgBlockedDateNotFound = "заблокированная дата не найдена"
)

// SetActiveRequest HTTP request model для включения/выключения шаблона
type SetActiveRequest struct {
	Active bool `json:"active"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreateTemplate POST /api/v1/admin/availability/templates
func (h *Handler) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tpl, err := h.service.CreateTemplate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/availability/templates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrTemplateExists):
			h.logger.Warn("POST /admin/availability/templates - Template exists: weekday=%d, slot=%q",
				req.Weekday, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgTemplateExists)

		default:
			h.logger.Error("POST /admin/availability/templates - Failed to create template: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/availability/templates - Template created: id=%d", tpl.ID)
	handlers.RespondJSON(w, http.StatusCreated, tpl)
}

// HandleListTemplates GET /api/v1/admin/availability/templates
func (h *Handler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListTemplates(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/availability/templates - Failed to list templates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSetTemplateActive PATCH /api/v1/admin/availability/templates/{templateId}
func (h *Handler) HandleSetTemplateActive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID, err := strconv.ParseInt(vars["templateId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/availability/templates/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetTemplateActive(r.Context(), templateID, req.Active); err != nil {
		switch {
		case errors.Is(err, availability.ErrTemplateNotFound):
			h.logger.Warn("PATCH /admin/availability/templates/{id} - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		default:
			h.logger.Error("PATCH /admin/availability/templates/{id} - Failed to update template: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/availability/templates/{id} - Template updated: template_id=%d, active=%t",
		templateID, req.Active)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDeleteTemplate DELETE /api/v1/admin/availability/templates/{templateId}
func (h *Handler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID, err := strconv.ParseInt(vars["templateId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), templateID); err != nil {
		switch {
		case errors.Is(err, availability.ErrTemplateNotFound):
			h.logger.Warn("DELETE /admin/availability/templates/{id} - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		default:
			h.logger.Error("DELETE /admin/availability/templates/{id} - Failed to delete template: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/availability/templates/{id} - Template deleted: template_id=%d", templateID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleCreateBlockedDate POST /api/v1/admin/availability/blocked-dates
func (h *Handler) HandleCreateBlockedDate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blocked, err := h.service.CreateBlockedDate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/availability/blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrDateAlreadyBlocked):
			h.logger.Warn("POST /admin/availability/blocked-dates - Date already blocked: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDateAlreadyBlocked)

		default:
			h.logger.Error("POST /admin/availability/blocked-dates - Failed to block date: date=%s, error=%v",
				req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/availability/blocked-dates - Date blocked: id=%d, date=%s", blocked.ID, blocked.Date)
	handlers.RespondJSON(w, http.StatusCreated, blocked)
}

// HandleListBlockedDates GET /api/v1/admin/availability/blocked-dates?from=YYYY-MM-DD
func (h *Handler) HandleListBlockedDates(w http.ResponseWriter, r *http.Request) {
	from := time.Now().Truncate(24 * time.Hour)
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(domain.DateFormat, fromParam)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	result, err := h.service.ListBlockedDates(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /admin/availability/blocked-dates - Failed to list blocked dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeleteBlockedDate DELETE /api/v1/admin/availability/blocked-dates/{blockedDateId}
func (h *Handler) HandleDeleteBlockedDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockedID, err := strconv.ParseInt(vars["blockedDateId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockedID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), blockedID); err != nil {
		switch {
		case errors.Is(err, availability.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /admin/availability/blocked-dates/{id} - Not found: id=%d", blockedID)
			handlers.RespondNotFound(w, msgBlockedDateNotFound)

		default:
			h.logger.Error("DELETE /admin/availability/blocked-dates/{id} - Failed to unblock date: id=%d, error=%v",
				blockedID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/availability/blocked-dates/{id} - Date unblocked: id=%d", blockedID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
