package manage_promocodes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes"
	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные промокода"
	msgInvalidPromoID     = "некорректный ID промокода"
	msgCodeExists         = "промокод с таким кодом уже существует"
	msgNotFound           = "промокод не найден"
)

// SetActiveRequest HTTP request model для включения/выключения промокода
type SetActiveRequest struct {
	Active bool `json:"active"`
}

type Handler struct {
	service PromoService
	logger  Logger
}

func NewHandler(service PromoService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/promocodes
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/promocodes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	promo, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrInvalidInput):
			h.logger.Warn("POST /admin/promocodes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, promocodes.ErrCodeExists):
			h.logger.Warn("POST /admin/promocodes - Code exists: code=%q", req.Code)
			handlers.RespondError(w, http.StatusConflict, msgCodeExists)

		default:
			h.logger.Error("POST /admin/promocodes - Failed to create promo: code=%q, error=%v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/promocodes - Promo created: id=%d, code=%s", promo.ID, promo.Code)
	handlers.RespondJSON(w, http.StatusCreated, promo)
}

// HandleList GET /api/v1/admin/promocodes
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/promocodes - Failed to list promos: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSetActive PATCH /api/v1/admin/promocodes/{promoId}
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	promoID, ok := h.promoIDFromRequest(w, r)
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/promocodes/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetActive(r.Context(), promoID, req.Active); err != nil {
		switch {
		case errors.Is(err, promocodes.ErrPromoNotFound):
			h.logger.Warn("PATCH /admin/promocodes/{id} - Promo not found: promo_id=%d", promoID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/promocodes/{id} - Failed to update promo: promo_id=%d, error=%v",
				promoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/promocodes/{id} - Promo updated: promo_id=%d, active=%t", promoID, req.Active)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDelete DELETE /api/v1/admin/promocodes/{promoId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	promoID, ok := h.promoIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), promoID); err != nil {
		switch {
		case errors.Is(err, promocodes.ErrPromoNotFound):
			h.logger.Warn("DELETE /admin/promocodes/{id} - Promo not found: promo_id=%d", promoID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/promocodes/{id} - Failed to delete promo: promo_id=%d, error=%v",
				promoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/promocodes/{id} - Promo deleted: promo_id=%d", promoID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) promoIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	promoID, err := strconv.ParseInt(vars["promoId"], 10, 64)
	if err != nil {
		h.logger.Warn("admin/promocodes - Invalid promo ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPromoID)
		return 0, false
	}
	return promoID, true
}
