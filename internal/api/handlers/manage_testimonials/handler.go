package manage_testimonials

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/service/testimonials"
	"github.com/m04kA/ACS-ConsultationService/internal/service/testimonials/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные отзыва"
	msgInvalidTestimonialID = "некорректный ID отзыва"
	msgNotFound             = "отзыв не найден"
)

// SetApprovedRequest HTTP request model для модерации отзыва
type SetApprovedRequest struct {
	Approved bool `json:"approved"`
}

type Handler struct {
	service TestimonialService
	logger  Logger
}

func NewHandler(service TestimonialService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/testimonials
// Публичная ручка: отзыв создаётся неодобренным
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTestimonialRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /testimonials - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	testimonial, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, testimonials.ErrInvalidInput):
			h.logger.Warn("POST /testimonials - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /testimonials - Failed to create testimonial: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /testimonials - Testimonial created: id=%d", testimonial.ID)
	handlers.RespondJSON(w, http.StatusCreated, testimonial)
}

// HandleListPublic GET /api/v1/testimonials
// Публичная ручка: только одобренные отзывы
func (h *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /testimonials - Failed to list testimonials: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListAll GET /api/v1/admin/testimonials
// Админская ручка: все отзывы, включая неодобренные
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), false)
	if err != nil {
		h.logger.Error("GET /admin/testimonials - Failed to list testimonials: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSetApproved PATCH /api/v1/admin/testimonials/{testimonialId}
func (h *Handler) HandleSetApproved(w http.ResponseWriter, r *http.Request) {
	testimonialID, ok := h.testimonialIDFromRequest(w, r)
	if !ok {
		return
	}

	var req SetApprovedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/testimonials/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetApproved(r.Context(), testimonialID, req.Approved); err != nil {
		switch {
		case errors.Is(err, testimonials.ErrTestimonialNotFound):
			h.logger.Warn("PATCH /admin/testimonials/{id} - Not found: testimonial_id=%d", testimonialID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/testimonials/{id} - Failed to moderate testimonial: testimonial_id=%d, error=%v",
				testimonialID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/testimonials/{id} - Testimonial moderated: testimonial_id=%d, approved=%t",
		testimonialID, req.Approved)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDelete DELETE /api/v1/admin/testimonials/{testimonialId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	testimonialID, ok := h.testimonialIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), testimonialID); err != nil {
		switch {
		case errors.Is(err, testimonials.ErrTestimonialNotFound):
			h.logger.Warn("DELETE /admin/testimonials/{id} - Not found: testimonial_id=%d", testimonialID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/testimonials/{id} - Failed to delete testimonial: testimonial_id=%d, error=%v",
				testimonialID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/testimonials/{id} - Testimonial deleted: testimonial_id=%d", testimonialID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) testimonialIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	testimonialID, err := strconv.ParseInt(vars["testimonialId"], 10, 64)
	if err != nil {
		h.logger.Warn("admin/testimonials - Invalid testimonial ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTestimonialID)
		return 0, false
	}
	return testimonialID, true
}
