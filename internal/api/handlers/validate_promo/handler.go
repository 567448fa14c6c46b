package validate_promo

import (
	"errors"
	"net/http"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
	"github.com/m04kA/ACS-ConsultationService/internal/service/promocodes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCodeRequired       = "промокод обязателен"
)

// ValidatePromoRequest HTTP request model
type ValidatePromoRequest struct {
	Code string `json:"code"`
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

// Handle POST /api/v1/promocodes/validate
//
// Информационная проверка промокода: не расходует лимит применений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidatePromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promocodes/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Validate(r.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgCodeRequired)

		default:
			h.logger.Error("POST /promocodes/validate - Failed to validate code %q: %v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promocodes/validate - Validated code %s: valid=%t reason=%s",
		result.Code, result.Valid, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, result)
}
