package models

import (
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// CreateTemplateRequest запрос на создание шаблона доступности
type CreateTemplateRequest struct {
	Weekday  int    `json:"weekday"`
	TimeSlot string `json:"time_slot"`
	Active   *bool  `json:"active,omitempty"`
}

// TemplateResponse шаблон доступности в ответе API
type TemplateResponse struct {
	ID        int64     `json:"id"`
	Weekday   int       `json:"weekday"`
	TimeSlot  string    `json:"time_slot"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateListResponse список шаблонов доступности
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// CreateBlockedDateRequest запрос на блокировку даты
type CreateBlockedDateRequest struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// BlockedDateResponse заблокированная дата в ответе API
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blocked_dates"`
}

// FromDomainTemplate конвертирует доменный шаблон в ответ API
func FromDomainTemplate(tpl *domain.AvailabilityTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:        tpl.ID,
		Weekday:   tpl.Weekday,
		TimeSlot:  tpl.TimeSlot,
		Active:    tpl.Active,
		CreatedAt: tpl.CreatedAt,
		UpdatedAt: tpl.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список доменных шаблонов в ответ API
func FromDomainTemplateList(tpls []*domain.AvailabilityTemplate) *TemplateListResponse {
	out := make([]TemplateResponse, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, *FromDomainTemplate(tpl))
	}
	return &TemplateListResponse{Templates: out}
}

// FromDomainBlockedDate конвертирует доменную заблокированную дату в ответ API
func FromDomainBlockedDate(blocked *domain.BlockedDate) *BlockedDateResponse {
	return &BlockedDateResponse{
		ID:        blocked.ID,
		Date:      blocked.Date.Format(domain.DateFormat),
		Reason:    blocked.Reason,
		CreatedAt: blocked.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список заблокированных дат в ответ API
func FromDomainBlockedDateList(blocked []*domain.BlockedDate) *BlockedDateListResponse {
	out := make([]BlockedDateResponse, 0, len(blocked))
	for _, b := range blocked {
		out = append(out, *FromDomainBlockedDate(b))
	}
	return &BlockedDateListResponse{BlockedDates: out}
}
