package models

import (
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
)

// CreateTestimonialRequest запрос на публикацию отзыва
type CreateTestimonialRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// TestimonialResponse отзыв в ответе API
type TestimonialResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// TestimonialListResponse список отзывов
type TestimonialListResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
}

// FromDomainTestimonial конвертирует доменный отзыв в ответ API
func FromDomainTestimonial(t *domain.Testimonial) *TestimonialResponse {
	return &TestimonialResponse{
		ID:        t.ID,
		Author:    t.Author,
		Text:      t.Text,
		Rating:    t.Rating,
		Approved:  t.Approved,
		CreatedAt: t.CreatedAt,
	}
}

// FromDomainTestimonialList конвертирует список доменных отзывов в ответ API
func FromDomainTestimonialList(ts []*domain.Testimonial) *TestimonialListResponse {
	out := make([]TestimonialResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, *FromDomainTestimonial(t))
	}
	return &TestimonialListResponse{Testimonials: out}
}
