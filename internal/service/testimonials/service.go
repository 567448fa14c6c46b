package testimonials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	testimonialRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/testimonial"
	"github.com/m04kA/ACS-ConsultationService/internal/service/testimonials/models"
)

// Service сервис отзывов: публичная публикация и модерация в админке
type Service struct {
	repo   TestimonialRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(repo TestimonialRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create публикует новый отзыв
// Отзыв создаётся неодобренным и не виден публично до модерации
func (s *Service) Create(ctx context.Context, req *models.CreateTestimonialRequest) (*models.TestimonialResponse, error) {
	author := strings.TrimSpace(req.Author)
	text := strings.TrimSpace(req.Text)
	if author == "" {
		return nil, fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(text) > domain.MaxTestimonialText {
		return nil, fmt.Errorf("%w: text must not exceed %d characters", ErrInvalidInput, domain.MaxTestimonialText)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be in range 1-5", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, &domain.Testimonial{
		Author: author,
		Text:   text,
		Rating: req.Rating,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created testimonial id=%d rating=%d", created.ID, created.Rating)
	return models.FromDomainTestimonial(created), nil
}

// List возвращает отзывы
// approvedOnly = true для публичной выдачи, false для модерации в админке
func (s *Service) List(ctx context.Context, approvedOnly bool) (*models.TestimonialListResponse, error) {
	ts, err := s.repo.List(ctx, approvedOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTestimonialList(ts), nil
}

// SetApproved одобряет или скрывает отзыв
func (s *Service) SetApproved(ctx context.Context, id int64, approved bool) error {
	if err := s.repo.SetApproved(ctx, id, approved); err != nil {
		if errors.Is(err, testimonialRepo.ErrTestimonialNotFound) {
			return ErrTestimonialNotFound
		}
		s.logger.Error("SetApproved: repository error for testimonial id=%d: %v", id, err)
		return fmt.Errorf("%w: SetApproved - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("SetApproved: testimonial id=%d approved=%t", id, approved)
	return nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, testimonialRepo.ErrTestimonialNotFound) {
			return ErrTestimonialNotFound
		}
		s.logger.Error("Delete: repository error for testimonial id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("Delete: deleted testimonial id=%d", id)
	return nil
}
