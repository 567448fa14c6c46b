package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	availabilityRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/availability"
	"github.com/m04kA/ACS-ConsultationService/internal/service/availability/models"
)

// Service сервис управления расписанием: шаблоны слотов и заблокированные даты
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateTemplate создает новый шаблон доступности
func (s *Service) CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be in range 0-6", ErrInvalidInput)
	}
	slot := strings.TrimSpace(req.TimeSlot)
	if slot == "" {
		return nil, fmt.Errorf("%w: time_slot is required", ErrInvalidInput)
	}

	tpl := &domain.AvailabilityTemplate{
		Weekday:  req.Weekday,
		TimeSlot: slot,
		Active:   true,
	}
	if req.Active != nil {
		tpl.Active = *req.Active
	}

	created, err := s.repo.CreateTemplate(ctx, tpl)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateExists) {
			s.logger.Warn("CreateTemplate: duplicate template weekday=%d slot=%q", req.Weekday, slot)
			return nil, ErrTemplateExists
		}
		s.logger.Error("CreateTemplate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTemplate: created template id=%d weekday=%d slot=%q", created.ID, created.Weekday, created.TimeSlot)
	return models.FromDomainTemplate(created), nil
}

// ListTemplates возвращает все шаблоны доступности
func (s *Service) ListTemplates(ctx context.Context) (*models.TemplateListResponse, error) {
	tpls, err := s.repo.ListTemplates(ctx)
	if err != nil {
		s.logger.Error("ListTemplates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTemplates - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTemplateList(tpls), nil
}

// SetTemplateActive включает или выключает шаблон доступности
func (s *Service) SetTemplateActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetTemplateActive(ctx, id, active); err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("SetTemplateActive: repository error for template id=%d: %v", id, err)
		return fmt.Errorf("%w: SetTemplateActive - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("SetTemplateActive: template id=%d active=%t", id, active)
	return nil
}

// DeleteTemplate удаляет шаблон доступности
// Существующие бронирования затронуты не будут
func (s *Service) DeleteTemplate(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("DeleteTemplate: repository error for template id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteTemplate - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("DeleteTemplate: deleted template id=%d", id)
	return nil
}

// CreateBlockedDate блокирует календарную дату для бронирования
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in format %s", ErrInvalidInput, domain.DateFormat)
	}

	blocked := &domain.BlockedDate{
		Date:   date,
		Reason: req.Reason,
	}

	created, err := s.repo.CreateBlockedDate(ctx, blocked)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDateAlreadyBlocked) {
			s.logger.Warn("CreateBlockedDate: date %s already blocked", req.Date)
			return nil, ErrDateAlreadyBlocked
		}
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: blocked date %s id=%d", req.Date, created.ID)
	return models.FromDomainBlockedDate(created), nil
}

// ListBlockedDates возвращает заблокированные даты начиная с указанной
func (s *Service) ListBlockedDates(ctx context.Context, from time.Time) (*models.BlockedDateListResponse, error) {
	blocked, err := s.repo.ListBlockedDates(ctx, from)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlockedDateList(blocked), nil
}

// DeleteBlockedDate снимает блокировку с даты
func (s *Service) DeleteBlockedDate(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBlockedDate(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("DeleteBlockedDate: unblocked date id=%d", id)
	return nil
}
