package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ACS-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/ACS-ConsultationService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями в админке и читающих ручках
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по периоду и статусам
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListTakenSlots возвращает занятые пары (дата, слот) с указанной даты
// Публичная читающая ручка для календаря бронирования
func (s *Service) ListTakenSlots(ctx context.Context, from time.Time) ([]domain.TakenSlot, error) {
	taken, err := s.bookingRepo.ListTakenSlots(ctx, from)
	if err != nil {
		s.logger.Error("ListTakenSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTakenSlots - repository error: %v", ErrInternal, err)
	}
	return taken, nil
}

// Update применяет изменения оператора: жизненный статус, заметки,
// ссылку на встречу
// Переходы статуса допускаются только из upcoming в completed/cancelled
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Status != nil {
		newStatus, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for booking id=%d", *req.Status, id)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("Update: transition %s -> %s not allowed for booking id=%d",
				booking.Status, newStatus, id)
			return nil, ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
			s.logger.Error("Update: failed to update status for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		booking.Status = newStatus
	}

	if req.Notes != nil || req.MeetingLink != nil {
		if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes are too long", ErrInvalidInput)
		}

		if err := s.bookingRepo.UpdateOperatorFields(ctx, id, req.Notes, req.MeetingLink); err != nil {
			s.logger.Error("Update: failed to update operator fields for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		if req.Notes != nil {
			booking.Notes = req.Notes
		}
		if req.MeetingLink != nil {
			booking.MeetingLink = req.MeetingLink
		}
	}

	s.logger.Info("Update: booking id=%d updated", id)
	return models.FromDomainBooking(booking), nil
}

// Stats возвращает сводку по бронированиям за период для админской аналитики
func (s *Service) Stats(ctx context.Context, req *models.StatsRequest) (*domain.BookingStats, error) {
	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: invalid period", ErrInvalidInput)
	}

	stats, err := s.bookingRepo.Stats(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return stats, nil
}
