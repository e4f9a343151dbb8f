package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FTV-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notif Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notif,
		logger:      logger,
	}
}

// GetByReference получает бронирование по публичному номеру
// Номер бронирования выдается только посетителю и выступает ключом доступа
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking %s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking %s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for booking %s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking)

	if booking.IsSpecial {
		docs, err := s.bookingRepo.GetDocuments(ctx, booking.ID)
		if err != nil {
			s.logger.Error("GetByReference: failed to load documents for booking %s: %v", reference, err)
			return nil, fmt.Errorf("%w: GetByReference - failed to load documents: %v", ErrInternal, err)
		}
		resp.Documents = models.FromDomainDocuments(docs)
	}

	return resp, nil
}

// List получает список бронирований с фильтрацией (админ-консоль)
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.OnlySpecial {
		logMsg += ", onlySpecial=true"
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

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

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по публичному номеру
// Операция идемпотентна: повторная отмена возвращает успех без изменений.
// Завершенное бронирование отменить нельзя
func (s *Service) Cancel(ctx context.Context, reference string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking %s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking %s not found", reference)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking %s: %v", reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: booking %s already cancelled, no-op", reference)
		return nil
	}

	if booking.Status == domain.StatusCompleted {
		s.logger.Warn("Cancel: booking %s is completed and cannot be cancelled", reference)
		return ErrBookingNotModifiable
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, req.Reason); err != nil {
		s.logger.Error("Cancel: repository error for booking %s: %v", reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking %s", reference)

	s.notifier.Enqueue(notifier.Task{
		BookingID: booking.ID,
		Template:  notifier.TemplateBookingCancelled,
		Email:     booking.VisitorEmail,
		Phone:     booking.VisitorPhone,
		Params: map[string]string{
			"reference": booking.Reference,
			"date":      booking.VisitDate.Format(domain.DateFormat),
			"time_slot": booking.TimeSlot.String(),
		},
	})

	return nil
}
