package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	storage "github.com/m04kA/FTV-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
)

// UseCase use case переноса бронирования на другой слот
type UseCase struct {
	bookingRepo  BookingRepository
	calendar     CalendarClient
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	calendar CalendarClient,
	notif Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		calendar:     calendar,
		notifier:     notif,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет перенос бронирования
// Целевой слот проходит тот же допуск, что и при создании, но места
// самого бронирования исключаются из подсчета - перенос в собственный
// слот никогда не отказывает из-за собственных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: reference=%s, newDate=%s, newSlot=%s",
		req.Reference, req.NewDate.Format(domain.DateFormat), req.NewSlot)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if isDateInPast(req.NewDate, now) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.NewDate.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	dateStatus, err := uc.calendar.GetDateStatus(ctx, req.NewDate)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get date status for %s: %v",
			req.NewDate.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to check calendar: %v", ErrInternal, err)
	}

	if dateStatus.Blocked {
		reason := ""
		if dateStatus.Reason != nil {
			reason = *dateStatus.Reason
		}
		uc.logger.Warn("RescheduleBooking: date %s is blocked: %s", req.NewDate.Format(domain.DateFormat), reason)
		return nil, &DateClosedError{Reason: reason}
	}

	var result *domain.Booking
	var spotsRemaining int

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByReference(txCtx, req.Reference)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to load booking: %v", err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking %s has status %s", booking.Reference, booking.Status)
			return ErrBookingNotModifiable
		}

		adults := booking.AdultCount
		children := booking.ChildCount
		total := booking.VisitorCount

		// Спец. бронирования не занимают мест в леджере и хранятся с нулевым
		// составом группы (размер зафиксирован в requested_capacity), поэтому
		// лимиты обычной группы и проверка вместимости к ним не применяются
		if !booking.IsSpecial {
			if req.AdultCount != nil {
				adults = *req.AdultCount
			}
			if req.ChildCount != nil {
				children = *req.ChildCount
			}
			total = adults + children

			if adults < 1 || children < 0 {
				return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
			}
			if total > domain.MaxVisitorsPerBooking {
				return fmt.Errorf("%w: requested %d, maximum %d",
					ErrVisitorCountTooLarge, total, domain.MaxVisitorsPerBooking)
			}

			bookings, err := uc.bookingRepo.GetActiveBySlot(txCtx, req.NewDate, req.NewSlot, &booking.ID)
			if err != nil {
				uc.logger.Error("RescheduleBooking: failed to get slot bookings: %v", err)
				return fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
			}

			booked := 0
			for _, b := range bookings {
				booked += b.SeatCount()
			}

			if booked+total > domain.MaxCapacityPerSlot {
				available := domain.MaxCapacityPerSlot - booked
				uc.logger.Warn("RescheduleBooking: target slot full, %d/%d seats taken, requested %d",
					booked, domain.MaxCapacityPerSlot, total)
				return &SlotFullError{AvailableSpots: available}
			}

			spotsRemaining = domain.MaxCapacityPerSlot - booked - total
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, req.NewSlot, adults, children); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking: %v", err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.VisitDate = req.NewDate
		booking.TimeSlot = req.NewSlot
		booking.AdultCount = adults
		booking.ChildCount = children
		if !booking.IsSpecial {
			booking.VisitorCount = total
		}
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking %s moved to %s %s",
		result.Reference, result.VisitDate.Format(domain.DateFormat), result.TimeSlot)

	// Перенос подтверждается только письмом, SMS-канал не задействуется
	uc.notifier.Enqueue(notifier.Task{
		BookingID: result.ID,
		Template:  notifier.TemplateBookingRescheduled,
		Email:     result.VisitorEmail,
		Params: map[string]string{
			"reference": result.Reference,
			"date":      result.VisitDate.Format(domain.DateFormat),
			"time_slot": result.TimeSlot.String(),
		},
	})

	return &Response{
		Reference:               result.Reference,
		VisitDate:               result.VisitDate,
		TimeSlot:                result.TimeSlot,
		VisitorCount:            result.VisitorCount,
		Status:                  string(result.Status),
		AvailableSpotsRemaining: spotsRemaining,
	}, nil
}

// validateRequest валидирует запрос на перенос
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Reference) == "" {
		return fmt.Errorf("%w: booking reference is required", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: new visit date is required", ErrInvalidInput)
	}

	if req.NewSlot.IsZero() {
		return fmt.Errorf("%w: new time slot is required", ErrInvalidInput)
	}

	if !domain.IsValidTimeSlot(req.NewSlot) {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, req.NewSlot)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
