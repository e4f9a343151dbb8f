package resolve_special_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	storage "github.com/m04kA/FTV-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
)

// UseCase use case рассмотрения специальной заявки администратором
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notif Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notif,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет рассмотрение специальной заявки
// Первое решение окончательно: повторное рассмотрение возвращает
// ErrAlreadyResolved независимо от совпадения вердиктов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveSpecialBooking: reference=%s, decision=%s, reviewer=%s",
		req.Reference, req.Decision, req.ReviewedBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveSpecialBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result              *domain.Booking
		ordinaryBookedCount int
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByReference(txCtx, req.Reference)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("ResolveSpecialBooking: failed to load booking: %v", err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}

		if !booking.IsSpecial {
			return ErrNotSpecialBooking
		}

		if booking.IsResolved() {
			return ErrAlreadyResolved
		}

		// Посетитель мог отозвать заявку до рассмотрения: статус уже
		// терминальный, решение администратора его не переоткрывает
		if booking.IsTerminal() {
			return ErrBookingNotModifiable
		}

		status, specialStatus := resolutionFor(req.Decision)

		// UPDATE с охранным условием по special_status: при гонке двух
		// администраторов побеждает первый, второй получает ErrAlreadyResolved
		err = uc.bookingRepo.ResolveSpecial(txCtx, booking.ID, status, specialStatus, req.ReviewedBy, req.Notes)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyResolved) {
				return ErrAlreadyResolved
			}
			uc.logger.Error("ResolveSpecialBooking: failed to resolve: %v", err)
			return fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
		}

		booking.Status = status
		booking.SpecialStatus = &specialStatus
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Справка о загрузке слота обычными бронированиями: одобрение большой
	// группы поверх занятого слота допустимо, но администратору стоит знать
	if req.Decision == DecisionApprove {
		booked, err := uc.bookingRepo.SumSeatsBySlot(ctx, result.VisitDate, result.TimeSlot)
		if err != nil {
			uc.logger.Warn("ResolveSpecialBooking: failed to read slot occupancy: %v", err)
		} else {
			ordinaryBookedCount = booked
			if booked > 0 {
				uc.logger.Warn("ResolveSpecialBooking: approved %s on slot %s %s with %d ordinary seats already booked",
					result.Reference, result.VisitDate.Format(domain.DateFormat), result.TimeSlot, booked)
			}
		}
	}

	uc.logger.Info("ResolveSpecialBooking: request %s resolved as %s by %s",
		result.Reference, req.Decision, req.ReviewedBy)

	template := notifier.TemplateSpecialApproved
	if req.Decision == DecisionReject {
		template = notifier.TemplateSpecialRejected
	}

	uc.notifier.Enqueue(notifier.Task{
		BookingID: result.ID,
		Template:  template,
		Email:     result.VisitorEmail,
		Phone:     result.VisitorPhone,
		Params: map[string]string{
			"reference": result.Reference,
			"date":      result.VisitDate.Format(domain.DateFormat),
			"time_slot": result.TimeSlot.String(),
			"notes":     req.Notes,
		},
	})

	return &Response{
		Reference:           result.Reference,
		VisitDate:           result.VisitDate,
		TimeSlot:            result.TimeSlot,
		Status:              string(result.Status),
		SpecialStatus:       string(*result.SpecialStatus),
		ReviewedBy:          req.ReviewedBy,
		OrdinaryBookedCount: ordinaryBookedCount,
	}, nil
}

// resolutionFor возвращает пару статусов бронирования для решения администратора
func resolutionFor(decision Decision) (domain.BookingStatus, domain.SpecialStatus) {
	if decision == DecisionApprove {
		return domain.StatusConfirmed, domain.SpecialStatusApproved
	}
	return domain.StatusCancelled, domain.SpecialStatusRejected
}

// validateRequest валидирует запрос на рассмотрение
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Reference) == "" {
		return fmt.Errorf("%w: booking reference is required", ErrInvalidInput)
	}

	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}

	if strings.TrimSpace(req.ReviewedBy) == "" {
		return fmt.Errorf("%w: reviewer is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Notes) == "" {
		return ErrNotesRequired
	}

	return nil
}
