package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
)

// UseCase use case создания обычного бронирования
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

// Execute выполняет допуск бронирования
// Проверка вместимости и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк слота - конкурирующие заявки на один
// слот не могут превысить вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, date=%s, slot=%s, adults=%d, children=%d",
		req.VisitorEmail, req.Date.Format(domain.DateFormat), req.TimeSlot, req.AdultCount, req.ChildCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация числа посетителей (большие группы - через спец. заявку)
	if err := validateVisitorCount(req); err != nil {
		uc.logger.Warn("CreateBooking: visitor count validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 3. Дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 4. Оракул закрытых дат: закрытия и праздники блокируют дату
	// независимо от остатка мест. Путь записи не деградирует при
	// недоступности календаря - отказываем
	dateStatus, err := uc.calendar.GetDateStatus(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get date status for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to check calendar: %v", ErrInternal, err)
	}

	if dateStatus.Blocked {
		reason := ""
		if dateStatus.Reason != nil {
			reason = *dateStatus.Reason
		}
		uc.logger.Warn("CreateBooking: date %s is blocked: %s", req.Date.Format(domain.DateFormat), reason)
		return nil, &DateClosedError{Reason: reason}
	}

	total := req.TotalVisitors()

	var result *domain.Booking
	var spotsRemaining int

	// 5. Проверка вместимости + вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Активные бронирования слота с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveBySlot(txCtx, req.Date, req.TimeSlot, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
		}

		booked := sumSeats(bookings)

		// 5.2. Инвариант: booked + total <= MaxCapacityPerSlot
		if booked+total > domain.MaxCapacityPerSlot {
			available := domain.MaxCapacityPerSlot - booked
			uc.logger.Warn("CreateBooking: slot full, %d/%d seats taken, requested %d",
				booked, domain.MaxCapacityPerSlot, total)
			return &SlotFullError{AvailableSpots: available}
		}

		// 5.3. Обычные бронирования подтверждаются сразу - ни оплаты,
		// ни ручной модерации в этом процессе нет
		booking := &domain.Booking{
			Reference:    domain.NewBookingReference(now),
			VisitorName:  req.VisitorName,
			VisitorEmail: req.VisitorEmail,
			VisitorPhone: req.VisitorPhone,
			VisitDate:    req.Date,
			TimeSlot:     req.TimeSlot,
			AdultCount:   req.AdultCount,
			ChildCount:   req.ChildCount,
			VisitorCount: total,
			Status:       domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		spotsRemaining = domain.MaxCapacityPerSlot - booked - total
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking %s created, %d spots remaining in slot",
		result.Reference, spotsRemaining)

	// 6. Уведомления после фиксации транзакции: best-effort, сбой
	// доставки не влияет на результат бронирования
	uc.notifier.Enqueue(notifier.Task{
		BookingID: result.ID,
		Template:  notifier.TemplateBookingConfirmed,
		Email:     result.VisitorEmail,
		Phone:     result.VisitorPhone,
		Params: map[string]string{
			"reference": result.Reference,
			"date":      result.VisitDate.Format(domain.DateFormat),
			"time_slot": result.TimeSlot.String(),
			"visitors":  fmt.Sprintf("%d", result.VisitorCount),
		},
	})

	return &Response{
		Reference:               result.Reference,
		VisitDate:               result.VisitDate,
		TimeSlot:                result.TimeSlot,
		VisitorCount:            result.VisitorCount,
		Status:                  string(result.Status),
		AvailableSpotsRemaining: spotsRemaining,
		CreatedAt:               result.CreatedAt,
	}, nil
}
