package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
)

// UseCase use case получения доступности слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	calendar     CalendarClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	calendar CalendarClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает доступность всех экскурсионных окон на дату
//
// Это read-path для страницы выбора слота: при недоступности хранилища
// или календаря выдача деградирует (занятость 0, дата не заблокирована),
// потому что допуск всегда перепроверяет и календарь, и вместимость
// авторитетно в сериализуемой транзакции. Осознанный компромисс:
// страница может показать больше мест, чем есть, но бронирование
// сверх вместимости не пройдет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// Оракул закрытых дат: заблокированная дата недоступна целиком,
	// остаток мест не имеет значения
	dateStatus, err := uc.calendar.GetDateStatus(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: calendar unavailable for %s, assuming open: %v",
			req.Date.Format(domain.DateFormat), err)
		dateStatus = nil
	}

	if dateStatus != nil && dateStatus.Blocked {
		slots := make([]Slot, 0, len(domain.TimeSlots))
		for _, ts := range domain.TimeSlots {
			slots = append(slots, Slot{TimeSlot: ts, AvailableSpots: 0, MaxCapacity: domain.MaxCapacityPerSlot})
		}
		return &Response{
			Date:          req.Date,
			Closed:        true,
			ClosureReason: dateStatus.Reason,
			Slots:         slots,
		}, nil
	}

	slots := make([]Slot, 0, len(domain.TimeSlots))
	for _, ts := range domain.TimeSlots {
		booked, err := uc.bookingRepo.SumSeatsBySlot(ctx, req.Date, ts)
		if err != nil {
			// Fail-open: считаем занятость нулевой, допуск перепроверит
			uc.logger.Error("GetAvailableSlots: ledger read failed for slot %s, degrading to 0 booked: %v", ts, err)
			booked = 0
		}

		available := domain.MaxCapacityPerSlot - booked
		if available < 0 {
			available = 0
		}

		slots = append(slots, Slot{
			TimeSlot:       ts,
			AvailableSpots: available,
			MaxCapacity:    domain.MaxCapacityPerSlot,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for date=%s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
