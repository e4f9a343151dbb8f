package submit_special_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/pkg/ptr"
)

// UseCase use case подачи заявки на специальное бронирование
// Спец. заявки обходят учет вместимости слотов: решение о допуске
// большой группы принимает администратор, а не арифметика леджера
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

// Execute выполняет подачу спец. заявки
// Заявка и метаданные документов фиксируются в одной транзакции -
// либо все вместе, либо ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitSpecialBooking: email=%s, date=%s, slot=%s, capacity=%d, documents=%d",
		req.VisitorEmail, req.Date.Format(domain.DateFormat), req.TimeSlot, req.RequestedCapacity, len(req.Documents))

	// 1. Валидация (порог, обоснование, документы)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitSpecialBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("SubmitSpecialBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 3. Закрытая дата блокирует и спец. заявки - заводу все равно
	// нужно быть открытым
	dateStatus, err := uc.calendar.GetDateStatus(ctx, req.Date)
	if err != nil {
		uc.logger.Error("SubmitSpecialBooking: failed to get date status: %v", err)
		return nil, fmt.Errorf("%w: failed to check calendar: %v", ErrInternal, err)
	}
	if dateStatus.Blocked {
		uc.logger.Warn("SubmitSpecialBooking: date %s is blocked", req.Date.Format(domain.DateFormat))
		return nil, ErrDateClosed
	}

	var result *domain.Booking

	// 4. Заявка + документы в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		specialStatus := domain.SpecialStatusPending

		booking := &domain.Booking{
			Reference:    domain.NewBookingReference(now),
			VisitorName:  req.VisitorName,
			VisitorEmail: req.VisitorEmail,
			VisitorPhone: req.VisitorPhone,
			VisitDate:    req.Date,
			TimeSlot:     req.TimeSlot,
			AdultCount:   0,
			ChildCount:   0,
			VisitorCount: 0, // Спец. заявки не занимают места в леджере
			Status:       domain.StatusPending,
			IsSpecial:    true,
			RequestedCapacity: ptr.Ptr(req.RequestedCapacity),
			SpecialReason:     ptr.Ptr(req.Reason),
			SpecialStatus:     &specialStatus,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("SubmitSpecialBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		docs := make([]*domain.BookingDocument, 0, len(req.Documents))
		for _, d := range req.Documents {
			docs = append(docs, &domain.BookingDocument{
				Name:      d.Name,
				URL:       d.URL,
				PublicID:  d.PublicID,
				SizeBytes: d.SizeBytes,
				MimeType:  d.MimeType,
			})
		}

		if err := uc.bookingRepo.CreateDocuments(txCtx, created.ID, docs); err != nil {
			uc.logger.Error("SubmitSpecialBooking: failed to create documents: %v", err)
			return fmt.Errorf("%w: failed to create documents: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitSpecialBooking: request %s created with %d documents",
		result.Reference, len(req.Documents))

	// 5. Уведомление о принятой заявке после фиксации транзакции
	uc.notifier.Enqueue(notifier.Task{
		BookingID: result.ID,
		Template:  notifier.TemplateSpecialPending,
		Email:     result.VisitorEmail,
		Phone:     result.VisitorPhone,
		Params: map[string]string{
			"reference": result.Reference,
			"date":      result.VisitDate.Format(domain.DateFormat),
			"time_slot": result.TimeSlot.String(),
			"capacity":  fmt.Sprintf("%d", req.RequestedCapacity),
		},
	})

	return &Response{
		Reference:     result.Reference,
		VisitDate:     result.VisitDate,
		TimeSlot:      result.TimeSlot,
		Status:        string(result.Status),
		SpecialStatus: string(domain.SpecialStatusPending),
		CreatedAt:     result.CreatedAt,
	}, nil
}
