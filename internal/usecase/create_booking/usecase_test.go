package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/integrations/calendarservice"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

// fakeBookingRepo хранит бронирования в памяти
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64

	createErr error
	getErr    error
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingRepo) GetActiveBySlot(ctx context.Context, date time.Time, slot types.TimeString, excludeID *int64) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if !b.VisitDate.Equal(date) || b.TimeSlot != slot {
			continue
		}
		if b.IsSpecial || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// fakeCalendar оракул закрытых дат
type fakeCalendar struct {
	blocked bool
	reason  *string
	err     error
}

func (f *fakeCalendar) GetDateStatus(ctx context.Context, date time.Time) (*calendarservice.DateStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &calendarservice.DateStatus{Blocked: f.blocked, Reason: f.reason}, nil
}

// fakeNotifier собирает поставленные в очередь задания
type fakeNotifier struct {
	mu    sync.Mutex
	tasks []notifier.Task
}

func (f *fakeNotifier) Enqueue(task notifier.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// fakeTxManager сериализует транзакции мьютексом, имитируя
// сериализуемую изоляцию для конкурентных сценариев
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func mustSlot(t *testing.T, s string) types.TimeString {
	t.Helper()
	slot, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return slot
}

func newTestUseCase(repo *fakeBookingRepo, cal *fakeCalendar, notif *fakeNotifier, now time.Time) *UseCase {
	uc := NewUseCase(repo, cal, notif, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest(t *testing.T) *Request {
	return &Request{
		VisitorName:  "Мария Петрова",
		VisitorEmail: "maria@example.com",
		VisitorPhone: "+79991234567",
		Date:         time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		TimeSlot:     mustSlot(t, "10:00"),
		AdultCount:   2,
		ChildCount:   1,
	}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	notif := &fakeNotifier{}
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeCalendar{}, notif, now)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 3, resp.VisitorCount)
	assert.Equal(t, domain.MaxCapacityPerSlot-3, resp.AvailableSpotsRemaining)
	assert.Regexp(t, `^FTV-20251201-[0-9A-F]{8}$`, resp.Reference)

	require.Len(t, notif.tasks, 1)
	assert.Equal(t, notifier.TemplateBookingConfirmed, notif.tasks[0].Template)
}

func TestExecute_SlotFullAfterPartialFill(t *testing.T) {
	repo := &fakeBookingRepo{}
	notif := &fakeNotifier{}
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeCalendar{}, notif, now)

	// Слот 2025-12-25 10:00 занят на 25 мест
	first := validRequest(t)
	first.AdultCount = 20
	first.ChildCount = 5
	resp, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.AvailableSpotsRemaining)

	// Группа из 10 не помещается, в ответе остаток 5
	second := validRequest(t)
	second.AdultCount = 8
	second.ChildCount = 2
	_, err = uc.Execute(context.Background(), second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotFull)

	var slotFull *SlotFullError
	require.ErrorAs(t, err, &slotFull)
	assert.Equal(t, 5, slotFull.AvailableSpots)

	// Группа из 5 помещается впритык
	third := validRequest(t)
	third.AdultCount = 5
	third.ChildCount = 0
	resp, err = uc.Execute(context.Background(), third)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AvailableSpotsRemaining)
}

func TestExecute_ConcurrentAdmissionsNeverExceedCapacity(t *testing.T) {
	repo := &fakeBookingRepo{}
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeCalendar{}, &fakeNotifier{}, now)

	// 8 конкурентных групп по 5 человек при вместимости 30: только 6 пройдут
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(t)
			req.AdultCount = 5
			req.ChildCount = 0
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotFull)
		}
	}
	assert.Equal(t, 6, succeeded)

	total := 0
	for _, b := range repo.bookings {
		total += b.SeatCount()
	}
	assert.LessOrEqual(t, total, domain.MaxCapacityPerSlot)
	assert.Equal(t, domain.MaxCapacityPerSlot, total)
}

func TestExecute_ClosedDateWinsOverFreeCapacity(t *testing.T) {
	reason := "производственное закрытие"
	cal := &fakeCalendar{blocked: true, reason: &reason}
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, cal, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDateClosed)

	var dateClosed *DateClosedError
	require.ErrorAs(t, err, &dateClosed)
	assert.Equal(t, reason, dateClosed.Reason)
}

func TestExecute_CalendarFailureRejectsAdmission(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("connection refused")}
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, cal, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DateInPast(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCalendar{}, &fakeNotifier{}, now)

	req := validRequest(t)
	req.Date = time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_VisitorCountTooLargeRedirectsToSpecial(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCalendar{}, &fakeNotifier{}, now)

	req := validRequest(t)
	req.AdultCount = 25
	req.ChildCount = 10

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVisitorCountTooLarge)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(r *Request) { r.VisitorName = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty email",
			mutate:  func(r *Request) { r.VisitorEmail = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed email",
			mutate:  func(r *Request) { r.VisitorEmail = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty phone",
			mutate:  func(r *Request) { r.VisitorPhone = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown time slot",
			mutate:  func(r *Request) { r.TimeSlot = mustSlot(t, "12:15") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero adults",
			mutate:  func(r *Request) { r.AdultCount = 0; r.ChildCount = 3 },
			wantErr: ErrInvalidVisitorCount,
		},
		{
			name:    "negative children",
			mutate:  func(r *Request) { r.ChildCount = -1 },
			wantErr: ErrInvalidVisitorCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookingRepo{}, &fakeCalendar{}, &fakeNotifier{}, now)
			req := validRequest(t)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SpecialBookingsDoNotOccupySeats(t *testing.T) {
	repo := &fakeBookingRepo{}
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeCalendar{}, &fakeNotifier{}, now)

	// Одобренная спец. заявка на 500 человек в том же слоте
	capacity := 500
	specialStatus := domain.SpecialStatusApproved
	repo.bookings = append(repo.bookings, &domain.Booking{
		ID:                1,
		VisitDate:         time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		TimeSlot:          mustSlot(t, "10:00"),
		Status:            domain.StatusConfirmed,
		IsSpecial:         true,
		RequestedCapacity: &capacity,
		SpecialStatus:     &specialStatus,
	})
	repo.nextID = 1

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCapacityPerSlot-3, resp.AvailableSpotsRemaining)
}
