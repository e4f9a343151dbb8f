package resolve_special_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	storage "github.com/m04kA/FTV-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking

	ordinarySeats int
	sumErr        error
}

func newFakeRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (f *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[reference]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) ResolveSpecial(ctx context.Context, id int64, status domain.BookingStatus, specialStatus domain.SpecialStatus, reviewer string, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID != id {
			continue
		}
		if !b.IsSpecial || b.SpecialStatus == nil || *b.SpecialStatus != domain.SpecialStatusPending ||
			b.Status != domain.StatusPending {
			return storage.ErrAlreadyResolved
		}
		b.Status = status
		b.SpecialStatus = &specialStatus
		b.ReviewedBy = &reviewer
		b.ReviewNotes = &notes
		return nil
	}
	return storage.ErrAlreadyResolved
}

func (f *fakeBookingRepo) SumSeatsBySlot(ctx context.Context, date time.Time, slot types.TimeString) (int, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	return f.ordinarySeats, nil
}

type fakeNotifier struct {
	tasks []notifier.Task
}

func (f *fakeNotifier) Enqueue(task notifier.Task) {
	f.tasks = append(f.tasks, task)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

func pendingSpecial(t *testing.T, reference string) *domain.Booking {
	capacity := 500
	reason := "юбилей предприятия, делегация из дочерних подразделений холдинга"
	specialStatus := domain.SpecialStatusPending
	return &domain.Booking{
		ID:                1,
		Reference:         reference,
		VisitorName:       "Анна Иванова",
		VisitorEmail:      "anna@example.com",
		VisitorPhone:      "+79990001122",
		VisitDate:         time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		TimeSlot:          mustSlot(t, "10:00"),
		Status:            domain.StatusPending,
		IsSpecial:         true,
		RequestedCapacity: &capacity,
		SpecialReason:     &reason,
		SpecialStatus:     &specialStatus,
	}
}

func validRequest(decision Decision) *Request {
	return &Request{
		Reference:  "FTV-20251201-AAAA1111",
		Decision:   decision,
		ReviewedBy: "admin-42",
		Notes:      "подтверждено руководством производства",
	}
}

func TestExecute_ApproveConfirmsBooking(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["FTV-20251201-AAAA1111"] = pendingSpecial(t, "FTV-20251201-AAAA1111")
	notif := &fakeNotifier{}
	uc := NewUseCase(repo, notif, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(DecisionApprove))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.SpecialStatusApproved), resp.SpecialStatus)
	assert.Equal(t, "admin-42", resp.ReviewedBy)

	require.Len(t, notif.tasks, 1)
	assert.Equal(t, notifier.TemplateSpecialApproved, notif.tasks[0].Template)
}

func TestExecute_RejectCancelsBooking(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["FTV-20251201-AAAA1111"] = pendingSpecial(t, "FTV-20251201-AAAA1111")
	notif := &fakeNotifier{}
	uc := NewUseCase(repo, notif, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(DecisionReject))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(domain.SpecialStatusRejected), resp.SpecialStatus)

	require.Len(t, notif.tasks, 1)
	assert.Equal(t, notifier.TemplateSpecialRejected, notif.tasks[0].Template)
}

func TestExecute_ApproveIgnoresFullOrdinarySlot(t *testing.T) {
	// Спец. группа на 500 человек одобряется даже при полностью занятом
	// обычном слоте - решение за администратором, леджер не блокирует
	repo := newFakeRepo()
	repo.bookings["FTV-20251201-AAAA1111"] = pendingSpecial(t, "FTV-20251201-AAAA1111")
	repo.ordinarySeats = domain.MaxCapacityPerSlot
	uc := NewUseCase(repo, &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(DecisionApprove))
	require.NoError(t, err)
	assert.Equal(t, string(domain.SpecialStatusApproved), resp.SpecialStatus)
	assert.Equal(t, domain.MaxCapacityPerSlot, resp.OrdinaryBookedCount)
}

func TestExecute_SecondResolutionFails(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["FTV-20251201-AAAA1111"] = pendingSpecial(t, "FTV-20251201-AAAA1111")
	uc := NewUseCase(repo, &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(DecisionApprove))
	require.NoError(t, err)

	// Повторное решение отклоняется независимо от вердикта
	_, err = uc.Execute(context.Background(), validRequest(DecisionReject))
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	_, err = uc.Execute(context.Background(), validRequest(DecisionApprove))
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestExecute_WithdrawnRequestIsNotResolvable(t *testing.T) {
	// Посетитель отозвал заявку до рассмотрения: отмена переводит status
	// в cancelled, но special_status остается pending. Решение администратора
	// не должно переоткрыть терминальное бронирование
	repo := newFakeRepo()
	withdrawn := pendingSpecial(t, "FTV-20251201-AAAA1111")
	withdrawn.Status = domain.StatusCancelled
	repo.bookings["FTV-20251201-AAAA1111"] = withdrawn
	notif := &fakeNotifier{}
	uc := NewUseCase(repo, notif, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(DecisionApprove))
	assert.ErrorIs(t, err, ErrBookingNotModifiable)

	assert.Equal(t, domain.StatusCancelled, withdrawn.Status)
	assert.Equal(t, domain.SpecialStatusPending, *withdrawn.SpecialStatus)
	assert.Empty(t, notif.tasks)
}

func TestExecute_OrdinaryBookingIsNotResolvable(t *testing.T) {
	repo := newFakeRepo()
	ordinary := pendingSpecial(t, "FTV-20251201-AAAA1111")
	ordinary.IsSpecial = false
	ordinary.SpecialStatus = nil
	repo.bookings["FTV-20251201-AAAA1111"] = ordinary
	uc := NewUseCase(repo, &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(DecisionApprove))
	assert.ErrorIs(t, err, ErrNotSpecialBooking)
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(DecisionApprove))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "empty reference",
			mutate:  func(r *Request) { r.Reference = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown decision",
			mutate:  func(r *Request) { r.Decision = "defer" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty reviewer",
			mutate:  func(r *Request) { r.ReviewedBy = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty notes",
			mutate:  func(r *Request) { r.Notes = "   " },
			wantErr: ErrNotesRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(newFakeRepo(), &fakeNotifier{}, fakeTxManager{}, nopLogger{})
			req := validRequest(DecisionApprove)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
