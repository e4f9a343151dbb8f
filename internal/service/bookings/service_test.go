package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FTV-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	"github.com/m04kA/FTV-BookingService/internal/service/bookings/models"
	"github.com/m04kA/FTV-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings  map[string]*domain.Booking
	documents map[int64][]*domain.BookingDocument

	cancelCalls int
}

func newFakeRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:  make(map[string]*domain.Booking),
		documents: make(map[int64][]*domain.BookingDocument),
	}
}

func (f *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	booking, ok := f.bookings[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetDocuments(ctx context.Context, bookingID int64) ([]*domain.BookingDocument, error) {
	return f.documents[bookingID], nil
}

func (f *fakeBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.OnlySpecial && !b.IsSpecial {
			continue
		}
		if !filter.IncludeInactive && b.IsTerminal() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason *string) error {
	f.cancelCalls++
	for _, b := range f.bookings {
		if b.ID == id {
			now := time.Now()
			b.Status = domain.StatusCancelled
			b.CancellationReason = reason
			b.CancelledAt = &now
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

type fakeNotifier struct {
	tasks []notifier.Task
}

func (f *fakeNotifier) Enqueue(task notifier.Task) {
	f.tasks = append(f.tasks, task)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedBooking(id int64, reference string) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		Reference:    reference,
		VisitorName:  "Петр Смирнов",
		VisitorEmail: "petr@example.com",
		VisitorPhone: "+79995556677",
		VisitDate:    time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:00",
		AdultCount:   2,
		ChildCount:   0,
		VisitorCount: 2,
		Status:       domain.StatusConfirmed,
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["FTV-20251201-AAAA1111"] = confirmedBooking(1, "FTV-20251201-AAAA1111")
	notif := &fakeNotifier{}
	svc := NewService(repo, notif, nopLogger{})

	req := &models.CancelBookingRequest{Reason: ptr.Ptr("изменились планы")}

	// Первая отмена переводит в cancelled и шлет уведомление
	require.NoError(t, svc.Cancel(context.Background(), "FTV-20251201-AAAA1111", req))
	assert.Equal(t, domain.StatusCancelled, repo.bookings["FTV-20251201-AAAA1111"].Status)
	assert.Equal(t, 1, repo.cancelCalls)
	assert.Len(t, notif.tasks, 1)
	assert.Equal(t, notifier.TemplateBookingCancelled, notif.tasks[0].Template)

	// Повторная отмена - no-op без записи и без уведомления
	require.NoError(t, svc.Cancel(context.Background(), "FTV-20251201-AAAA1111", req))
	assert.Equal(t, 1, repo.cancelCalls)
	assert.Len(t, notif.tasks, 1)
}

func TestCancel_CompletedBookingIsNotModifiable(t *testing.T) {
	repo := newFakeRepo()
	booking := confirmedBooking(1, "FTV-20251201-AAAA1111")
	booking.Status = domain.StatusCompleted
	repo.bookings["FTV-20251201-AAAA1111"] = booking
	svc := NewService(repo, &fakeNotifier{}, nopLogger{})

	err := svc.Cancel(context.Background(), "FTV-20251201-AAAA1111", &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotModifiable)
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{}, nopLogger{})

	err := svc.Cancel(context.Background(), "FTV-20251201-MISSING1", &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_WithdrawsPendingSpecialRequest(t *testing.T) {
	repo := newFakeRepo()
	booking := confirmedBooking(1, "FTV-20251201-AAAA1111")
	booking.Status = domain.StatusPending
	booking.IsSpecial = true
	booking.VisitorCount = 0
	specialStatus := domain.SpecialStatusPending
	booking.SpecialStatus = &specialStatus
	repo.bookings["FTV-20251201-AAAA1111"] = booking
	svc := NewService(repo, &fakeNotifier{}, nopLogger{})

	require.NoError(t, svc.Cancel(context.Background(), "FTV-20251201-AAAA1111", &models.CancelBookingRequest{}))
	assert.Equal(t, domain.StatusCancelled, repo.bookings["FTV-20251201-AAAA1111"].Status)
}

func TestGetByReference_IncludesDocumentsForSpecial(t *testing.T) {
	repo := newFakeRepo()
	booking := confirmedBooking(1, "FTV-20251201-AAAA1111")
	booking.IsSpecial = true
	booking.VisitorCount = 0
	repo.bookings["FTV-20251201-AAAA1111"] = booking
	repo.documents[1] = []*domain.BookingDocument{
		{ID: 1, BookingID: 1, Name: "Письмо", URL: "https://storage.example.com/letter.pdf"},
	}
	svc := NewService(repo, &fakeNotifier{}, nopLogger{})

	resp, err := svc.GetByReference(context.Background(), "FTV-20251201-AAAA1111")
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "Письмо", resp.Documents[0].Name)
}

func TestGetByReference_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{}, nopLogger{})

	_, err := svc.GetByReference(context.Background(), "FTV-20251201-MISSING1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_FiltersSpecialAndInactive(t *testing.T) {
	repo := newFakeRepo()
	ordinary := confirmedBooking(1, "FTV-20251201-AAAA1111")
	special := confirmedBooking(2, "FTV-20251201-BBBB2222")
	special.IsSpecial = true
	special.VisitorCount = 0
	cancelled := confirmedBooking(3, "FTV-20251201-CCCC3333")
	cancelled.Status = domain.StatusCancelled
	repo.bookings[ordinary.Reference] = ordinary
	repo.bookings[special.Reference] = special
	repo.bookings[cancelled.Reference] = cancelled
	svc := NewService(repo, &fakeNotifier{}, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{OnlySpecial: true})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "FTV-20251201-BBBB2222", resp.Bookings[0].Reference)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
