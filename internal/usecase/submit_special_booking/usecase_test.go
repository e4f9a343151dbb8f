package submit_special_booking

import (
	"context"
	"errors"
	"strings"
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

type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	documents map[int64][]*domain.BookingDocument
	nextID    int64

	createErr error
	docsErr   error
}

func newFakeRepo() *fakeBookingRepo {
	return &fakeBookingRepo{documents: make(map[int64][]*domain.BookingDocument)}
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
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingRepo) CreateDocuments(ctx context.Context, bookingID int64, docs []*domain.BookingDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docsErr != nil {
		return f.docsErr
	}
	f.documents[bookingID] = docs
	return nil
}

type fakeCalendar struct {
	blocked bool
	err     error
}

func (f *fakeCalendar) GetDateStatus(ctx context.Context, date time.Time) (*calendarservice.DateStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &calendarservice.DateStatus{Blocked: f.blocked}, nil
}

type fakeNotifier struct {
	tasks []notifier.Task
}

func (f *fakeNotifier) Enqueue(task notifier.Task) {
	f.tasks = append(f.tasks, task)
}

// fakeTxManager выполняет fn и при ошибке "откатывает" записи фейкового репо
type fakeTxManager struct {
	repo *fakeBookingRepo
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var before int
	if f.repo != nil {
		before = len(f.repo.bookings)
	}
	err := fn(ctx)
	if err != nil && f.repo != nil {
		f.repo.bookings = f.repo.bookings[:before]
	}
	return err
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

func newTestUseCase(repo *fakeBookingRepo, cal *fakeCalendar, notif *fakeNotifier) *UseCase {
	uc := NewUseCase(repo, cal, notif, &fakeTxManager{repo: repo}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest(t *testing.T) *Request {
	return &Request{
		VisitorName:       "Олег Сидоров",
		VisitorEmail:      "oleg@example.com",
		VisitorPhone:      "+79997654321",
		Date:              time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		TimeSlot:          mustSlot(t, "14:00"),
		RequestedCapacity: 150,
		Reason:            strings.Repeat("корпоративная экскурсия для партнеров завода ", 3),
		Documents: []Document{
			{Name: "Гарантийное письмо", URL: "https://storage.example.com/docs/letter.pdf"},
		},
	}
}

func TestExecute_CreatesPendingSpecialRequest(t *testing.T) {
	repo := newFakeRepo()
	notif := &fakeNotifier{}
	uc := newTestUseCase(repo, &fakeCalendar{}, notif)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.SpecialStatusPending), resp.SpecialStatus)

	require.Len(t, repo.bookings, 1)
	created := repo.bookings[0]
	assert.True(t, created.IsSpecial)
	assert.Equal(t, 0, created.VisitorCount)
	assert.Equal(t, 0, created.SeatCount())
	require.NotNil(t, created.RequestedCapacity)
	assert.Equal(t, 150, *created.RequestedCapacity)

	require.Len(t, repo.documents[created.ID], 1)

	require.Len(t, notif.tasks, 1)
	assert.Equal(t, notifier.TemplateSpecialPending, notif.tasks[0].Template)
}

func TestExecute_ReasonLengthBoundary(t *testing.T) {
	// 40 символов - отказ, 60 - проходит
	shortReason := strings.Repeat("а", 40)
	longReason := strings.Repeat("а", 60)

	uc := newTestUseCase(newFakeRepo(), &fakeCalendar{}, &fakeNotifier{})

	req := validRequest(t)
	req.Reason = shortReason
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReasonTooShort)

	req = validRequest(t)
	req.Reason = longReason
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CapacityThresholdIsStrict(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeCalendar{}, &fakeNotifier{})

	// Ровно 100 - на пороге, недостаточно
	req := validRequest(t)
	req.RequestedCapacity = domain.SpecialRequestThreshold
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityBelowThreshold)

	// 101 - строго больше порога
	req = validRequest(t)
	req.RequestedCapacity = domain.SpecialRequestThreshold + 1
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_RequiresDocuments(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeCalendar{}, &fakeNotifier{})

	req := validRequest(t)
	req.Documents = nil
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoDocuments)

	req = validRequest(t)
	req.Documents = make([]Document, domain.MaxDocumentsPerRequest+1)
	for i := range req.Documents {
		req.Documents[i] = Document{Name: "doc", URL: "https://example.com/doc"}
	}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyDocuments)
}

func TestExecute_DocumentFailureRollsBackRequest(t *testing.T) {
	repo := newFakeRepo()
	repo.docsErr = errors.New("disk full")
	notif := &fakeNotifier{}
	uc := newTestUseCase(repo, &fakeCalendar{}, notif)

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	// Транзакция откатилась: ни заявки, ни уведомления
	assert.Empty(t, repo.bookings)
	assert.Empty(t, notif.tasks)
}

func TestExecute_ClosedDateBlocksSpecialRequest(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeCalendar{blocked: true}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrDateClosed)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeCalendar{}, &fakeNotifier{})

	req := validRequest(t)
	req.Date = time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}
