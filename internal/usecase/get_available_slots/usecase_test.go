package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/integrations/calendarservice"
	"github.com/m04kA/FTV-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	seatsBySlot map[types.TimeString]int
	err         error
}

func (f *fakeBookingRepo) SumSeatsBySlot(ctx context.Context, date time.Time, slot types.TimeString) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.seatsBySlot[slot], nil
}

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

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, cal *fakeCalendar) *UseCase {
	uc := NewUseCase(repo, cal, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_ReturnsAvailabilityForAllSlots(t *testing.T) {
	repo := &fakeBookingRepo{seatsBySlot: map[types.TimeString]int{
		"10:00": 25,
		"14:00": 30,
	}}
	uc := newTestUseCase(repo, &fakeCalendar{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	require.Len(t, resp.Slots, len(domain.TimeSlots))

	bySlot := make(map[types.TimeString]Slot)
	for _, s := range resp.Slots {
		bySlot[s.TimeSlot] = s
	}
	assert.Equal(t, 5, bySlot["10:00"].AvailableSpots)
	assert.Equal(t, 30, bySlot["11:30"].AvailableSpots)
	assert.Equal(t, 0, bySlot["14:00"].AvailableSpots)
	assert.Equal(t, domain.MaxCapacityPerSlot, bySlot["10:00"].MaxCapacity)
}

func TestExecute_BlockedDateZeroesAllSlots(t *testing.T) {
	reason := "производственное закрытие"
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCalendar{blocked: true, reason: &reason})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	require.NotNil(t, resp.ClosureReason)
	assert.Equal(t, reason, *resp.ClosureReason)
	for _, s := range resp.Slots {
		assert.Equal(t, 0, s.AvailableSpots)
	}
}

func TestExecute_CalendarFailureDegradesToOpen(t *testing.T) {
	repo := &fakeBookingRepo{seatsBySlot: map[types.TimeString]int{"10:00": 10}}
	uc := newTestUseCase(repo, &fakeCalendar{err: errors.New("timeout")})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.False(t, resp.Closed)
}

func TestExecute_LedgerFailureDegradesToEmpty(t *testing.T) {
	repo := &fakeBookingRepo{err: errors.New("connection reset")}
	uc := newTestUseCase(repo, &fakeCalendar{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, domain.MaxCapacityPerSlot, s.AvailableSpots)
	}
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}
