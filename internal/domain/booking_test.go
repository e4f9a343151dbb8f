package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeatCount_SpecialBookingsAreExempt(t *testing.T) {
	ordinary := &Booking{VisitorCount: 12, Status: StatusConfirmed}
	assert.Equal(t, 12, ordinary.SeatCount())

	capacity := 500
	special := &Booking{
		VisitorCount:      0,
		Status:            StatusConfirmed,
		IsSpecial:         true,
		RequestedCapacity: &capacity,
	}
	assert.Equal(t, 0, special.SeatCount())
}

func TestBookingStatusPredicates(t *testing.T) {
	tests := []struct {
		status    BookingStatus
		active    bool
		terminal  bool
		mutable   bool
	}{
		{StatusPending, true, false, true},
		{StatusConfirmed, true, false, true},
		{StatusCancelled, false, true, false},
		{StatusCompleted, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.mutable, b.CanBeCancelled())
			assert.Equal(t, tt.mutable, b.CanBeRescheduled())
		})
	}
}

func TestIsResolved(t *testing.T) {
	b := &Booking{}
	assert.False(t, b.IsResolved())

	pending := SpecialStatusPending
	b.SpecialStatus = &pending
	assert.False(t, b.IsResolved())

	approved := SpecialStatusApproved
	b.SpecialStatus = &approved
	assert.True(t, b.IsResolved())

	rejected := SpecialStatusRejected
	b.SpecialStatus = &rejected
	assert.True(t, b.IsResolved())
}

func TestNewBookingReference(t *testing.T) {
	now := time.Date(2025, 12, 25, 15, 30, 0, 0, time.UTC)

	ref := NewBookingReference(now)
	assert.Regexp(t, `^FTV-20251225-[0-9A-F]{8}$`, ref)

	// Случайный суффикс делает номера уникальными
	other := NewBookingReference(now)
	assert.NotEqual(t, ref, other)
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, IsValidTimeSlot(slot))
	}
	assert.False(t, IsValidTimeSlot("12:15"))
	assert.False(t, IsValidTimeSlot(""))
}
