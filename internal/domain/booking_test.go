package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	upcoming := &Booking{Status: StatusUpcoming}
	assert.True(t, upcoming.CanTransitionTo(StatusCompleted))
	assert.True(t, upcoming.CanTransitionTo(StatusCancelled))
	assert.False(t, upcoming.CanTransitionTo(StatusUpcoming))

	// Терминальные статусы не меняются
	completed := &Booking{Status: StatusCompleted}
	assert.False(t, completed.CanTransitionTo(StatusCancelled))
	assert.False(t, completed.CanTransitionTo(StatusUpcoming))

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(StatusCompleted))
}

func TestBooking_HoldsSlot(t *testing.T) {
	paid := &Booking{PaymentStatus: PaymentPaid}
	assert.True(t, paid.HoldsSlot())

	// Pending бронирование слот не удерживает
	pending := &Booking{PaymentStatus: PaymentPending}
	assert.False(t, pending.HoldsSlot())
}

func TestIsAllowedDuration(t *testing.T) {
	assert.True(t, IsAllowedDuration(30))
	assert.True(t, IsAllowedDuration(45))
	assert.True(t, IsAllowedDuration(60))
	assert.False(t, IsAllowedDuration(90))
	assert.False(t, IsAllowedDuration(0))
}
