package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsExpired(t *testing.T) {
	now := ts(15, 0)
	past := ts(14, 0)
	future := ts(16, 0)

	tests := []struct {
		name    string
		booking Booking
		want    bool
	}{
		{
			name:    "pending с истекшим холдом протух",
			booking: Booking{Status: StatusPending, ExpiresAt: &past},
			want:    true,
		},
		{
			name:    "pending с живым холдом",
			booking: Booking{Status: StatusPending, ExpiresAt: &future},
			want:    false,
		},
		{
			name:    "confirmed не протухает",
			booking: Booking{Status: StatusConfirmed, ExpiresAt: &past},
			want:    false,
		},
		{
			name:    "pending без срока",
			booking: Booking{Status: StatusPending},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.IsExpired(now))
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	now := ts(15, 0)

	assert.True(t, (&Booking{Status: StatusPending, StartAt: ts(16, 0)}).CanBeCancelled(now))
	assert.True(t, (&Booking{Status: StatusConfirmed, StartAt: ts(16, 0)}).CanBeCancelled(now))
	assert.False(t, (&Booking{Status: StatusPending, StartAt: ts(14, 0)}).CanBeCancelled(now))
	assert.False(t, (&Booking{Status: StatusCancelled, StartAt: ts(16, 0)}).CanBeCancelled(now))
	assert.False(t, (&Booking{Status: StatusDone, StartAt: ts(16, 0)}).CanBeCancelled(now))
}

func TestBooking_CanBeRescheduled(t *testing.T) {
	now := ts(15, 0)

	assert.True(t, (&Booking{Status: StatusPending, StartAt: ts(16, 0)}).CanBeRescheduled(now))
	// подтвержденную бронь переносить нельзя
	assert.False(t, (&Booking{Status: StatusConfirmed, StartAt: ts(16, 0)}).CanBeRescheduled(now))
	assert.False(t, (&Booking{Status: StatusPending, StartAt: ts(14, 0)}).CanBeRescheduled(now))
}

func TestBooking_CanBeFinalized(t *testing.T) {
	now := ts(15, 0)

	assert.True(t, (&Booking{Status: StatusConfirmed, EndAt: ts(14, 0)}).CanBeFinalized(now))
	// ровно в момент окончания визит уже можно закрывать
	assert.True(t, (&Booking{Status: StatusConfirmed, EndAt: ts(15, 0)}).CanBeFinalized(now))
	assert.False(t, (&Booking{Status: StatusConfirmed, EndAt: ts(16, 0)}).CanBeFinalized(now))
	assert.False(t, (&Booking{Status: StatusPending, EndAt: ts(14, 0)}).CanBeFinalized(now))
}

func TestBooking_OccupiesCapacity(t *testing.T) {
	occupying := []BookingStatus{StatusPending, StatusConfirmed, StatusBlocked}
	for _, status := range occupying {
		assert.True(t, (&Booking{Status: status}).OccupiesCapacity(), string(status))
	}

	free := []BookingStatus{StatusCancelled, StatusDone, StatusNoShow}
	for _, status := range free {
		assert.False(t, (&Booking{Status: status}).OccupiesCapacity(), string(status))
	}
}

func TestBooking_IsFinal(t *testing.T) {
	final := []BookingStatus{StatusCancelled, StatusDone, StatusNoShow}
	for _, status := range final {
		assert.True(t, (&Booking{Status: status}).IsFinal(), string(status))
	}

	alive := []BookingStatus{StatusPending, StatusConfirmed, StatusBlocked}
	for _, status := range alive {
		assert.False(t, (&Booking{Status: status}).IsFinal(), string(status))
	}
}

func TestBooking_ExpiredHoldStillOccupiesUntilSwept(t *testing.T) {
	// протухший pending продолжает занимать вместимость, пока
	// sweep не переведет его в cancelled
	past := ts(14, 0)
	b := &Booking{Status: StatusPending, ExpiresAt: &past}

	assert.True(t, b.IsExpired(ts(15, 0)))
	assert.True(t, b.OccupiesCapacity())
}
