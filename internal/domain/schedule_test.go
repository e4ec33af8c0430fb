package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule(t *testing.T) Schedule {
	t.Helper()
	return DefaultSchedule(time.UTC)
}

func TestSchedule_ValidateInterval(t *testing.T) {
	s := testSchedule(t)

	tests := []struct {
		name    string
		iv      Interval
		wantErr bool
	}{
		{
			name: "интервал внутри рабочего дня",
			iv:   NewInterval(ts(14, 0), 60),
		},
		{
			name: "начало ровно в открытие",
			iv:   NewInterval(ts(13, 0), 30),
		},
		{
			name: "конец ровно в закрытие минус зазор",
			iv:   NewInterval(ts(21, 55), 60),
		},
		{
			name:    "начало до открытия",
			iv:      NewInterval(ts(12, 30), 60),
			wantErr: true,
		},
		{
			name:    "конец попадает в защитный зазор",
			iv:      NewInterval(ts(22, 0), 60),
			wantErr: true,
		},
		{
			name:    "конец после закрытия",
			iv:      NewInterval(ts(22, 30), 60),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateInterval(tt.iv)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSchedule_SlotStarts(t *testing.T) {
	s := testSchedule(t)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	starts := s.SlotStarts(day, 60)

	require.NotEmpty(t, starts)
	assert.Equal(t, ts(13, 0), starts[0])
	// последний слот на 60 минут должен закончиться не позже 22:55
	last := starts[len(starts)-1]
	assert.False(t, last.Add(time.Hour).After(ts(22, 55)))
	// шаг сетки 30 минут
	assert.Equal(t, 30*time.Minute, starts[1].Sub(starts[0]))
}

func TestSchedule_SlotStarts_LongDuration(t *testing.T) {
	s := testSchedule(t)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	short := s.SlotStarts(day, 30)
	long := s.SlotStarts(day, 120)

	// чем длиннее бронь, тем меньше слотов помещается в день
	assert.Greater(t, len(short), len(long))
}

func TestSchedule_DayBounds(t *testing.T) {
	s := testSchedule(t)

	start, end := s.DayBounds(ts(18, 45))

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), end)
}
