package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(h, m int) time.Time {
	return time.Date(2026, 3, 15, h, m, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{StartAt: ts(14, 0), EndAt: ts(15, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{
			name:  "полное совпадение",
			other: Interval{StartAt: ts(14, 0), EndAt: ts(15, 0)},
			want:  true,
		},
		{
			name:  "частичное пересечение слева",
			other: Interval{StartAt: ts(13, 30), EndAt: ts(14, 30)},
			want:  true,
		},
		{
			name:  "частичное пересечение справа",
			other: Interval{StartAt: ts(14, 30), EndAt: ts(15, 30)},
			want:  true,
		},
		{
			name:  "вложенный интервал",
			other: Interval{StartAt: ts(14, 15), EndAt: ts(14, 45)},
			want:  true,
		},
		{
			name:  "конец встык к началу не пересекается",
			other: Interval{StartAt: ts(13, 0), EndAt: ts(14, 0)},
			want:  false,
		},
		{
			name:  "начало встык к концу не пересекается",
			other: Interval{StartAt: ts(15, 0), EndAt: ts(16, 0)},
			want:  false,
		},
		{
			name:  "полностью раньше",
			other: Interval{StartAt: ts(10, 0), EndAt: ts(11, 0)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// пересечение симметрично
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	iv := Interval{StartAt: ts(14, 0), EndAt: ts(15, 0)}

	assert.True(t, iv.Contains(ts(14, 0)), "начало входит в интервал")
	assert.True(t, iv.Contains(ts(14, 30)))
	assert.False(t, iv.Contains(ts(15, 0)), "конец не входит в интервал")
	assert.False(t, iv.Contains(ts(13, 59)))
}

// Занятость в любой момент t складывается из броней, чьи интервалы
// содержат t. Граничащие встык брони не занимают симуляторы
// одновременно ни в один момент.
func TestInterval_AdjacentSlotsNeverOccupySameInstant(t *testing.T) {
	first := Interval{StartAt: ts(14, 0), EndAt: ts(15, 0)}
	second := Interval{StartAt: ts(15, 0), EndAt: ts(16, 0)}

	require.False(t, first.Overlaps(second))
	for _, instant := range []time.Time{ts(14, 0), ts(14, 59), ts(15, 0), ts(15, 59)} {
		both := first.Contains(instant) && second.Contains(instant)
		assert.False(t, both, "момент %s занят обеими бронями", instant.Format(TimeFormat))
	}
}

func TestNewInterval(t *testing.T) {
	iv := NewInterval(ts(14, 0), 90)

	assert.Equal(t, ts(14, 0), iv.StartAt)
	assert.Equal(t, ts(15, 30), iv.EndAt)
	assert.Equal(t, 90, iv.DurationMinutes())
}

func TestInterval_Validate(t *testing.T) {
	require.NoError(t, Interval{StartAt: ts(14, 0), EndAt: ts(15, 0)}.Validate())
	require.Error(t, Interval{StartAt: ts(15, 0), EndAt: ts(14, 0)}.Validate())
	require.Error(t, Interval{StartAt: ts(14, 0), EndAt: ts(14, 0)}.Validate())
}
