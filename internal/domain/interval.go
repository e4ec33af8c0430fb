package domain

import (
	"fmt"
	"time"
)

// Interval полуоткрытый интервал времени [StartAt, EndAt).
// Все проверки пересечения в сервисе работают через него.
type Interval struct {
	StartAt time.Time
	EndAt   time.Time
}

// NewInterval строит интервал от начала и длительности в минутах
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		StartAt: start,
		EndAt:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Validate проверяет инвариант end > start.
// Некорректный интервал не должен дойти до хранилища.
func (i Interval) Validate() error {
	if i.StartAt.IsZero() || i.EndAt.IsZero() {
		return fmt.Errorf("interval: start and end are required")
	}
	if !i.EndAt.After(i.StartAt) {
		return fmt.Errorf("interval: end must be after start")
	}
	return nil
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Интервалы [a,b) и [c,d) пересекаются, только если a < d И c < b —
// граничащие интервалы пересечением не считаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.StartAt.Before(other.EndAt) && other.StartAt.Before(i.EndAt)
}

// Contains проверяет, что момент t попадает в интервал
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.StartAt) && t.Before(i.EndAt)
}

// DurationMinutes длительность интервала в минутах
func (i Interval) DurationMinutes() int {
	return int(i.EndAt.Sub(i.StartAt) / time.Minute)
}
