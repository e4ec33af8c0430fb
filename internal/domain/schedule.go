package domain

import (
	"fmt"
	"time"
)

// Schedule рабочий день клуба: часы работы, шаг сетки слотов и
// защитный зазор перед закрытием. Чистые функции без состояния.
type Schedule struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int

	SlotStepMinutes  int
	SafetyGapMinutes int

	Location *time.Location
}

// DefaultSchedule расписание клуба по умолчанию (13:00–23:00, слоты по 30 минут)
func DefaultSchedule(loc *time.Location) Schedule {
	return Schedule{
		OpenHour:         DefaultOpenHour,
		OpenMinute:       DefaultOpenMinute,
		CloseHour:        DefaultCloseHour,
		CloseMinute:      DefaultCloseMinute,
		SlotStepMinutes:  DefaultSlotStepMinutes,
		SafetyGapMinutes: DefaultSafetyGapMinutes,
		Location:         loc,
	}
}

// OpenAt момент открытия клуба в день day
func (s Schedule) OpenAt(day time.Time) time.Time {
	d := day.In(s.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), s.OpenHour, s.OpenMinute, 0, 0, s.Location)
}

// CloseAt момент закрытия клуба в день day
func (s Schedule) CloseAt(day time.Time) time.Time {
	d := day.In(s.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), s.CloseHour, s.CloseMinute, 0, 0, s.Location)
}

// LastEnd самый поздний допустимый конец брони в день day:
// закрытие минус защитный зазор
func (s Schedule) LastEnd(day time.Time) time.Time {
	return s.CloseAt(day).Add(-time.Duration(s.SafetyGapMinutes) * time.Minute)
}

// ValidateInterval проверяет, что интервал укладывается в рабочий день.
// Интервал должен начинаться не раньше открытия и заканчиваться
// не позже закрытия с учетом защитного зазора.
func (s Schedule) ValidateInterval(iv Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	open := s.OpenAt(iv.StartAt)
	lastEnd := s.LastEnd(iv.StartAt)

	if iv.StartAt.Before(open) {
		return fmt.Errorf("schedule: slot starts before opening at %s", open.Format(TimeFormat))
	}
	if iv.EndAt.After(lastEnd) {
		return fmt.Errorf("schedule: slot ends after %s (close minus safety gap)", lastEnd.Format(TimeFormat))
	}
	return nil
}

// SlotStarts генерирует сетку начал слотов на день day для брони
// длительностью durationMinutes. Слоты, чей конец вылезает за
// закрытие с учетом зазора, не включаются.
func (s Schedule) SlotStarts(day time.Time, durationMinutes int) []time.Time {
	step := time.Duration(s.SlotStepMinutes) * time.Minute
	dur := time.Duration(durationMinutes) * time.Minute
	lastEnd := s.LastEnd(day)

	starts := make([]time.Time, 0)
	for cur := s.OpenAt(day); !cur.Add(dur).After(lastEnd); cur = cur.Add(step) {
		starts = append(starts, cur)
	}
	return starts
}

// DayBounds границы суток day в таймзоне клуба, полуоткрытый интервал
func (s Schedule) DayBounds(day time.Time) (time.Time, time.Time) {
	d := day.In(s.Location)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.Location)
	return start, start.AddDate(0, 0, 1)
}
