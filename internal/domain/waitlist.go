package domain

import "time"

// WaitlistEntry подписка листа ожидания: пользователь хочет получить
// уведомление, когда на интервал освободится нужное число симуляторов.
type WaitlistEntry struct {
	ID              int64
	UserID          int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	SimsNeeded      int
	Active          bool
	CreatedAt       time.Time
}

// Interval интервал подписки как доменный тип
func (w *WaitlistEntry) Interval() Interval {
	return Interval{StartAt: w.StartAt, EndAt: w.EndAt}
}

// IsRelevant актуальна ли подписка: активна и интервал ещё не начался
func (w *WaitlistEntry) IsRelevant(now time.Time) bool {
	return w.Active && now.Before(w.StartAt)
}
