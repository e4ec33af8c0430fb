package create_hold

import "time"

// Request запрос на создание заявки (hold)
type Request struct {
	UserID          int64
	ClientName      *string
	ClientPhone     *string
	StartAt         time.Time
	DurationMinutes int
	Sims            int
	// BonusSpend сколько бонусов клиент хочет списать в счет оплаты.
	// Фактическое списание ограничено балансом и долей от цены.
	BonusSpend int
}

// Result созданная заявка
type Result struct {
	BookingID int64
	StartAt   time.Time
	EndAt     time.Time
	Sims       int
	Price      int
	BonusSpent int
	ExpiresAt  time.Time
}
