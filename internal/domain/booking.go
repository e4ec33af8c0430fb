package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDone      BookingStatus = "done"
	StatusNoShow    BookingStatus = "no_show"
	// StatusBlocked техперерыв: бронь без клиента, созданная админом,
	// занимает симуляторы наравне с pending/confirmed
	StatusBlocked BookingStatus = "blocked"
)

// Booking бронирование симуляторов на интервал времени.
// Центральная сущность сервиса: и клиентские брони, и техперерывы.
type Booking struct {
	ID     int64
	UserID int64 // 0 для техперерывов

	// Контактные данные клиента; сервис их не интерпретирует
	ClientName  *string
	ClientPhone *string

	StartAt         time.Time
	EndAt           time.Time
	Sims            int // сколько симуляторов занимает бронь
	DurationMinutes int
	Price           int
	Status          BookingStatus

	// ExpiresAt срок жизни pending-заявки; после него бронь протухает.
	// Заполнен только в статусе pending.
	ExpiresAt *time.Time

	// BonusApplied бонусы за визит уже начислены (защита от повторного начисления)
	BonusApplied bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval интервал брони как доменный тип
func (b *Booking) Interval() Interval {
	return Interval{StartAt: b.StartAt, EndAt: b.EndAt}
}

// OccupiesCapacity занимает ли бронь симуляторы при подсчете свободных мест
func (b *Booking) OccupiesCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusBlocked
}

// IsExpired протухла ли pending-заявка к моменту now
func (b *Booking) IsExpired(now time.Time) bool {
	return b.Status == StatusPending && b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}

// CanBeCancelled можно ли отменить бронь (до начала слота)
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return (b.Status == StatusPending || b.Status == StatusConfirmed) && now.Before(b.StartAt)
}

// CanBeRescheduled можно ли перенести бронь: только pending и только до начала
func (b *Booking) CanBeRescheduled(now time.Time) bool {
	return b.Status == StatusPending && now.Before(b.StartAt)
}

// CanBeFinalized можно ли закрыть визит (done/no_show):
// только подтвержденные брони и только после окончания слота
func (b *Booking) CanBeFinalized(now time.Time) bool {
	return b.Status == StatusConfirmed && !now.Before(b.EndAt)
}

// IsBlock это техперерыв, а не клиентская бронь
func (b *Booking) IsBlock() bool {
	return b.Status == StatusBlocked
}

// IsFinal бронь в терминальном статусе
func (b *Booking) IsFinal() bool {
	for _, s := range FinalStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	UserID   *int64
	Statuses []BookingStatus
	// Overlapping ограничивает выборку бронями, пересекающими интервал
	Overlapping *Interval
	// ExcludeID исключает бронь из выборки (перенос не считает сам себя)
	ExcludeID *int64
}
