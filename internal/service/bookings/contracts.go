package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	SetStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	SetBonusApplied(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	LockOverlapping(ctx context.Context, iv domain.Interval, excludeID int64) error
	SumOverlappingSims(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error)
}

// LoyaltyService начисление бонусов за завершенный визит
type LoyaltyService interface {
	RecordVisit(ctx context.Context, b *domain.Booking) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier шлюз уведомлений (после коммита, ошибки глотаются)
type Notifier interface {
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
