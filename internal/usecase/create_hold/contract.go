package create_hold

import (
	"context"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	CancelExpiredPending(ctx context.Context, now time.Time) (int64, error)
	LockOverlapping(ctx context.Context, iv domain.Interval, excludeID int64) error
	SumOverlappingSims(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error)
	CountActiveByUser(ctx context.Context, userID int64, now time.Time) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// LoyaltyService списание бонусов в счет оплаты
type LoyaltyService interface {
	SpendBonuses(ctx context.Context, userID int64, phone *string, price, requested int) (int, error)
}

// Notifier шлюз уведомлений (после коммита, ошибки глотаются)
type Notifier interface {
	NotifyHoldCreated(ctx context.Context, b *domain.Booking)
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
