package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	"github.com/m04kA/SRC-BookingService/internal/usecase/confirm_booking"
)

// BookingRepository интерфейс репозитория бронирований для фоновых задач
type BookingRepository interface {
	CancelExpiredPending(ctx context.Context, now time.Time) (int64, error)
	ListPendingStartingBefore(ctx context.Context, now, until time.Time) ([]*domain.Booking, error)
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
	ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания для фоновых задач
type WaitlistRepository interface {
	ListActiveFuture(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error)
	Deactivate(ctx context.Context, id int64) error
}

// ConfirmUseCase подтверждение заявки (та же логика, что и ручное подтверждение)
type ConfirmUseCase interface {
	Execute(ctx context.Context, bookingID int64) (*confirm_booking.Result, error)
}

// BookingsService закрытие визитов
type BookingsService interface {
	MarkDone(ctx context.Context, id int64) (*domain.Booking, int, error)
}

// AvailabilityService расчет свободных симуляторов
type AvailabilityService interface {
	FreeCapacity(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error)
}

// Notifier шлюз уведомлений
type Notifier interface {
	NotifyBookingReminder(ctx context.Context, b *domain.Booking)
	NotifyWaitlistSlotFree(ctx context.Context, e *domain.WaitlistEntry, freeSims int)
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
