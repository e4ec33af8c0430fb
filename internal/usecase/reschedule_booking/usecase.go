package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/booking"
)

// UseCase перенос pending-заявки на новое время.
// Длительность и число симуляторов сохраняются, холд обновляется.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	schedule     domain.Schedule
	maxSims      int
	holdDuration time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	schedule domain.Schedule,
	maxSims int,
	holdDuration time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		schedule:     schedule,
		maxSims:      maxSims,
		holdDuration: holdDuration,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (u *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	u.timeProvider = tp
	return u
}

// Execute переносит заявку bookingID пользователя userID на newStartAt.
// Перенос разрешён только для pending-заявки до её начала; проверка
// вместимости на новом интервале исключает саму заявку.
func (u *UseCase) Execute(ctx context.Context, userID, bookingID int64, newStartAt time.Time) (*domain.Booking, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	if newStartAt.IsZero() {
		return nil, fmt.Errorf("%w: new start_at is required", ErrInvalidInput)
	}

	now := u.timeProvider.Now()
	if !newStartAt.After(now) {
		return nil, fmt.Errorf("%w: new start_at must be in the future", ErrInvalidInput)
	}

	var updated *domain.Booking

	err := u.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		b, err := u.bookingRepo.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id %d", ErrBookingNotFound, bookingID)
			}
			return fmt.Errorf("%w: Execute - get booking: %v", ErrInternal, err)
		}
		if b.UserID != userID {
			return fmt.Errorf("%w: booking %d", ErrNotOwner, bookingID)
		}
		if b.IsExpired(now) || !b.CanBeRescheduled(now) {
			return fmt.Errorf("%w: booking %d in status %s", ErrNotEditable, bookingID, b.Status)
		}

		newIv := domain.NewInterval(newStartAt, b.DurationMinutes)
		if err := u.schedule.ValidateInterval(newIv); err != nil {
			return fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
		}

		if _, err := u.bookingRepo.CancelExpiredPending(ctx, now); err != nil {
			return fmt.Errorf("%w: Execute - cancel expired: %v", ErrInternal, err)
		}
		if err := u.bookingRepo.LockOverlapping(ctx, newIv, b.ID); err != nil {
			return fmt.Errorf("%w: Execute - lock overlapping: %v", ErrInternal, err)
		}
		busy, err := u.bookingRepo.SumOverlappingSims(ctx, newIv, &b.ID)
		if err != nil {
			return fmt.Errorf("%w: Execute - sum overlapping: %v", ErrInternal, err)
		}
		if u.maxSims-busy < b.Sims {
			return fmt.Errorf("%w: requested %d, free %d", ErrSlotUnavailable, b.Sims, u.maxSims-busy)
		}

		expiresAt := now.Add(u.holdDuration)
		if err := u.bookingRepo.UpdateInterval(ctx, b.ID, newIv, expiresAt); err != nil {
			return fmt.Errorf("%w: Execute - update interval: %v", ErrInternal, err)
		}

		b.StartAt = newIv.StartAt
		b.EndAt = newIv.EndAt
		b.ExpiresAt = &expiresAt
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("reschedule_booking: booking %d moved to %s",
		updated.ID, updated.StartAt.Format(domain.TimeFormat))
	return updated, nil
}
