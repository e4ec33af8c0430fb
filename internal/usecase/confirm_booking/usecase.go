// Package confirm_booking подтверждение pending-заявки.
//
// Самая опасная операция сервиса: два администратора (или администратор
// и автоподтверждение) могут одновременно подтверждать пересекающиеся
// заявки, суммарно не влезающие в парк симуляторов. Протокол ниже
// гарантирует не больше одного победителя.
package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/booking"
)

// UseCase use case подтверждения бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	maxSims      int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	maxSims int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		maxSims:      maxSims,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute подтверждает заявку. Порядок внутри сериализуемой транзакции:
//
//  1. Блокируем строку заявки (SELECT ... FOR UPDATE).
//  2. Протухла — переводим в cancelled и выходим с OutcomeExpired.
//  3. Уже не pending — ничего не трогаем, идемпотентный OutcomeUnchanged:
//     повторное нажатие кнопки не должно пересчитывать уже решённую заявку.
//  4. Блокируем все пересекающиеся брони в статусах pending/confirmed/blocked
//     в порядке возрастания id, суммируем их симуляторы без учёта себя
//     и сравниваем с вместимостью.
//  5. Хватает — confirmed, нет — cancelled.
//
// Уведомления уходят только после коммита.
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*Result, error) {
	uc.logger.Info("ConfirmBooking: confirming booking id=%d", bookingID)

	var outcome Outcome

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: lock booking: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now()

		if b.IsExpired(now) {
			if err := uc.bookingRepo.SetStatus(txCtx, b.ID, domain.StatusCancelled); err != nil {
				return fmt.Errorf("%w: cancel expired booking: %v", ErrInternal, err)
			}
			outcome = OutcomeExpired
			return nil
		}

		if b.Status != domain.StatusPending {
			outcome = OutcomeUnchanged
			return nil
		}

		if err := uc.bookingRepo.LockOverlapping(txCtx, b.Interval(), b.ID); err != nil {
			return fmt.Errorf("%w: lock overlapping bookings: %v", ErrInternal, err)
		}

		busy, err := uc.bookingRepo.SumOverlappingSims(txCtx, b.Interval(), &b.ID)
		if err != nil {
			return fmt.Errorf("%w: sum overlapping sims: %v", ErrInternal, err)
		}

		if uc.maxSims-busy >= b.Sims {
			if err := uc.bookingRepo.SetStatus(txCtx, b.ID, domain.StatusConfirmed); err != nil {
				return fmt.Errorf("%w: confirm booking: %v", ErrInternal, err)
			}
			outcome = OutcomeConfirmed
		} else {
			if err := uc.bookingRepo.SetStatus(txCtx, b.ID, domain.StatusCancelled); err != nil {
				return fmt.Errorf("%w: cancel booking: %v", ErrInternal, err)
			}
			outcome = OutcomeNoCapacity
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) {
			uc.logger.Error("ConfirmBooking: booking id=%d failed: %v", bookingID, err)
		}
		return nil, err
	}

	// читаем финальное состояние после коммита: уведомления не должны
	// опираться на данные, видимые только внутри транзакции
	b, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to re-read booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: re-read booking: %v", ErrInternal, err)
	}

	switch outcome {
	case OutcomeConfirmed:
		uc.logger.Info("ConfirmBooking: booking id=%d confirmed", bookingID)
		uc.notifier.NotifyBookingConfirmed(ctx, b)
	case OutcomeExpired:
		uc.logger.Info("ConfirmBooking: booking id=%d expired, cancelled", bookingID)
		uc.notifier.NotifyBookingCancelled(ctx, b, "заявка просрочена")
	case OutcomeNoCapacity:
		uc.logger.Warn("ConfirmBooking: booking id=%d cancelled, not enough sims", bookingID)
		uc.notifier.NotifyBookingCancelled(ctx, b, "окно уже занято")
	case OutcomeUnchanged:
		uc.logger.Info("ConfirmBooking: booking id=%d already decided, status=%s", bookingID, b.Status)
	}

	return &Result{Outcome: outcome, Booking: b}, nil
}
