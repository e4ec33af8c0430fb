// Package bookings жизненный цикл брони после создания: просмотр,
// отмена, закрытие визита и техперерывы.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/booking"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	loyalty      LoyaltyService
	txManager    TransactionManager
	notifier     Notifier
	schedule     domain.Schedule
	maxSims      int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	loyalty LoyaltyService,
	txManager TransactionManager,
	notifier Notifier,
	schedule domain.Schedule,
	maxSims int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		loyalty:      loyalty,
		txManager:    txManager,
		notifier:     notifier,
		schedule:     schedule,
		maxSims:      maxSims,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID возвращает бронь. Не владельцу и не сотруднику доступ запрещен.
func (s *Service) GetByID(ctx context.Context, actorID int64, isStaff bool, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID: %v", ErrInternal, err)
	}
	if !isStaff && b.UserID != actorID {
		return nil, fmt.Errorf("%w: booking %d", ErrForbidden, id)
	}
	return b, nil
}

// ListByUser активные брони пользователя (pending и confirmed)
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	list, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		UserID:   &userID,
		Statuses: []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser: %v", ErrInternal, err)
	}
	return list, nil
}

// ListDay расписание дня для сотрудников: все брони и техперерывы,
// пересекающие указанные сутки. Фильтр по пересечению, а не по началу:
// техперерыв, начатый накануне и тянущийся через полночь, тоже виден.
func (s *Service) ListDay(ctx context.Context, day time.Time) ([]*domain.Booking, error) {
	dayStart, dayEnd := s.schedule.DayBounds(day)
	list, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses:    domain.CapacityStatuses,
		Overlapping: &domain.Interval{StartAt: dayStart, EndAt: dayEnd},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ListDay: %v", ErrInternal, err)
	}
	return list, nil
}

// Cancel отменяет бронь. Владелец может отменить до начала слота,
// сотрудник — в любой момент, пока бронь не в финальном статусе.
// Повторная отмена не ошибка: возвращается уже отмененная бронь.
func (s *Service) Cancel(ctx context.Context, actorID int64, isStaff bool, id int64, reason string) (*domain.Booking, error) {
	var cancelled *domain.Booking
	var notify bool

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
			}
			return fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
		}
		if !isStaff && b.UserID != actorID {
			return fmt.Errorf("%w: booking %d", ErrForbidden, id)
		}

		if b.Status == domain.StatusCancelled {
			cancelled = b
			return nil
		}

		if b.IsFinal() || b.IsBlock() {
			return fmt.Errorf("%w: booking %d in status %s", ErrNotCancellable, id, b.Status)
		}
		// сотрудник может отменить и начавшийся слот, владелец — нет
		if !isStaff && !b.CanBeCancelled(s.timeProvider.Now()) {
			return fmt.Errorf("%w: booking %d", ErrTooLate, id)
		}

		if err := s.bookingRepo.SetStatus(ctx, id, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - set status: %v", ErrInternal, err)
		}

		b.Status = domain.StatusCancelled
		b.ExpiresAt = nil
		cancelled = b
		// клиента уведомляем только об отмене чужой рукой
		notify = isStaff && b.UserID != actorID && b.UserID != 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bookings: booking %d cancelled by user %d (staff=%v)", id, actorID, isStaff)
	if notify {
		s.notifier.NotifyBookingCancelled(ctx, cancelled, reason)
	}
	return cancelled, nil
}

// MarkDone закрывает визит: confirmed-бронь после окончания слота
// переводится в done, клиенту начисляются бонусы. Повторный вызов
// по уже закрытой брони — no-op. Начисление защищено флагом
// bonus_applied и выполняется в одной транзакции со сменой статуса.
func (s *Service) MarkDone(ctx context.Context, id int64) (*domain.Booking, int, error) {
	var finalized *domain.Booking
	var bonus int

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
			}
			return fmt.Errorf("%w: MarkDone - get booking: %v", ErrInternal, err)
		}

		if b.Status == domain.StatusDone {
			finalized = b
			return nil
		}
		if !b.CanBeFinalized(s.timeProvider.Now()) {
			if b.Status != domain.StatusConfirmed {
				return fmt.Errorf("%w: booking %d in status %s", ErrNotConfirmed, id, b.Status)
			}
			return fmt.Errorf("%w: booking %d ends at %s", ErrTooEarly, id, b.EndAt.Format(domain.TimeFormat))
		}

		if err := s.bookingRepo.SetStatus(ctx, id, domain.StatusDone); err != nil {
			return fmt.Errorf("%w: MarkDone - set status: %v", ErrInternal, err)
		}

		if !b.BonusApplied && b.UserID != 0 {
			bonus, err = s.loyalty.RecordVisit(ctx, b)
			if err != nil {
				return fmt.Errorf("%w: MarkDone - record visit: %v", ErrInternal, err)
			}
			if err := s.bookingRepo.SetBonusApplied(ctx, id); err != nil {
				return fmt.Errorf("%w: MarkDone - set bonus applied: %v", ErrInternal, err)
			}
			b.BonusApplied = true
		}

		b.Status = domain.StatusDone
		finalized = b
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("bookings: booking %d marked done, bonus %d", id, bonus)
	return finalized, bonus, nil
}

// MarkNoShow фиксирует неявку: confirmed-бронь после окончания слота
// переводится в no_show без начисления бонусов. Повторный вызов — no-op.
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*domain.Booking, error) {
	var finalized *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
			}
			return fmt.Errorf("%w: MarkNoShow - get booking: %v", ErrInternal, err)
		}

		if b.Status == domain.StatusNoShow {
			finalized = b
			return nil
		}
		if !b.CanBeFinalized(s.timeProvider.Now()) {
			if b.Status != domain.StatusConfirmed {
				return fmt.Errorf("%w: booking %d in status %s", ErrNotConfirmed, id, b.Status)
			}
			return fmt.Errorf("%w: booking %d ends at %s", ErrTooEarly, id, b.EndAt.Format(domain.TimeFormat))
		}

		if err := s.bookingRepo.SetStatus(ctx, id, domain.StatusNoShow); err != nil {
			return fmt.Errorf("%w: MarkNoShow - set status: %v", ErrInternal, err)
		}

		b.Status = domain.StatusNoShow
		finalized = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bookings: booking %d marked no_show", id)
	return finalized, nil
}

// CreateBlock создает техперерыв: бронь-заглушку без клиента, которая
// занимает sims симуляторов на интервале. Вместимость проверяется
// в той же транзакции, что и вставка.
func (s *Service) CreateBlock(ctx context.Context, iv domain.Interval, sims int) (*domain.Booking, error) {
	if err := iv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if sims < 1 || sims > s.maxSims {
		return nil, fmt.Errorf("%w: sims must be in 1..%d", ErrInvalidInput, s.maxSims)
	}

	var created *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.LockOverlapping(ctx, iv, 0); err != nil {
			return fmt.Errorf("%w: CreateBlock - lock overlapping: %v", ErrInternal, err)
		}
		busy, err := s.bookingRepo.SumOverlappingSims(ctx, iv, nil)
		if err != nil {
			return fmt.Errorf("%w: CreateBlock - sum overlapping: %v", ErrInternal, err)
		}
		if s.maxSims-busy < sims {
			return fmt.Errorf("%w: requested %d, free %d", ErrCapacityExceeded, sims, s.maxSims-busy)
		}

		created, err = s.bookingRepo.Create(ctx, &domain.Booking{
			UserID:          0,
			StartAt:         iv.StartAt,
			EndAt:           iv.EndAt,
			Sims:            sims,
			DurationMinutes: iv.DurationMinutes(),
			Price:           0,
			Status:          domain.StatusBlocked,
		})
		if err != nil {
			return fmt.Errorf("%w: CreateBlock - create: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bookings: block %d created, %s, sims=%d",
		created.ID, iv.StartAt.Format(domain.TimeFormat), sims)
	return created, nil
}

// DeleteBlock удаляет техперерыв. Правка техперерыва не поддерживается:
// вместо нее удаление и создание нового.
func (s *Service) DeleteBlock(ctx context.Context, id int64) error {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
		}
		return fmt.Errorf("%w: DeleteBlock - get booking: %v", ErrInternal, err)
	}
	if !b.IsBlock() {
		return fmt.Errorf("%w: booking %d in status %s", ErrNotBlock, id, b.Status)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: DeleteBlock - delete: %v", ErrInternal, err)
	}

	s.logger.Info("bookings: block %d deleted", id)
	return nil
}
