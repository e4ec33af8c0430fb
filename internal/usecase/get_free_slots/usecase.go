package get_free_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// UseCase сетка свободных слотов на день.
// Одной выборкой забирает все занимающие вместимость брони дня
// и считает свободные симуляторы для каждого слота в памяти.
type UseCase struct {
	bookingRepo  BookingRepository
	schedule     domain.Schedule
	tariffs      domain.Tariffs
	maxSims      int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	schedule domain.Schedule,
	tariffs domain.Tariffs,
	maxSims int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		schedule:     schedule,
		tariffs:      tariffs,
		maxSims:      maxSims,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (u *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	u.timeProvider = tp
	return u
}

// Execute возвращает слоты дня, где свободно не меньше SimsNeeded симуляторов.
// Прошедшие слоты не включаются. Протухшие холды перед расчетом снимаются,
// чтобы сетка не показывала занятым то, что уже освободилось.
func (u *UseCase) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	if !u.tariffs.AllowedDuration(req.DurationMinutes) {
		return nil, fmt.Errorf("%w: duration %d is not allowed", ErrInvalidInput, req.DurationMinutes)
	}
	if req.SimsNeeded < 1 || req.SimsNeeded > u.maxSims {
		return nil, fmt.Errorf("%w: sims must be in 1..%d", ErrInvalidInput, u.maxSims)
	}

	now := u.timeProvider.Now()

	reclaimed, err := u.bookingRepo.CancelExpiredPending(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - cancel expired: %v", ErrInternal, err)
	}
	if reclaimed > 0 {
		u.logger.Info("get_free_slots: released %d expired holds", reclaimed)
	}

	// фильтр по пересечению с сутками: бронь, начатую накануне
	// и тянущуюся через полночь, сетка тоже должна учитывать
	dayStart, dayEnd := u.schedule.DayBounds(req.Day)
	busy, err := u.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses:    domain.CapacityStatuses,
		Overlapping: &domain.Interval{StartAt: dayStart, EndAt: dayEnd},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - list bookings: %v", ErrInternal, err)
	}

	result := &Result{Day: dayStart}
	for _, start := range u.schedule.SlotStarts(req.Day, req.DurationMinutes) {
		if !start.After(now) {
			continue
		}

		slot := domain.NewInterval(start, req.DurationMinutes)
		occupied := 0
		for _, b := range busy {
			if b.Interval().Overlaps(slot) {
				occupied += b.Sims
			}
		}

		free := u.maxSims - occupied
		if free >= req.SimsNeeded {
			result.Slots = append(result.Slots, Slot{
				StartAt:  slot.StartAt,
				EndAt:    slot.EndAt,
				FreeSims: free,
			})
		}
	}

	return result, nil
}
