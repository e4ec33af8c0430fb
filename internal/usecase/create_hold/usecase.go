package create_hold

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// UseCase создание заявки на бронирование с временным холдом
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	loyalty      LoyaltyService
	schedule     domain.Schedule
	tariffs      domain.Tariffs
	maxSims      int
	holdDuration time.Duration
	maxPerUser   int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	loyalty LoyaltyService,
	schedule domain.Schedule,
	tariffs domain.Tariffs,
	maxSims int,
	holdDuration time.Duration,
	maxPerUser int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		loyalty:      loyalty,
		schedule:     schedule,
		tariffs:      tariffs,
		maxSims:      maxSims,
		holdDuration: holdDuration,
		maxPerUser:   maxPerUser,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (u *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	u.timeProvider = tp
	return u
}

// Execute создаёт pending-заявку, если на интервале хватает свободных симуляторов.
// Цена считается по тарифу и уменьшается на списанные бонусы, если клиент
// запросил списание. Проверка вместимости, списание и вставка выполняются
// в одной serializable-транзакции, пересекающиеся строки блокируются FOR UPDATE.
func (u *UseCase) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := u.validate(req); err != nil {
		return nil, err
	}

	now := u.timeProvider.Now()
	iv := domain.NewInterval(req.StartAt, req.DurationMinutes)
	price, err := u.tariffs.PriceFor(req.DurationMinutes, req.Sims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.Booking
	var bonusSpent int

	err = u.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		reclaimed, err := u.bookingRepo.CancelExpiredPending(ctx, now)
		if err != nil {
			return fmt.Errorf("%w: Execute - cancel expired: %v", ErrInternal, err)
		}
		if reclaimed > 0 {
			u.logger.Info("create_hold: released %d expired holds", reclaimed)
		}

		active, err := u.bookingRepo.CountActiveByUser(ctx, req.UserID, now)
		if err != nil {
			return fmt.Errorf("%w: Execute - count active: %v", ErrInternal, err)
		}
		if active >= u.maxPerUser {
			return fmt.Errorf("%w: user %d has %d active bookings", ErrTooManyBookings, req.UserID, active)
		}

		if err := u.bookingRepo.LockOverlapping(ctx, iv, 0); err != nil {
			return fmt.Errorf("%w: Execute - lock overlapping: %v", ErrInternal, err)
		}

		busy, err := u.bookingRepo.SumOverlappingSims(ctx, iv, nil)
		if err != nil {
			return fmt.Errorf("%w: Execute - sum overlapping: %v", ErrInternal, err)
		}
		if u.maxSims-busy < req.Sims {
			return fmt.Errorf("%w: requested %d, free %d", ErrCapacityExceeded, req.Sims, u.maxSims-busy)
		}

		// списание бонусов и вставка брони в одной транзакции:
		// откат вставки возвращает бонусы на баланс
		if req.BonusSpend > 0 {
			bonusSpent, err = u.loyalty.SpendBonuses(ctx, req.UserID, req.ClientPhone, price, req.BonusSpend)
			if err != nil {
				return fmt.Errorf("%w: Execute - spend bonuses: %v", ErrInternal, err)
			}
		}

		expiresAt := now.Add(u.holdDuration)
		created, err = u.bookingRepo.Create(ctx, &domain.Booking{
			UserID:          req.UserID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			StartAt:         iv.StartAt,
			EndAt:           iv.EndAt,
			Sims:            req.Sims,
			DurationMinutes: req.DurationMinutes,
			Price:           price - bonusSpent,
			Status:          domain.StatusPending,
			ExpiresAt:       &expiresAt,
		})
		if err != nil {
			return fmt.Errorf("%w: Execute - create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("create_hold: booking %d created for user %d, %s, sims=%d",
		created.ID, created.UserID, iv.StartAt.Format(domain.TimeFormat), created.Sims)
	u.notifier.NotifyHoldCreated(ctx, created)

	return &Result{
		BookingID:  created.ID,
		StartAt:    created.StartAt,
		EndAt:      created.EndAt,
		Sims:       created.Sims,
		Price:      created.Price,
		BonusSpent: bonusSpent,
		ExpiresAt:  *created.ExpiresAt,
	}, nil
}
