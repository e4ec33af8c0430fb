// Package waitlist подписки на освобождение окна: клиент оставляет
// желаемый интервал и получает уведомление, когда место появляется.
package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	waitlistRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/waitlist"
)

// Service сервис листа ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	schedule     domain.Schedule
	tariffs      domain.Tariffs
	maxSims      int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	schedule domain.Schedule,
	tariffs domain.Tariffs,
	maxSims int,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		schedule:     schedule,
		tariffs:      tariffs,
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

// Subscribe создает подписку на освобождение окна
func (s *Service) Subscribe(ctx context.Context, userID int64, req SubscribeRequest) (*domain.WaitlistEntry, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}
	if !s.tariffs.AllowedDuration(req.DurationMinutes) {
		return nil, fmt.Errorf("%w: duration %d is not allowed", ErrInvalidInput, req.DurationMinutes)
	}
	if req.SimsNeeded < 1 || req.SimsNeeded > s.maxSims {
		return nil, fmt.Errorf("%w: sims must be in 1..%d", ErrInvalidInput, s.maxSims)
	}
	if !req.StartAt.After(s.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: start_at must be in the future", ErrInvalidInput)
	}

	iv := domain.NewInterval(req.StartAt, req.DurationMinutes)
	if err := s.schedule.ValidateInterval(iv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutsideBusinessHours, err)
	}

	entry, err := s.waitlistRepo.Create(ctx, &domain.WaitlistEntry{
		UserID:          userID,
		StartAt:         iv.StartAt,
		EndAt:           iv.EndAt,
		DurationMinutes: req.DurationMinutes,
		SimsNeeded:      req.SimsNeeded,
		Active:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Subscribe - create entry: %v", ErrInternal, err)
	}

	s.logger.Info("waitlist: user %d subscribed to %s, sims=%d",
		userID, iv.StartAt.Format(domain.TimeFormat), req.SimsNeeded)
	return entry, nil
}

// Unsubscribe снимает подписку. Повторное снятие и снятие уже
// сработавшей подписки не ошибка.
func (s *Service) Unsubscribe(ctx context.Context, userID, entryID int64) error {
	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return fmt.Errorf("%w: id %d", ErrEntryNotFound, entryID)
		}
		return fmt.Errorf("%w: Unsubscribe - get entry: %v", ErrInternal, err)
	}
	if entry.UserID != userID {
		return fmt.Errorf("%w: entry %d", ErrForbidden, entryID)
	}

	err = s.waitlistRepo.Deactivate(ctx, entryID)
	if err != nil && !errors.Is(err, waitlistRepo.ErrEntryNotFound) {
		return fmt.Errorf("%w: Unsubscribe - deactivate: %v", ErrInternal, err)
	}

	s.logger.Info("waitlist: user %d unsubscribed entry %d", userID, entryID)
	return nil
}

// ListByUser активные подписки пользователя на будущие интервалы
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error) {
	all, err := s.waitlistRepo.ListActiveFuture(ctx, s.timeProvider.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	mine := make([]*domain.WaitlistEntry, 0)
	for _, e := range all {
		if e.UserID == userID && e.IsRelevant(now) {
			mine = append(mine, e)
		}
	}
	return mine, nil
}
