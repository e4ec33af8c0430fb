// Package availability расчет свободных симуляторов на интервал времени.
package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// Service сервис расчета доступности
type Service struct {
	bookingRepo  BookingRepository
	maxSims      int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, maxSims int, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
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

// MaxSims общее число симуляторов клуба
func (s *Service) MaxSims() int {
	return s.maxSims
}

// FreeCapacity возвращает число свободных симуляторов в интервале iv.
// excludeID, если задан, исключает бронь из подсчета — так перенос
// заявки не конкурирует сам с собой.
//
// Перед подсчетом протухшие pending-заявки переводятся в cancelled:
// каждый расчет доступности попутно возвращает в оборот вместимость,
// зависшую за просроченными заявками. Периодический sweeper дублирует
// эту очистку для ночных простоев без трафика — механизмы дополняют
// друг друга, а не заменяют.
func (s *Service) FreeCapacity(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error) {
	if err := iv.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	now := s.timeProvider.Now()

	cleaned, err := s.bookingRepo.CancelExpiredPending(ctx, now)
	if err != nil {
		s.logger.Error("FreeCapacity: failed to cancel expired pending: %v", err)
		return 0, fmt.Errorf("%w: cancel expired pending: %v", ErrInternal, err)
	}
	if cleaned > 0 {
		s.logger.Info("FreeCapacity: reclaimed %d expired pending booking(s)", cleaned)
	}

	busy, err := s.bookingRepo.SumOverlappingSims(ctx, iv, excludeID)
	if err != nil {
		s.logger.Error("FreeCapacity: failed to sum overlapping sims: %v", err)
		return 0, fmt.Errorf("%w: sum overlapping sims: %v", ErrInternal, err)
	}

	free := s.maxSims - busy
	// между чтением и действием возможна гонка, поэтому отрицательное
	// значение не считаем ошибкой, а прижимаем к нулю
	if free < 0 {
		free = 0
	}

	return free, nil
}
