package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	waitlistRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/waitlist"
)

// JobsConfig временные окна фоновых задач
type JobsConfig struct {
	// Tick период всех задач
	Tick time.Duration
	// AutoConfirmWindow за сколько до начала слота заявка подтверждается автоматически
	AutoConfirmWindow time.Duration
	// AutoCompleteDelay через сколько после окончания слота визит закрывается
	AutoCompleteDelay time.Duration
	// RemindBefore за сколько до начала слота отправляется напоминание
	RemindBefore time.Duration
}

// JobsDeps зависимости фоновых задач
type JobsDeps struct {
	BookingRepo  BookingRepository
	WaitlistRepo WaitlistRepository
	Confirm      ConfirmUseCase
	Bookings     BookingsService
	Availability AvailabilityService
	Notifier     Notifier
	TimeProvider TimeProvider
	Logger       Logger
}

// NewJobs собирает стандартный набор фоновых задач сервиса
func NewJobs(deps JobsDeps, cfg JobsConfig) []Job {
	if deps.TimeProvider == nil {
		deps.TimeProvider = &RealTimeProvider{}
	}

	return []Job{
		{
			Name:     "expire_pending",
			Interval: cfg.Tick,
			Run:      expirePendingJob(deps),
		},
		{
			Name:     "autoconfirm",
			Interval: cfg.Tick,
			Run:      autoconfirmJob(deps, cfg.AutoConfirmWindow),
		},
		{
			Name:     "autocomplete",
			Interval: cfg.Tick,
			Run:      autocompleteJob(deps, cfg.AutoCompleteDelay),
		},
		{
			Name:     "waitlist_notify",
			Interval: cfg.Tick,
			Run:      waitlistNotifyJob(deps),
		},
		{
			Name:     "remind_upcoming",
			Interval: cfg.Tick,
			Run:      remindUpcomingJob(deps, cfg.RemindBefore, cfg.Tick),
		},
	}
}

// expirePendingJob снимает протухшие холды. Дублирует очистку,
// которую делают расчеты доступности, для периодов без трафика.
func expirePendingJob(deps JobsDeps) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		reclaimed, err := deps.BookingRepo.CancelExpiredPending(ctx, deps.TimeProvider.Now())
		if err != nil {
			return fmt.Errorf("cancel expired pending: %w", err)
		}
		if reclaimed > 0 {
			deps.Logger.Info("expire_pending: released %d expired holds", reclaimed)
		}
		return nil
	}
}

// autoconfirmJob подтверждает pending-заявки, до начала которых осталось
// меньше окна автоподтверждения. Использует тот же usecase, что и ручное
// подтверждение: протухшие и не влезающие по вместимости заявки отменятся.
func autoconfirmJob(deps JobsDeps, window time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := deps.TimeProvider.Now()
		pending, err := deps.BookingRepo.ListPendingStartingBefore(ctx, now, now.Add(window))
		if err != nil {
			return fmt.Errorf("list pending: %w", err)
		}

		for _, b := range pending {
			result, err := deps.Confirm.Execute(ctx, b.ID)
			if err != nil {
				deps.Logger.Error("autoconfirm: booking %d: %v", b.ID, err)
				continue
			}
			deps.Logger.Info("autoconfirm: booking %d -> %s", b.ID, result.Outcome)
		}
		return nil
	}
}

// autocompleteJob закрывает confirmed-визиты, закончившиеся дольше
// задержки назад, с начислением бонусов
func autocompleteJob(deps JobsDeps, delay time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cutoff := deps.TimeProvider.Now().Add(-delay)
		ended, err := deps.BookingRepo.ListConfirmedEndedBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("list ended: %w", err)
		}

		for _, b := range ended {
			if _, bonus, err := deps.Bookings.MarkDone(ctx, b.ID); err != nil {
				deps.Logger.Error("autocomplete: booking %d: %v", b.ID, err)
			} else {
				deps.Logger.Info("autocomplete: booking %d done, bonus %d", b.ID, bonus)
			}
		}
		return nil
	}
}

// waitlistNotifyJob проверяет активные подписки: если на желаемом
// интервале освободилось достаточно симуляторов, клиент получает
// уведомление. Подписка деактивируется до отправки, и только если
// деактивация прошла (строка еще была активна) — уведомление уходит.
// Так каждая подписка срабатывает не более одного раза, даже если
// несколько экземпляров задачи гонятся за одной строкой.
func waitlistNotifyJob(deps JobsDeps) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		entries, err := deps.WaitlistRepo.ListActiveFuture(ctx, deps.TimeProvider.Now())
		if err != nil {
			return fmt.Errorf("list active entries: %w", err)
		}

		for _, e := range entries {
			free, err := deps.Availability.FreeCapacity(ctx, e.Interval(), nil)
			if err != nil {
				deps.Logger.Error("waitlist_notify: entry %d: %v", e.ID, err)
				continue
			}
			if free < e.SimsNeeded {
				continue
			}

			if err := deps.WaitlistRepo.Deactivate(ctx, e.ID); err != nil {
				if !errors.Is(err, waitlistRepo.ErrEntryNotFound) {
					deps.Logger.Error("waitlist_notify: deactivate entry %d: %v", e.ID, err)
				}
				continue
			}

			deps.Notifier.NotifyWaitlistSlotFree(ctx, e, free)
			deps.Logger.Info("waitlist_notify: entry %d notified, free=%d", e.ID, free)
		}
		return nil
	}
}

// remindUpcomingJob напоминает о подтвержденных визитах, начинающихся
// примерно через remindBefore. Окно выборки равно периоду задачи и
// сдвигается на него же каждый тик, поэтому каждая бронь попадает
// в выборку один раз.
func remindUpcomingJob(deps JobsDeps, remindBefore, tick time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		from := deps.TimeProvider.Now().Add(remindBefore)
		upcoming, err := deps.BookingRepo.ListConfirmedStartingBetween(ctx, from, from.Add(tick))
		if err != nil {
			return fmt.Errorf("list upcoming: %w", err)
		}

		for _, b := range upcoming {
			if b.UserID == 0 {
				continue
			}
			deps.Notifier.NotifyBookingReminder(ctx, b)
			deps.Logger.Info("remind_upcoming: booking %d, starts %s",
				b.ID, b.StartAt.Format(domain.TimeFormat))
		}
		return nil
	}
}
