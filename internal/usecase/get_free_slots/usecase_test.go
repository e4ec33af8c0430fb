package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type fakeRepo struct {
	bookings   []*domain.Booking
	sweepCalls int
	filter     domain.BookingsFilter
}

func (f *fakeRepo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	f.sweepCalls++
	return 0, nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{}) {}
func (nopLogger) Warn(format string, v ...interface{}) {}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeRepo, now time.Time) *UseCase {
	return NewUseCase(
		repo,
		domain.DefaultSchedule(time.UTC),
		domain.DefaultTariffs(),
		domain.DefaultMaxSims,
		nopLogger{},
	).WithTimeProvider(fixedTime{now: now})
}

func booked(startHour, startMin, durationMinutes, sims int, status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, 3, 16, startHour, startMin, 0, 0, time.UTC)
	return &domain.Booking{
		StartAt:         start,
		EndAt:           start.Add(time.Duration(durationMinutes) * time.Minute),
		Sims:            sims,
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestExecute_EmptyDayReturnsFullGrid(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testNow)

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), Request{Day: day, DurationMinutes: 60, SimsNeeded: 1})

	require.NoError(t, err)
	// 13:00..21:30 с шагом 30 минут
	require.Len(t, result.Slots, 18)
	assert.Equal(t, time.Date(2026, 3, 16, 13, 0, 0, 0, time.UTC), result.Slots[0].StartAt)
	assert.Equal(t, time.Date(2026, 3, 16, 21, 30, 0, 0, time.UTC), result.Slots[len(result.Slots)-1].StartAt)
	for _, s := range result.Slots {
		assert.Equal(t, domain.DefaultMaxSims, s.FreeSims)
	}
	assert.Equal(t, 1, repo.sweepCalls)
	assert.Equal(t, domain.CapacityStatuses, repo.filter.Statuses)

	// выборка по пересечению с сутками, а не по началу брони
	require.NotNil(t, repo.filter.Overlapping)
	assert.Equal(t, day, repo.filter.Overlapping.StartAt)
	assert.Equal(t, day.AddDate(0, 0, 1), repo.filter.Overlapping.EndAt)
}

func TestExecute_BlockSpanningMidnightOccupiesMorningSlots(t *testing.T) {
	// техперерыв начался накануне и тянется до 14:00 текущего дня
	repo := &fakeRepo{bookings: []*domain.Booking{
		{
			StartAt: time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC),
			Sims:    domain.DefaultMaxSims,
			Status:  domain.StatusBlocked,
		},
	}}
	uc := newTestUseCase(repo, testNow)

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), Request{Day: day, DurationMinutes: 60, SimsNeeded: 1})

	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)
	assert.Equal(t, time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC), result.Slots[0].StartAt)
}

func TestExecute_BusySlotsFilteredBySimsNeeded(t *testing.T) {
	// 14:00-15:00 занято 3 симулятора из 4
	repo := &fakeRepo{bookings: []*domain.Booking{
		booked(14, 0, 60, 3, domain.StatusConfirmed),
	}}
	uc := newTestUseCase(repo, testNow)

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), Request{Day: day, DurationMinutes: 60, SimsNeeded: 2})

	require.NoError(t, err)

	excluded := map[string]bool{"13:30": true, "14:00": true, "14:30": true}
	for _, s := range result.Slots {
		key := s.StartAt.Format(domain.TimeFormat)
		assert.Falsef(t, excluded[key], "слот %s пересекается с занятым окном", key)
	}
	// 18 слотов минус 3 пересекающихся
	assert.Len(t, result.Slots, 15)
}

func TestExecute_PartiallyBusySlotStillListedForOneSim(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		booked(14, 0, 60, 3, domain.StatusConfirmed),
	}}
	uc := newTestUseCase(repo, testNow)

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), Request{Day: day, DurationMinutes: 60, SimsNeeded: 1})

	require.NoError(t, err)
	require.Len(t, result.Slots, 18)
	for _, s := range result.Slots {
		switch s.StartAt.Format(domain.TimeFormat) {
		case "13:30", "14:00", "14:30":
			assert.Equal(t, 1, s.FreeSims)
		default:
			assert.Equal(t, 4, s.FreeSims)
		}
	}
}

func TestExecute_PastSlotsAreSkipped(t *testing.T) {
	repo := &fakeRepo{}
	// сейчас 15:00 того же дня
	now := time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), Request{Day: day, DurationMinutes: 60, SimsNeeded: 1})

	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)
	// слот ровно в 15:00 тоже не подходит, начало должно быть строго позже now
	assert.Equal(t, time.Date(2026, 3, 16, 15, 30, 0, 0, time.UTC), result.Slots[0].StartAt)
}

func TestExecute_LongerDurationShrinksGrid(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testNow)

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), Request{Day: day, DurationMinutes: 120, SimsNeeded: 1})

	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)
	// последний старт для 120 минут: 20:30 (конец 22:30, зазор до закрытия соблюден)
	assert.Equal(t, time.Date(2026, 3, 16, 20, 30, 0, 0, time.UTC), result.Slots[len(result.Slots)-1].StartAt)
}

func TestExecute_Validation(t *testing.T) {
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  Request
	}{
		{name: "нет даты", req: Request{DurationMinutes: 60, SimsNeeded: 1}},
		{name: "недопустимая длительность", req: Request{Day: day, DurationMinutes: 45, SimsNeeded: 1}},
		{name: "ноль симуляторов", req: Request{Day: day, DurationMinutes: 60}},
		{name: "больше, чем парк", req: Request{Day: day, DurationMinutes: 60, SimsNeeded: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeRepo{}, testNow)
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
