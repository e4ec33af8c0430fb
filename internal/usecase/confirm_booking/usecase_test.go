package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/booking"
)

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	booking *domain.Booking
	busy    int

	lockCalls     int
	setStatusHist []domain.BookingStatus
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepo) LockOverlapping(ctx context.Context, iv domain.Interval, excludeID int64) error {
	f.lockCalls++
	return nil
}

func (f *fakeRepo) SumOverlappingSims(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error) {
	return f.busy, nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.setStatusHist = append(f.setStatusHist, status)
	f.booking.Status = status
	f.booking.ExpiresAt = nil
	return nil
}

type fakeNotifier struct {
	confirmed []int64
	cancelled []string
}

func (f *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) {
	f.confirmed = append(f.confirmed, b.ID)
}

func (f *fakeNotifier) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) {
	f.cancelled = append(f.cancelled, reason)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingBooking(sims int) *domain.Booking {
	start := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	expiresAt := start.Add(-time.Hour)
	return &domain.Booking{
		ID:        1,
		UserID:    100,
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		Sims:      sims,
		Status:    domain.StatusPending,
		ExpiresAt: &expiresAt,
	}
}

func newTestUseCase(repo *fakeRepo, notifier *fakeNotifier, now time.Time) *UseCase {
	return NewUseCase(repo, fakeTxManager{}, notifier, 4, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func TestExecute_ConfirmsWhenCapacityFits(t *testing.T) {
	b := pendingBooking(2)
	future := b.StartAt.Add(-30 * time.Minute)
	live := future.Add(time.Hour)
	b.ExpiresAt = &live

	repo := &fakeRepo{booking: b, busy: 2}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, future)

	result, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, result.Outcome)
	assert.Equal(t, domain.StatusConfirmed, result.Booking.Status)
	assert.Equal(t, 1, repo.lockCalls)
	assert.Equal(t, []int64{1}, notifier.confirmed)
}

func TestExecute_CancelsWhenNoCapacity(t *testing.T) {
	b := pendingBooking(2)
	now := b.StartAt.Add(-30 * time.Minute)
	live := now.Add(time.Hour)
	b.ExpiresAt = &live

	// 3 занято из 4, заявке нужно 2 — не влезает
	repo := &fakeRepo{booking: b, busy: 3}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, now)

	result, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoCapacity, result.Outcome)
	assert.Equal(t, domain.StatusCancelled, result.Booking.Status)
	assert.Equal(t, []string{"окно уже занято"}, notifier.cancelled)
}

func TestExecute_ExpiredHoldIsCancelled(t *testing.T) {
	b := pendingBooking(1)
	// expiresAt в прошлом относительно now
	now := b.StartAt.Add(-10 * time.Minute)

	repo := &fakeRepo{booking: b, busy: 0}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, now)

	result, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, result.Outcome)
	assert.Equal(t, domain.StatusCancelled, result.Booking.Status)
	// вместимость при протухании не считается
	assert.Equal(t, 0, repo.lockCalls)
	assert.Equal(t, []string{"заявка просрочена"}, notifier.cancelled)
}

func TestExecute_AlreadyDecidedIsIdempotent(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusDone,
	} {
		t.Run(string(status), func(t *testing.T) {
			b := pendingBooking(1)
			b.Status = status
			b.ExpiresAt = nil

			repo := &fakeRepo{booking: b}
			notifier := &fakeNotifier{}
			uc := newTestUseCase(repo, notifier, b.StartAt.Add(-time.Hour))

			result, err := uc.Execute(context.Background(), 1)

			require.NoError(t, err)
			assert.Equal(t, OutcomeUnchanged, result.Outcome)
			assert.Equal(t, status, result.Booking.Status)
			// статус не трогали, уведомления не слали
			assert.Empty(t, repo.setStatusHist)
			assert.Empty(t, notifier.confirmed)
			assert.Empty(t, notifier.cancelled)
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, &fakeNotifier{}, time.Now())

	_, err := uc.Execute(context.Background(), 99)

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SecondConfirmLosesCapacityRace(t *testing.T) {
	// две пересекающиеся заявки по 3 симулятора: после победы первой
	// свободно остается 1, и вторая при подтверждении отменяется
	winner := pendingBooking(3)
	loser := pendingBooking(3)
	loser.ID = 2
	now := winner.StartAt.Add(-30 * time.Minute)
	live := now.Add(time.Hour)
	winner.ExpiresAt = &live
	loser.ExpiresAt = &live

	winnerRepo := &fakeRepo{booking: winner, busy: 0}
	uc := newTestUseCase(winnerRepo, &fakeNotifier{}, now)
	result, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, OutcomeConfirmed, result.Outcome)

	// для второй заявки пересекающиеся брони теперь занимают 3 места
	loserRepo := &fakeRepo{booking: loser, busy: 3}
	notifier := &fakeNotifier{}
	uc = newTestUseCase(loserRepo, notifier, now)
	result, err = uc.Execute(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoCapacity, result.Outcome)
	assert.Equal(t, []string{"окно уже занято"}, notifier.cancelled)
}
