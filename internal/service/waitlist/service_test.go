package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	waitlistRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/waitlist"
)

type fakeRepo struct {
	entry   *domain.WaitlistEntry
	entries []*domain.WaitlistEntry

	created     *domain.WaitlistEntry
	deactivated []int64
	gone        bool
}

func (f *fakeRepo) Create(ctx context.Context, w *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	w.ID = 1
	f.created = w
	return w, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	cp := *f.entry
	return &cp, nil
}

func (f *fakeRepo) ListActiveFuture(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error) {
	return f.entries, nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id int64) error {
	if f.gone {
		return waitlistRepo.ErrEntryNotFound
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) *Service {
	return NewService(
		repo,
		domain.DefaultSchedule(time.UTC),
		domain.DefaultTariffs(),
		domain.DefaultMaxSims,
		nopLogger{},
	).WithTimeProvider(fixedTime{now: testNow})
}

func TestSubscribe_CreatesActiveEntry(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	start := time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC)
	entry, err := svc.Subscribe(context.Background(), 100, SubscribeRequest{
		StartAt:         start,
		DurationMinutes: 60,
		SimsNeeded:      2,
	})

	require.NoError(t, err)
	assert.True(t, entry.Active)
	assert.Equal(t, int64(100), entry.UserID)
	assert.Equal(t, start.Add(time.Hour), entry.EndAt)
	require.NotNil(t, repo.created)
}

func TestSubscribe_Validation(t *testing.T) {
	start := time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		userID  int64
		req     SubscribeRequest
		wantErr error
	}{
		{
			name:    "нулевой пользователь",
			userID:  0,
			req:     SubscribeRequest{StartAt: start, DurationMinutes: 60, SimsNeeded: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "недопустимая длительность",
			userID:  100,
			req:     SubscribeRequest{StartAt: start, DurationMinutes: 45, SimsNeeded: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "ноль симуляторов",
			userID:  100,
			req:     SubscribeRequest{StartAt: start, DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "время в прошлом",
			userID:  100,
			req:     SubscribeRequest{StartAt: testNow.Add(-time.Hour), DurationMinutes: 60, SimsNeeded: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:   "до открытия клуба",
			userID: 100,
			req: SubscribeRequest{
				StartAt:         time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
				DurationMinutes: 60,
				SimsNeeded:      1,
			},
			wantErr: ErrOutsideBusinessHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := newTestService(repo)

			_, err := svc.Subscribe(context.Background(), tt.userID, tt.req)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.created)
		})
	}
}

func TestUnsubscribe_OwnerOnly(t *testing.T) {
	entry := &domain.WaitlistEntry{ID: 5, UserID: 100, Active: true}

	t.Run("владелец снимает подписку", func(t *testing.T) {
		repo := &fakeRepo{entry: entry}
		svc := newTestService(repo)

		err := svc.Unsubscribe(context.Background(), 100, 5)

		require.NoError(t, err)
		assert.Equal(t, []int64{5}, repo.deactivated)
	})

	t.Run("чужому пользователю отказ", func(t *testing.T) {
		repo := &fakeRepo{entry: entry}
		svc := newTestService(repo)

		err := svc.Unsubscribe(context.Background(), 999, 5)

		require.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, repo.deactivated)
	})

	t.Run("несуществующая подписка", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo)

		err := svc.Unsubscribe(context.Background(), 100, 5)

		require.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestUnsubscribe_AlreadyFiredIsIdempotent(t *testing.T) {
	// подписка уже деактивирована планировщиком между чтением и снятием
	repo := &fakeRepo{
		entry: &domain.WaitlistEntry{ID: 5, UserID: 100, Active: false},
		gone:  true,
	}
	svc := newTestService(repo)

	err := svc.Unsubscribe(context.Background(), 100, 5)

	require.NoError(t, err)
}

func TestListByUser_FiltersForeignEntries(t *testing.T) {
	repo := &fakeRepo{entries: []*domain.WaitlistEntry{
		{ID: 1, UserID: 100, StartAt: testNow.Add(time.Hour), Active: true},
		{ID: 2, UserID: 200, StartAt: testNow.Add(time.Hour), Active: true},
		{ID: 3, UserID: 100, StartAt: testNow.Add(2 * time.Hour), Active: true},
	}}
	svc := newTestService(repo)

	mine, err := svc.ListByUser(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].ID)
	assert.Equal(t, int64(3), mine[1].ID)
}

func TestListByUser_SkipsStaleEntries(t *testing.T) {
	// интервал первой подписки уже начался между выборкой и фильтрацией
	repo := &fakeRepo{entries: []*domain.WaitlistEntry{
		{ID: 1, UserID: 100, StartAt: testNow.Add(-time.Minute), Active: true},
		{ID: 2, UserID: 100, StartAt: testNow.Add(time.Hour), Active: true},
	}}
	svc := newTestService(repo)

	mine, err := svc.ListByUser(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(2), mine[0].ID)
}
