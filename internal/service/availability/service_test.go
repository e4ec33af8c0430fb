package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

type fakeRepo struct {
	busy         int
	sumErr       error
	sweepCalls   int
	sweepCleaned int64
	sweepErr     error
	lastExclude  *int64
}

func (f *fakeRepo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	f.sweepCalls++
	return f.sweepCleaned, f.sweepErr
}

func (f *fakeRepo) SumOverlappingSims(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error) {
	f.lastExclude = excludeID
	return f.busy, f.sumErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testInterval() domain.Interval {
	start := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	return domain.NewInterval(start, 60)
}

func TestService_FreeCapacity(t *testing.T) {
	tests := []struct {
		name string
		busy int
		want int
	}{
		{name: "пустой интервал", busy: 0, want: 4},
		{name: "частично занят", busy: 3, want: 1},
		{name: "полностью занят", busy: 4, want: 0},
		{name: "перебронирование прижимается к нулю", busy: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{busy: tt.busy}
			svc := NewService(repo, 4, nopLogger{}).
				WithTimeProvider(fixedTime{now: time.Now()})

			free, err := svc.FreeCapacity(context.Background(), testInterval(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, free)
		})
	}
}

func TestService_FreeCapacity_SweepsExpiredFirst(t *testing.T) {
	repo := &fakeRepo{busy: 1, sweepCleaned: 2}
	svc := NewService(repo, 4, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Now()})

	free, err := svc.FreeCapacity(context.Background(), testInterval(), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, free)
	assert.Equal(t, 1, repo.sweepCalls)
}

func TestService_FreeCapacity_PassesExcludeID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, 4, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Now()})

	excludeID := int64(42)
	_, err := svc.FreeCapacity(context.Background(), testInterval(), &excludeID)

	require.NoError(t, err)
	require.NotNil(t, repo.lastExclude)
	assert.Equal(t, int64(42), *repo.lastExclude)
}

func TestService_FreeCapacity_InvalidInterval(t *testing.T) {
	svc := NewService(&fakeRepo{}, 4, nopLogger{})

	_, err := svc.FreeCapacity(context.Background(), domain.Interval{}, nil)

	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestService_FreeCapacity_SweepError(t *testing.T) {
	repo := &fakeRepo{sweepErr: errors.New("db down")}
	svc := NewService(repo, 4, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Now()})

	_, err := svc.FreeCapacity(context.Background(), testInterval(), nil)

	require.ErrorIs(t, err, ErrInternal)
}
