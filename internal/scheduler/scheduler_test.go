package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	waitlistRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SRC-BookingService/internal/usecase/confirm_booking"
)

type fakeBookingRepo struct {
	pending  []*domain.Booking
	ended    []*domain.Booking
	upcoming []*domain.Booking

	sweepErr   error
	sweepCalls int
}

func (f *fakeBookingRepo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	f.sweepCalls++
	return 0, f.sweepErr
}

func (f *fakeBookingRepo) ListPendingStartingBefore(ctx context.Context, now, until time.Time) ([]*domain.Booking, error) {
	return f.pending, nil
}

func (f *fakeBookingRepo) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	return f.ended, nil
}

func (f *fakeBookingRepo) ListConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	return f.upcoming, nil
}

type fakeWaitlistRepo struct {
	entries []*domain.WaitlistEntry

	deactivated map[int64]bool
}

func (f *fakeWaitlistRepo) ListActiveFuture(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error) {
	active := make([]*domain.WaitlistEntry, 0)
	for _, e := range f.entries {
		if !f.deactivated[e.ID] {
			active = append(active, e)
		}
	}
	return active, nil
}

func (f *fakeWaitlistRepo) Deactivate(ctx context.Context, id int64) error {
	if f.deactivated == nil {
		f.deactivated = make(map[int64]bool)
	}
	if f.deactivated[id] {
		return waitlistRepo.ErrEntryNotFound
	}
	f.deactivated[id] = true
	return nil
}

type fakeConfirm struct {
	errOn     int64
	confirmed []int64
}

func (f *fakeConfirm) Execute(ctx context.Context, bookingID int64) (*confirm_booking.Result, error) {
	if bookingID == f.errOn {
		return nil, errors.New("boom")
	}
	f.confirmed = append(f.confirmed, bookingID)
	return &confirm_booking.Result{Outcome: confirm_booking.OutcomeConfirmed}, nil
}

type fakeBookings struct {
	done []int64
}

func (f *fakeBookings) MarkDone(ctx context.Context, id int64) (*domain.Booking, int, error) {
	f.done = append(f.done, id)
	return &domain.Booking{ID: id, Status: domain.StatusDone}, 10, nil
}

type fakeAvailability struct {
	free int
}

func (f *fakeAvailability) FreeCapacity(ctx context.Context, iv domain.Interval, excludeID *int64) (int, error) {
	return f.free, nil
}

type fakeNotifier struct {
	reminders    []int64
	slotFreedFor []int64
}

func (f *fakeNotifier) NotifyBookingReminder(ctx context.Context, b *domain.Booking) {
	f.reminders = append(f.reminders, b.ID)
}

func (f *fakeNotifier) NotifyWaitlistSlotFree(ctx context.Context, e *domain.WaitlistEntry, freeSims int) {
	f.slotFreedFor = append(f.slotFreedFor, e.ID)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeMetrics struct {
	mu    sync.Mutex
	ticks map[string]int
}

func (f *fakeMetrics) ObserveSchedulerTick(job, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ticks == nil {
		f.ticks = make(map[string]int)
	}
	f.ticks[job+"/"+status]++
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testDeps(bookingRepo *fakeBookingRepo, wl *fakeWaitlistRepo, confirm *fakeConfirm, bookings *fakeBookings, avail *fakeAvailability, notifier *fakeNotifier) JobsDeps {
	return JobsDeps{
		BookingRepo:  bookingRepo,
		WaitlistRepo: wl,
		Confirm:      confirm,
		Bookings:     bookings,
		Availability: avail,
		Notifier:     notifier,
		TimeProvider: fixedTime{now: testNow},
		Logger:       nopLogger{},
	}
}

func jobByName(t *testing.T, jobs []Job, name string) Job {
	t.Helper()
	for _, j := range jobs {
		if j.Name == name {
			return j
		}
	}
	t.Fatalf("job %s not found", name)
	return Job{}
}

func defaultConfig() JobsConfig {
	return JobsConfig{
		Tick:              time.Minute,
		AutoConfirmWindow: 45 * time.Minute,
		AutoCompleteDelay: 2 * time.Hour,
		RemindBefore:      2 * time.Hour,
	}
}

func TestNewJobs_BuildsAllFive(t *testing.T) {
	jobs := NewJobs(testDeps(&fakeBookingRepo{}, &fakeWaitlistRepo{}, &fakeConfirm{}, &fakeBookings{}, &fakeAvailability{}, &fakeNotifier{}), defaultConfig())

	require.Len(t, jobs, 5)
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name)
		assert.Equal(t, time.Minute, j.Interval)
	}
	assert.Equal(t, []string{"expire_pending", "autoconfirm", "autocomplete", "waitlist_notify", "remind_upcoming"}, names)
}

func TestAutoconfirm_ErrorOnOneBookingDoesNotStopOthers(t *testing.T) {
	repo := &fakeBookingRepo{pending: []*domain.Booking{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	confirm := &fakeConfirm{errOn: 2}
	deps := testDeps(repo, &fakeWaitlistRepo{}, confirm, &fakeBookings{}, &fakeAvailability{}, &fakeNotifier{})

	job := jobByName(t, NewJobs(deps, defaultConfig()), "autoconfirm")
	err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, confirm.confirmed)
}

func TestAutocomplete_MarksEndedVisitsDone(t *testing.T) {
	repo := &fakeBookingRepo{ended: []*domain.Booking{{ID: 4}, {ID: 5}}}
	bookings := &fakeBookings{}
	deps := testDeps(repo, &fakeWaitlistRepo{}, &fakeConfirm{}, bookings, &fakeAvailability{}, &fakeNotifier{})

	job := jobByName(t, NewJobs(deps, defaultConfig()), "autocomplete")
	err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, bookings.done)
}

func TestWaitlistNotify_FiresOncePerEntry(t *testing.T) {
	wl := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{
		{ID: 10, UserID: 100, SimsNeeded: 2},
	}}
	notifier := &fakeNotifier{}
	deps := testDeps(&fakeBookingRepo{}, wl, &fakeConfirm{}, &fakeBookings{}, &fakeAvailability{free: 3}, notifier)

	job := jobByName(t, NewJobs(deps, defaultConfig()), "waitlist_notify")

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []int64{10}, notifier.slotFreedFor)
	assert.True(t, wl.deactivated[10])

	// второй тик: подписка уже сработала, повторного уведомления нет
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []int64{10}, notifier.slotFreedFor)
}

func TestWaitlistNotify_NotEnoughCapacity(t *testing.T) {
	wl := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{
		{ID: 10, UserID: 100, SimsNeeded: 3},
	}}
	notifier := &fakeNotifier{}
	deps := testDeps(&fakeBookingRepo{}, wl, &fakeConfirm{}, &fakeBookings{}, &fakeAvailability{free: 2}, notifier)

	job := jobByName(t, NewJobs(deps, defaultConfig()), "waitlist_notify")
	require.NoError(t, job.Run(context.Background()))

	assert.Empty(t, notifier.slotFreedFor)
	assert.False(t, wl.deactivated[10])
}

func TestRemindUpcoming_SkipsBlocks(t *testing.T) {
	repo := &fakeBookingRepo{upcoming: []*domain.Booking{
		{ID: 1, UserID: 100},
		{ID: 2, UserID: 0}, // техперерыв
		{ID: 3, UserID: 200},
	}}
	notifier := &fakeNotifier{}
	deps := testDeps(repo, &fakeWaitlistRepo{}, &fakeConfirm{}, &fakeBookings{}, &fakeAvailability{}, notifier)

	job := jobByName(t, NewJobs(deps, defaultConfig()), "remind_upcoming")
	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, []int64{1, 3}, notifier.reminders)
}

func TestScheduler_RunsImmediateTickAndStopsOnCancel(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	job := Job{
		Name:     "heartbeat",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			runs++
			return nil
		},
	}

	metrics := &fakeMetrics{}
	s := New([]Job{job}, nopLogger{}, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	s.Wait()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 1, metrics.ticks["heartbeat/ok"])
}

func TestScheduler_ErrorTickDoesNotStopJob(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	job := Job{
		Name:     "flaky",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			runs++
			if runs == 1 {
				return errors.New("boom")
			}
			return nil
		},
	}

	metrics := &fakeMetrics{}
	s := New([]Job{job}, nopLogger{}, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 1, metrics.ticks["flaky/error"])
	assert.GreaterOrEqual(t, metrics.ticks["flaky/ok"], 1)
}

func TestScheduler_PanicTickDoesNotStopJob(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	job := Job{
		Name:     "panicky",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			runs++
			if runs == 1 {
				panic("boom")
			}
			return nil
		},
	}

	metrics := &fakeMetrics{}
	s := New([]Job{job}, nopLogger{}, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 1, metrics.ticks["panicky/error"])
	assert.GreaterOrEqual(t, metrics.ticks["panicky/ok"], 1)
}

func TestExpirePending_SweepErrorPropagates(t *testing.T) {
	repo := &fakeBookingRepo{sweepErr: errors.New("db down")}
	deps := testDeps(repo, &fakeWaitlistRepo{}, &fakeConfirm{}, &fakeBookings{}, &fakeAvailability{}, &fakeNotifier{})

	job := jobByName(t, NewJobs(deps, defaultConfig()), "expire_pending")
	err := job.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, repo.sweepCalls)
}
