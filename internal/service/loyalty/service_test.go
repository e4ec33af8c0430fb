package loyalty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRC-BookingService/internal/domain"
	clientRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/client"
)

type fakeClientRepo struct {
	client *domain.Client

	foundPhone *string
	created    *domain.Client
	updated    *domain.Client
}

func (f *fakeClientRepo) Find(ctx context.Context, userID int64, phone *string) (*domain.Client, error) {
	f.foundPhone = phone
	if f.client == nil {
		return nil, clientRepo.ErrClientNotFound
	}
	cp := *f.client
	return &cp, nil
}

func (f *fakeClientRepo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = 1
	f.created = c
	return c, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *domain.Client) error {
	f.updated = c
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func strPtr(s string) *string { return &s }

func doneBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		UserID:      100,
		ClientName:  strPtr("Иван"),
		ClientPhone: strPtr("8 (912) 345-67-89"),
		Price:       1380,
		Status:      domain.StatusDone,
	}
}

func TestRecordVisit_CreatesClientOnFirstVisit(t *testing.T) {
	repo := &fakeClientRepo{}
	svc := NewService(repo, nopLogger{})

	bonus, err := svc.RecordVisit(context.Background(), doneBooking())

	require.NoError(t, err)
	assert.Equal(t, 69, bonus) // 5% от 1380

	require.NotNil(t, repo.created)
	require.NotNil(t, repo.updated)
	assert.Equal(t, int64(100), repo.updated.UserID)
	assert.Equal(t, "Иван", repo.updated.Name)
	require.NotNil(t, repo.updated.Phone)
	assert.Equal(t, "+79123456789", *repo.updated.Phone)
	assert.Equal(t, 1, repo.updated.TotalBookings)
	assert.Equal(t, 1380, repo.updated.TotalSpent)
	assert.Equal(t, 69, repo.updated.BonusBalance)
}

func TestRecordVisit_AccumulatesExistingClient(t *testing.T) {
	repo := &fakeClientRepo{client: &domain.Client{
		ID:            1,
		UserID:        100,
		Phone:         strPtr("+79123456789"),
		Name:          "Иван",
		TotalBookings: 3,
		TotalSpent:    4000,
		BonusBalance:  200,
	}}
	svc := NewService(repo, nopLogger{})

	bonus, err := svc.RecordVisit(context.Background(), doneBooking())

	require.NoError(t, err)
	assert.Equal(t, 69, bonus)
	assert.Nil(t, repo.created)
	assert.Equal(t, 4, repo.updated.TotalBookings)
	assert.Equal(t, 5380, repo.updated.TotalSpent)
	assert.Equal(t, 269, repo.updated.BonusBalance)
}

func TestRecordVisit_BackfillsUserIDAndPhone(t *testing.T) {
	// профиль заведен администратором по телефону, без user_id
	repo := &fakeClientRepo{client: &domain.Client{
		ID:    1,
		Phone: strPtr(""),
		Name:  "",
	}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.RecordVisit(context.Background(), doneBooking())

	require.NoError(t, err)
	assert.Equal(t, int64(100), repo.updated.UserID)
	require.NotNil(t, repo.updated.Phone)
	assert.Equal(t, "+79123456789", *repo.updated.Phone)
	assert.Equal(t, "Иван", repo.updated.Name)
}

func TestRecordVisit_InvalidPhoneIgnored(t *testing.T) {
	repo := &fakeClientRepo{client: &domain.Client{ID: 1, UserID: 100}}
	svc := NewService(repo, nopLogger{})

	b := doneBooking()
	b.ClientPhone = strPtr("123")

	_, err := svc.RecordVisit(context.Background(), b)

	require.NoError(t, err)
	assert.Nil(t, repo.foundPhone)
}

func TestProfile_NormalizesPhoneBeforeLookup(t *testing.T) {
	repo := &fakeClientRepo{client: &domain.Client{ID: 1, UserID: 100}}
	svc := NewService(repo, nopLogger{})

	c, err := svc.Profile(context.Background(), 100, strPtr("8 912 345 67 89"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	require.NotNil(t, repo.foundPhone)
	assert.Equal(t, "+79123456789", *repo.foundPhone)
}

func TestProfile_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeClientRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Profile(context.Background(), 100, nil)

	require.ErrorIs(t, err, clientRepo.ErrClientNotFound)
}

func TestSpendBonuses_DeductsFromBalance(t *testing.T) {
	repo := &fakeClientRepo{client: &domain.Client{ID: 1, UserID: 100, BonusBalance: 500}}
	svc := NewService(repo, nopLogger{})

	spent, err := svc.SpendBonuses(context.Background(), 100, nil, 1380, 200)

	require.NoError(t, err)
	assert.Equal(t, 200, spent)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 300, repo.updated.BonusBalance)
}

func TestSpendBonuses_ClampedToHalfPrice(t *testing.T) {
	repo := &fakeClientRepo{client: &domain.Client{ID: 1, UserID: 100, BonusBalance: 5000}}
	svc := NewService(repo, nopLogger{})

	spent, err := svc.SpendBonuses(context.Background(), 100, nil, 1380, 5000)

	require.NoError(t, err)
	assert.Equal(t, 690, spent) // BonusMaxShare от 1380
	assert.Equal(t, 4310, repo.updated.BonusBalance)
}

func TestSpendBonuses_ClampedToBalance(t *testing.T) {
	repo := &fakeClientRepo{client: &domain.Client{ID: 1, UserID: 100, BonusBalance: 50}}
	svc := NewService(repo, nopLogger{})

	spent, err := svc.SpendBonuses(context.Background(), 100, nil, 1380, 400)

	require.NoError(t, err)
	assert.Equal(t, 50, spent)
	assert.Equal(t, 0, repo.updated.BonusBalance)
}

func TestSpendBonuses_NoProfileSpendsNothing(t *testing.T) {
	repo := &fakeClientRepo{}
	svc := NewService(repo, nopLogger{})

	spent, err := svc.SpendBonuses(context.Background(), 100, strPtr("8 (912) 345-67-89"), 1380, 200)

	require.NoError(t, err)
	assert.Equal(t, 0, spent)
	assert.Nil(t, repo.updated)
	require.NotNil(t, repo.foundPhone)
	assert.Equal(t, "+79123456789", *repo.foundPhone)
}
