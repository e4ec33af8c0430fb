package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTariffs_PriceFor(t *testing.T) {
	tariffs := DefaultTariffs()

	tests := []struct {
		duration int
		sims     int
		want     int
	}{
		{30, 1, 390},
		{60, 1, 690},
		{90, 1, 990},
		{120, 1, 1290},
		{60, 2, 1380},
		{120, 4, 5160},
	}

	for _, tt := range tests {
		price, err := tariffs.PriceFor(tt.duration, tt.sims)
		require.NoError(t, err)
		assert.Equal(t, tt.want, price)
	}
}

func TestTariffs_PriceFor_UnknownDuration(t *testing.T) {
	tariffs := DefaultTariffs()

	_, err := tariffs.PriceFor(45, 1)
	require.Error(t, err)
}

func TestTariffs_AllowedDuration(t *testing.T) {
	tariffs := DefaultTariffs()

	assert.True(t, tariffs.AllowedDuration(30))
	assert.True(t, tariffs.AllowedDuration(120))
	assert.False(t, tariffs.AllowedDuration(45))
	assert.False(t, tariffs.AllowedDuration(0))
}

func TestBonusFor(t *testing.T) {
	assert.Equal(t, 34, BonusFor(690))
	assert.Equal(t, 64, BonusFor(1290))
	assert.Equal(t, 0, BonusFor(0))
	assert.Equal(t, 0, BonusFor(-100))
}

func TestMaxBonusSpend(t *testing.T) {
	// не больше половины чека
	assert.Equal(t, 345, MaxBonusSpend(690, 1000))
	// не больше баланса
	assert.Equal(t, 100, MaxBonusSpend(690, 100))
	assert.Equal(t, 0, MaxBonusSpend(690, 0))
}
