package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"+7 912 345-67-89", "+79123456789"},
		{"89123456789", "+79123456789"},
		{"9123456789", "+79123456789"},
		{"7 (912) 345 67 89", "+79123456789"},
		{"12345", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.raw), tt.raw)
	}
}

func TestSplitContact(t *testing.T) {
	name, phone := SplitContact("Иван, 8 912 345 67 89")
	assert.Equal(t, "Иван", name)
	assert.Equal(t, "+79123456789", phone)

	name, phone = SplitContact("Просто Имя")
	assert.Equal(t, "Просто Имя", name)
	assert.Empty(t, phone)
}
