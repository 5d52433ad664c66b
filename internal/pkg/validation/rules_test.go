package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"jaeho", true},
		{"jae.ho_09", true},
		{"abc", true},
		{"ab", false},
		{"Jaeho", false},
		{"jae ho", false},
		{"jae-ho", false},
		{strings.Repeat("a", 31), false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jaeho@example.com"))
	assert.True(t, IsValidEmail("jae.ho+tag@sub.example.co"))
	assert.False(t, IsValidEmail("jaeho@"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("1234567"))
	assert.False(t, IsValidPassword(""))
}

func TestIsValidTitle(t *testing.T) {
	assert.True(t, IsValidTitle("Hoodie group order"))
	assert.True(t, IsValidTitle("a"))
	assert.False(t, IsValidTitle(""))
	assert.False(t, IsValidTitle("   "))
	assert.False(t, IsValidTitle(strings.Repeat("a", 101)))
}
