package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short name", "Alice", 10, "Alice"},
		{"exact length", "Alice", 5, "Alice"},
		{"long name", "VeryLongPlayerName", 8, "VeryLon…"},
		{"chinese name", "机智的调色盘", 4, "机智的…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxLen))
		})
	}
}

func TestSpaceOut(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "_ _ _ _", SpaceOut("____"))
	assert.Equal(t, "_ _   _ _", SpaceOut("__ __"))
	assert.Empty(t, SpaceOut(""))
}

func TestFormatCountdown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "01:20", FormatCountdown(80*time.Second))
	assert.Equal(t, "00:05", FormatCountdown(4600*time.Millisecond))
	assert.Equal(t, "00:00", FormatCountdown(-time.Second))
}
