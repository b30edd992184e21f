package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int64
	}{
		{
			name:     "exactly one day",
			start:    "2025-06-01T00:00:00Z",
			end:      "2025-06-02T00:00:00Z",
			expected: 1,
		},
		{
			name:     "exactly four days",
			start:    "2025-06-01T00:00:00Z",
			end:      "2025-06-05T00:00:00Z",
			expected: 4,
		},
		{
			name:     "partial day rounds up",
			start:    "2025-06-01T14:00:00Z",
			end:      "2025-06-04T11:00:00Z",
			expected: 3,
		},
		{
			name:     "2.5 day stay bills as 3 nights",
			start:    "2025-06-01T00:00:00Z",
			end:      "2025-06-03T12:00:00Z",
			expected: 3,
		},
		{
			name:     "a few hours still bill one night",
			start:    "2025-06-01T10:00:00Z",
			end:      "2025-06-01T18:00:00Z",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Nights(date(tt.start), date(tt.end)))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	// 120.00 per night, 68.83h stay -> 3 nights -> 360.00.
	start := date("2025-06-01T14:00:00Z")
	end := date("2025-06-04T11:00:00Z")
	assert.Equal(t, int64(36000), TotalPrice(12000, start, end))

	// Whole days multiply exactly.
	assert.Equal(t, int64(100000), TotalPrice(25000, date("2025-06-01T00:00:00Z"), date("2025-06-05T00:00:00Z")))
}

func TestRangesOverlap(t *testing.T) {
	existingStart := date("2025-06-01T00:00:00Z")
	existingEnd := date("2025-06-05T00:00:00Z")

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{
			name:     "identical range conflicts",
			start:    "2025-06-01T00:00:00Z",
			end:      "2025-06-05T00:00:00Z",
			expected: true,
		},
		{
			name:     "contained range conflicts",
			start:    "2025-06-02T00:00:00Z",
			end:      "2025-06-03T00:00:00Z",
			expected: true,
		},
		{
			name:     "partial overlap at the end conflicts",
			start:    "2025-06-03T00:00:00Z",
			end:      "2025-06-06T00:00:00Z",
			expected: true,
		},
		{
			name:     "abutting after does not conflict",
			start:    "2025-06-05T00:00:00Z",
			end:      "2025-06-08T00:00:00Z",
			expected: false,
		},
		{
			name:     "abutting before does not conflict",
			start:    "2025-05-28T00:00:00Z",
			end:      "2025-06-01T00:00:00Z",
			expected: false,
		},
		{
			name:     "disjoint range does not conflict",
			start:    "2025-07-01T00:00:00Z",
			end:      "2025-07-05T00:00:00Z",
			expected: false,
		},
		{
			name:     "time-of-day is respected",
			start:    "2025-06-04T23:00:00Z",
			end:      "2025-06-06T00:00:00Z",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rangesOverlap(date(tt.start), date(tt.end), existingStart, existingEnd)
			assert.Equal(t, tt.expected, got)
		})
	}
}
