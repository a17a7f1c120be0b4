package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"inside", "2024-06-01", "2024-06-05", "2024-06-02", "2024-06-04", true},
		{"partial tail", "2024-06-01", "2024-06-05", "2024-06-03", "2024-06-07", true},
		{"partial head", "2024-06-03", "2024-06-07", "2024-06-01", "2024-06-05", true},
		{"identical", "2024-06-01", "2024-06-05", "2024-06-01", "2024-06-05", true},
		{"covering", "2024-06-02", "2024-06-03", "2024-06-01", "2024-06-05", true},
		{"touching checkout", "2024-06-01", "2024-06-05", "2024-06-05", "2024-06-10", false},
		{"touching checkin", "2024-06-05", "2024-06-10", "2024-06-01", "2024-06-05", false},
		{"disjoint", "2024-06-01", "2024-06-03", "2024-06-10", "2024-06-12", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(date(tc.aStart), date(tc.aEnd), date(tc.bStart), date(tc.bEnd))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 4, Nights(date("2024-06-01"), date("2024-06-05")))
	assert.Equal(t, 1, Nights(date("2024-06-01"), date("2024-06-02")))

	// Partial days round up.
	start := date("2024-06-01")
	end := start.Add(36 * time.Hour)
	assert.Equal(t, 2, Nights(start, end))
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 400.0, TotalPrice(date("2024-06-01"), date("2024-06-05"), 100))
	assert.Equal(t, 360.0, TotalPrice(date("2024-06-01"), date("2024-06-04"), 120))
}
