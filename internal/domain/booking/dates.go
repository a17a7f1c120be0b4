package booking

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// Overlaps reports whether two half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that only touch at a boundary do
// not overlap: checkout day equals checkin day of the next stay.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights counts whole calendar days in [start, end), rounding partial
// days up.
func Nights(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// TotalPrice prices a stay at the property's nightly rate.
func TotalPrice(start, end time.Time, pricePerNight float64) float64 {
	return float64(Nights(start, end)) * pricePerNight
}
