package service

import "time"

const nightLength = 24 * time.Hour

// rangesOverlap reports whether the half-open ranges [s1, e1) and [s2, e2)
// intersect. Touching endpoints do not count: a stay ending exactly when
// another starts is not a conflict.
func rangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// Nights returns the billing unit count for a stay: the stay duration in
// days, rounding any partial day up. A valid range (start before end)
// always yields at least 1. Ranges keep their time-of-day; nothing is
// normalized to midnight.
func Nights(start, end time.Time) int64 {
	d := end.Sub(start)
	nights := int64(d / nightLength)
	if d%nightLength != 0 {
		nights++
	}
	return nights
}

// TotalPrice computes nights × nightly rate in minor currency units.
// All arithmetic is exact integer math.
func TotalPrice(pricePerNight int64, start, end time.Time) int64 {
	return Nights(start, end) * pricePerNight
}
