package certrecord

import (
	"time"
)

// renew when a month or less of validity remains
const RenewThresholdDays = 30

// DaysRemaining computes whole calendar days from now until expiry.
// Time-of-day is ignored on both sides, so a certificate expiring later
// today has 0 days remaining and one that expired yesterday has -1.
func DaysRemaining(notAfter time.Time, now time.Time) int {
	return int(dateOnly(notAfter).Sub(dateOnly(now)) / (24 * time.Hour))
}

// DueForRenewal is the renewal trigger: no days to spare beyond the threshold.
func DueForRenewal(notAfter time.Time, now time.Time) bool {
	return DaysRemaining(notAfter, now) <= RenewThresholdDays
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
