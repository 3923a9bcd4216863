package certrecord

import (
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

func TestDaysRemaining(t *testing.T) {
	t0 := time.Date(2020, 1, 31, 16, 54, 0, 0, time.UTC)

	assert.Assert(t, DaysRemaining(t0.AddDate(0, 0, 31), t0) == 31)
	assert.Assert(t, DaysRemaining(t0.AddDate(0, 0, 30), t0) == 30)
	assert.Assert(t, DaysRemaining(t0.AddDate(0, 0, -1), t0) == -1)

	// time-of-day must not matter: expiring one minute into tomorrow is
	// still a full calendar day away
	justPastMidnight := time.Date(2020, 2, 1, 0, 1, 0, 0, time.UTC)
	assert.Assert(t, DaysRemaining(justPastMidnight, t0) == 1)

	// expiring later today = 0 days
	assert.Assert(t, DaysRemaining(t0.Add(2*time.Hour), t0) == 0)
}

func TestDueForRenewal(t *testing.T) {
	t0 := time.Date(2020, 1, 31, 16, 54, 0, 0, time.UTC)

	// 31 days left => not yet
	assert.Assert(t, !DueForRenewal(t0.AddDate(0, 0, 31), t0))

	// exactly at the threshold => renew
	assert.Assert(t, DueForRenewal(t0.AddDate(0, 0, 30), t0))

	// already expired => renew
	assert.Assert(t, DueForRenewal(t0.AddDate(0, 0, -1), t0))
}
