// Package countdown computes the remaining or overdue duration for a
// task deadline. It is a pure function of the due moment and "now";
// the caller decides the refresh cadence.
package countdown

import "time"

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// Countdown is the day/hour/minute/second decomposition of the
// distance between now and a due moment. When Overdue is true the
// fields describe how far past due the deadline is, using the same
// decomposition.
type Countdown struct {
	Overdue bool `json:"overdue"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
}

// Until returns the countdown from now to due, in whole seconds.
// A due moment exactly equal to now counts as overdue by zero.
func Until(due, now time.Time) Countdown {
	diff := int(due.Sub(now) / time.Second)

	c := Countdown{}
	if diff <= 0 {
		c.Overdue = true
		diff = -diff
	}

	c.Days = diff / secondsPerDay
	c.Hours = (diff % secondsPerDay) / secondsPerHour
	c.Minutes = (diff % secondsPerHour) / secondsPerMinute
	c.Seconds = diff % secondsPerMinute
	return c
}
