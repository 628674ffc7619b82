package stats

import "time"

// ReportTimer paces the progress logs of one generator. The first Due call
// starts the clock, and a non-positive interval disables reporting.
type ReportTimer struct {
	lastTs   time.Time
	interval time.Duration
	started  bool
}

func NewReportTimer(interval time.Duration) ReportTimer {
	return ReportTimer{interval: interval}
}

func (r *ReportTimer) Enabled() bool {
	return r.interval > 0
}

// Due reports whether a whole interval has passed since the last Mark.
func (r *ReportTimer) Due(now time.Time) bool {
	if !r.Enabled() {
		return false
	}
	if !r.started {
		r.started = true
		r.lastTs = now
		return false
	}
	return now.Sub(r.lastTs) >= r.interval
}

// Mark opens the next interval at now and returns the length of the closed one.
func (r *ReportTimer) Mark(now time.Time) time.Duration {
	elapsed := now.Sub(r.lastTs)
	r.lastTs = now
	return elapsed
}
