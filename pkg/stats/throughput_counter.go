package stats

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ThroughputCounter counts the events one generator published and logs its
// rate once per report interval.
type ThroughputCounter struct {
	tag       string
	count     uint64
	lastCount uint64
	timer     ReportTimer
}

func NewThroughputCounter(tag string, interval time.Duration) ThroughputCounter {
	return ThroughputCounter{
		tag:   tag,
		timer: NewReportTimer(interval),
	}
}

func (c *ThroughputCounter) Tick(count uint64) {
	c.count += count
	if !c.timer.Enabled() {
		return
	}
	now := time.Now()
	if c.count > c.lastCount && c.timer.Due(now) {
		elapsed := c.timer.Mark(now)
		rate := float64(c.count-c.lastCount) / elapsed.Seconds()
		log.Info().Str("generator", c.tag).Dur("elapsed", elapsed).Uint64("published", c.count).
			Msgf("%s: %.1f events/s", c.tag, rate)
		c.lastCount = c.count
	}
}
