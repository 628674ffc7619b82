package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexmark-gen/pkg/env_config"
	"nexmark-gen/pkg/nexmark/utils"
	"nexmark-gen/pkg/sink"
)

func TestFlagsToConfig(t *testing.T) {
	v := viper.New()
	cmd := rootCmd()
	require.NoError(t, v.BindPFlags(cmd.Flags()))
	require.NoError(t, cmd.Flags().Parse([]string{
		"--max-events=1000",
		"--event-rate=5000",
		"--next-event-rate=9000",
		"--rate-shape=sine",
		"--rate-period=1m",
		"--num-event-generators=8",
		"--bid-proportion=20",
		"--delay=100",
		"--delay-interval=10",
		"--delay-proportion=0.2",
		"--delay-pattern=zipf",
		"--zipf-alpha=1.5",
		"--skip-types=auction",
	}))
	c, err := loadNexmarkConfig(v, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), c.MaxEvents)
	assert.Equal(t, uint64(5000), c.EventRate)
	assert.Equal(t, uint64(9000), c.NextEventRate)
	assert.Equal(t, utils.SINE, c.RateShape)
	assert.Equal(t, uint32(60), c.RatePeriodSec)
	assert.Equal(t, uint32(8), c.NumEventGenerators)
	assert.Equal(t, uint32(20), c.BidProportion)
	assert.Equal(t, uint32(1), c.PersonProportion)
	assert.Equal(t, uint64(100), c.Delay)
	assert.Equal(t, "zipf", c.DelayPattern)
	assert.Equal(t, 1.5, c.ZipfAlpha)
	assert.True(t, c.SkipAuction)
	assert.Equal(t, int64(42), c.BaseTime)
}

func TestFlagsRejectBadDelay(t *testing.T) {
	v := viper.New()
	cmd := rootCmd()
	require.NoError(t, v.BindPFlags(cmd.Flags()))
	require.NoError(t, cmd.Flags().Parse([]string{"--delay=5", "--delay-interval=10"}))
	_, err := loadNexmarkConfig(v, 0)
	assert.Error(t, err)
}

func TestSinkFactory(t *testing.T) {
	env := &env_config.EnvConfig{SinkKind: env_config.SINK_LOG, SinkBatchSize: 16}
	s, err := newSinkFactory(env)(0)
	require.NoError(t, err)
	_, ok := s.(*sink.Buffered)
	assert.True(t, ok)

	env.SinkBatchSize = 0
	s, err = newSinkFactory(env)(1)
	require.NoError(t, err)
	_, ok = s.(*sink.WriterSink)
	assert.True(t, ok)

	_, err = newTopicAdmin(env)
	assert.Error(t, err)
}

func TestReportEveryFlag(t *testing.T) {
	cmd := rootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--report-every=3s", "--port=0"}))
	d, err := cmd.Flags().GetDuration("report-every")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)
}
