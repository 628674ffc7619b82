package ntypes

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := NewNexMarkConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, uint32(50), c.TotalProportion())
	assert.False(t, c.DelayEnabled())
}

func TestValidateAggregatesViolations(t *testing.T) {
	c := NewNexMarkConfig()
	c.BidProportion = 0
	c.EventRate = 0
	c.Delay = 5
	c.DelayInterval = 10
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, common_errors.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "proportions must be positive")
	assert.Contains(t, err.Error(), "event rate must be positive")
	assert.Contains(t, err.Error(), "delay interval 10 exceeds delay 5")
	assert.Equal(t, 1, strings.Count(err.Error(), common_errors.ErrInvalidConfig.Error()))
	assert.True(t, strings.HasSuffix(err.Error(), ": "+common_errors.ErrInvalidConfig.Error()))
}

func TestValidateDelayProportionBounds(t *testing.T) {
	c := NewNexMarkConfig()
	c.Delay = 10
	c.DelayProportion = 1
	assert.Error(t, c.Validate())
	c.DelayProportion = -0.1
	assert.Error(t, c.Validate())
	c.DelayProportion = 0.5
	assert.NoError(t, c.Validate())
	assert.True(t, c.DelayEnabled())
}

func TestValidateDelayPattern(t *testing.T) {
	c := NewNexMarkConfig()
	c.DelayPattern = "poisson"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), common_errors.ErrUnknownDelayPattern.Error())

	c.DelayPattern = DELAY_ZIPF
	c.ZipfAlpha = 0
	assert.Error(t, c.Validate())
	c.ZipfAlpha = 1.2
	assert.NoError(t, c.Validate())
}

func TestMultierrorCountsEveryViolation(t *testing.T) {
	c := NewNexMarkConfig()
	c.NumEventGenerators = 0
	c.RateCheckEvery = 0
	c.ChannelCacheSize = 0
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 errors occurred")
}

func TestConvertToNexmarkConfiguration(t *testing.T) {
	input := NewNexMarkConfigInput()
	input.MaxEvents = 500
	input.EventRate = 2000
	input.SkipTypes = "Person, bid"
	input.RatePeriod = 30 * time.Second
	c, err := ConvertToNexmarkConfiguration(input, 1_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), c.MaxEvents)
	assert.Equal(t, uint64(500), c.EffectiveMaxEvents())
	assert.Equal(t, uint64(2000), c.NextEventRate)
	assert.Equal(t, uint32(30), c.RatePeriodSec)
	assert.Equal(t, int64(1_000), c.BaseTime)
	assert.True(t, c.SkipPerson)
	assert.False(t, c.SkipAuction)
	assert.True(t, c.SkipBid)

	input.RateShape = "triangle"
	_, err = ConvertToNexmarkConfiguration(input, 0)
	assert.True(t, xerrors.Is(err, common_errors.ErrInvalidConfig))
}

func TestConvertRejectsUnknownSkipTypes(t *testing.T) {
	input := NewNexMarkConfigInput()
	input.SkipTypes = "persons,bid,"
	input.BidProportion = 0
	_, err := ConvertToNexmarkConfiguration(input, 0)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, common_errors.ErrInvalidConfig))
	assert.Contains(t, err.Error(), `unknown event type "persons" in skip types`)
	assert.Contains(t, err.Error(), "proportions must be positive")
	assert.Contains(t, err.Error(), "2 errors occurred")

	input = NewNexMarkConfigInput()
	input.SkipTypes = " auction ,"
	c, err := ConvertToNexmarkConfiguration(input, 0)
	require.NoError(t, err)
	assert.True(t, c.SkipAuction)
}

func TestUnboundedMaxEvents(t *testing.T) {
	c := NewNexMarkConfig()
	assert.Equal(t, ^uint64(0), c.EffectiveMaxEvents())
}
