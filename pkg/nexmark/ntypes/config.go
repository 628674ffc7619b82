package ntypes

import (
	"math"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/nexmark/utils"
)

const (
	DEFAULT_AVG_PERSON_SIZE = 200
	DEFAULT_AVG_AUC_SIZE    = 500
	DEFAULT_AVG_BID_SIZE    = 100

	DELAY_UNIFORM = "uniform"
	DELAY_ZIPF    = "zipf"
)

type NexMarkConfig struct {
	/// Number of events to generate. Zero means unbounded.
	MaxEvents uint64 `json:"maxEvents"`

	/// Number of event generators to use. Each owns a strided slice of the event indices.
	NumEventGenerators uint32 `json:"numEventGenerators"`

	/// Aggregate event rate, in events per second, across all generators.
	EventRate uint64 `json:"eventRate"`

	/// Shape of event rate curve. Only used when NextEventRate differs from EventRate.
	RateShape utils.RateShape `json:"rateShape"`

	/// Second rate of the rate shape, in events per second.
	NextEventRate uint64 `json:"nextEventRate"`

	/// Overall period of rate shape, in seconds.
	RatePeriodSec uint32 `json:"ratePeriodSec"`

	/// Number of ticks between two reads of the shared rate by a generator.
	RateCheckEvery uint32 `json:"rateCheckEvery"`

	/// Event time, in unix milliseconds, of the event with index 0.
	BaseTime int64 `json:"baseTime"`

	PersonProportion  uint32 `json:"personProportion"`
	AuctionProportion uint32 `json:"auctionProportion"`
	BidProportion     uint32 `json:"bidProportion"`

	/// Average idealized size of a 'new person' event, in bytes.
	AvgPersonByteSize uint32 `json:"avgPersonByteSize"`

	/// Average idealized size of a 'new auction' event, in bytes.
	AvgAuctionByteSize uint32 `json:"avgAuctionByteSize"`

	/// Average idealized size of a 'bid' event, in bytes.
	AvgBidByteSize uint32 `json:"avgBidByteSize"`

	/// Ratio of bids to 'hot' auctions compared to all other auctions.
	HotAuctionRatio uint32 `json:"hotAuctionRatio"`

	/// Ratio of auctions for 'hot' sellers compared to all other people.
	HotSellersRatio uint32 `json:"hotSellersRatio"`

	/// Ratio of bids for 'hot' bidders compared to all other people.
	HotBiddersRatio uint32 `json:"hotBiddersRatio"`

	/// Ratio of bids on 'hot' channels compared to all other channels.
	HotChannelsRatio uint32 `json:"hotChannelsRatio"`

	/// Average number of auction which should be inflight at any time.
	NumInFlightAuctions uint32 `json:"numInFlightAuctions"`

	/// Maximum number of people to consider as active for placing auctions or bids.
	NumActivePeople uint32 `json:"numActivePeople"`

	/// Widens the window recent person ids are sampled from.
	PersonIdLead uint32 `json:"personIdLead"`

	/// Widens the window recent auction ids are sampled from.
	AuctionIdLead uint32 `json:"auctionIdLead"`

	/// Capacity of the per-generator cache of cold bid channels.
	ChannelCacheSize uint32 `json:"channelCacheSize"`

	/// Number of locally emitted events before a generator may emit late events.
	Delay uint64 `json:"delay"`

	/// Maximum look-back, in generator ticks, of a late event.
	DelayInterval uint64 `json:"delayInterval"`

	/// Probability that an eligible tick emits a late event.
	DelayProportion float64 `json:"delayProportion"`

	/// Distribution of the look-back: uniform or zipf.
	DelayPattern string `json:"delayPattern"`

	/// Exponent of the zipf look-back distribution.
	ZipfAlpha float64 `json:"zipfAlpha"`

	SkipPerson  bool `json:"skipPerson"`
	SkipAuction bool `json:"skipAuction"`
	SkipBid     bool `json:"skipBid"`
}

func NewNexMarkConfig() *NexMarkConfig {
	return &NexMarkConfig{
		MaxEvents:           0,
		NumEventGenerators:  3,
		EventRate:           1000,
		RateShape:           utils.SQUARE,
		NextEventRate:       1000,
		RatePeriodSec:       600,
		RateCheckEvery:      100,
		BaseTime:            0,
		PersonProportion:    1,
		AuctionProportion:   3,
		BidProportion:       46,
		AvgPersonByteSize:   DEFAULT_AVG_PERSON_SIZE,
		AvgAuctionByteSize:  DEFAULT_AVG_AUC_SIZE,
		AvgBidByteSize:      DEFAULT_AVG_BID_SIZE,
		HotAuctionRatio:     2,
		HotSellersRatio:     4,
		HotBiddersRatio:     4,
		HotChannelsRatio:    100,
		NumInFlightAuctions: 100,
		NumActivePeople:     1000,
		PersonIdLead:        10,
		AuctionIdLead:       10,
		ChannelCacheSize:    10_000,
		Delay:               0,
		DelayInterval:       0,
		DelayProportion:     0,
		DelayPattern:        DELAY_UNIFORM,
		ZipfAlpha:           1.0,
	}
}

func (c *NexMarkConfig) TotalProportion() uint32 {
	return c.PersonProportion + c.AuctionProportion + c.BidProportion
}

// EffectiveMaxEvents maps the unbounded budget (0) to the largest index.
func (c *NexMarkConfig) EffectiveMaxEvents() uint64 {
	if c.MaxEvents == 0 {
		return math.MaxUint64
	}
	return c.MaxEvents
}

func (c *NexMarkConfig) DelayEnabled() bool {
	return c.Delay > 0 && c.DelayProportion > 0
}

// Validate checks every invariant of the configuration and reports all violations at once.
func (c *NexMarkConfig) Validate() error {
	return invalidConfig(c.violations(nil))
}

func invalidConfig(result *multierror.Error) error {
	if err := result.ErrorOrNil(); err != nil {
		return xerrors.Errorf("%v: %w", err, common_errors.ErrInvalidConfig)
	}
	return nil
}

func (c *NexMarkConfig) violations(result *multierror.Error) *multierror.Error {
	if c.PersonProportion == 0 || c.AuctionProportion == 0 || c.BidProportion == 0 {
		result = multierror.Append(result, xerrors.Errorf("proportions must be positive, got %d:%d:%d",
			c.PersonProportion, c.AuctionProportion, c.BidProportion))
	}
	if c.EventRate == 0 {
		result = multierror.Append(result, xerrors.New("event rate must be positive"))
	}
	if c.NumEventGenerators == 0 {
		result = multierror.Append(result, xerrors.New("number of generators must be positive"))
	}
	if c.RateCheckEvery == 0 {
		result = multierror.Append(result, xerrors.New("rate check cadence must be positive"))
	}
	if c.HotAuctionRatio == 0 || c.HotSellersRatio == 0 || c.HotBiddersRatio == 0 || c.HotChannelsRatio == 0 {
		result = multierror.Append(result, xerrors.New("hot ratios must be positive"))
	}
	if c.ChannelCacheSize == 0 {
		result = multierror.Append(result, xerrors.New("channel cache size must be positive"))
	}
	if c.DelayInterval > c.Delay {
		result = multierror.Append(result, xerrors.Errorf("delay interval %d exceeds delay %d", c.DelayInterval, c.Delay))
	}
	if !(c.DelayProportion >= 0 && c.DelayProportion < 1) {
		result = multierror.Append(result, xerrors.Errorf("delay proportion %v is outside [0, 1)", c.DelayProportion))
	}
	switch c.DelayPattern {
	case DELAY_UNIFORM:
	case DELAY_ZIPF:
		if !(c.ZipfAlpha > 0) {
			result = multierror.Append(result, xerrors.Errorf("zipf alpha must be positive, got %v", c.ZipfAlpha))
		}
	default:
		result = multierror.Append(result, xerrors.Errorf("%q: %w", c.DelayPattern, common_errors.ErrUnknownDelayPattern))
	}
	if c.NextEventRate != c.EventRate {
		if c.NextEventRate == 0 {
			result = multierror.Append(result, xerrors.New("next event rate must be positive"))
		}
		if c.RateShape != utils.SQUARE && c.RateShape != utils.SINE {
			result = multierror.Append(result, xerrors.Errorf("unknown rate shape %v", c.RateShape))
		}
		if c.RatePeriodSec == 0 {
			result = multierror.Append(result, xerrors.New("rate period must be positive"))
		}
	}
	return result
}

// NexMarkConfigInput is the flag and environment facing form of the configuration.
type NexMarkConfigInput struct {
	SkipTypes         string        `mapstructure:"skip-types"`
	RateShape         string        `mapstructure:"rate-shape"`
	DelayPattern      string        `mapstructure:"delay-pattern"`
	RatePeriod        time.Duration `mapstructure:"rate-period"`
	MaxEvents         uint64        `mapstructure:"max-events"`
	EventRate         uint64        `mapstructure:"event-rate"`
	NextEventRate     uint64        `mapstructure:"next-event-rate"`
	Delay             uint64        `mapstructure:"delay"`
	DelayInterval     uint64        `mapstructure:"delay-interval"`
	DelayProportion   float64       `mapstructure:"delay-proportion"`
	ZipfAlpha         float64       `mapstructure:"zipf-alpha"`
	PersonProportion  uint32        `mapstructure:"person-proportion"`
	AuctionProportion uint32        `mapstructure:"auction-proportion"`
	BidProportion     uint32        `mapstructure:"bid-proportion"`
	PersonAvgSize     uint32        `mapstructure:"avg-person-byte-size"`
	AuctionAvgSize    uint32        `mapstructure:"avg-auction-byte-size"`
	BidAvgSize        uint32        `mapstructure:"avg-bid-byte-size"`
	HotAuctionRatio   uint32        `mapstructure:"hot-auction-ratio"`
	HotBiddersRatio   uint32        `mapstructure:"hot-bidders-ratio"`
	HotSellersRatio   uint32        `mapstructure:"hot-sellers-ratio"`
	HotChannelsRatio  uint32        `mapstructure:"hot-channels-ratio"`
	NumActivePeople   uint32        `mapstructure:"num-active-people"`
	NumInFlight       uint32        `mapstructure:"num-in-flight-auctions"`
	NumGenerators     uint32        `mapstructure:"num-event-generators"`
	RateCheckEvery    uint32        `mapstructure:"rate-check-every"`
	ChannelCacheSize  uint32        `mapstructure:"channel-cache-size"`
}

func NewNexMarkConfigInput() *NexMarkConfigInput {
	def := NewNexMarkConfig()
	return &NexMarkConfigInput{
		RateShape:         def.RateShape.String(),
		DelayPattern:      def.DelayPattern,
		RatePeriod:        time.Duration(def.RatePeriodSec) * time.Second,
		MaxEvents:         def.MaxEvents,
		EventRate:         def.EventRate,
		NextEventRate:     0,
		ZipfAlpha:         def.ZipfAlpha,
		PersonProportion:  def.PersonProportion,
		AuctionProportion: def.AuctionProportion,
		BidProportion:     def.BidProportion,
		PersonAvgSize:     def.AvgPersonByteSize,
		AuctionAvgSize:    def.AvgAuctionByteSize,
		BidAvgSize:        def.AvgBidByteSize,
		HotAuctionRatio:   def.HotAuctionRatio,
		HotBiddersRatio:   def.HotBiddersRatio,
		HotSellersRatio:   def.HotSellersRatio,
		HotChannelsRatio:  def.HotChannelsRatio,
		NumActivePeople:   def.NumActivePeople,
		NumInFlight:       def.NumInFlightAuctions,
		NumGenerators:     def.NumEventGenerators,
		RateCheckEvery:    def.RateCheckEvery,
		ChannelCacheSize:  def.ChannelCacheSize,
	}
}

// ConvertToNexmarkConfiguration builds and validates the run configuration. baseTime is
// the event time, in unix milliseconds, of index 0.
func ConvertToNexmarkConfiguration(input *NexMarkConfigInput, baseTime int64) (*NexMarkConfig, error) {
	rateShape, err := utils.StrToRateShape(input.RateShape)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, common_errors.ErrInvalidConfig)
	}
	c := NewNexMarkConfig()
	c.MaxEvents = input.MaxEvents
	c.NumEventGenerators = input.NumGenerators
	c.EventRate = input.EventRate
	c.RateShape = rateShape
	c.NextEventRate = input.NextEventRate
	if c.NextEventRate == 0 {
		c.NextEventRate = c.EventRate
	}
	c.RatePeriodSec = uint32(input.RatePeriod.Seconds())
	c.RateCheckEvery = input.RateCheckEvery
	c.BaseTime = baseTime
	c.PersonProportion = input.PersonProportion
	c.AuctionProportion = input.AuctionProportion
	c.BidProportion = input.BidProportion
	c.AvgPersonByteSize = input.PersonAvgSize
	c.AvgAuctionByteSize = input.AuctionAvgSize
	c.AvgBidByteSize = input.BidAvgSize
	c.HotAuctionRatio = input.HotAuctionRatio
	c.HotBiddersRatio = input.HotBiddersRatio
	c.HotSellersRatio = input.HotSellersRatio
	c.HotChannelsRatio = input.HotChannelsRatio
	c.NumActivePeople = input.NumActivePeople
	c.NumInFlightAuctions = input.NumInFlight
	c.ChannelCacheSize = input.ChannelCacheSize
	c.Delay = input.Delay
	c.DelayInterval = input.DelayInterval
	c.DelayProportion = input.DelayProportion
	c.DelayPattern = strings.ToLower(input.DelayPattern)
	c.ZipfAlpha = input.ZipfAlpha
	var result *multierror.Error
	c.SkipPerson, c.SkipAuction, c.SkipBid, result = parseSkipTypes(input.SkipTypes)
	if err := invalidConfig(c.violations(result)); err != nil {
		return nil, err
	}
	return c, nil
}

func parseSkipTypes(skipTypes string) (person, auction, bid bool, result *multierror.Error) {
	for _, t := range strings.Split(strings.ToLower(skipTypes), ",") {
		switch t = strings.TrimSpace(t); t {
		case "":
		case "person":
			person = true
		case "auction":
			auction = true
		case "bid":
			bid = true
		default:
			result = multierror.Append(result, xerrors.Errorf("unknown event type %q in skip types", t))
		}
	}
	return
}
