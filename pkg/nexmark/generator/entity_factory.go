package generator

import (
	"golang.org/x/exp/rand"

	"nexmark-gen/pkg/hashfuncs"
	"nexmark-gen/pkg/nexmark/ntypes"
)

// EntityFactory materializes the event at a global index. The content of an event
// depends only on its index and the configuration. A factory is not safe for
// concurrent use; each generator owns one.
type EntityFactory struct {
	config       *GeneratorConfig
	src          *rand.PCGSource
	random       *rand.Rand
	channelCache *ChannelCache
}

func NewEntityFactory(config *GeneratorConfig) (*EntityFactory, error) {
	cache, err := NewChannelCache(int(config.Configuration.ChannelCacheSize))
	if err != nil {
		return nil, err
	}
	src := &rand.PCGSource{}
	return &EntityFactory{
		config:       config,
		src:          src,
		random:       rand.New(src),
		channelCache: cache,
	}, nil
}

func (f *EntityFactory) Config() *GeneratorConfig {
	return f.config
}

// NextEvent returns the event at eventId, or nil if its type is skipped.
func (f *EntityFactory) NextEvent(eventId uint64) (*ntypes.Event, error) {
	c := f.config.Configuration
	etype := f.config.Space.EventType(eventId)
	switch etype {
	case ntypes.PERSON:
		if c.SkipPerson {
			return nil, nil
		}
	case ntypes.AUCTION:
		if c.SkipAuction {
			return nil, nil
		}
	case ntypes.BID:
		if c.SkipBid {
			return nil, nil
		}
	}
	f.src.Seed(hashfuncs.SeedFor(eventId))
	timestamp := f.config.TimestampForEvent(eventId)
	switch etype {
	case ntypes.PERSON:
		return ntypes.NewPersonEvent(NextPerson(eventId, f.random, timestamp, f.config)), nil
	case ntypes.AUCTION:
		return ntypes.NewAuctionEvent(NextAuction(eventId, f.random, timestamp, f.config)), nil
	default:
		return ntypes.NewBidEvent(NextBid(eventId, f.random, timestamp, f.config, f.channelCache)), nil
	}
}
