package generator

import (
	"math/bits"
	"strconv"

	"github.com/hashicorp/golang-lru/simplelru"
	"golang.org/x/exp/rand"

	"nexmark-gen/pkg/hashfuncs"
	"nexmark-gen/pkg/nexmark/ntypes"
)

const CHANNELS_NUMBER uint32 = 10_000

const BASE_URL_PATH_LENGTH = 5

// cold channel streams live in the upper half of the seed space, away from event indices
const channelSeedSpace uint64 = 1 << 63

var (
	HOT_CHANNELS = [4]string{"Google", "Facebook", "Baidu", "Apple"}
	HOT_URLS     = [4]string{
		"https://www.nexmark.com/googl/item.htm?query=1",
		"https://www.nexmark.com/meta/item.htm?query=1",
		"https://www.nexmark.com/bidu/item.htm?query=1",
		"https://www.nexmark.com/aapl/item.htm?query=1",
	}
)

type ChannelUrl struct {
	Channel string
	Url     string
}

// ChannelCache memoizes cold channels by channel number. A channel's name and url
// depend only on its number, so eviction never changes what a bid carries.
type ChannelCache struct {
	lru *simplelru.LRU
}

func NewChannelCache(size int) (*ChannelCache, error) {
	lru, err := simplelru.NewLRU(size, nil)
	if err != nil {
		return nil, err
	}
	return &ChannelCache{lru: lru}, nil
}

func (c *ChannelCache) Get(channelNumber uint32) ChannelUrl {
	if v, ok := c.lru.Get(channelNumber); ok {
		return v.(ChannelUrl)
	}
	cu := newChannelInstance(channelNumber)
	c.lru.Add(channelNumber, cu)
	return cu
}

func (c *ChannelCache) Len() int {
	return c.lru.Len()
}

func newChannelInstance(channelNumber uint32) ChannelUrl {
	src := &rand.PCGSource{}
	src.Seed(hashfuncs.SeedFor(channelSeedSpace | uint64(channelNumber)))
	random := rand.New(src)
	url := getBaseUrl(random)
	if random.Intn(10) != 9 {
		url = url + "&channel_id=" + strconv.FormatUint(uint64(bits.Reverse32(channelNumber)), 10)
	}
	return ChannelUrl{
		Channel: "channel-" + strconv.FormatUint(uint64(channelNumber), 10),
		Url:     url,
	}
}

func getBaseUrl(random *rand.Rand) string {
	return "https://www.nexmark.com/" + NextString(random, BASE_URL_PATH_LENGTH) + "/item.htm?query=1"
}

func NextBid(eventId uint64, random *rand.Rand, timestamp int64, config *GeneratorConfig, channelCache *ChannelCache) *ntypes.Bid {
	auction := uint64(0)
	if random.Intn(int(config.Configuration.HotAuctionRatio)) > 0 {
		auction = hotBase0AuctionId(eventId, config)
	} else {
		auction = NextBase0AuctionId(eventId, random, config)
	}
	auction += FIRST_AUCTION_ID

	bidder := uint64(0)
	if random.Intn(int(config.Configuration.HotBiddersRatio)) > 0 {
		bidder = hotBase0PersonId(eventId, config, HOT_BIDDER_RATIO)
	} else {
		bidder = NextBase0PersonId(eventId, random, config)
	}
	bidder += FIRST_PERSON_ID

	price := NextPrice(random)
	channelNumber := uint32(random.Intn(int(CHANNELS_NUMBER)))
	channel := ""
	url := ""
	if random.Intn(int(config.Configuration.HotChannelsRatio)) > 0 {
		i := random.Intn(len(HOT_CHANNELS))
		channel = HOT_CHANNELS[i]
		url = HOT_URLS[i]
	} else {
		cu := channelCache.Get(channelNumber)
		channel = cu.Channel
		url = cu.Url
	}
	currentSize := ntypes.BidAccountedSize(channel, url)
	return &ntypes.Bid{
		Auction:  auction,
		Bidder:   bidder,
		Price:    price,
		Channel:  channel,
		Url:      url,
		DateTime: timestamp,
		Extra:    NextExtra(random, uint32(currentSize), config.Configuration.AvgBidByteSize),
	}
}
