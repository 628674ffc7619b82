package generator

import (
	"golang.org/x/exp/rand"

	"nexmark-gen/pkg/nexmark/ntypes"
	"nexmark-gen/pkg/utils"
)

const (
	NUM_CATEGORIES    uint64 = 5
	HOT_SELLER_RATIO  uint64 = 100
	HOT_AUCTION_RATIO uint64 = 100
)

func NextAuction(eventId uint64, random *rand.Rand, timestamp int64, config *GeneratorConfig) *ntypes.Auction {
	id := config.Space.LastBase0AuctionId(eventId) + FIRST_AUCTION_ID
	seller := uint64(0)
	if random.Intn(int(config.Configuration.HotSellersRatio)) > 0 {
		seller = hotBase0PersonId(eventId, config, HOT_SELLER_RATIO)
	} else {
		seller = NextBase0PersonId(eventId, random, config)
	}
	seller += FIRST_PERSON_ID
	category := FIRST_CATEGORY_ID + NextUint64(random, NUM_CATEGORIES)
	initialBid := NextPrice(random)
	expires := timestamp + nextAuctionLengthMs(eventId, random, timestamp, config)
	name := NextString(random, 20)
	desc := NextString(random, 100)
	reserve := initialBid + NextPrice(random)
	currentSize := ntypes.AuctionAccountedSize(name, desc)
	return &ntypes.Auction{
		ID:          id,
		ItemName:    name,
		Description: desc,
		InitialBid:  initialBid,
		Reserve:     reserve,
		DateTime:    timestamp,
		Expires:     expires,
		Seller:      seller,
		Category:    category,
		Extra:       NextExtra(random, uint32(currentSize), config.Configuration.AvgAuctionByteSize),
	}
}

// NextBase0AuctionId samples an already created auction among the in-flight ones.
func NextBase0AuctionId(eventId uint64, random *rand.Rand, config *GeneratorConfig) uint64 {
	window := uint64(config.Configuration.NumInFlightAuctions) + uint64(config.Configuration.AuctionIdLead) + 1
	return nextInWindow(random, config.Space.LastBase0AuctionId(eventId), window)
}

func hotBase0AuctionId(eventId uint64, config *GeneratorConfig) uint64 {
	return config.Space.LastBase0AuctionId(eventId) / HOT_AUCTION_RATIO * HOT_AUCTION_RATIO
}

func nextAuctionLengthMs(eventId uint64, random *rand.Rand, timestamp int64, config *GeneratorConfig) int64 {
	numEventsForAuctions := uint64(config.Configuration.NumInFlightAuctions) * config.Space.Total / config.Space.Auction
	futureAuction := config.TimestampForEvent(eventId + numEventsForAuctions)
	horizonMs := uint64(utils.Max(futureAuction-timestamp, 0))
	return 1 + int64(NextUint64(random, utils.Max(horizonMs*2, 1)))
}
