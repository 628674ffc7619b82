package generator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"nexmark-gen/pkg/nexmark/ntypes"
)

func newTestFactory(t testing.TB, mutate func(c *ntypes.NexMarkConfig)) *EntityFactory {
	c := ntypes.NewNexMarkConfig()
	c.BaseTime = 1_600_000_000_000
	if mutate != nil {
		mutate(c)
	}
	require.NoError(t, c.Validate())
	f, err := NewEntityFactory(NewGeneratorConfig(c))
	require.NoError(t, err)
	return f
}

func TestEventTypeSequence(t *testing.T) {
	f := newTestFactory(t, nil)
	space := f.Config().Space
	for i := uint64(0); i < 150; i++ {
		offset := i % 50
		expected := ntypes.BID
		if offset == 0 {
			expected = ntypes.PERSON
		} else if offset <= 3 {
			expected = ntypes.AUCTION
		}
		assert.Equal(t, expected, space.EventType(i), "index %d", i)
		ev, err := f.NextEvent(i)
		require.NoError(t, err)
		assert.Equal(t, expected, ev.Etype, "index %d", i)
	}
}

func TestProportionConformance(t *testing.T) {
	f := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.PersonProportion = 2
		c.AuctionProportion = 5
		c.BidProportion = 13
	})
	counts := map[ntypes.EType]int{}
	for i := uint64(0); i < 20_000; i++ {
		counts[f.Config().Space.EventType(i)]++
	}
	assert.Equal(t, 2_000, counts[ntypes.PERSON])
	assert.Equal(t, 5_000, counts[ntypes.AUCTION])
	assert.Equal(t, 13_000, counts[ntypes.BID])
}

func TestDeterminism(t *testing.T) {
	f1 := newTestFactory(t, nil)
	f2 := newTestFactory(t, nil)
	indices := []uint64{0, 1, 2, 3, 4, 49, 50, 51, 10_007, 999_999}
	for _, i := range indices {
		a, err := f1.NextEvent(i)
		require.NoError(t, err)
		// interleave unrelated work so the factory state differs between calls
		_, _ = f2.NextEvent(i + 13)
		b, err := f2.NextEvent(i)
		require.NoError(t, err)
		assert.Equal(t, a, b, "index %d", i)
		again, err := f1.NextEvent(i)
		require.NoError(t, err)
		assert.Equal(t, a, again, "index %d", i)
	}
}

func TestLastIdsDoNotUnderflow(t *testing.T) {
	f := newTestFactory(t, nil)
	space := f.Config().Space
	assert.Equal(t, uint64(0), space.LastBase0PersonId(0))
	assert.Equal(t, uint64(0), space.LastBase0AuctionId(0))
	assert.Equal(t, uint64(0), space.LastBase0AuctionId(1))
	assert.Equal(t, uint64(2), space.LastBase0AuctionId(3))
	assert.Equal(t, uint64(2), space.LastBase0AuctionId(49))
	assert.Equal(t, uint64(2), space.LastBase0AuctionId(50))
	assert.Equal(t, uint64(3), space.LastBase0AuctionId(51))
	assert.Equal(t, uint64(1), space.LastBase0PersonId(50))
	assert.Equal(t, uint64(1), space.LastBase0PersonId(99))
}

func TestEntityIds(t *testing.T) {
	f := newTestFactory(t, nil)
	ev, err := f.NextEvent(0)
	require.NoError(t, err)
	assert.Equal(t, FIRST_PERSON_ID, ev.NewPerson.ID)
	ev, err = f.NextEvent(52)
	require.NoError(t, err)
	assert.Equal(t, FIRST_AUCTION_ID+4, ev.NewAuction.ID)
	assert.GreaterOrEqual(t, ev.NewAuction.Category, FIRST_CATEGORY_ID)
	assert.Less(t, ev.NewAuction.Category, FIRST_CATEGORY_ID+NUM_CATEGORIES)
	assert.Greater(t, ev.NewAuction.Expires, ev.NewAuction.DateTime)
	assert.GreaterOrEqual(t, ev.NewAuction.Reserve, ev.NewAuction.InitialBid)
}

func TestCausalValidity(t *testing.T) {
	f := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.HotSellersRatio = 2
		c.HotBiddersRatio = 2
	})
	space := f.Config().Space
	for i := uint64(0); i < 30_000; i++ {
		ev, err := f.NextEvent(i)
		require.NoError(t, err)
		lastPerson := space.LastBase0PersonId(i) + FIRST_PERSON_ID
		lastAuction := space.LastBase0AuctionId(i) + FIRST_AUCTION_ID
		switch ev.Etype {
		case ntypes.PERSON:
			assert.Equal(t, lastPerson, ev.NewPerson.ID)
		case ntypes.AUCTION:
			require.LessOrEqual(t, ev.NewAuction.Seller, lastPerson, "index %d", i)
			require.GreaterOrEqual(t, ev.NewAuction.Seller, FIRST_PERSON_ID)
		case ntypes.BID:
			require.LessOrEqual(t, ev.Bid.Auction, lastAuction, "index %d", i)
			require.LessOrEqual(t, ev.Bid.Bidder, lastPerson, "index %d", i)
			require.GreaterOrEqual(t, ev.Bid.Auction, FIRST_AUCTION_ID)
			require.GreaterOrEqual(t, ev.Bid.Bidder, FIRST_PERSON_ID)
		}
	}
}

func TestHotSellerShare(t *testing.T) {
	f := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.HotSellersRatio = 4
	})
	space := f.Config().Space
	hot, total := 0, 0
	for i := uint64(0); total < 20_000; i++ {
		if space.EventType(i) != ntypes.AUCTION {
			continue
		}
		// skip the start where the hot bucket and the cold window overlap
		if space.LastBase0PersonId(i) < 5_000 {
			continue
		}
		total++
		ev, err := f.NextEvent(i)
		require.NoError(t, err)
		hotSeller := hotBase0PersonId(i, f.Config(), HOT_SELLER_RATIO) + FIRST_PERSON_ID
		if ev.NewAuction.Seller == hotSeller {
			hot++
		}
	}
	share := float64(hot) / float64(total)
	// a cold pick lands on the hot id with probability about 1/1010
	assert.InDelta(t, 0.75, share, 0.02)
}

func TestPaddingCorrectness(t *testing.T) {
	f := newTestFactory(t, nil)
	c := f.Config().Configuration
	for i := uint64(0); i < 5_000; i++ {
		ev, err := f.NextEvent(i)
		require.NoError(t, err)
		var accounted int
		var target uint32
		switch ev.Etype {
		case ntypes.PERSON:
			accounted, target = ev.NewPerson.AccountedSize(), c.AvgPersonByteSize
		case ntypes.AUCTION:
			accounted, target = ev.NewAuction.AccountedSize(), c.AvgAuctionByteSize
		case ntypes.BID:
			accounted, target = ev.Bid.AccountedSize(), c.AvgBidByteSize
		}
		total := accounted + ev.ExtraLen()
		if accounted >= int(target) {
			assert.Equal(t, 0, ev.ExtraLen())
		} else {
			assert.GreaterOrEqual(t, float64(total), float64(target)*0.8, "index %d", i)
			assert.LessOrEqual(t, float64(total), float64(target)*1.2, "index %d", i)
		}
	}
}

func TestNextExtra(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	assert.Equal(t, "", NextExtra(random, 100, 100))
	assert.Equal(t, "", NextExtra(random, 120, 100))
	assert.Len(t, NextExtra(random, 98, 100), 2)
	for i := 0; i < 1_000; i++ {
		l := len(NextExtra(random, 0, 100))
		assert.GreaterOrEqual(t, l, 80)
		assert.LessOrEqual(t, l, 120)
	}
}

func TestNextString(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1_000; i++ {
		s := NextString(random, 20)
		assert.GreaterOrEqual(t, len(s), MIN_STRING_LENGTH)
		assert.LessOrEqual(t, len(s), 20)
	}
	assert.Len(t, NextExactString(random, 17), 17)
}

func TestSkippedTypes(t *testing.T) {
	f := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.SkipPerson = true
		c.SkipBid = true
	})
	ev, err := f.NextEvent(0)
	require.NoError(t, err)
	assert.Nil(t, ev)
	ev, err = f.NextEvent(2)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, ntypes.AUCTION, ev.Etype)
	ev, err = f.NextEvent(10)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestTimestampForEvent(t *testing.T) {
	f := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.EventRate = 10_000
	})
	gc := f.Config()
	assert.Equal(t, gc.Configuration.BaseTime, gc.TimestampForEvent(0))
	assert.Equal(t, gc.Configuration.BaseTime+1, gc.TimestampForEvent(10))
	assert.Equal(t, gc.Configuration.BaseTime+1000, gc.TimestampForEvent(10_000))
}

func TestChannelCacheIsStable(t *testing.T) {
	small, err := NewChannelCache(2)
	require.NoError(t, err)
	large, err := NewChannelCache(100)
	require.NoError(t, err)
	for _, k := range []uint32{5, 9, 5, 17, 9, 5, 3, 17} {
		a := small.Get(k)
		b := large.Get(k)
		assert.Equal(t, a, b)
		assert.Equal(t, "channel-"+strconv.FormatUint(uint64(k), 10), a.Channel)
	}
	assert.Equal(t, 2, small.Len())
	assert.Equal(t, 4, large.Len())
}

func TestColdChannelsAcrossFactories(t *testing.T) {
	f1 := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.HotChannelsRatio = 1
		c.ChannelCacheSize = 1
	})
	f2 := newTestFactory(t, func(c *ntypes.NexMarkConfig) {
		c.HotChannelsRatio = 1
	})
	for i := uint64(4); i < 2_000; i += 50 {
		a, err := f1.NextEvent(i)
		require.NoError(t, err)
		b, err := f2.NextEvent(i)
		require.NoError(t, err)
		assert.Equal(t, a.Bid.Channel, b.Bid.Channel)
		assert.Equal(t, a.Bid.Url, b.Bid.Url)
		assert.NotContains(t, HOT_CHANNELS[:], a.Bid.Channel)
	}
}

func BenchmarkGenerateEvents(b *testing.B) {
	f := newTestFactory(b, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.NextEvent(uint64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEventMsgpSerde(b *testing.B) {
	f := newTestFactory(b, nil)
	serde := ntypes.EventMsgpSerdeG{}
	events := make([]*ntypes.Event, 0, 50)
	for i := uint64(0); i < 50; i++ {
		ev, err := f.NextEvent(i)
		if err != nil {
			b.Fatal(err)
		}
		events = append(events, ev)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc, err := serde.Encode(events[i%len(events)])
		if err != nil {
			b.Fatal(err)
		}
		if _, err := serde.Decode(enc); err != nil {
			b.Fatal(err)
		}
	}
}
