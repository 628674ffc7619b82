package ntypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexmark-gen/pkg/commtypes"
)

func sampleEvents() []*Event {
	return []*Event{
		NewPersonEvent(&Person{ID: 1000, Name: "Peter Jones", EmailAddress: "abc@def.com",
			CreditCard: "1234 5678 9012 3456", City: "Phoenix", State: "AZ", DateTime: 12, Extra: "xyz"}),
		NewAuctionEvent(&Auction{ID: 1003, ItemName: "item", Description: "desc", InitialBid: 10,
			Reserve: 20, DateTime: 14, Expires: 90, Seller: 1000, Category: 11}),
		NewBidEvent(&Bid{Auction: 1003, Bidder: 1000, Price: 42, Channel: "Google",
			Url: "https://www.nexmark.com/googl/item.htm?query=1", DateTime: 15}),
	}
}

func TestEventSerdeRoundTrip(t *testing.T) {
	for _, format := range []commtypes.SerdeFormat{commtypes.JSON, commtypes.MSGP} {
		serde, err := GetEventSerdeG(format)
		require.NoError(t, err)
		for _, ev := range sampleEvents() {
			enc, err := serde.Encode(ev)
			require.NoError(t, err, format.String())
			dec, err := serde.Decode(enc)
			require.NoError(t, err, format.String())
			assert.Equal(t, ev, dec, format.String())
		}
	}
}

func TestJSONOmitsAbsentEntities(t *testing.T) {
	enc, err := EventJSONSerdeG{}.Encode(sampleEvents()[2])
	require.NoError(t, err)
	assert.NotContains(t, string(enc), "newPerson")
	assert.Contains(t, string(enc), `"etype":2`)
}

func TestMsgsizeIsUpperBound(t *testing.T) {
	for _, ev := range sampleEvents() {
		enc, err := ev.MarshalMsg(nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(enc), ev.Msgsize())
	}
}

func TestUnknownSerdeFormat(t *testing.T) {
	_, err := GetEventSerdeG(commtypes.SerdeFormat(9))
	assert.Error(t, err)
}

func TestRoutingKeyAndEventTime(t *testing.T) {
	evs := sampleEvents()
	assert.Equal(t, "1000", evs[0].RoutingKey())
	assert.Equal(t, "1003", evs[1].RoutingKey())
	assert.Equal(t, "1003", evs[2].RoutingKey())
	ts, err := evs[2].ExtractEventTime()
	require.NoError(t, err)
	assert.Equal(t, int64(15), ts)
	assert.Equal(t, 3, evs[0].ExtraLen())
	assert.Equal(t, 8*4+len("Google")+len("https://www.nexmark.com/googl/item.htm?query=1"), evs[2].Bid.AccountedSize())
}
