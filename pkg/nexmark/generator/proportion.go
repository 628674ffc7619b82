package generator

import (
	"nexmark-gen/pkg/nexmark/ntypes"
)

// ProportionSpace maps global event indices onto entity types. Every block of
// Total consecutive indices holds Person persons, then Auction auctions, then Bid bids.
type ProportionSpace struct {
	Person  uint64
	Auction uint64
	Bid     uint64
	Total   uint64
}

func NewProportionSpace(config *ntypes.NexMarkConfig) ProportionSpace {
	return ProportionSpace{
		Person:  uint64(config.PersonProportion),
		Auction: uint64(config.AuctionProportion),
		Bid:     uint64(config.BidProportion),
		Total:   uint64(config.TotalProportion()),
	}
}

func (ps ProportionSpace) Epoch(eventId uint64) uint64 {
	return eventId / ps.Total
}

func (ps ProportionSpace) Offset(eventId uint64) uint64 {
	return eventId % ps.Total
}

func (ps ProportionSpace) EventType(eventId uint64) ntypes.EType {
	offset := ps.Offset(eventId)
	if offset < ps.Person {
		return ntypes.PERSON
	} else if offset < ps.Person+ps.Auction {
		return ntypes.AUCTION
	} else {
		return ntypes.BID
	}
}

// LastBase0PersonId is the base 0 id of the latest person created at or before eventId.
func (ps ProportionSpace) LastBase0PersonId(eventId uint64) uint64 {
	epoch := ps.Epoch(eventId)
	offset := ps.Offset(eventId)
	if offset >= ps.Person {
		offset = ps.Person - 1
	}
	return epoch*ps.Person + offset
}

// LastBase0AuctionId is the base 0 id of the latest auction created at or before
// eventId. Indices before the first auction map to 0.
func (ps ProportionSpace) LastBase0AuctionId(eventId uint64) uint64 {
	epoch := ps.Epoch(eventId)
	offset := ps.Offset(eventId)
	if offset < ps.Person {
		if epoch == 0 {
			return 0
		}
		epoch -= 1
		offset = ps.Auction - 1
	} else if offset >= ps.Person+ps.Auction {
		offset = ps.Auction - 1
	} else {
		offset -= ps.Person
	}
	return epoch*ps.Auction + offset
}
