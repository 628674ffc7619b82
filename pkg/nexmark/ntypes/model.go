package ntypes

import (
	"fmt"
	"strconv"
)

type Auction struct {
	ItemName    string `msg:"itemName" json:"itemName"`
	Description string `msg:"description" json:"description"`
	Extra       string `msg:"extra" json:"extra"`
	ID          uint64 `msg:"id" json:"id"`
	Reserve     uint64 `msg:"reserve" json:"reserve"`
	DateTime    int64  `msg:"dateTime" json:"dateTime"`
	Expires     int64  `msg:"expires" json:"expires"`
	Seller      uint64 `msg:"seller" json:"seller"`
	Category    uint64 `msg:"category" json:"category"`
	InitialBid  uint64 `msg:"initialBid" json:"initialBid"`
}

var _ = fmt.Stringer(Auction{})

func (a Auction) String() string {
	return fmt.Sprintf("Auction: {ItemName: %s, Description: %s, Extra: %s, ID: %d, Reserve: %d, TsMs: %d, Expires: %d, Seller: %d, Cat: %d, InitBid: %d}",
		a.ItemName, a.Description, a.Extra, a.ID, a.Reserve, a.DateTime, a.Expires, a.Seller, a.Category, a.InitialBid)
}

// AccountedSize is the byte cost of every field except Extra.
func (a *Auction) AccountedSize() int {
	return AuctionAccountedSize(a.ItemName, a.Description)
}

func AuctionAccountedSize(itemName, description string) int {
	// id + name + desc + initialBid, reserve, category, seller, expires
	return 8 + len(itemName) + len(description) + 8*5
}

type Bid struct {
	Extra    string `msg:"extra" json:"extra"`
	Channel  string `msg:"channel" json:"channel"`
	Url      string `msg:"url" json:"url"`
	Bidder   uint64 `msg:"bidder" json:"bidder"`
	Price    uint64 `msg:"price" json:"price"`
	DateTime int64  `msg:"dateTime" json:"dateTime"`
	Auction  uint64 `msg:"auction" json:"auction"`
}

var _ = fmt.Stringer(Bid{})

func (b Bid) String() string {
	return fmt.Sprintf("Bid: {Extra: %s, Channel: %s, Url: %s, Bidder: %d, Price: %d, Ts: %d, Auc: %d}",
		b.Extra, b.Channel, b.Url, b.Bidder, b.Price, b.DateTime, b.Auction)
}

func (b *Bid) AccountedSize() int {
	return BidAccountedSize(b.Channel, b.Url)
}

func BidAccountedSize(channel, url string) int {
	// auction, bidder, price, dateTime + channel + url
	return 8*4 + len(channel) + len(url)
}

type Person struct {
	Name         string `msg:"name" json:"name"`
	EmailAddress string `msg:"emailAddress" json:"emailAddress"`
	CreditCard   string `msg:"creditCard" json:"creditCard"`
	City         string `msg:"city" json:"city"`
	State        string `msg:"state" json:"state"`
	Extra        string `msg:"extra" json:"extra"`
	ID           uint64 `msg:"id" json:"id"`
	DateTime     int64  `msg:"dateTime" json:"dateTime"`
}

var _ = fmt.Stringer(Person{})

func (p Person) String() string {
	return fmt.Sprintf("Person: {Name: %s, Email: %s, CreditCard: %s, City: %s, State: %s, Extra: %s, ID: %d, Ts: %d}",
		p.Name, p.EmailAddress, p.CreditCard, p.City, p.State, p.Extra, p.ID, p.DateTime)
}

func (p *Person) AccountedSize() int {
	return PersonAccountedSize(p.Name, p.EmailAddress, p.CreditCard, p.City, p.State)
}

func PersonAccountedSize(name, email, creditCard, city, state string) int {
	return 8 + len(name) + len(email) + len(creditCard) + len(city) + len(state)
}

type EType uint8

const (
	PERSON  EType = 0
	AUCTION EType = 1
	BID     EType = 2
)

func (t EType) String() string {
	switch t {
	case PERSON:
		return "person"
	case AUCTION:
		return "auction"
	case BID:
		return "bid"
	default:
		return "unknown"
	}
}

type Event struct {
	NewPerson  *Person  `json:"newPerson,omitempty" msg:"newPerson,omitempty"`
	NewAuction *Auction `json:"newAuction,omitempty" msg:"newAuction,omitempty"`
	Bid        *Bid     `json:"bid,omitempty" msg:"bid,omitempty"`
	Etype      EType    `json:"etype" msg:"etype"`
}

func NewPersonEvent(newPerson *Person) *Event {
	return &Event{
		NewPerson: newPerson,
		Etype:     PERSON,
	}
}

func NewAuctionEvent(newAuction *Auction) *Event {
	return &Event{
		NewAuction: newAuction,
		Etype:      AUCTION,
	}
}

func NewBidEvent(bid *Bid) *Event {
	return &Event{
		Bid:   bid,
		Etype: BID,
	}
}

func (e *Event) ExtractEventTime() (int64, error) {
	switch e.Etype {
	case PERSON:
		if e.NewPerson == nil {
			return 0, fmt.Errorf("new person should not be nil")
		}
		return e.NewPerson.DateTime, nil
	case BID:
		if e.Bid == nil {
			return 0, fmt.Errorf("bid should not be nil")
		}
		return e.Bid.DateTime, nil
	case AUCTION:
		if e.NewAuction == nil {
			return 0, fmt.Errorf("new auction should not be nil")
		}
		return e.NewAuction.DateTime, nil
	default:
		return 0, fmt.Errorf("failed to recognize event type")
	}
}

// RoutingKey is the entity key downstream consumers partition by: the person id,
// the auction id, or the auction a bid is placed on.
func (e *Event) RoutingKey() string {
	switch e.Etype {
	case PERSON:
		return strconv.FormatUint(e.NewPerson.ID, 10)
	case AUCTION:
		return strconv.FormatUint(e.NewAuction.ID, 10)
	case BID:
		return strconv.FormatUint(e.Bid.Auction, 10)
	default:
		return ""
	}
}

// ExtraLen is the length of the padding field of whichever entity the event carries.
func (e *Event) ExtraLen() int {
	switch e.Etype {
	case PERSON:
		return len(e.NewPerson.Extra)
	case AUCTION:
		return len(e.NewAuction.Extra)
	case BID:
		return len(e.Bid.Extra)
	default:
		return 0
	}
}
