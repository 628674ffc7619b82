package ntypes

import (
	"github.com/tinylib/msgp/msgp"
)

// MarshalMsg implements msgp.Marshaler
func (z *Person) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendMapHeader(o, 8)
	o = msgp.AppendString(o, "name")
	o = msgp.AppendString(o, z.Name)
	o = msgp.AppendString(o, "emailAddress")
	o = msgp.AppendString(o, z.EmailAddress)
	o = msgp.AppendString(o, "creditCard")
	o = msgp.AppendString(o, z.CreditCard)
	o = msgp.AppendString(o, "city")
	o = msgp.AppendString(o, z.City)
	o = msgp.AppendString(o, "state")
	o = msgp.AppendString(o, z.State)
	o = msgp.AppendString(o, "extra")
	o = msgp.AppendString(o, z.Extra)
	o = msgp.AppendString(o, "id")
	o = msgp.AppendUint64(o, z.ID)
	o = msgp.AppendString(o, "dateTime")
	o = msgp.AppendInt64(o, z.DateTime)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Person) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "name":
			z.Name, bts, err = msgp.ReadStringBytes(bts)
		case "emailAddress":
			z.EmailAddress, bts, err = msgp.ReadStringBytes(bts)
		case "creditCard":
			z.CreditCard, bts, err = msgp.ReadStringBytes(bts)
		case "city":
			z.City, bts, err = msgp.ReadStringBytes(bts)
		case "state":
			z.State, bts, err = msgp.ReadStringBytes(bts)
		case "extra":
			z.Extra, bts, err = msgp.ReadStringBytes(bts)
		case "id":
			z.ID, bts, err = msgp.ReadUint64Bytes(bts)
		case "dateTime":
			z.DateTime, bts, err = msgp.ReadInt64Bytes(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			err = msgp.WrapError(err, string(field))
			return
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Person) Msgsize() (s int) {
	s = 1 + 5 + msgp.StringPrefixSize + len(z.Name) + 13 + msgp.StringPrefixSize + len(z.EmailAddress) +
		11 + msgp.StringPrefixSize + len(z.CreditCard) + 5 + msgp.StringPrefixSize + len(z.City) +
		6 + msgp.StringPrefixSize + len(z.State) + 6 + msgp.StringPrefixSize + len(z.Extra) +
		3 + msgp.Uint64Size + 9 + msgp.Int64Size
	return
}

// MarshalMsg implements msgp.Marshaler
func (z *Auction) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendMapHeader(o, 10)
	o = msgp.AppendString(o, "itemName")
	o = msgp.AppendString(o, z.ItemName)
	o = msgp.AppendString(o, "description")
	o = msgp.AppendString(o, z.Description)
	o = msgp.AppendString(o, "extra")
	o = msgp.AppendString(o, z.Extra)
	o = msgp.AppendString(o, "id")
	o = msgp.AppendUint64(o, z.ID)
	o = msgp.AppendString(o, "reserve")
	o = msgp.AppendUint64(o, z.Reserve)
	o = msgp.AppendString(o, "dateTime")
	o = msgp.AppendInt64(o, z.DateTime)
	o = msgp.AppendString(o, "expires")
	o = msgp.AppendInt64(o, z.Expires)
	o = msgp.AppendString(o, "seller")
	o = msgp.AppendUint64(o, z.Seller)
	o = msgp.AppendString(o, "category")
	o = msgp.AppendUint64(o, z.Category)
	o = msgp.AppendString(o, "initialBid")
	o = msgp.AppendUint64(o, z.InitialBid)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Auction) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "itemName":
			z.ItemName, bts, err = msgp.ReadStringBytes(bts)
		case "description":
			z.Description, bts, err = msgp.ReadStringBytes(bts)
		case "extra":
			z.Extra, bts, err = msgp.ReadStringBytes(bts)
		case "id":
			z.ID, bts, err = msgp.ReadUint64Bytes(bts)
		case "reserve":
			z.Reserve, bts, err = msgp.ReadUint64Bytes(bts)
		case "dateTime":
			z.DateTime, bts, err = msgp.ReadInt64Bytes(bts)
		case "expires":
			z.Expires, bts, err = msgp.ReadInt64Bytes(bts)
		case "seller":
			z.Seller, bts, err = msgp.ReadUint64Bytes(bts)
		case "category":
			z.Category, bts, err = msgp.ReadUint64Bytes(bts)
		case "initialBid":
			z.InitialBid, bts, err = msgp.ReadUint64Bytes(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			err = msgp.WrapError(err, string(field))
			return
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Auction) Msgsize() (s int) {
	s = 1 + 9 + msgp.StringPrefixSize + len(z.ItemName) + 12 + msgp.StringPrefixSize + len(z.Description) +
		6 + msgp.StringPrefixSize + len(z.Extra) + 3 + msgp.Uint64Size + 8 + msgp.Uint64Size +
		9 + msgp.Int64Size + 8 + msgp.Int64Size + 7 + msgp.Uint64Size + 9 + msgp.Uint64Size +
		11 + msgp.Uint64Size
	return
}

// MarshalMsg implements msgp.Marshaler
func (z *Bid) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendMapHeader(o, 7)
	o = msgp.AppendString(o, "extra")
	o = msgp.AppendString(o, z.Extra)
	o = msgp.AppendString(o, "channel")
	o = msgp.AppendString(o, z.Channel)
	o = msgp.AppendString(o, "url")
	o = msgp.AppendString(o, z.Url)
	o = msgp.AppendString(o, "bidder")
	o = msgp.AppendUint64(o, z.Bidder)
	o = msgp.AppendString(o, "price")
	o = msgp.AppendUint64(o, z.Price)
	o = msgp.AppendString(o, "dateTime")
	o = msgp.AppendInt64(o, z.DateTime)
	o = msgp.AppendString(o, "auction")
	o = msgp.AppendUint64(o, z.Auction)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Bid) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "extra":
			z.Extra, bts, err = msgp.ReadStringBytes(bts)
		case "channel":
			z.Channel, bts, err = msgp.ReadStringBytes(bts)
		case "url":
			z.Url, bts, err = msgp.ReadStringBytes(bts)
		case "bidder":
			z.Bidder, bts, err = msgp.ReadUint64Bytes(bts)
		case "price":
			z.Price, bts, err = msgp.ReadUint64Bytes(bts)
		case "dateTime":
			z.DateTime, bts, err = msgp.ReadInt64Bytes(bts)
		case "auction":
			z.Auction, bts, err = msgp.ReadUint64Bytes(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			err = msgp.WrapError(err, string(field))
			return
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Bid) Msgsize() (s int) {
	s = 1 + 6 + msgp.StringPrefixSize + len(z.Extra) + 8 + msgp.StringPrefixSize + len(z.Channel) +
		4 + msgp.StringPrefixSize + len(z.Url) + 7 + msgp.Uint64Size + 6 + msgp.Uint64Size +
		9 + msgp.Int64Size + 8 + msgp.Uint64Size
	return
}

// MarshalMsg implements msgp.Marshaler. Absent entities are omitted.
func (z *Event) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	sz := uint32(1)
	if z.NewPerson != nil {
		sz++
	}
	if z.NewAuction != nil {
		sz++
	}
	if z.Bid != nil {
		sz++
	}
	o = msgp.AppendMapHeader(o, sz)
	if z.NewPerson != nil {
		o = msgp.AppendString(o, "newPerson")
		if o, err = z.NewPerson.MarshalMsg(o); err != nil {
			err = msgp.WrapError(err, "NewPerson")
			return
		}
	}
	if z.NewAuction != nil {
		o = msgp.AppendString(o, "newAuction")
		if o, err = z.NewAuction.MarshalMsg(o); err != nil {
			err = msgp.WrapError(err, "NewAuction")
			return
		}
	}
	if z.Bid != nil {
		o = msgp.AppendString(o, "bid")
		if o, err = z.Bid.MarshalMsg(o); err != nil {
			err = msgp.WrapError(err, "Bid")
			return
		}
	}
	o = msgp.AppendString(o, "etype")
	o = msgp.AppendUint8(o, uint8(z.Etype))
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Event) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "newPerson":
			if msgp.IsNil(bts) {
				bts, err = msgp.ReadNilBytes(bts)
				z.NewPerson = nil
			} else {
				z.NewPerson = new(Person)
				bts, err = z.NewPerson.UnmarshalMsg(bts)
			}
		case "newAuction":
			if msgp.IsNil(bts) {
				bts, err = msgp.ReadNilBytes(bts)
				z.NewAuction = nil
			} else {
				z.NewAuction = new(Auction)
				bts, err = z.NewAuction.UnmarshalMsg(bts)
			}
		case "bid":
			if msgp.IsNil(bts) {
				bts, err = msgp.ReadNilBytes(bts)
				z.Bid = nil
			} else {
				z.Bid = new(Bid)
				bts, err = z.Bid.UnmarshalMsg(bts)
			}
		case "etype":
			var zb0002 uint8
			zb0002, bts, err = msgp.ReadUint8Bytes(bts)
			z.Etype = EType(zb0002)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			err = msgp.WrapError(err, string(field))
			return
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Event) Msgsize() (s int) {
	s = 1 + 10
	if z.NewPerson == nil {
		s += msgp.NilSize
	} else {
		s += z.NewPerson.Msgsize()
	}
	s += 11
	if z.NewAuction == nil {
		s += msgp.NilSize
	} else {
		s += z.NewAuction.Msgsize()
	}
	s += 4
	if z.Bid == nil {
		s += msgp.NilSize
	} else {
		s += z.Bid.Msgsize()
	}
	s += 6 + msgp.Uint8Size
	return
}
