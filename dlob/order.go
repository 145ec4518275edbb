package dlob

import (
	"fmt"

	"cosmossdk.io/math"
)

// Direction is the side of the book an order rests on once it is active.
type Direction int32

const (
	DirectionUnspecified Direction = iota
	Long                           // bid
	Short                          // ask
)

func (d Direction) String() string {
	switch d {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "unspecified"
	}
}

// OrderType mirrors the four order types the chain account can encode.
type OrderType int32

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeLimit
	OrderTypeMarket
	OrderTypeTriggerLimit
	OrderTypeTriggerMarket
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeLimit:
		return "limit"
	case OrderTypeMarket:
		return "market"
	case OrderTypeTriggerLimit:
		return "triggerLimit"
	case OrderTypeTriggerMarket:
		return "triggerMarket"
	default:
		return "unspecified"
	}
}

func (t OrderType) isTriggerType() bool {
	return t == OrderTypeTriggerLimit || t == OrderTypeTriggerMarket
}

func (t OrderType) isMarketType() bool {
	return t == OrderTypeMarket || t == OrderTypeTriggerMarket
}

// OrderStatus mirrors the chain account's order lifecycle status.
type OrderStatus int32

const (
	OrderStatusInit OrderStatus = iota
	OrderStatusOpen
	OrderStatusFilled
	OrderStatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusInit:
		return "init"
	case OrderStatusOpen:
		return "open"
	case OrderStatusFilled:
		return "filled"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TriggerCondition is the direction a trigger order's threshold must be
// crossed from for the order to activate.
type TriggerCondition int32

const (
	TriggerConditionUnspecified TriggerCondition = iota
	TriggerAbove
	TriggerBelow
)

func (c TriggerCondition) String() string {
	switch c {
	case TriggerAbove:
		return "above"
	case TriggerBelow:
		return "below"
	default:
		return "unspecified"
	}
}

// OrderFlags carries inert, pass-through order attributes a complete order
// record would have (OCO/reduce-only/hidden bookkeeping) that the matching
// core never interprets. Keeping them here means callers feeding a richer
// Order into the core don't need to strip fields the engine doesn't use.
type OrderFlags struct {
	ReduceOnly bool
	Hidden     bool
}

// TimeInForce is carried for the same reason as OrderFlags: matching only
// ever consults PostOnly, never TimeInForce, but a production Order record
// has the field and the core should round-trip it.
type TimeInForce int32

const (
	TimeInForceGTC TimeInForce = iota
	TimeInForceIOC
	TimeInForceFOK
)

// Order is the read-only (except via Update) external order record the core
// consumes. The chain-account decoding that produces these values is an
// external collaborator; the core never constructs one itself.
type Order struct {
	OrderID  uint32
	MarketIndex uint16

	OrderType OrderType
	Status    OrderStatus
	Direction Direction

	Price              math.LegacyDec
	OraclePriceOffset  math.LegacyDec
	TriggerPrice       math.LegacyDec
	TriggerCondition   TriggerCondition
	Triggered          bool

	AuctionStartPrice math.LegacyDec
	AuctionEndPrice   math.LegacyDec
	AuctionDuration   uint32

	PostOnly bool
	TS       int64 // slot at which the order was placed; also time priority key

	Flags       OrderFlags
	TimeInForce TimeInForce
}

// IsOpen reports whether the order's status is open. DLOB.Insert does not
// consult it: every status other than init is routed into a list.
func (o *Order) IsOpen() bool {
	return o != nil && o.Status == OrderStatusOpen
}

// HasOracleOffset reports whether this is a floating-limit order.
func (o *Order) HasOracleOffset() bool {
	return !o.OraclePriceOffset.IsNil() && !o.OraclePriceOffset.IsZero()
}

// IsAuctionComplete is true iff slot >= order.ts + order.auctionDuration.
func IsAuctionComplete(order *Order, slot int64) bool {
	return slot >= order.TS+int64(order.AuctionDuration)
}

// OrderId is the deterministic, globally-unique fingerprint of
// (userAccount, order.OrderID) used as the DLOB.openOrders membership key.
type OrderId string

// MakeOrderId fingerprints a user account and an order id deterministically.
// Two inserts of the same (userAccount, orderID) always produce the same
// OrderId, which is what makes openOrders a correct dedup set.
func MakeOrderId(userAccount string, orderID uint32) OrderId {
	return OrderId(fmt.Sprintf("%s-%d", userAccount, orderID))
}
