package dlob

import (
	"cosmossdk.io/math"
)

// Oracle is the per-call price feed passed into price-dependent reads.
// A nil *Oracle means the caller supplied no oracle data; floating-limit
// nodes fail with ErrMissingOracle when asked to price against it.
type Oracle struct {
	Price math.LegacyDec
}

// Node is a priced or scannable element of a NodeList.
// All non-vAMM nodes expose Order/UserAccount/Id; vAMM nodes expose
// neither, since a synthetic vAMM quote has no backing order.
type Node interface {
	// GetPrice evaluates the node's price at the given (oracle, slot).
	GetPrice(oracle *Oracle, slot int64) (math.LegacyDec, error)
	IsVammNode() bool
	Order() *Order
	UserAccount() string
	Id() OrderId
}

type baseNode struct {
	order       *Order
	userAccount string
	id          OrderId
}

func (n *baseNode) IsVammNode() bool      { return false }
func (n *baseNode) Order() *Order         { return n.order }
func (n *baseNode) UserAccount() string   { return n.userAccount }
func (n *baseNode) Id() OrderId           { return n.id }

// LimitNode prices at the order's fixed reference price.
type LimitNode struct{ baseNode }

func newLimitNode(order *Order, userAccount string) *LimitNode {
	return &LimitNode{baseNode{order: order, userAccount: userAccount, id: MakeOrderId(userAccount, order.OrderID)}}
}

func (n *LimitNode) GetPrice(_ *Oracle, _ int64) (math.LegacyDec, error) {
	return n.order.Price, nil
}

// FloatingLimitNode prices at oracle.price + order.oraclePriceOffset.
type FloatingLimitNode struct{ baseNode }

func newFloatingLimitNode(order *Order, userAccount string) *FloatingLimitNode {
	return &FloatingLimitNode{baseNode{order: order, userAccount: userAccount, id: MakeOrderId(userAccount, order.OrderID)}}
}

func (n *FloatingLimitNode) GetPrice(oracle *Oracle, _ int64) (math.LegacyDec, error) {
	if oracle == nil {
		return math.LegacyDec{}, ErrMissingOracle
	}
	return oracle.Price.Add(n.order.OraclePriceOffset), nil
}

// MarketNode prices along the linear auction curve between
// auctionStartPrice and auctionEndPrice, clamped to the endpoints.
type MarketNode struct{ baseNode }

func newMarketNode(order *Order, userAccount string) *MarketNode {
	return &MarketNode{baseNode{order: order, userAccount: userAccount, id: MakeOrderId(userAccount, order.OrderID)}}
}

func (n *MarketNode) GetPrice(_ *Oracle, slot int64) (math.LegacyDec, error) {
	return auctionPrice(n.order, slot), nil
}

// auctionPrice linearly interpolates auctionStartPrice -> auctionEndPrice
// over slot-order.ts against order.auctionDuration, clamped to the
// endpoints, the way TrailingStopOrder.GetTrailDistance tracks a moving
// reference distance rather than a fixed one.
func auctionPrice(order *Order, slot int64) math.LegacyDec {
	if IsAuctionComplete(order, slot) {
		return order.AuctionEndPrice
	}
	elapsed := slot - order.TS
	if elapsed <= 0 {
		return order.AuctionStartPrice
	}
	if order.AuctionDuration == 0 {
		return order.AuctionEndPrice
	}
	progress := math.LegacyNewDec(elapsed).QuoInt64(int64(order.AuctionDuration))
	delta := order.AuctionEndPrice.Sub(order.AuctionStartPrice)
	return order.AuctionStartPrice.Add(delta.Mul(progress))
}

// TriggerNode resides in a trigger list; never exposed via matching
// iterators, only walked by the trigger scanner.
type TriggerNode struct{ baseNode }

func newTriggerNode(order *Order, userAccount string) *TriggerNode {
	return &TriggerNode{baseNode{order: order, userAccount: userAccount, id: MakeOrderId(userAccount, order.OrderID)}}
}

func (n *TriggerNode) GetPrice(_ *Oracle, _ int64) (math.LegacyDec, error) {
	return n.order.TriggerPrice, nil
}

// VammNode is the synthetic single-element stream representing the
// vAMM counterparty of last resort. It carries no Order/UserAccount.
type VammNode struct {
	price math.LegacyDec
}

func newVammNode(price math.LegacyDec) *VammNode {
	return &VammNode{price: price}
}

func (n *VammNode) GetPrice(_ *Oracle, _ int64) (math.LegacyDec, error) { return n.price, nil }
func (n *VammNode) IsVammNode() bool                                   { return true }
func (n *VammNode) Order() *Order                                      { return nil }
func (n *VammNode) UserAccount() string                                { return "" }
func (n *VammNode) Id() OrderId                                        { return "" }
