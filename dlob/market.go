package dlob

import "cosmossdk.io/math"

// MarketNodeLists holds the eight lists for one market: four classes x two
// sides. Established at construction and never mutated structurally
// afterwards.
type MarketNodeLists struct {
	LimitAsk, LimitBid                 *NodeList
	FloatingLimitAsk, FloatingLimitBid *NodeList
	MarketAsk, MarketBid               *NodeList
	TriggerAbove, TriggerBelow         *NodeList
}

func newMarketNodeLists() *MarketNodeLists {
	priceKey := func(o *Order) math.LegacyDec { return o.Price }
	offsetKey := func(o *Order) math.LegacyDec { return o.OraclePriceOffset }
	tsKey := func(o *Order) math.LegacyDec { return math.LegacyNewDec(o.TS) }
	triggerKey := func(o *Order) math.LegacyDec { return o.TriggerPrice }

	return &MarketNodeLists{
		LimitAsk:  newSkiplistNodeList(false, priceKey, func(o *Order, u string) Node { return newLimitNode(o, u) }),
		LimitBid:  newSkiplistNodeList(true, priceKey, func(o *Order, u string) Node { return newLimitNode(o, u) }),

		FloatingLimitAsk: newSkiplistNodeList(false, offsetKey, func(o *Order, u string) Node { return newFloatingLimitNode(o, u) }),
		FloatingLimitBid: newSkiplistNodeList(true, offsetKey, func(o *Order, u string) Node { return newFloatingLimitNode(o, u) }),

		// Market lists are always ascending by ts regardless of side: there
		// is no usable price to sort by.
		MarketAsk: newSkiplistNodeList(false, tsKey, func(o *Order, u string) Node { return newMarketNode(o, u) }),
		MarketBid: newSkiplistNodeList(false, tsKey, func(o *Order, u string) Node { return newMarketNode(o, u) }),

		TriggerAbove: newBtreeNodeList(false, triggerKey, func(o *Order, u string) Node { return newTriggerNode(o, u) }),
		TriggerBelow: newBtreeNodeList(true, triggerKey, func(o *Order, u string) Node { return newTriggerNode(o, u) }),
	}
}

// listClass identifies one of the four node classes.
type listClass int

const (
	classLimit listClass = iota
	classFloatingLimit
	classMarket
	classTrigger
)

// resolve returns the list a given (class, direction/triggerCondition) maps
// to. For the trigger class, dir is ignored and triggerCondition selects
// above/below; for the others, dir selects ask/bid.
func (m *MarketNodeLists) resolve(class listClass, dir Direction, cond TriggerCondition) *NodeList {
	switch class {
	case classLimit:
		if dir == Long {
			return m.LimitBid
		}
		return m.LimitAsk
	case classFloatingLimit:
		if dir == Long {
			return m.FloatingLimitBid
		}
		return m.FloatingLimitAsk
	case classMarket:
		if dir == Long {
			return m.MarketBid
		}
		return m.MarketAsk
	case classTrigger:
		if cond == TriggerAbove {
			return m.TriggerAbove
		}
		return m.TriggerBelow
	}
	return nil
}
