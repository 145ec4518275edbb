package dlob

import "cosmossdk.io/math"

// TriggeredOrder is one order the scanner found ready to flip from a
// trigger list into its active list. The caller is expected to set
// order.Triggered = true and call DLOB.Trigger for each.
type TriggeredOrder struct {
	Order       *Order
	UserAccount string
}

// findNodesToTrigger walks a market's TriggerAbove and TriggerBelow lists
// against the current oracle price and slot.
//
// TriggerAbove is kept ascending by triggerPrice: the lowest trigger price
// is most likely to have been crossed by a rising oracle price, so the
// scan starts there. TriggerBelow is kept descending: the highest trigger
// price is most likely to have been crossed by a falling oracle price.
//
// For each node the scan meets one of three outcomes:
//   - the node's trigger condition does not cross the oracle price: halt
//     the scan entirely (every later node in this list crosses even less
//     easily);
//   - it crosses but the order's own auction has not completed: skip this
//     node and continue (it may become triggerable on a future call, but
//     does not block orders behind it);
//   - it crosses and the auction (if any) is complete: collect it.
func findNodesToTrigger(above, below *NodeList, oraclePrice math.LegacyDec, slot int64) []TriggeredOrder {
	var out []TriggeredOrder
	out = append(out, scanTriggerSide(above, oraclePrice, slot, TriggerAbove)...)
	out = append(out, scanTriggerSide(below, oraclePrice, slot, TriggerBelow)...)
	return out
}

func scanTriggerSide(list *NodeList, oraclePrice math.LegacyDec, slot int64, cond TriggerCondition) []TriggeredOrder {
	var out []TriggeredOrder
	cursor := list.Cursor()
	for {
		node, ok := cursor.Next()
		if !ok {
			break
		}
		order := node.Order()
		if !triggerCrosses(cond, oraclePrice, order.TriggerPrice) {
			break
		}
		if !IsAuctionComplete(order, slot) {
			continue
		}
		out = append(out, TriggeredOrder{Order: order, UserAccount: node.UserAccount()})
	}
	return out
}

// triggerCrosses reports whether oraclePrice satisfies cond against
// triggerPrice: Above fires once the oracle price has strictly risen past
// triggerPrice; Below fires once it has strictly fallen past it.
func triggerCrosses(cond TriggerCondition, oraclePrice, triggerPrice math.LegacyDec) bool {
	if cond == TriggerAbove {
		return oraclePrice.GT(triggerPrice)
	}
	return oraclePrice.LT(triggerPrice)
}

// FindNodesToTrigger scans a market's trigger lists against the given
// oracle price and slot.
func (d *DLOB) FindNodesToTrigger(marketIndex uint16, oraclePrice math.LegacyDec, slot int64) ([]TriggeredOrder, error) {
	m, err := d.market(marketIndex)
	if err != nil {
		return nil, err
	}
	return findNodesToTrigger(m.TriggerAbove, m.TriggerBelow, oraclePrice, slot), nil
}
