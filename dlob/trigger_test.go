package dlob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindNodesToTriggerAboveHaltsAtFirstNonCrossing(t *testing.T) {
	above := newBtreeNodeList(false, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })
	above.Insert(&Order{OrderID: 1, TriggerPrice: dec(90)}, "a")  // crosses, oracle=100
	above.Insert(&Order{OrderID: 2, TriggerPrice: dec(95)}, "b")  // crosses
	above.Insert(&Order{OrderID: 3, TriggerPrice: dec(110)}, "c") // does not cross, halts scan
	above.Insert(&Order{OrderID: 4, TriggerPrice: dec(120)}, "d") // would not cross either, never reached

	below := newBtreeNodeList(true, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })

	triggered := findNodesToTrigger(above, below, dec(100), 0)
	require.Len(t, triggered, 2)
	require.Equal(t, uint32(1), triggered[0].Order.OrderID)
	require.Equal(t, uint32(2), triggered[1].Order.OrderID)
}

func TestFindNodesToTriggerBelowHaltsAtFirstNonCrossing(t *testing.T) {
	above := newBtreeNodeList(false, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })
	below := newBtreeNodeList(true, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })
	below.Insert(&Order{OrderID: 1, TriggerPrice: dec(110)}, "a") // crosses, oracle=100
	below.Insert(&Order{OrderID: 2, TriggerPrice: dec(105)}, "b") // crosses
	below.Insert(&Order{OrderID: 3, TriggerPrice: dec(90)}, "c")  // does not cross, halts scan

	triggered := findNodesToTrigger(above, below, dec(100), 0)
	require.Len(t, triggered, 2)
	require.Equal(t, uint32(1), triggered[0].Order.OrderID)
	require.Equal(t, uint32(2), triggered[1].Order.OrderID)
}

func TestFindNodesToTriggerSkipsIncompleteAuctionWithoutHalting(t *testing.T) {
	above := newBtreeNodeList(false, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })
	below := newBtreeNodeList(true, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })

	above.Insert(&Order{OrderID: 1, TriggerPrice: dec(90), TS: 0, AuctionDuration: 1000}, "a") // crosses, but auction incomplete
	above.Insert(&Order{OrderID: 2, TriggerPrice: dec(95), TS: 0, AuctionDuration: 0}, "b")     // crosses, complete

	triggered := findNodesToTrigger(above, below, dec(100), 5)
	require.Len(t, triggered, 1)
	require.Equal(t, uint32(2), triggered[0].Order.OrderID)
}

func TestDLOBFindNodesToTriggerRoutesByMarket(t *testing.T) {
	d := NewDLOB([]uint16{0})
	order := &Order{OrderID: 1, Direction: Long, Status: OrderStatusOpen, OrderType: OrderTypeTriggerLimit, TriggerCondition: TriggerAbove, TriggerPrice: dec(90), Price: dec(91)}
	require.NoError(t, d.Insert(0, order, "alice", nil))

	triggered, err := d.FindNodesToTrigger(0, dec(100), 0)
	require.NoError(t, err)
	require.Len(t, triggered, 1)
	require.Equal(t, "alice", triggered[0].UserAccount)
}
