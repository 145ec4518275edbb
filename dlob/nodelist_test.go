package dlob

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func priceKeyFn(o *Order) math.LegacyDec { return o.Price }

func drain(c *Cursor) []Node {
	var out []Node
	for {
		n, ok := c.Next()
		if !ok {
			break
		}
		out = append(out, n)
	}
	return out
}

func TestSkiplistNodeListOrdersAscending(t *testing.T) {
	list := newSkiplistNodeList(false, priceKeyFn, func(o *Order, u string) Node { return newLimitNode(o, u) })
	list.Insert(&Order{OrderID: 1, Price: math.LegacyNewDec(30), TS: 1}, "a")
	list.Insert(&Order{OrderID: 2, Price: math.LegacyNewDec(10), TS: 2}, "a")
	list.Insert(&Order{OrderID: 3, Price: math.LegacyNewDec(20), TS: 3}, "a")

	nodes := drain(list.Cursor())
	require.Len(t, nodes, 3)
	require.Equal(t, uint32(2), nodes[0].Order().OrderID)
	require.Equal(t, uint32(3), nodes[1].Order().OrderID)
	require.Equal(t, uint32(1), nodes[2].Order().OrderID)
}

func TestSkiplistNodeListOrdersDescending(t *testing.T) {
	list := newSkiplistNodeList(true, priceKeyFn, func(o *Order, u string) Node { return newLimitNode(o, u) })
	list.Insert(&Order{OrderID: 1, Price: math.LegacyNewDec(30), TS: 1}, "a")
	list.Insert(&Order{OrderID: 2, Price: math.LegacyNewDec(10), TS: 2}, "a")

	nodes := drain(list.Cursor())
	require.Len(t, nodes, 2)
	require.Equal(t, uint32(1), nodes[0].Order().OrderID)
	require.Equal(t, uint32(2), nodes[1].Order().OrderID)
}

func TestNodeListTieBreakByTsThenSeq(t *testing.T) {
	list := newSkiplistNodeList(false, priceKeyFn, func(o *Order, u string) Node { return newLimitNode(o, u) })
	same := math.LegacyNewDec(10)
	list.Insert(&Order{OrderID: 1, Price: same, TS: 5}, "a")
	list.Insert(&Order{OrderID: 2, Price: same, TS: 5}, "a")
	list.Insert(&Order{OrderID: 3, Price: same, TS: 1}, "a")

	nodes := drain(list.Cursor())
	require.Equal(t, []uint32{3, 1, 2}, []uint32{nodes[0].Order().OrderID, nodes[1].Order().OrderID, nodes[2].Order().OrderID})
}

func TestNodeListRemoveIsIdempotent(t *testing.T) {
	list := newSkiplistNodeList(false, priceKeyFn, func(o *Order, u string) Node { return newLimitNode(o, u) })
	order := &Order{OrderID: 1, Price: math.LegacyNewDec(10), TS: 1}
	list.Insert(order, "a")
	require.Equal(t, 1, list.Len())

	list.Remove(order, "a")
	require.Equal(t, 0, list.Len())

	list.Remove(order, "a")
	require.Equal(t, 0, list.Len())
}

func TestNodeListUpdateDoesNotReposition(t *testing.T) {
	list := newSkiplistNodeList(false, priceKeyFn, func(o *Order, u string) Node { return newLimitNode(o, u) })
	order := &Order{OrderID: 1, Price: math.LegacyNewDec(10), TS: 1}
	list.Insert(order, "a")

	order.Price = math.LegacyNewDec(9999)
	list.Update(order, "a")

	require.Equal(t, 1, list.Len())
	nodes := drain(list.Cursor())
	price, err := nodes[0].GetPrice(nil, 0)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDec(9999)))
}

func triggerKeyFn(o *Order) math.LegacyDec { return o.TriggerPrice }

func TestBtreeNodeListAscendingAndDescending(t *testing.T) {
	asc := newBtreeNodeList(false, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })
	asc.Insert(&Order{OrderID: 1, TriggerPrice: math.LegacyNewDec(30), TS: 1}, "a")
	asc.Insert(&Order{OrderID: 2, TriggerPrice: math.LegacyNewDec(10), TS: 2}, "a")
	nodesAsc := drain(asc.Cursor())
	require.Equal(t, uint32(2), nodesAsc[0].Order().OrderID)

	desc := newBtreeNodeList(true, triggerKeyFn, func(o *Order, u string) Node { return newTriggerNode(o, u) })
	desc.Insert(&Order{OrderID: 1, TriggerPrice: math.LegacyNewDec(30), TS: 1}, "a")
	desc.Insert(&Order{OrderID: 2, TriggerPrice: math.LegacyNewDec(10), TS: 2}, "a")
	nodesDesc := drain(desc.Cursor())
	require.Equal(t, uint32(1), nodesDesc[0].Order().OrderID)
}
