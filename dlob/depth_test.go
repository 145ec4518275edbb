package dlob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarketDepthCountsRestingNodesPerClassAndSide(t *testing.T) {
	d := NewDLOB([]uint16{0})
	m := d.orderLists[0]
	m.LimitAsk.Insert(&Order{OrderID: 1, Price: dec(100), TS: 1}, "a")
	m.LimitAsk.Insert(&Order{OrderID: 2, Price: dec(101), TS: 2}, "b")
	m.LimitBid.Insert(&Order{OrderID: 3, Price: dec(99), TS: 1}, "c")
	m.TriggerAbove.Insert(&Order{OrderID: 4, TriggerPrice: dec(120)}, "e")

	depth, err := d.MarketDepth(0)
	require.NoError(t, err)
	require.Equal(t, uint16(0), depth.MarketIndex)

	counts := make(map[string]int)
	for _, cd := range depth.Classes {
		counts[cd.Class+"/"+cd.Side] = cd.Count
	}
	require.Equal(t, 2, counts["limit/ask"])
	require.Equal(t, 1, counts["limit/bid"])
	require.Equal(t, 0, counts["floatingLimit/ask"])
	require.Equal(t, 1, counts["trigger/above"])
	require.Equal(t, 0, counts["trigger/below"])
}

func TestMarketDepthUnknownMarket(t *testing.T) {
	d := NewDLOB([]uint16{0})
	_, err := d.MarketDepth(99)
	require.ErrorIs(t, err, ErrUnknownMarket)
}
