package dlob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCrossingOrdersNoCross(t *testing.T) {
	ask := newLimitNode(&Order{Price: dec(110)}, "a")
	bid := newLimitNode(&Order{Price: dec(100)}, "b")
	res := findCrossingOrders(ask, bid, dec(110), dec(100))
	require.Nil(t, res.fill)
	require.False(t, res.advanceAsk)
	require.False(t, res.advanceBid)
}

func TestFindCrossingOrdersSimpleCrossOlderIsMaker(t *testing.T) {
	ask := newLimitNode(&Order{Price: dec(100), TS: 1}, "a")
	bid := newLimitNode(&Order{Price: dec(105), TS: 2}, "b")
	res := findCrossingOrders(ask, bid, dec(100), dec(105))
	require.NotNil(t, res.fill)
	require.Same(t, ask, res.fill.Maker)
	require.Same(t, bid, res.fill.Taker)
	require.True(t, res.fill.Price.Equal(dec(100)))
	require.False(t, res.advanceAsk)
	require.True(t, res.advanceBid)
}

func TestFindCrossingOrdersTieGoesToAsk(t *testing.T) {
	ask := newLimitNode(&Order{Price: dec(100), TS: 5}, "a")
	bid := newLimitNode(&Order{Price: dec(105), TS: 5}, "b")
	res := findCrossingOrders(ask, bid, dec(100), dec(105))
	require.Same(t, ask, res.fill.Maker)
}

func TestFindCrossingOrdersPostOnlyIsMaker(t *testing.T) {
	ask := newLimitNode(&Order{Price: dec(100), TS: 10, PostOnly: true}, "a")
	bid := newLimitNode(&Order{Price: dec(105), TS: 1}, "b")
	res := findCrossingOrders(ask, bid, dec(100), dec(105))
	require.Same(t, ask, res.fill.Maker)
	require.Same(t, bid, res.fill.Taker)
}

func TestFindCrossingOrdersBothPostOnlyDeadlockAdvancesNewer(t *testing.T) {
	ask := newLimitNode(&Order{Price: dec(100), TS: 1, PostOnly: true}, "a")
	bid := newLimitNode(&Order{Price: dec(105), TS: 9, PostOnly: true}, "b")
	res := findCrossingOrders(ask, bid, dec(100), dec(105))
	require.Nil(t, res.fill)
	require.False(t, res.advanceAsk)
	require.True(t, res.advanceBid)
}

func TestFindCrossingOrdersVammAskAdvancesBidOnly(t *testing.T) {
	vammAsk := newVammNode(dec(100))
	bid := newLimitNode(&Order{Price: dec(105), TS: 1}, "b")
	res := findCrossingOrders(vammAsk, bid, dec(100), dec(105))
	require.Nil(t, res.fill)
	require.False(t, res.advanceAsk)
	require.True(t, res.advanceBid)
}

func TestFindCrossingOrdersVammBidAdvancesAskOnly(t *testing.T) {
	ask := newLimitNode(&Order{Price: dec(100), TS: 1}, "a")
	vammBid := newVammNode(dec(105))
	res := findCrossingOrders(ask, vammBid, dec(100), dec(105))
	require.Nil(t, res.fill)
	require.True(t, res.advanceAsk)
	require.False(t, res.advanceBid)
}

func TestFindCrossingNodesToFillCapsAtTen(t *testing.T) {
	d := NewDLOB([]uint16{0})
	m := d.orderLists[0]
	for i := uint32(0); i < 20; i++ {
		m.LimitAsk.Insert(&Order{OrderID: i, Price: dec(100), TS: int64(i)}, "ask")
		m.LimitBid.Insert(&Order{OrderID: i + 1000, Price: dec(200), TS: int64(i)}, "bid")
	}

	askStream, err := d.GetAsks(0, dec(1000), 0, nil)
	require.NoError(t, err)
	bidStream, err := d.GetBids(0, dec(1), 0, nil)
	require.NoError(t, err)

	fills, err := findCrossingNodesToFill(askStream, bidStream)
	require.NoError(t, err)
	require.Len(t, fills, maxFillsPerCall)
}

func TestFindMarketNodesToFillSkipsIncompleteAuctionsWithoutHalting(t *testing.T) {
	d := NewDLOB([]uint16{0})
	m := d.orderLists[0]
	m.MarketAsk.Insert(&Order{OrderID: 1, TS: 0, AuctionDuration: 1000}, "slow") // incomplete at slot 5
	m.MarketAsk.Insert(&Order{OrderID: 2, TS: 0, AuctionDuration: 0}, "fast")    // complete immediately

	asks, err := d.GetMarketAsks(0)
	require.NoError(t, err)
	bids, err := d.GetMarketBids(0)
	require.NoError(t, err)

	fills := findMarketNodesToFill(asks, bids, dec(100), dec(99), 5)
	require.Len(t, fills, 1)
	require.Equal(t, uint32(2), fills[0].Taker.Order().OrderID)
}

func TestFindNodesToFillCombinesCrossingAndMarketVamm(t *testing.T) {
	d := NewDLOB([]uint16{0})
	m := d.orderLists[0]
	m.LimitAsk.Insert(&Order{OrderID: 1, Price: dec(100), TS: 1}, "a")
	m.LimitBid.Insert(&Order{OrderID: 2, Price: dec(105), TS: 1}, "b")
	m.MarketBid.Insert(&Order{OrderID: 3, TS: 0, AuctionDuration: 0, AuctionStartPrice: dec(90), AuctionEndPrice: dec(90)}, "c")

	fills, err := d.FindNodesToFill(0, dec(200), dec(1), 0, nil)
	require.NoError(t, err)
	require.True(t, len(fills) >= 2)
}
