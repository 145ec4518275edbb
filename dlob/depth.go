package dlob

// ClassDepth is the resting node count for one (class, side) pair within a
// market, reduced from aggregated price levels to a plain node count since
// NodeList has no price-level grouping.
type ClassDepth struct {
	Class string
	Side  string
	Count int
}

// MarketDepth is a read-only snapshot of a market's resting order counts
// across all eight lists, for publishing book-depth gauges. It never
// affects matching.
type MarketDepth struct {
	MarketIndex uint16
	Classes     []ClassDepth
}

// MarketDepth computes a point-in-time depth snapshot for a market.
func (d *DLOB) MarketDepth(marketIndex uint16) (*MarketDepth, error) {
	m, err := d.market(marketIndex)
	if err != nil {
		return nil, err
	}
	return &MarketDepth{
		MarketIndex: marketIndex,
		Classes: []ClassDepth{
			{Class: "limit", Side: "ask", Count: m.LimitAsk.Len()},
			{Class: "limit", Side: "bid", Count: m.LimitBid.Len()},
			{Class: "floatingLimit", Side: "ask", Count: m.FloatingLimitAsk.Len()},
			{Class: "floatingLimit", Side: "bid", Count: m.FloatingLimitBid.Len()},
			{Class: "market", Side: "ask", Count: m.MarketAsk.Len()},
			{Class: "market", Side: "bid", Count: m.MarketBid.Len()},
			{Class: "trigger", Side: "above", Count: m.TriggerAbove.Len()},
			{Class: "trigger", Side: "below", Count: m.TriggerBelow.Len()},
		},
	}, nil
}
