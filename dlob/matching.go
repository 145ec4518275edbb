package dlob

import "cosmossdk.io/math"

// maxFillsPerCall bounds how many Fills a single findNodesToFill pass
// returns, keeping per-call work bounded regardless of book depth. Kept as an unexported constant rather than a
// configurable knob: the cap exists to bound a single synchronous call,
// not to express a policy callers should tune.
const maxFillsPerCall = 10

// Fill pairs a maker node against a taker node at an execution price. Maker
// is nil only when nothing crossed; for a vAMM leg, Maker or Taker is a
// VammNode carrying no Order/UserAccount.
type Fill struct {
	Ask   Node
	Bid   Node
	Maker Node
	Taker Node
	Price math.LegacyDec
}

// crossResult is findCrossingOrders' internal verdict: either a Fill plus
// which stream(s) to advance, or no fill with an advance instruction used
// only to break a post-only deadlock.
type crossResult struct {
	fill       *Fill
	advanceAsk bool
	advanceBid bool
}

// findCrossingOrders implements the six-case decision tree comparing the
// current best ask and best bid:
//
//	A. askPrice > bidPrice               -> no cross
//	B. ask is vAMM, bid is not           -> no fill, advance bid only
//	C. bid is vAMM, ask is not           -> no fill, advance ask only
//	D. both real orders, both postOnly   -> deadlock, advance the newer order, no fill
//	E. both real orders, exactly one postOnly -> that one is maker, only the taker advances
//	F. both real orders, neither postOnly     -> older (smaller ts) is maker, ties go to ask, only the taker advances
func findCrossingOrders(askNode, bidNode Node, askPrice, bidPrice math.LegacyDec) *crossResult {
	if askPrice.GT(bidPrice) {
		return &crossResult{}
	}

	askIsVamm := askNode.IsVammNode()
	bidIsVamm := bidNode.IsVammNode()

	switch {
	case askIsVamm && bidIsVamm:
		// Both synthetic: nothing real to fill, and neither side can be
		// advanced without losing a participant. Treat as no cross.
		return &crossResult{}

	case askIsVamm:
		// The vAMM only advances the book; it never appears in a fill as a
		// peer to the resting order. The vAMM leg is picked up separately
		// by findMarketNodesToFill for orders whose auction has completed.
		return &crossResult{advanceBid: true}

	case bidIsVamm:
		return &crossResult{advanceAsk: true}
	}

	askOrder, bidOrder := askNode.Order(), bidNode.Order()

	if askOrder.PostOnly && bidOrder.PostOnly {
		if askOrder.TS >= bidOrder.TS {
			return &crossResult{advanceAsk: true}
		}
		return &crossResult{advanceBid: true}
	}

	var maker, taker Node
	var price math.LegacyDec
	takerIsAsk := false
	switch {
	case askOrder.PostOnly:
		maker, taker, price = askNode, bidNode, askPrice
		takerIsAsk = false
	case bidOrder.PostOnly:
		maker, taker, price = bidNode, askNode, bidPrice
		takerIsAsk = true
	case askOrder.TS <= bidOrder.TS:
		maker, taker, price = askNode, bidNode, askPrice
		takerIsAsk = false
	default:
		maker, taker, price = bidNode, askNode, bidPrice
		takerIsAsk = true
	}

	// Only the taker advances: the maker stays at the head of its stream
	// so it can be matched against further takers within the same call.
	return &crossResult{
		advanceAsk: takerIsAsk,
		advanceBid: !takerIsAsk,
		fill:       &Fill{Ask: askNode, Bid: bidNode, Maker: maker, Taker: taker, Price: price},
	}
}

// findCrossingNodesToFill drains crossing fills from the head of askStream
// and bidStream until they stop crossing or maxFillsPerCall is reached.
// Both streams must already reflect the same (oracle, slot).
func findCrossingNodesToFill(askStream, bidStream *MergeStream) ([]Fill, error) {
	var fills []Fill
	for len(fills) < maxFillsPerCall {
		askNode, askPrice, askOk := askStream.PeekWithPrice()
		bidNode, bidPrice, bidOk := bidStream.PeekWithPrice()
		if !askOk || !bidOk {
			break
		}

		res := findCrossingOrders(askNode, bidNode, askPrice, bidPrice)
		if res.fill == nil && !res.advanceAsk && !res.advanceBid {
			break
		}
		if res.fill != nil {
			fills = append(fills, *res.fill)
		}
		if res.advanceAsk {
			if err := askStream.Advance(); err != nil {
				return fills, err
			}
		}
		if res.advanceBid {
			if err := bidStream.Advance(); err != nil {
				return fills, err
			}
		}
	}
	return fills, nil
}

// findMarketNodesToFill walks the raw market-class lists (unmerged, ts
// order) and fills any node whose auction has completed against the vAMM,
// skipping (not halting on) nodes still mid-auction, since later orders
// in the same list are independent and may already be ready.
func findMarketNodesToFill(marketAsks, marketBids *Cursor, vAsk, vBid math.LegacyDec, slot int64) []Fill {
	var fills []Fill
	// A market ask (sell) order transacts at what the vAMM pays, vBid; a
	// market bid (buy) order transacts at what the vAMM asks, vAsk.
	fills = append(fills, scanMarketSide(marketAsks, vBid, slot, false)...)
	fills = append(fills, scanMarketSide(marketBids, vAsk, slot, true)...)
	if len(fills) > maxFillsPerCall {
		fills = fills[:maxFillsPerCall]
	}
	return fills
}

func scanMarketSide(cursor *Cursor, vammPrice math.LegacyDec, slot int64, isBid bool) []Fill {
	var fills []Fill
	for {
		node, ok := cursor.Next()
		if !ok {
			break
		}
		if !IsAuctionComplete(node.Order(), slot) {
			continue
		}
		vamm := newVammNode(vammPrice)
		f := Fill{Price: vammPrice}
		if isBid {
			f.Bid, f.Ask = node, vamm
			f.Maker, f.Taker = vamm, node
		} else {
			f.Ask, f.Bid = node, vamm
			f.Maker, f.Taker = vamm, node
		}
		fills = append(fills, f)
	}
	return fills
}

// FindNodesToFill is the top-level matching read: crossing fills against
// the merged streams, plus auction-complete market orders against the
// vAMM, combined and capped at maxFillsPerCall.
func (d *DLOB) FindNodesToFill(marketIndex uint16, vAsk, vBid math.LegacyDec, slot int64, oracle *Oracle) ([]Fill, error) {
	askStream, err := d.GetAsks(marketIndex, vAsk, slot, oracle)
	if err != nil {
		return nil, err
	}
	bidStream, err := d.GetBids(marketIndex, vBid, slot, oracle)
	if err != nil {
		return nil, err
	}
	crossing, err := findCrossingNodesToFill(askStream, bidStream)
	if err != nil {
		return nil, err
	}
	if len(crossing) >= maxFillsPerCall {
		return crossing[:maxFillsPerCall], nil
	}

	marketAsks, err := d.GetMarketAsks(marketIndex)
	if err != nil {
		return nil, err
	}
	marketBids, err := d.GetMarketBids(marketIndex)
	if err != nil {
		return nil, err
	}
	marketFills := findMarketNodesToFill(marketAsks, marketBids, vAsk, vBid, slot)

	fills := append(crossing, marketFills...)
	if len(fills) > maxFillsPerCall {
		fills = fills[:maxFillsPerCall]
	}
	return fills, nil
}
