package dlob

import "cosmossdk.io/math"

// mergeSource is one of the four streams a MergeStream merges: a cursor
// plus its currently-peeked head and that head's live price.
type mergeSource struct {
	cursor    *Cursor
	head      Node
	headPrice math.LegacyDec
	exhausted bool
}

func (s *mergeSource) advance(oracle *Oracle, slot int64) error {
	node, ok := s.cursor.Next()
	if !ok {
		s.exhausted = true
		s.head = nil
		return nil
	}
	price, err := node.GetPrice(oracle, slot)
	if err != nil {
		return err
	}
	s.head = node
	s.headPrice = price
	return nil
}

// MergeStream is the lazy k-way merge over {limit, floatingLimit, market,
// vAMM}: each Next() picks the source whose head has the best price under
// the side's comparator, yields it, and advances that source. Price
// evaluation uses the live (oracle, slot) passed at construction, not
// each list's static sort key (this is what makes floating-limit price
// correctness fall out despite the list being keyed on offset).
type MergeStream struct {
	sources []*mergeSource // fixed order: limit, floatingLimit, market, vAMM
	desc    bool            // bids: prefer higher price
	oracle  *Oracle
	slot    int64
}

func newMergeStream(limit, floatingLimit, market *NodeList, vamm Node, desc bool, oracle *Oracle, slot int64) (*MergeStream, error) {
	ms := &MergeStream{desc: desc, oracle: oracle, slot: slot}
	cursors := []*Cursor{limit.Cursor(), floatingLimit.Cursor(), market.Cursor(), newSingleNodeCursor(vamm)}
	for _, c := range cursors {
		src := &mergeSource{cursor: c}
		if err := src.advance(oracle, slot); err != nil {
			return nil, err
		}
		ms.sources = append(ms.sources, src)
	}
	return ms, nil
}

func newSingleNodeCursor(node Node) *Cursor {
	yielded := false
	return &Cursor{next: func() (Node, bool) {
		if yielded {
			return nil, false
		}
		yielded = true
		return node, true
	}}
}

// better reports whether price a beats price b under this stream's side.
func (ms *MergeStream) better(a, b math.LegacyDec) bool {
	if ms.desc {
		return a.GT(b)
	}
	return a.LT(b)
}

// Next yields the next node in priority order, or (nil, nil, false) once
// all four sources are exhausted. Tie-break between sources at equal price
// prefers the earliest source in fixed order (limit > floatingLimit >
// market > vAMM), preserved by scanning sources left to right and only
// replacing the current best on a strict improvement.
func (ms *MergeStream) Next() (Node, error, bool) {
	bestIdx := -1
	for i, src := range ms.sources {
		if src.exhausted {
			continue
		}
		if bestIdx == -1 || ms.better(src.headPrice, ms.sources[bestIdx].headPrice) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil, nil, false
	}
	winner := ms.sources[bestIdx]
	node := winner.head
	if err := winner.advance(ms.oracle, ms.slot); err != nil {
		return nil, err, false
	}
	return node, nil, true
}

// Peek returns the node Next() would currently return, without advancing,
// or (nil, false) if the stream is exhausted. Used by getBestAsk/getBestBid
// and by the matching engine's lockstep walk.
func (ms *MergeStream) Peek() (Node, bool) {
	bestIdx := -1
	for i, src := range ms.sources {
		if src.exhausted {
			continue
		}
		if bestIdx == -1 || ms.better(src.headPrice, ms.sources[bestIdx].headPrice) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil, false
	}
	return ms.sources[bestIdx].head, true
}

// PeekWithPrice is Peek plus the already-evaluated price of the head node,
// avoiding a redundant GetPrice call (and a redundant oracle-missing check)
// in the matching engine's hot loop.
func (ms *MergeStream) PeekWithPrice() (Node, math.LegacyDec, bool) {
	bestIdx := -1
	for i, src := range ms.sources {
		if src.exhausted {
			continue
		}
		if bestIdx == -1 || ms.better(src.headPrice, ms.sources[bestIdx].headPrice) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil, math.LegacyDec{}, false
	}
	return ms.sources[bestIdx].head, ms.sources[bestIdx].headPrice, true
}

// Advance consumes the current Peek()'d head from whichever source it came
// from, without needing the caller to know which source that was.
func (ms *MergeStream) Advance() error {
	node, ok := ms.Peek()
	if !ok {
		return nil
	}
	for _, src := range ms.sources {
		if !src.exhausted && src.head == node {
			return src.advance(ms.oracle, ms.slot)
		}
	}
	return nil
}

// GetAsks returns the merged ask stream for a market: limit.ask,
// floatingLimit.ask, market.ask, and a synthetic vAMM node at vAsk.
func (d *DLOB) GetAsks(marketIndex uint16, vAsk math.LegacyDec, slot int64, oracle *Oracle) (*MergeStream, error) {
	m, err := d.market(marketIndex)
	if err != nil {
		return nil, err
	}
	return newMergeStream(m.LimitAsk, m.FloatingLimitAsk, m.MarketAsk, newVammNode(vAsk), false, oracle, slot)
}

// GetBids returns the merged bid stream for a market: limit.bid,
// floatingLimit.bid, market.bid, and a synthetic vAMM node at vBid.
func (d *DLOB) GetBids(marketIndex uint16, vBid math.LegacyDec, slot int64, oracle *Oracle) (*MergeStream, error) {
	m, err := d.market(marketIndex)
	if err != nil {
		return nil, err
	}
	return newMergeStream(m.LimitBid, m.FloatingLimitBid, m.MarketBid, newVammNode(vBid), true, oracle, slot)
}

// GetBestAsk / GetBestBid return the price of the first element of
// GetAsks/GetBids. An empty book is not an error, since the vAMM source
// always supplies a head. They return ErrUnknownMarket for an unknown
// market, and ErrMissingOracle when a resting floating-limit node has to
// be priced and oracle is nil.
func (d *DLOB) GetBestAsk(marketIndex uint16, vAsk math.LegacyDec, slot int64, oracle *Oracle) (math.LegacyDec, error) {
	stream, err := d.GetAsks(marketIndex, vAsk, slot, oracle)
	if err != nil {
		return math.LegacyDec{}, err
	}
	node, ok := stream.Peek()
	if !ok {
		return vAsk, nil
	}
	return node.GetPrice(oracle, slot)
}

func (d *DLOB) GetBestBid(marketIndex uint16, vBid math.LegacyDec, slot int64, oracle *Oracle) (math.LegacyDec, error) {
	stream, err := d.GetBids(marketIndex, vBid, slot, oracle)
	if err != nil {
		return math.LegacyDec{}, err
	}
	node, ok := stream.Peek()
	if !ok {
		return vBid, nil
	}
	return node.GetPrice(oracle, slot)
}
