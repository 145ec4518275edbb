package filler

import (
	"fmt"
	"sync"

	"cosmossdk.io/math"
	"github.com/openalpha/dlob-filler/dlob"
)

// StaticPriceFeed is a PriceFeed backed by manually-set per-market quotes,
// useful for local runs and tests where no live oracle/AMM client is wired
// up yet. Connecting a real feed (chain oracle client, AMM reserve reader)
// is left to the caller.
type StaticPriceFeed struct {
	mu      sync.RWMutex
	vAsk    map[uint16]math.LegacyDec
	vBid    map[uint16]math.LegacyDec
	oracles map[uint16]*dlob.Oracle
}

// NewStaticPriceFeed creates an empty feed; call SetQuote/SetOracle before
// a market is scanned, or scans for that market fail with an error.
func NewStaticPriceFeed() *StaticPriceFeed {
	return &StaticPriceFeed{
		vAsk:    make(map[uint16]math.LegacyDec),
		vBid:    make(map[uint16]math.LegacyDec),
		oracles: make(map[uint16]*dlob.Oracle),
	}
}

// SetQuote sets the vAMM ask/bid quote for a market.
func (f *StaticPriceFeed) SetQuote(marketIndex uint16, vAsk, vBid math.LegacyDec) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vAsk[marketIndex] = vAsk
	f.vBid[marketIndex] = vBid
}

// SetOracle sets the oracle price for a market.
func (f *StaticPriceFeed) SetOracle(marketIndex uint16, price math.LegacyDec) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oracles[marketIndex] = &dlob.Oracle{Price: price}
}

func (f *StaticPriceFeed) VammQuote(marketIndex uint16) (math.LegacyDec, math.LegacyDec, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ask, ok := f.vAsk[marketIndex]
	if !ok {
		return math.LegacyDec{}, math.LegacyDec{}, fmt.Errorf("no vamm ask quote set for market %d", marketIndex)
	}
	bid, ok := f.vBid[marketIndex]
	if !ok {
		return math.LegacyDec{}, math.LegacyDec{}, fmt.Errorf("no vamm bid quote set for market %d", marketIndex)
	}
	return ask, bid, nil
}

func (f *StaticPriceFeed) OraclePrice(marketIndex uint16) (*dlob.Oracle, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	oracle, ok := f.oracles[marketIndex]
	if !ok {
		return nil, fmt.Errorf("no oracle price set for market %d", marketIndex)
	}
	return oracle, nil
}
