package filler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/openalpha/dlob-filler/dlob"
)

// EventType is the kind of order-lifecycle event the filler ingests.
type EventType int

const (
	EventInsert EventType = iota
	EventRemove
	EventUpdate
)

func (e EventType) String() string {
	switch e {
	case EventInsert:
		return "insert"
	case EventRemove:
		return "remove"
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Event is one external order-lifecycle notification handed to the filler.
// Producing these (decoding chain events, a websocket feed, a REST
// webhook) is the external collaborator's job; the filler only
// consumes them.
type Event struct {
	Type        EventType
	MarketIndex uint16
	Order       *dlob.Order
	UserAccount string
}

// PriceFeed supplies the per-market vAMM quotes and oracle price the DLOB
// needs on every scan. A production filler backs this with a live oracle
// client and AMM reserve reader; it is an external collaborator, not part
// of the matching core.
type PriceFeed interface {
	VammQuote(marketIndex uint16) (vAsk, vBid math.LegacyDec, err error)
	OraclePrice(marketIndex uint16) (*dlob.Oracle, error)
}

// Filler is the event loop that drives a dlob.DLOB: it applies incoming
// order events, scans for fills and trigger activations on a fixed
// interval, and hands the results to a TxSubmitter. Event ingestion and
// periodic scanning run as separate goroutines, coordinated through
// dlob.DLOB's synchronous mutator/reader API.
type Filler struct {
	cfg       *Config
	book      *dlob.DLOB
	cache     *OrderCache
	buffer    *TradeBuffer
	submitter TxSubmitter
	feed      PriceFeed
	metrics   *Collector

	slot   int64
	slotMu sync.Mutex

	eventCh chan Event
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewFiller assembles a Filler for the given markets.
func NewFiller(cfg *Config, feed PriceFeed, submitter TxSubmitter) *Filler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if submitter == nil {
		submitter = NewMockSubmitter()
	}
	return &Filler{
		cfg:       cfg,
		book:      dlob.NewDLOB(cfg.Markets),
		cache:     NewOrderCache(),
		buffer:    NewTradeBuffer(cfg.BatchSize),
		submitter: submitter,
		feed:      feed,
		metrics:   GetCollector(),
		eventCh:   make(chan Event, 1000),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the event-ingestion and scan loops.
func (f *Filler) Start(ctx context.Context) error {
	log.Println("starting dlob filler")
	f.wg.Add(2)
	go f.eventLoop(ctx)
	go f.scanLoop(ctx)
	return nil
}

// Stop drains the event and scan loops.
func (f *Filler) Stop() error {
	close(f.stopCh)
	f.wg.Wait()
	return nil
}

// Submit enqueues an event for processing; safe to call concurrently with
// Start/Stop, but processing itself is single-threaded.
func (f *Filler) Submit(event Event) {
	select {
	case f.eventCh <- event:
	default:
		log.Printf("dlob filler: event channel full, dropping event for market %d", event.MarketIndex)
	}
}

// CurrentSlot returns the slot value the scan loop last advanced to.
func (f *Filler) CurrentSlot() int64 {
	f.slotMu.Lock()
	defer f.slotMu.Unlock()
	return f.slot
}

func (f *Filler) advanceSlot() int64 {
	f.slotMu.Lock()
	defer f.slotMu.Unlock()
	f.slot++
	return f.slot
}

func (f *Filler) eventLoop(ctx context.Context) {
	defer f.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopCh:
			return
		case event := <-f.eventCh:
			if err := f.handleEvent(event); err != nil {
				log.Printf("dlob filler: error handling event: %v", err)
			}
		}
	}
}

func (f *Filler) handleEvent(event Event) error {
	switch event.Type {
	case EventInsert:
		if err := f.book.Insert(event.MarketIndex, event.Order, event.UserAccount, nil); err != nil {
			return err
		}
		f.cache.Set(event.Order, event.UserAccount)
	case EventRemove:
		if err := f.book.Remove(event.MarketIndex, event.Order, event.UserAccount, nil); err != nil {
			return err
		}
		f.cache.Delete(dlob.MakeOrderId(event.UserAccount, event.Order.OrderID))
	case EventUpdate:
		if err := f.book.Update(event.MarketIndex, event.Order, event.UserAccount, nil); err != nil {
			return err
		}
		f.cache.Set(event.Order, event.UserAccount)
	default:
		return fmt.Errorf("unknown event type: %v", event.Type)
	}
	f.metrics.RecordOrder(event.MarketIndex, event.Type.String())
	return nil
}

// scanLoop periodically runs the matching and trigger scans for every
// configured market and hands results to the submitter (the scan itself,
// not just submission, is what's ticked here, since finding fills and
// triggers is this filler's whole job).
func (f *Filler) scanLoop(ctx context.Context) {
	defer f.wg.Done()
	ticker := time.NewTicker(f.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopCh:
			return
		case <-ticker.C:
			slot := f.advanceSlot()
			for _, marketIndex := range f.cfg.Markets {
				if err := f.scanMarket(ctx, marketIndex, slot); err != nil {
					log.Printf("dlob filler: error scanning market %d: %v", marketIndex, err)
				}
			}
		}
	}
}

func (f *Filler) scanMarket(ctx context.Context, marketIndex uint16, slot int64) error {
	if f.feed == nil {
		return nil
	}
	vAsk, vBid, err := f.feed.VammQuote(marketIndex)
	if err != nil {
		return fmt.Errorf("vamm quote: %w", err)
	}
	oracle, err := f.feed.OraclePrice(marketIndex)
	if err != nil {
		return fmt.Errorf("oracle price: %w", err)
	}

	if depth, err := f.book.MarketDepth(marketIndex); err == nil {
		f.metrics.RecordDepth(depth)
	}
	if bestAsk, err := f.book.GetBestAsk(marketIndex, vAsk, slot, oracle); err == nil {
		if bestBid, err := f.book.GetBestBid(marketIndex, vBid, slot, oracle); err == nil {
			f.metrics.RecordBestPrices(marketIndex, bestAsk, bestBid)
		}
	}

	fillTimer := NewTimer()
	fills, err := f.book.FindNodesToFill(marketIndex, vAsk, vBid, slot, oracle)
	if err != nil {
		return fmt.Errorf("find nodes to fill: %w", err)
	}
	f.metrics.MatchingLatency.WithLabelValues(marketIndexLabel(marketIndex)).Observe(fillTimer.ElapsedMs())
	f.metrics.RecordFills(marketIndex, len(fills))

	for _, fill := range fills {
		f.buffer.Add(fillToTrade(marketIndex, fill))
	}
	if trades := f.buffer.Flush(); len(trades) > 0 {
		if err := f.submitter.SubmitTrades(ctx, trades); err != nil {
			log.Printf("dlob filler: error submitting trades: %v", err)
			f.buffer.AddBatch(trades)
		}
	}

	triggerTimer := NewTimer()
	triggered, err := f.book.FindNodesToTrigger(marketIndex, oracle.Price, slot)
	if err != nil {
		return fmt.Errorf("find nodes to trigger: %w", err)
	}
	f.metrics.TriggerLatency.WithLabelValues(marketIndexLabel(marketIndex)).Observe(triggerTimer.ElapsedMs())
	f.metrics.RecordTriggers(marketIndex, len(triggered))

	if len(triggered) > 0 {
		activations := make([]TriggerActivation, 0, len(triggered))
		for _, t := range triggered {
			t.Order.Triggered = true
			if err := f.book.Trigger(marketIndex, t.Order, t.UserAccount, nil); err != nil {
				log.Printf("dlob filler: error activating trigger order %d: %v", t.Order.OrderID, err)
				continue
			}
			activations = append(activations, TriggerActivation{MarketIndex: marketIndex, UserAccount: t.UserAccount, OrderID: t.Order.OrderID})
		}
		if len(activations) > 0 {
			if err := f.submitter.SubmitTriggers(ctx, activations); err != nil {
				log.Printf("dlob filler: error submitting trigger activations: %v", err)
			}
		}
	}

	return nil
}

func fillToTrade(marketIndex uint16, fill dlob.Fill) *Trade {
	trade := &Trade{MarketIndex: marketIndex, Price: fill.Price}
	if fill.Maker != nil && !fill.Maker.IsVammNode() {
		trade.MakerId = fill.Maker.Id()
	} else {
		trade.MakerIsVamm = true
	}
	if fill.Taker != nil && !fill.Taker.IsVammNode() {
		trade.TakerId = fill.Taker.Id()
	} else {
		trade.TakerIsVamm = true
	}
	return trade
}
