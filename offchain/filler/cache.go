package filler

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/openalpha/dlob-filler/dlob"
)

// OrderCache is a thread-safe cache for orders, keyed the same way DLOB's
// own openOrders set is keyed.
type OrderCache struct {
	orders map[dlob.OrderId]*dlob.Order
	users  map[dlob.OrderId]string
	mu     sync.RWMutex
}

// NewOrderCache creates a new order cache.
func NewOrderCache() *OrderCache {
	return &OrderCache{
		orders: make(map[dlob.OrderId]*dlob.Order),
		users:  make(map[dlob.OrderId]string),
	}
}

// Get retrieves an order from the cache.
func (c *OrderCache) Get(id dlob.OrderId) (*dlob.Order, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order, exists := c.orders[id]
	return order, c.users[id], exists
}

// Set stores an order in the cache.
func (c *OrderCache) Set(order *dlob.Order, userAccount string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := dlob.MakeOrderId(userAccount, order.OrderID)
	c.orders[id] = order
	c.users[id] = userAccount
}

// Delete removes an order from the cache.
func (c *OrderCache) Delete(id dlob.OrderId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, id)
	delete(c.users, id)
}

// Len returns the number of orders in the cache.
func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}

// All returns every cached order, for diagnostics and slot-start reconciliation.
func (c *OrderCache) All() []*dlob.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*dlob.Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o)
	}
	return out
}

// Trade is the off-chain record of one matched Fill, ready for submission.
// It is a price-and-identity record rather than a quantity-bearing trade,
// since the matching core never computes fill size, only maker/taker
// pairing and price.
type Trade struct {
	TradeID     string
	MarketIndex uint16
	Price       math.LegacyDec
	MakerId     dlob.OrderId
	TakerId     dlob.OrderId
	MakerIsVamm bool
	TakerIsVamm bool
}

// TradeBuffer is a thread-safe buffer of trades pending submission.
type TradeBuffer struct {
	trades  []*Trade
	maxSize int
	mu      sync.Mutex
}

// NewTradeBuffer creates a trade buffer preallocated to maxSize entries
// (100 when maxSize <= 0). Add and AddBatch do not cap the buffer at
// maxSize.
func NewTradeBuffer(maxSize int) *TradeBuffer {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &TradeBuffer{trades: make([]*Trade, 0, maxSize), maxSize: maxSize}
}

// Add appends a trade to the buffer.
func (b *TradeBuffer) Add(trade *Trade) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trades = append(b.trades, trade)
}

// AddBatch appends multiple trades to the buffer.
func (b *TradeBuffer) AddBatch(trades []*Trade) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trades = append(b.trades, trades...)
}

// Flush returns all buffered trades and empties the buffer.
func (b *TradeBuffer) Flush() []*Trade {
	b.mu.Lock()
	defer b.mu.Unlock()
	trades := b.trades
	b.trades = make([]*Trade, 0, b.maxSize)
	return trades
}

// Len returns the number of buffered trades.
func (b *TradeBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.trades)
}
