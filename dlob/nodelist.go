package dlob

import (
	"cosmossdk.io/math"
	"github.com/google/btree"
	"github.com/huandu/skiplist"
)

// nodeKey is the ordering key a NodeList sorts its nodes by: a
// class-specific primary field (price, offset, ts, or triggerPrice) plus
// an (ts, seq) tie-break: earlier ts first, stable insertion order within
// equal ts.
type nodeKey struct {
	primary math.LegacyDec
	ts      int64
	seq     uint64
}

func compareTiebreak(a, b nodeKey) int {
	if a.ts != b.ts {
		if a.ts < b.ts {
			return -1
		}
		return 1
	}
	if a.seq != b.seq {
		if a.seq < b.seq {
			return -1
		}
		return 1
	}
	return 0
}

// ascKey orders ascending by primary, same tie-break regardless of
// direction: time priority never reverses with side.
type ascKey struct{}

func (ascKey) Compare(lhs, rhs interface{}) int {
	a, b := lhs.(nodeKey), rhs.(nodeKey)
	if a.primary.LT(b.primary) {
		return -1
	}
	if a.primary.GT(b.primary) {
		return 1
	}
	return compareTiebreak(a, b)
}

func (ascKey) CalcScore(key interface{}) float64 {
	f, _ := key.(nodeKey).primary.Float64()
	return f
}

type descKey struct{}

func (descKey) Compare(lhs, rhs interface{}) int {
	a, b := lhs.(nodeKey), rhs.(nodeKey)
	if a.primary.GT(b.primary) {
		return -1
	}
	if a.primary.LT(b.primary) {
		return 1
	}
	return compareTiebreak(a, b)
}

func (descKey) CalcScore(key interface{}) float64 {
	f, _ := key.(nodeKey).primary.Float64()
	return -f
}

// NodeList is an ordered sequence of Nodes for one (market, class, side),
// sorted by a class-specific price key, with O(log n) insert/remove and
// O(1) head access.
//
// Two ordered-index backings are used: huandu/skiplist for the three
// matching-eligible classes, and google/btree for the trigger lists. A
// trigger-list Cursor copies every node of the btree, in order, before
// its first Next; it does not range-scan.
type NodeList struct {
	desc    bool
	isBtree bool

	sl *skiplist.SkipList
	bt *btree.BTree

	byID    map[OrderId]nodeKey
	nextSeq uint64

	newNode func(order *Order, userAccount string) Node
	keyOf   func(order *Order) math.LegacyDec
}

func newSkiplistNodeList(desc bool, keyOf func(*Order) math.LegacyDec, newNode func(*Order, string) Node) *NodeList {
	var cmp skiplist.Comparable = ascKey{}
	if desc {
		cmp = descKey{}
	}
	return &NodeList{
		desc:    desc,
		sl:      skiplist.New(cmp),
		byID:    make(map[OrderId]nodeKey),
		newNode: newNode,
		keyOf:   keyOf,
	}
}

// btreeItem adapts (nodeKey, Node) into a google/btree.Item.
type btreeItem struct {
	key  nodeKey
	node Node
}

func (it *btreeItem) Less(other btree.Item) bool {
	o := other.(*btreeItem)
	if it.key.primary.LT(o.key.primary) {
		return true
	}
	if it.key.primary.GT(o.key.primary) {
		return false
	}
	return compareTiebreak(it.key, o.key) < 0
}

const triggerBtreeDegree = 32

func newBtreeNodeList(desc bool, keyOf func(*Order) math.LegacyDec, newNode func(*Order, string) Node) *NodeList {
	return &NodeList{
		desc:    desc,
		isBtree: true,
		bt:      btree.New(triggerBtreeDegree),
		byID:    make(map[OrderId]nodeKey),
		newNode: newNode,
		keyOf:   keyOf,
	}
}

// Insert inserts a new node, preserving sort order. A duplicate
// (user, orderId) is silently ignored.
func (l *NodeList) Insert(order *Order, userAccount string) {
	id := MakeOrderId(userAccount, order.OrderID)
	if _, exists := l.byID[id]; exists {
		return
	}
	l.nextSeq++
	key := nodeKey{primary: l.keyOf(order), ts: order.TS, seq: l.nextSeq}
	node := l.newNode(order, userAccount)
	l.byID[id] = key
	if l.isBtree {
		l.bt.ReplaceOrInsert(&btreeItem{key: key, node: node})
	} else {
		l.sl.Set(key, node)
	}
}

// Remove removes by identity; silently no-ops if absent, tolerant to
// replayed events.
func (l *NodeList) Remove(order *Order, userAccount string) {
	id := MakeOrderId(userAccount, order.OrderID)
	key, exists := l.byID[id]
	if !exists {
		return
	}
	delete(l.byID, id)
	if l.isBtree {
		l.bt.Delete(&btreeItem{key: key})
	} else {
		l.sl.Remove(key)
	}
}

// Update replaces the underlying order in the existing node. It does NOT
// re-position the node by price: update events are not expected to change
// class or side, and the price key is re-evaluated lazily by whatever
// reads the node (the merge step, or the trigger scanner). Callers that
// change order.Price via Update will transiently leave a LimitNode's
// price out of sync with its list position until the node is removed and
// re-inserted.
func (l *NodeList) Update(order *Order, userAccount string) {
	id := MakeOrderId(userAccount, order.OrderID)
	key, exists := l.byID[id]
	if !exists {
		return
	}
	if l.isBtree {
		item := l.bt.Get(&btreeItem{key: key})
		if item == nil {
			return
		}
		bi := item.(*btreeItem)
		bi.node = l.newNode(order, userAccount)
		return
	}
	elem := l.sl.Get(key)
	if elem == nil {
		return
	}
	elem.Value = l.newNode(order, userAccount)
}

// Len returns the number of nodes currently in the list.
func (l *NodeList) Len() int {
	if l.isBtree {
		return l.bt.Len()
	}
	return l.sl.Len()
}

// Cursor is a single-pass forward iterator in priority order, built fresh
// on demand in place of a persistent generator: call Next() until it
// returns (nil, false).
type Cursor struct {
	next func() (Node, bool)
}

func (c *Cursor) Next() (Node, bool) {
	if c == nil || c.next == nil {
		return nil, false
	}
	return c.next()
}

// Cursor returns a fresh forward cursor in the list's priority order
// (best first): ascending for ask/market/above-trigger lists, descending
// for bid/below-trigger lists. Not restartable; callers obtain a fresh
// Cursor each call.
func (l *NodeList) Cursor() *Cursor {
	if l.isBtree {
		return l.btreeCursor()
	}
	elem := l.sl.Front()
	return &Cursor{next: func() (Node, bool) {
		if elem == nil {
			return nil, false
		}
		n := elem.Value.(Node)
		elem = elem.Next()
		return n, true
	}}
}

func (l *NodeList) btreeCursor() *Cursor {
	items := make([]Node, 0, l.bt.Len())
	visit := func(item btree.Item) bool {
		items = append(items, item.(*btreeItem).node)
		return true
	}
	if l.desc {
		l.bt.Descend(visit)
	} else {
		l.bt.Ascend(visit)
	}
	i := 0
	return &Cursor{next: func() (Node, bool) {
		if i >= len(items) {
			return nil, false
		}
		n := items[i]
		i++
		return n, true
	}}
}
