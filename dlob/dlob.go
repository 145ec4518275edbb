package dlob

// OnDone is the optional post-commit observer a mutator may be given; it
// fires after the state change is visible to subsequent reads.
type OnDone func(order *Order, userAccount string)

// DLOB is the per-process, multi-market order book projection: a registry
// of MarketNodeLists plus the openOrders dedup set. It is single-threaded
// and synchronous (callers serialize mutators and readers themselves).
type DLOB struct {
	orderLists map[uint16]*MarketNodeLists
	openOrders map[OrderId]struct{}
}

// NewDLOB establishes the eight lists for each given market. Markets
// cannot be added post-construction.
func NewDLOB(marketIndexes []uint16) *DLOB {
	d := &DLOB{
		orderLists: make(map[uint16]*MarketNodeLists, len(marketIndexes)),
		openOrders: make(map[OrderId]struct{}),
	}
	for _, idx := range marketIndexes {
		d.orderLists[idx] = newMarketNodeLists()
	}
	return d
}

func (d *DLOB) market(marketIndex uint16) (*MarketNodeLists, error) {
	m, ok := d.orderLists[marketIndex]
	if !ok {
		return nil, ErrUnknownMarket
	}
	return m, nil
}

// getListForOrder picks the target list for an order based on its type,
// trigger state, and oracle offset.
func getListForOrder(m *MarketNodeLists, order *Order) *NodeList {
	if order.OrderType.isTriggerType() && !order.Triggered {
		return m.resolve(classTrigger, order.Direction, order.TriggerCondition)
	}
	var class listClass
	switch {
	case order.OrderType.isMarketType():
		class = classMarket
	case order.HasOracleOffset():
		class = classFloatingLimit
	default:
		class = classLimit
	}
	return m.resolve(class, order.Direction, order.TriggerCondition)
}

// Insert rejects status==init orders (a silent no-op), adds the order
// to openOrders iff status==open, and inserts the node
// into the list getListForOrder resolves.
func (d *DLOB) Insert(marketIndex uint16, order *Order, userAccount string, onDone OnDone) error {
	m, err := d.market(marketIndex)
	if err != nil {
		return err
	}
	if order.Status == OrderStatusInit {
		return nil
	}
	list := getListForOrder(m, order)
	list.Insert(order, userAccount)
	if order.Status == OrderStatusOpen {
		d.openOrders[MakeOrderId(userAccount, order.OrderID)] = struct{}{}
	}
	if onDone != nil {
		onDone(order, userAccount)
	}
	return nil
}

// Remove drops the order from openOrders and from whichever list it
// resolves to; silent no-op if absent, making replay safe.
func (d *DLOB) Remove(marketIndex uint16, order *Order, userAccount string, onDone OnDone) error {
	m, err := d.market(marketIndex)
	if err != nil {
		return err
	}
	list := getListForOrder(m, order)
	list.Remove(order, userAccount)
	delete(d.openOrders, MakeOrderId(userAccount, order.OrderID))
	if onDone != nil {
		onDone(order, userAccount)
	}
	return nil
}

// Update forwards to the chosen list's Update; it does not reposition the
// node.
func (d *DLOB) Update(marketIndex uint16, order *Order, userAccount string, onDone OnDone) error {
	m, err := d.market(marketIndex)
	if err != nil {
		return err
	}
	list := getListForOrder(m, order)
	list.Update(order, userAccount)
	if onDone != nil {
		onDone(order, userAccount)
	}
	return nil
}

// Trigger removes the order from its trigger.{above,below} list (using the
// order's original triggerCondition) and inserts it into the newly
// applicable market/limit list. The caller must already have flipped
// order.Triggered to true before calling.
func (d *DLOB) Trigger(marketIndex uint16, order *Order, userAccount string, onDone OnDone) error {
	m, err := d.market(marketIndex)
	if err != nil {
		return err
	}
	triggerList := m.resolve(classTrigger, order.Direction, order.TriggerCondition)
	triggerList.Remove(order, userAccount)

	activeList := getListForOrder(m, order)
	activeList.Insert(order, userAccount)
	if order.Status == OrderStatusOpen {
		d.openOrders[MakeOrderId(userAccount, order.OrderID)] = struct{}{}
	}
	if onDone != nil {
		onDone(order, userAccount)
	}
	return nil
}

// GetMarketBids / GetMarketAsks expose the raw market-class stream for a
// side, unmerged, ordered by ts ascending.
func (d *DLOB) GetMarketBids(marketIndex uint16) (*Cursor, error) {
	m, err := d.market(marketIndex)
	if err != nil {
		return nil, err
	}
	return m.MarketBid.Cursor(), nil
}

func (d *DLOB) GetMarketAsks(marketIndex uint16) (*Cursor, error) {
	m, err := d.market(marketIndex)
	if err != nil {
		return nil, err
	}
	return m.MarketAsk.Cursor(), nil
}
