package marketplace

import (
	"fmt"
	"sync"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// Ledger is the append-only order record. Id allocation and the append
// happen under one lock so concurrent order creation can neither duplicate
// nor skip an id.
type Ledger struct {
	mu      sync.Mutex
	orders  []models.Order
	counter int
}

func NewLedger() *Ledger {
	return &Ledger{orders: make([]models.Order, 0)}
}

// Append assigns the next sequential order id, records the order and
// returns the stamped copy. Orders are immutable once appended.
func (l *Ledger) Append(order models.Order) models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counter++
	order.ID = fmt.Sprintf("ORD_%04d", l.counter)
	l.orders = append(l.orders, order)
	return order
}

// Orders returns a copy of every recorded order in creation order.
func (l *Ledger) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders := make([]models.Order, len(l.orders))
	copy(orders, l.orders)
	return orders
}

// Len returns the number of recorded orders.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}
