package marketplace

import (
	"fmt"
	"sync"
	"testing"

	"github.com/campuskitchen/surplusmart/internal/models"
)

func TestLedgerSequentialIDs(t *testing.T) {
	l := NewLedger()
	for i := 1; i <= 3; i++ {
		order := l.Append(models.Order{UserID: "U001"})
		want := fmt.Sprintf("ORD_%04d", i)
		if order.ID != want {
			t.Fatalf("expected %s, got %s", want, order.ID)
		}
	}
	if l.Len() != 3 {
		t.Errorf("expected 3 orders, got %d", l.Len())
	}
}

func TestLedgerConcurrentAppends(t *testing.T) {
	l := NewLedger()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(models.Order{})
		}()
	}
	wg.Wait()

	orders := l.Orders()
	if len(orders) != n {
		t.Fatalf("expected %d orders, got %d", n, len(orders))
	}
	seen := make(map[string]bool, n)
	for _, order := range orders {
		if seen[order.ID] {
			t.Fatalf("duplicate order id %s", order.ID)
		}
		seen[order.ID] = true
	}
	if !seen[fmt.Sprintf("ORD_%04d", n)] {
		t.Errorf("expected ids to run through ORD_%04d", n)
	}
}

func TestLedgerOrdersReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Append(models.Order{UserID: "U001"})

	orders := l.Orders()
	orders[0].UserID = "tampered"

	if l.Orders()[0].UserID != "U001" {
		t.Error("ledger contents must not be mutable through the returned slice")
	}
}
