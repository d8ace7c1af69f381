package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

func demoConfig() *models.Config {
	return &models.Config{DemoHalls: 3, DemoItemsPerHall: 6}
}

func TestDemoDataset(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ds := DemoDataset(demoConfig(), now)

	if len(ds.Halls) != 3 {
		t.Fatalf("expected 3 demo halls, got %d", len(ds.Halls))
	}
	if len(ds.Items) != 6 {
		t.Fatalf("expected 6 demo items, got %d", len(ds.Items))
	}
	if ds.Halls[0].ID != "R001" || ds.Halls[0].Name != "Campus Cafe" {
		t.Errorf("unexpected first hall: %+v", ds.Halls[0])
	}
	for _, item := range ds.Items {
		if !item.Expiry.After(now) {
			t.Errorf("demo item %s must start unexpired", item.ID)
		}
	}
}

func TestDemoDatasetExtraHalls(t *testing.T) {
	cfg := demoConfig()
	cfg.DemoHalls = 5
	cfg.DemoItemsPerHall = 2
	now := time.Now()

	ds := DemoDataset(cfg, now)
	if len(ds.Halls) != 5 {
		t.Fatalf("expected 5 halls, got %d", len(ds.Halls))
	}
	// 6 fixed items plus 2 per generated hall
	if len(ds.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(ds.Items))
	}
}

func TestFileSource(t *testing.T) {
	payload := `{
		"restaurants": [
			{"id": "R100", "name": "Satellite Cafe", "location": "East Campus", "cuisine_type": "Cafe"}
		],
		"food_items": [
			{"restaurant_id": "R100", "item_id": "F100", "name": "Bagel", "food_type": "bakery",
			 "original_price": 120, "expiry": "2025-03-10T15:00:00Z", "quantity": 2}
		]
	}`
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &FileSource{Path: path}
	ds, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds.Halls) != 1 || ds.Halls[0].ID != "R100" {
		t.Fatalf("unexpected halls: %+v", ds.Halls)
	}
	if len(ds.Items) != 1 {
		t.Fatalf("unexpected items: %+v", ds.Items)
	}
	item := ds.Items[0]
	if item.ID != "F100" || item.OriginalPrice != 120 || item.Quantity != 2 {
		t.Errorf("item fields wrong: %+v", item)
	}
	if !item.Expiry.Equal(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)) {
		t.Errorf("expiry not parsed: %v", item.Expiry)
	}
}

func TestFileSourceBadExpiry(t *testing.T) {
	payload := `{"restaurants": [], "food_items": [{"item_id": "F1", "expiry": "tomorrow"}]}`
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&FileSource{Path: path}).Fetch(context.Background()); err == nil {
		t.Fatal("expected error on unparseable expiry")
	}
}

func TestLoadFallsBackToDemo(t *testing.T) {
	ds := Load(context.Background(), &FileSource{Path: "/does/not/exist.json"}, demoConfig())
	if len(ds.Halls) != 3 {
		t.Fatalf("expected demo fallback, got %d halls", len(ds.Halls))
	}

	ds = Load(context.Background(), nil, demoConfig())
	if len(ds.Halls) != 3 {
		t.Fatalf("expected demo dataset with nil source, got %d halls", len(ds.Halls))
	}
}
