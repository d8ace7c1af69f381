package output

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

func TestJSONOutputPartitions(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "events")

	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	event := models.InteractionEvent{
		BaseEvent: models.NewBaseEvent(models.TopicInteractionRecorded, at),
		FoodType:  "healthy",
		Rating:    5,
	}
	msg, err := json.Marshal(event)
	if err != nil {
		t.Fatal(err)
	}

	if err := out.WriteMessage(models.TopicInteractionRecorded, msg); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if err := out.WriteMessage(models.TopicInteractionRecorded, msg); err != nil {
		t.Fatalf("second WriteMessage: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	path := filepath.Join(dir, "events", models.TopicInteractionRecorded,
		"year=2025/month=03/day=10/hour=14", "data.json")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("partition file missing: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var decoded map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines, err)
		}
		if decoded["eventType"] != models.TopicInteractionRecorded {
			t.Errorf("wrong eventType: %v", decoded["eventType"])
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", lines)
	}
}

func TestJSONOutputRejectsMissingTimestamp(t *testing.T) {
	out := NewJSONOutput(t.TempDir(), "events")
	if err := out.WriteMessage("some_topic", []byte(`{"no":"timestamp"}`)); err == nil {
		t.Fatal("expected error for event without timestamp")
	}
}

func TestDetermineConsoleByDefault(t *testing.T) {
	dest, err := Determine(&models.Config{})
	if err != nil {
		t.Fatalf("Determine: %v", err)
	}
	if _, ok := dest.(*ConsoleOutput); !ok {
		t.Fatalf("expected console output, got %T", dest)
	}
}

func TestDetermineJSONFile(t *testing.T) {
	cfg := &models.Config{OutputFile: t.TempDir(), OutputFolder: "events", OutputFormat: "json"}
	dest, err := Determine(cfg)
	if err != nil {
		t.Fatalf("Determine: %v", err)
	}
	if _, ok := dest.(*JSONOutput); !ok {
		t.Fatalf("expected JSON output, got %T", dest)
	}
}

func TestDetermineUnsupportedFormat(t *testing.T) {
	cfg := &models.Config{OutputFile: t.TempDir(), OutputFormat: "xml"}
	if _, err := Determine(cfg); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
