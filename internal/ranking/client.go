package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// ItemSummary is the capped per-item view sent to the ranking service.
type ItemSummary struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Restaurant       string  `json:"restaurant"`
	Location         string  `json:"location"`
	PriceCents       int     `json:"price_cents"`
	HoursUntilExpiry float64 `json:"hours_until_expiry"`
	Urgent           bool    `json:"urgent"`
}

// ProfileSummary is the structured user context sent to the ranking service.
type ProfileSummary struct {
	Name                string         `json:"name"`
	Location            string         `json:"location"`
	DietaryPreferences  []string       `json:"dietary_preferences"`
	DietaryRestrictions []string       `json:"dietary_restrictions"`
	Allergens           []string       `json:"allergens"`
	Dislikes            []string       `json:"dislikes"`
	FoodTypePreferences map[string]int `json:"food_type_preferences"`
	InteractionCount    int            `json:"interaction_count"`
}

type Request struct {
	User     ProfileSummary `json:"user"`
	Items    []ItemSummary  `json:"items"`
	Mood     string         `json:"mood,omitempty"`
	MealTime string         `json:"meal_time"`
}

// Entry is one ranked item in the service's response. The response contract
// is a bare JSON array of entries with no surrounding text.
type Entry struct {
	ItemID string `json:"item_id"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Result is the outcome of a ranking call. A failed call is a normal value,
// not an error: FallbackReason is set and the caller takes its local path.
type Result struct {
	Entries        []Entry
	FallbackReason string
}

func (r Result) Ranked() bool {
	return r.FallbackReason == ""
}

func unavailable(format string, args ...interface{}) Result {
	return Result{FallbackReason: fmt.Sprintf(format, args...)}
}

// Client talks to the external ranking collaborator over HTTP.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg models.RankingConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Timeout reports the per-call deadline, for callers that bound their own
// contexts.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Rank asks the service to order the item window for this user. Every
// failure mode collapses into an unavailable Result so callers fall back to
// local scoring instead of handling errors.
func (c *Client) Rank(ctx context.Context, request Request) Result {
	body, err := json.Marshal(request)
	if err != nil {
		return unavailable("marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return unavailable("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unavailable("ranking service unreachable: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return unavailable("ranking service returned %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(stripCodeFence(string(raw))), &entries); err != nil {
		return unavailable("malformed ranking response: %v", err)
	}

	return Result{Entries: entries}
}

// ImpactMessage fetches a short food-waste impact blurb for a placed order.
// Callers degrade to a templated message on error.
func (c *Client) ImpactMessage(ctx context.Context, itemsSaved int, costSaved float64) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"items_saved": itemsSaved,
		"cost_saved":  costSaved,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/impact", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("impact service returned %d", resp.StatusCode)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Message == "" {
		return "", fmt.Errorf("empty impact message")
	}
	return payload.Message, nil
}

// Some providers wrap their JSON in a markdown code block despite the
// contract; strip it before the strict parse.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 2 {
		return s
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

// MealTime buckets the hour of day the way the ranking service expects.
func MealTime(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 11:
		return "breakfast"
	case hour < 16:
		return "lunch"
	default:
		return "dinner"
	}
}
