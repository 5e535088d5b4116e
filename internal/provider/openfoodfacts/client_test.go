package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saadjs/fittrack/internal/provider"
)

func TestSearchParsesOpenFoodFactsResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search_terms") != "yogurt cup" || r.URL.Query().Get("page_size") != "3" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected user agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {
      "code": "3017620422003",
      "product_name": "Yogurt Cup",
      "brands": "Brand Co",
      "nutriments": {
        "energy-kcal_serving": 120,
        "energy-kcal_100g": 70.5,
        "proteins_100g": "6",
        "carbohydrates_100g": 9,
        "fat_100g": 1.2
      }
    },
    {"product_name": "   "}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client(), Limit: 3}
	items, err := c.Search(context.Background(), "yogurt cup")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected blank product to be skipped, got %d items", len(items))
	}
	got := items[0]
	if got.Name != "Yogurt Cup" || got.CaloriesPer100g != 70.5 || got.ProteinPer100g != 6 || got.FatPer100g != 1.2 || got.SourceID != "3017620422003" {
		t.Fatalf("unexpected parsed item: %+v", got)
	}
}

func TestSearchReportsEmptyAndFailedResponses(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search_terms") == "broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Search(context.Background(), "nothing"); !errors.Is(err, provider.ErrNoResults) {
		t.Fatalf("expected no results, got %v", err)
	}
	if _, err := c.Search(context.Background(), "broken"); err == nil {
		t.Fatalf("expected status error")
	}
	if items, err := c.Search(context.Background(), "  "); err != nil || items != nil {
		t.Fatalf("expected blank query to short-circuit, got %v %v", items, err)
	}
}
