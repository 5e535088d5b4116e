package usda

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saadjs/fittrack/internal/provider"
)

func TestSearchParsesUSDAResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fdc/v1/foods/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "greek yogurt" || r.URL.Query().Get("pageSize") != "5" || r.URL.Query().Get("api_key") != "demo" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "foods": [
    {
      "fdcId": 12345,
      "description": "Greek Yogurt",
      "brandOwner": "Test Brand",
      "foodNutrients": [
        {"nutrientId": 1008, "nutrientName": "Energy", "unitName": "KCAL", "value": 59},
        {"nutrientId": 1003, "nutrientName": "Protein", "value": 10.2},
        {"nutrientId": 1005, "nutrientName": "Carbohydrate, by difference", "value": 3.6},
        {"nutrientId": 1004, "nutrientName": "Total lipid (fat)", "value": 0.4}
      ]
    },
    {
      "fdcId": 678,
      "description": "Plain Yogurt",
      "foodNutrients": [
        {"nutrientName": "Energy", "unitName": "kJ", "value": 250},
        {"nutrientName": "Energy", "unitName": "KCAL", "value": 61},
        {"nutrientName": "Protein", "value": 3.5}
      ]
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client(), Limit: 5}
	items, err := c.Search(context.Background(), "greek yogurt")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SourceID != "12345" || items[0].CaloriesPer100g != 59 || items[0].ProteinPer100g != 10.2 || items[0].FatPer100g != 0.4 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].CaloriesPer100g != 61 || items[1].ProteinPer100g != 3.5 || items[1].CarbsPer100g != 0 {
		t.Fatalf("expected name fallback to skip kJ energy, got %+v", items[1])
	}
}

func TestSearchRequiresAPIKeyAndReportsFailures(t *testing.T) {
	t.Parallel()

	if _, err := (&Client{}).Search(context.Background(), "apple"); err == nil {
		t.Fatalf("expected missing key error")
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "nothing" {
			_, _ = w.Write([]byte(`{"foods": []}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Search(context.Background(), "apple"); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := c.Search(context.Background(), "nothing"); !errors.Is(err, provider.ErrNoResults) {
		t.Fatalf("expected no results error, got %v", err)
	}
}
