package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/fittrack/internal/provider"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	userAgent      = "fittrack/1.0 (+https://github.com/saadjs/fittrack)"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Limit      int
}

// Search runs a product text search. Values are reported per 100 g.
func (c *Client) Search(ctx context.Context, query string) ([]provider.FoodFacts, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		base,
		url.QueryEscape(query),
		limit,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts search request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts search request failed with status %d", resp.StatusCode)
	}
	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}
	out := make([]provider.FoodFacts, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		id := strings.TrimSpace(p.Code)
		if id == "" {
			id = strings.TrimSpace(p.ID)
		}
		out = append(out, provider.FoodFacts{
			Name:            name,
			Brand:           strings.TrimSpace(p.Brands),
			CaloriesPer100g: per100g(p.Nutriments, "energy-kcal"),
			ProteinPer100g:  per100g(p.Nutriments, "proteins"),
			CarbsPer100g:    per100g(p.Nutriments, "carbohydrates"),
			FatPer100g:      per100g(p.Nutriments, "fat"),
			Source:          "openfoodfacts",
			SourceID:        id,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for %q", provider.ErrNoResults, query)
	}
	return out, nil
}

func per100g(n map[string]any, base string) float64 {
	if v, ok := parseFloatAny(n[base+"_100g"]); ok {
		return v
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offProduct struct {
	ID          string         `json:"_id"`
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
