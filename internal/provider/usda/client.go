package usda

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

const defaultBaseURL = "https://api.nal.usda.gov"

// FoodData Central nutrient ids.
const (
	nutrientEnergy  = 1008
	nutrientProtein = 1003
	nutrientFat     = 1004
	nutrientCarbs   = 1005
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Limit      int
}

// Search queries FoodData Central. Values are reported per 100 g.
func (c *Client) Search(ctx context.Context, query string) ([]provider.FoodFacts, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing USDA API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("api_key", c.APIKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(limit))
	u := fmt.Sprintf("%s/fdc/v1/foods/search?%s", baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create USDA request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA response: %w", err)
	}

	out := make([]provider.FoodFacts, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		name := strings.TrimSpace(f.Description)
		if name == "" {
			continue
		}
		item := provider.FoodFacts{
			Name:     name,
			Brand:    strings.TrimSpace(f.BrandOwner),
			Source:   "usda",
			SourceID: strconv.FormatInt(f.FDCID, 10),
		}
		for _, n := range f.FoodNutrients {
			switch nutrientKind(n) {
			case nutrientEnergy:
				item.CaloriesPer100g = n.Value
			case nutrientProtein:
				item.ProteinPer100g = n.Value
			case nutrientCarbs:
				item.CarbsPer100g = n.Value
			case nutrientFat:
				item.FatPer100g = n.Value
			}
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for %q", provider.ErrNoResults, query)
	}
	return out, nil
}

// nutrientKind resolves a nutrient by id, falling back to its name for
// payloads that omit ids.
func nutrientKind(n usdaNutrient) int {
	if n.NutrientID != 0 {
		return n.NutrientID
	}
	switch strings.ToLower(strings.TrimSpace(n.NutrientName)) {
	case "energy":
		if strings.EqualFold(strings.TrimSpace(n.UnitName), "kj") {
			return 0
		}
		return nutrientEnergy
	case "protein":
		return nutrientProtein
	case "carbohydrate, by difference":
		return nutrientCarbs
	case "total lipid (fat)":
		return nutrientFat
	}
	return 0
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	BrandOwner    string         `json:"brandOwner"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}
