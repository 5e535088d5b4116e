package aggregate

import (
	"fmt"
	"time"
)

const (
	DateLayout        = "2006-01-02"
	DefaultRollupDays = 7
)

// DayRecords is the raw input for one day of the rollup. A nil Water means
// no record for that day.
type DayRecords struct {
	Food  MealEntries
	Water *int
}

// DayPoint is one point of the trend chart.
type DayPoint struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Water    int     `json:"water"`
}

// DayFetcher returns the records stored for a date key.
type DayFetcher func(date string) (DayRecords, error)

// Rollup aggregates each day independently and returns the points in the
// order of days. The first fetch error aborts the rollup.
func Rollup(days []string, fetch DayFetcher) ([]DayPoint, error) {
	out := make([]DayPoint, 0, len(days))
	for _, d := range days {
		rec, err := fetch(d)
		if err != nil {
			return nil, fmt.Errorf("rollup day %s: %w", d, err)
		}
		t := AggregateDay(rec.Food)
		p := DayPoint{
			Date:     d,
			Label:    weekdayLabel(d),
			Calories: t.Calories,
			Protein:  t.Protein,
			Carbs:    t.Carbs,
			Fat:      t.Fat,
		}
		if rec.Water != nil {
			p.Water = *rec.Water
		}
		out = append(out, p)
	}
	return out, nil
}

// TrailingDays lists n date keys, oldest first, ending with end's date.
func TrailingDays(end time.Time, n int) []string {
	if n <= 0 {
		n = DefaultRollupDays
	}
	y, m, d := end.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, end.Location())
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, day.AddDate(0, 0, -i).Format(DateLayout))
	}
	return out
}

func weekdayLabel(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}
