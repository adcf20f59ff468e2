package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"
)

const defaultBaseURL = "https://api-harilibur.vercel.app/api"

// Holiday is a single national holiday entry.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// Calendar answers whether a given date is an Indonesian national holiday.
// Lookups only hit the in-memory cache; Refresh fills it from the public
// holiday API per year.
type Calendar struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	years map[int]map[string]string // year -> date -> holiday name
}

func NewCalendar(baseURL string) *Calendar {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Calendar{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		years:   make(map[int]map[string]string),
	}
}

// apiHoliday matches the upstream response shape.
type apiHoliday struct {
	Date              string `json:"holiday_date"`
	Name              string `json:"holiday_name"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

// Refresh loads the national holidays for a year into the cache,
// replacing any previous entries for that year.
func (c *Calendar) Refresh(ctx context.Context, year int) error {
	url := fmt.Sprintf("%s?year=%d", c.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch holidays for %d: unexpected status %d", year, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var raw []apiHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("decode holidays for %d: %w", year, err)
	}

	entries := make(map[string]string)
	for _, h := range raw {
		if !h.IsNationalHoliday {
			continue
		}
		// Upstream dates are not zero-padded ("2026-1-1").
		t, err := time.Parse("2006-1-2", h.Date)
		if err != nil {
			continue
		}
		entries[t.Format("2006-01-02")] = h.Name
	}

	c.mu.Lock()
	c.years[year] = entries
	c.mu.Unlock()

	return nil
}

// IsHoliday reports whether the date is a cached national holiday.
// Unknown years are treated as having no holidays.
func (c *Calendar) IsHoliday(date time.Time) (bool, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, ok := c.years[date.Year()]
	if !ok {
		return false, ""
	}
	name, ok := entries[date.Format("2006-01-02")]
	return ok, name
}

// ListYear returns the cached holidays of a year sorted by date.
func (c *Calendar) ListYear(year int) []Holiday {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.years[year]
	holidays := make([]Holiday, 0, len(entries))
	for date, name := range entries {
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date < holidays[j].Date })
	return holidays
}

// HasYear reports whether a year has been loaded into the cache.
func (c *Calendar) HasYear(year int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.years[year]
	return ok
}

// Seed injects holiday entries directly, bypassing the API. Used in tests.
func (c *Calendar) Seed(year int, entries map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.years[year] = entries
}
