// Package weather fetches the day's weather snapshot stamped onto new todos.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"todo_expert/internal/common"
)

// Provider returns today's weather as a short description.
type Provider interface {
	TodayWeather(ctx context.Context) (string, error)
}

// dateLayout matches the "MM-dd" keys the upstream feed uses.
const dateLayout = "01-02"

type forecast struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
}

// Client reads the whole-year weather feed and picks today's entry.
type Client struct {
	httpClient *http.Client
	url        string
	now        func() time.Time
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		now:        time.Now,
	}
}

func (c *Client) TodayWeather(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch weather: %v: %w", err, common.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch weather: unexpected status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	var forecasts []forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecasts); err != nil {
		return "", fmt.Errorf("decode weather: %v: %w", err, common.ErrUpstream)
	}
	if len(forecasts) == 0 {
		return "", fmt.Errorf("weather feed is empty: %w", common.ErrUpstream)
	}

	today := c.now().Format(dateLayout)
	for _, f := range forecasts {
		if f.Date == today {
			return f.Weather, nil
		}
	}
	return "", fmt.Errorf("no weather entry for %s: %w", today, common.ErrUpstream)
}
