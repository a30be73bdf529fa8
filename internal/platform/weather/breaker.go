package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo_expert/internal/common"

	"github.com/sony/gobreaker"
)

// BreakerProvider stops calling the feed for a while once it keeps failing.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerProvider(next Provider) *BreakerProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})
	return &BreakerProvider{next: next, cb: cb}
}

func (p *BreakerProvider) TodayWeather(ctx context.Context) (string, error) {
	res, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.TodayWeather(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("weather provider unavailable: %v: %w", err, common.ErrUpstream)
		}
		return "", err
	}
	return res.(string), nil
}

func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
