// Package circuitbreaker guards calls to the database, the shared page cache
// and the event bus with github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"yatube/internal/observability/metrics"
)

// Config describes when a breaker trips and how it recovers.
type Config struct {
	Name string

	// HalfOpenCalls is how many calls pass while the breaker is half-open.
	HalfOpenCalls uint32

	// Window resets the closed-state counters. Zero keeps them until a trip.
	Window time.Duration

	// Cooldown is how long the breaker stays open before letting trial calls through.
	Cooldown time.Duration

	// TripRatio is the failure share that opens the breaker, once
	// MinSamples calls were counted in the current window.
	TripRatio  float64
	MinSamples uint32

	// Ignore marks errors that the caller caused, like a cancelled request.
	// They are returned unchanged but do not count as failures.
	Ignore func(error) bool
}

// Default is a conservative setting for an arbitrary dependency.
func Default(name string) Config {
	return Config{
		Name:           name,
		HalfOpenCalls: 3,
		Window:         30 * time.Second,
		Cooldown:       time.Minute,
		TripRatio:      0.6,
		MinSamples:     5,
		Ignore:         IsCallerError,
	}
}

// Database opens only when every counted call failed, so a single slow
// query cannot take the pages down.
func Database() Config {
	return Config{
		Name:           "database",
		HalfOpenCalls: 3,
		Window:         time.Minute,
		Cooldown:       30 * time.Second,
		TripRatio:      1.0,
		MinSamples:     5,
		Ignore:         IsCallerError,
	}
}

// PageCache trips early and recovers quickly. Callers fall back to rendering.
func PageCache() Config {
	return Config{
		Name:           "page_cache",
		HalfOpenCalls: 1,
		Window:         30 * time.Second,
		Cooldown:       10 * time.Second,
		TripRatio:      0.5,
		MinSamples:     3,
		Ignore:         IsCallerError,
	}
}

// EventBus guards domain event publishing.
func EventBus() Config {
	return Config{
		Name:           "event_bus",
		HalfOpenCalls: 3,
		Window:         time.Minute,
		Cooldown:       30 * time.Second,
		TripRatio:      0.6,
		MinSamples:     5,
		Ignore:         IsCallerError,
	}
}

// IsCallerError reports cancellations and deadlines of the caller's context.
func IsCallerError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsRejected reports whether err came from the breaker itself rather than
// from the guarded call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Breaker is a named gobreaker.CircuitBreaker whose state is exported as a gauge.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// New builds a breaker from cfg.
func New(cfg Config) *Breaker {
	ignore := cfg.Ignore
	if ignore == nil {
		ignore = func(error) bool { return false }
	}
	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenCalls,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinSamples {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.TripRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || ignore(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &Breaker{cb: gobreaker.NewCircuitBreaker(st), name: cfg.Name}
}

// Do runs fn unless the breaker is open.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// Call runs fn through b and returns its value.
func Call[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var out T
	err := b.Do(func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func (b *Breaker) IsOpen() bool { return b.cb.State() == gobreaker.StateOpen }
