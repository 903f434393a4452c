// Package resilience wraps critical external calls with simulated production
// conditions (variable latency, randomized transient failures) and bounded
// exponential-backoff retry.
package resilience

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

// Config holds the resilience thresholds. All values are injectable so tests
// can assert retry counts and backoff schedules deterministically.
type Config struct {
	LatencyMin        time.Duration `envconfig:"RESILIENCE_LATENCY_MIN" default:"300ms"`
	LatencyMax        time.Duration `envconfig:"RESILIENCE_LATENCY_MAX" default:"1200ms"`
	ErrorRate         float64       `envconfig:"RESILIENCE_ERROR_RATE" default:"0.15"`
	CriticalEndpoints []string      `envconfig:"RESILIENCE_CRITICAL_ENDPOINTS" default:"/book,/cancel,booking,cancellation"`
	MaxAttempts       int           `envconfig:"RESILIENCE_MAX_ATTEMPTS" default:"3"`
	BaseDelay         time.Duration `envconfig:"RESILIENCE_BASE_DELAY" default:"1s"`
	MaxDelay          time.Duration `envconfig:"RESILIENCE_MAX_DELAY" default:"5s"`
	ExponentialBase   float64       `envconfig:"RESILIENCE_EXPONENTIAL_BASE" default:"2"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		LatencyMin:        300 * time.Millisecond,
		LatencyMax:        1200 * time.Millisecond,
		ErrorRate:         0.15,
		CriticalEndpoints: []string{"/book", "/cancel", "booking", "cancellation"},
		MaxAttempts:       3,
		BaseDelay:         time.Second,
		MaxDelay:          5 * time.Second,
		ExponentialBase:   2,
	}
}

// transientMessages are the synthetic failure modes injected on critical
// endpoints. Indistinguishable from real failures to the caller.
var transientMessages = []string{
	"Network timeout occurred",
	"Service temporarily unavailable",
	"Internal server error",
	"Rate limit exceeded",
	"Database connection failed",
}

// ExhaustedError is returned when every retry attempt has failed. It wraps
// the last attempt's error.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Last      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: all %d attempts failed: %v", e.Operation, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Executor applies latency/failure injection and retry to operations. It is
// purely a control wrapper: no side effects beyond the wrapped operation.
type Executor struct {
	cfg   Config
	mu    sync.Mutex
	rng   *rand.Rand
	sleep func(time.Duration)
}

// Option customizes an Executor.
type Option func(*Executor)

// WithRand injects a seedable random source for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Executor) { e.rng = rng }
}

// WithSleep replaces the sleep function, letting tests record the backoff
// schedule instead of waiting it out.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Executor) { e.sleep = sleep }
}

// New builds an Executor with the given config.
func New(cfg Config, opts ...Option) *Executor {
	e := &Executor{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the executor's configuration.
func (e *Executor) Config() Config {
	return e.cfg
}

func (e *Executor) critical(operationName string) bool {
	lower := strings.ToLower(operationName)
	for _, endpoint := range e.cfg.CriticalEndpoints {
		if strings.Contains(lower, strings.ToLower(endpoint)) {
			return true
		}
	}
	return false
}

func (e *Executor) float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

func (e *Executor) latency() time.Duration {
	span := e.cfg.LatencyMax - e.cfg.LatencyMin
	if span <= 0 {
		return e.cfg.LatencyMin
	}
	return e.cfg.LatencyMin + time.Duration(e.float64()*float64(span))
}

// inject applies simulated latency and, with configured probability,
// synthesizes a transient failure instead of invoking op. Non-critical
// operation names pass straight through.
func inject[T any](e *Executor, ctx context.Context, operationName string, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if !e.critical(operationName) {
		return op(ctx)
	}

	delay := e.latency()
	logx.Debug().Str("operation", operationName).Dur("latency", delay).Msg("Simulating latency")
	e.sleep(delay)

	if roll := e.float64(); roll < e.cfg.ErrorRate {
		msg := transientMessages[int(e.float64()*float64(len(transientMessages)))%len(transientMessages)]
		logx.Warn().Str("operation", operationName).Str("failure", msg).Msg("Injecting transient failure")
		return zero, fmt.Errorf("Simulated API Error: %s", msg)
	}

	return op(ctx)
}

// Do executes op under the executor's retry policy, with latency/failure
// injection applied when operationName matches a critical endpoint. After the
// final failed attempt the last error is returned wrapped in ExhaustedError.
func Do[T any](ctx context.Context, e *Executor, operationName string, op func(context.Context) (T, error)) (T, error) {
	var zero T

	maxAttempts := e.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := inject(e, ctx, operationName, op)
		if err == nil {
			if attempt > 1 {
				logx.Debug().Str("operation", operationName).Int("attempt", attempt).Msg("Operation succeeded after retry")
			}
			return result, nil
		}
		lastErr = err
		logx.Warn().Str("operation", operationName).Int("attempt", attempt).Int("max_attempts", maxAttempts).Err(err).Msg("Attempt failed")

		if attempt == maxAttempts {
			break
		}
		e.sleep(e.backoff(attempt))
	}

	return zero, &ExhaustedError{Operation: operationName, Attempts: maxAttempts, Last: lastErr}
}

// backoff computes min(baseDelay * exponentialBase^(attempt-1), maxDelay).
func (e *Executor) backoff(attempt int) time.Duration {
	base := e.cfg.ExponentialBase
	if base <= 0 {
		base = 2
	}
	delay := time.Duration(float64(e.cfg.BaseDelay) * math.Pow(base, float64(attempt-1)))
	if e.cfg.MaxDelay > 0 && delay > e.cfg.MaxDelay {
		delay = e.cfg.MaxDelay
	}
	return delay
}
