package retry

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// Condition classifies a failed attempt for retry decisions.
type Condition int

const (
	// ConditionOther covers errors with no known classification.
	ConditionOther Condition = iota
	// ConditionNetworkError indicates a connection-level failure.
	ConditionNetworkError
	// ConditionTimeout indicates a request or connection timeout.
	ConditionTimeout
	// ConditionServerError indicates a 5xx-class upstream failure.
	ConditionServerError
	// ConditionRateLimit indicates the upstream throttled the request.
	ConditionRateLimit
)

// String returns the condition name.
func (c Condition) String() string {
	switch c {
	case ConditionNetworkError:
		return "network_error"
	case ConditionTimeout:
		return "timeout"
	case ConditionServerError:
		return "server_error"
	case ConditionRateLimit:
		return "rate_limit"
	default:
		return "other"
	}
}

// Classifiable is implemented by errors that know their retry condition.
type Classifiable interface {
	RetryCondition() Condition
}

// RetryAfterHinter is implemented by errors carrying an upstream
// retry-after hint (typically rate-limit responses).
type RetryAfterHinter interface {
	RetryAfterHint() (time.Duration, bool)
}

// ConditionOf resolves the retry condition of an error chain.
// Unclassifiable errors map to ConditionOther.
func ConditionOf(err error) Condition {
	var c Classifiable
	if errors.As(err, &c) {
		return c.RetryCondition()
	}
	return ConditionOther
}

// retryAfterOf extracts a retry-after hint from an error chain, if any.
func retryAfterOf(err error) (time.Duration, bool) {
	var h RetryAfterHinter
	if errors.As(err, &h) {
		return h.RetryAfterHint()
	}
	return 0, false
}

// State captures the progress of one call's retry loop. A fresh State is
// built for every failed attempt and discarded when the loop ends.
type State struct {
	// Attempt is the 1-based number of the attempt that just failed.
	Attempt int
	// TotalAttempts is the attempt ceiling for the call.
	TotalAttempts int
	// LastErr is the error returned by the failed attempt.
	LastErr error
	// Elapsed is the time spent since the first attempt started.
	Elapsed time.Duration
	// LastBackoff is the delay slept before this attempt (zero for the first).
	LastBackoff time.Duration
}

// Policy decides whether a failed attempt is retried and how long to wait
// before the next one. Implementations must be immutable after construction
// except for explicitly documented internal state.
type Policy interface {
	// ShouldRetry reports whether the attempt described by s may be retried.
	ShouldRetry(s State, err error) bool
	// Delay returns the backoff before the next attempt, jitter included.
	Delay(s State) time.Duration
	// MaxAttempts returns the attempt ceiling (including the first attempt).
	MaxAttempts() int
}

// Config holds the shared policy knobs. A Config is copied into the policy
// at construction and never mutated afterwards.
type Config struct {
	// MaxAttempts is the maximum number of attempts including the first.
	MaxAttempts int
	// BaseDelay is the starting backoff.
	BaseDelay time.Duration
	// MaxDelay caps every computed backoff.
	MaxDelay time.Duration
	// Multiplier scales the exponential backoff (exponential policies).
	Multiplier float64
	// Increment grows the backoff per attempt (linear policy).
	Increment time.Duration
	// Jitter enables the ±20% random perturbation of computed delays.
	Jitter bool
	// Conditions is the set of conditions eligible for retry
	// (exponential policy only; nil selects the default set).
	Conditions map[Condition]bool
}

// DefaultConfig returns the production defaults: three attempts,
// exponential doubling from 500ms capped at 30s, jitter on, retrying
// network, timeout, and server-error conditions.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
		Jitter:      true,
		Conditions:  DefaultConditions(),
	}
}

// DefaultConditions returns the conditions retried by default.
func DefaultConditions() map[Condition]bool {
	return map[Condition]bool{
		ConditionNetworkError: true,
		ConditionTimeout:      true,
		ConditionServerError:  true,
	}
}

// applyDefaults fills zero-valued knobs so hand-built configs behave.
func (c Config) applyDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.Conditions == nil {
		c.Conditions = DefaultConditions()
	}
	return c
}

// jitterFraction is the spread applied around a computed delay.
const jitterFraction = 0.2

// applyJitter perturbs d by ±20% uniformly when enabled.
func applyJitter(d time.Duration, enabled bool) time.Duration {
	if !enabled || d <= 0 {
		return d
	}
	spread := (rand.Float64()*2 - 1) * jitterFraction * float64(d)
	return time.Duration(float64(d) + spread)
}

// exponentialDelay computes min(base*mult^(attempt-1), max) without jitter.
func exponentialDelay(cfg Config, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(cfg.BaseDelay) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if d > float64(cfg.MaxDelay) {
		d = float64(cfg.MaxDelay)
	}
	return time.Duration(d)
}

// Exponential retries the configured condition set with exponentially
// growing backoff.
type Exponential struct {
	cfg Config
}

// NewExponential builds an exponential policy from cfg.
func NewExponential(cfg Config) *Exponential {
	return &Exponential{cfg: cfg.applyDefaults()}
}

// MaxAttempts implements Policy.
func (p *Exponential) MaxAttempts() int { return p.cfg.MaxAttempts }

// ShouldRetry retries only while attempts remain and the error's condition
// is in the configured set.
func (p *Exponential) ShouldRetry(s State, err error) bool {
	if s.Attempt >= p.cfg.MaxAttempts {
		return false
	}
	return p.cfg.Conditions[ConditionOf(err)]
}

// Delay implements Policy.
func (p *Exponential) Delay(s State) time.Duration {
	return applyJitter(exponentialDelay(p.cfg, s.Attempt), p.cfg.Jitter)
}

// Linear retries every error with linearly growing backoff. Its
// deterministic schedule makes it the policy of choice in tests.
type Linear struct {
	cfg Config
}

// NewLinear builds a linear policy from cfg.
func NewLinear(cfg Config) *Linear {
	cfg = cfg.applyDefaults()
	if cfg.Increment <= 0 {
		cfg.Increment = cfg.BaseDelay
	}
	return &Linear{cfg: cfg}
}

// MaxAttempts implements Policy.
func (p *Linear) MaxAttempts() int { return p.cfg.MaxAttempts }

// ShouldRetry retries unconditionally until the attempt ceiling.
func (p *Linear) ShouldRetry(s State, err error) bool {
	return s.Attempt < p.cfg.MaxAttempts
}

// Delay implements Policy.
func (p *Linear) Delay(s State) time.Duration {
	attempt := s.Attempt
	if attempt < 1 {
		attempt = 1
	}
	d := p.cfg.BaseDelay + p.cfg.Increment*time.Duration(attempt-1)
	if d > p.cfg.MaxDelay {
		d = p.cfg.MaxDelay
	}
	return applyJitter(d, p.cfg.Jitter)
}
