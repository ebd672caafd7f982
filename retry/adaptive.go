package retry

import (
	"sync"
	"time"
)

const (
	// outcomeWindow bounds the adaptive policy's outcome history.
	outcomeWindow = 10
	// maxRateLimitRetries caps retries for throttled attempts.
	maxRateLimitRetries = 2
	// rateLimitFactor stretches the backoff after a throttle response.
	rateLimitFactor = 5
)

// Outcome records one failed attempt observed by the adaptive policy.
type Outcome struct {
	Condition Condition
	At        time.Time
}

// Adaptive retries network, timeout, and server errors up to the attempt
// ceiling; rate-limit errors are retried at most twice with a stretched
// delay honoring the upstream retry-after hint; everything else falls back
// to exponential backoff.
//
// The policy keeps a bounded ring of recent outcomes for future heuristics.
// The ring is mutex-guarded, so one policy value may be shared across
// concurrent calls.
type Adaptive struct {
	cfg Config

	mu       sync.Mutex
	outcomes [outcomeWindow]Outcome
	next     int
	filled   int
}

// NewAdaptive builds an adaptive policy from cfg.
func NewAdaptive(cfg Config) *Adaptive {
	return &Adaptive{cfg: cfg.applyDefaults()}
}

// MaxAttempts implements Policy.
func (p *Adaptive) MaxAttempts() int { return p.cfg.MaxAttempts }

// ShouldRetry implements Policy. Every failed attempt is recorded in the
// outcome ring regardless of the decision.
func (p *Adaptive) ShouldRetry(s State, err error) bool {
	cond := ConditionOf(err)
	p.record(cond)

	if s.Attempt >= p.cfg.MaxAttempts {
		return false
	}
	if cond == ConditionRateLimit {
		return s.Attempt <= maxRateLimitRetries
	}
	return true
}

// Delay implements Policy. Rate-limited attempts wait
// max(retryAfterHint, baseDelay) * 5; without a hint the base delay alone
// is stretched, acting as a conservative floor.
func (p *Adaptive) Delay(s State) time.Duration {
	if ConditionOf(s.LastErr) == ConditionRateLimit {
		floor := p.cfg.BaseDelay
		if hint, ok := retryAfterOf(s.LastErr); ok && hint > floor {
			floor = hint
		}
		d := floor * rateLimitFactor
		if d > p.cfg.MaxDelay {
			d = p.cfg.MaxDelay
		}
		return applyJitter(d, p.cfg.Jitter)
	}
	return applyJitter(exponentialDelay(p.cfg, s.Attempt), p.cfg.Jitter)
}

// Outcomes returns a copy of the recorded outcome window, oldest first.
// The decision logic does not read it yet; it exists as a hook point.
func (p *Adaptive) Outcomes() []Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Outcome, 0, p.filled)
	start := p.next - p.filled
	for i := 0; i < p.filled; i++ {
		idx := (start + i + outcomeWindow) % outcomeWindow
		out = append(out, p.outcomes[idx])
	}
	return out
}

func (p *Adaptive) record(cond Condition) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.outcomes[p.next] = Outcome{Condition: cond, At: time.Now()}
	p.next = (p.next + 1) % outcomeWindow
	if p.filled < outcomeWindow {
		p.filled++
	}
}
