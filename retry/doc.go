// Package retry drives the attempt loop for upstream calls: a Policy
// decides whether a failed attempt is retried and how long to back off,
// and Do runs the loop with context-aware waits.
//
// Three policies are provided:
//
//   - Exponential: min(base*mult^(attempt-1), max), retrying only the
//     configured condition set.
//   - Linear: min(base+inc*(attempt-1), max), retrying everything —
//     deterministic, intended for tests.
//   - Adaptive: condition-sensitive backoff that stretches rate-limit
//     waits and honors upstream retry-after hints.
//
// Computed delays receive a uniform ±20% jitter unless disabled, so a
// fleet of clients recovering from the same outage does not retry in
// lockstep.
//
// Errors advertise their condition through the Classifiable interface;
// anything else counts as ConditionOther.
package retry
