package browser

import (
	"errors"
	"fmt"
)

// ErrTimeout marks a page call that ran out of its bounded wait.
var ErrTimeout = errors.New("page timeout")

// Reason says why a page-facing operation degraded.
type Reason string

const (
	ReasonTimeout Reason = "timeout"
	ReasonNoMatch Reason = "no-match"
	ReasonEmpty   Reason = "empty"
)

// Degraded is returned by page-facing operations that gave up gracefully.
// It is never fatal; callers report it and move on.
type Degraded struct {
	Op     string
	Reason Reason
	Err    error
}

func (d *Degraded) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s: %v", d.Op, d.Reason, d.Err)
	}
	return fmt.Sprintf("%s: %s", d.Op, d.Reason)
}

func (d *Degraded) Unwrap() error { return d.Err }

// Degrade builds a Degraded error.
func Degrade(op string, reason Reason, err error) error {
	return &Degraded{Op: op, Reason: reason, Err: err}
}

// Classify turns a raw page error into a Degraded one, timeout or no-match.
func Classify(op string, err error) error {
	if errors.Is(err, ErrTimeout) {
		return Degrade(op, ReasonTimeout, err)
	}
	return Degrade(op, ReasonNoMatch, err)
}

// ReasonOf reports the degradation reason carried by err, if any.
func ReasonOf(err error) (Reason, bool) {
	var d *Degraded
	if errors.As(err, &d) {
		return d.Reason, true
	}
	return "", false
}
