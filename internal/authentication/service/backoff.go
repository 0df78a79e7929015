package service

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	auditAppendAttempts = 3
	auditAppendStep     = 50 * time.Millisecond
)

// linearBackOff waits step, 2*step, 3*step, ... between attempts.
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *linearBackOff) Reset() {
	b.n = 0
}

// defaultAppendBackOff allows auditAppendAttempts tries in total.
func defaultAppendBackOff() backoff.BackOff {
	return backoff.WithMaxRetries(&linearBackOff{step: auditAppendStep}, auditAppendAttempts-1)
}
