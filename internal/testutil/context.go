// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"
)

// TestTimeout bounds contexts handed out by Context.
const TestTimeout = 10 * time.Second

// deadliner is implemented by *testing.T but not by testing.TB.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context cancelled at test cleanup, after TestTimeout, or
// shortly before the go test deadline, whichever comes first. Benchmarks and
// other testing.TB values without a deadline get TestTimeout alone.
func Context(t testing.TB) context.Context {
	t.Helper()
	deadline := time.Now().Add(TestTimeout)
	if d, ok := t.(deadliner); ok {
		if testDeadline, set := d.Deadline(); set {
			if early := testDeadline.Add(-time.Second); early.Before(deadline) {
				deadline = early
			}
		}
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)
	return ctx
}
