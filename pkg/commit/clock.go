package commit

import "time"

// Clock supplies the timestamp a new Commit is stamped with, and the
// wall-clock comparison MergeEngine's default conflict policy uses to
// pick a last-writer-wins winner (spec §4.8, "isAfter consistent with
// call order"). Injected everywhere a Commit is created or compared so
// tests can seed deterministic, strictly-increasing timestamps (spec's
// "literal, seeded via a fixed clock" end-to-end scenarios).
type Clock interface {
	// Now returns the current time. Must never block.
	Now() time.Time

	// IsAfter reports whether a is strictly later than b.
	IsAfter(a, b time.Time) bool
}

// SystemClock is the default Clock, backed by the OS wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// IsAfter implements Clock.
func (SystemClock) IsAfter(a, b time.Time) bool { return a.After(b) }

// SequentialClock is a deterministic test Clock: each Now() call returns
// a timestamp strictly after the previous one, starting at Start (or the
// Unix epoch if Start is zero). Grounded on spec §8's scenarios, which
// are "seeded via a fixed clock" to make merge-conflict outcomes
// reproducible.
type SequentialClock struct {
	Start time.Time
	Step  time.Duration

	calls int
}

// Now implements Clock.
func (c *SequentialClock) Now() time.Time {
	start := c.Start
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}

	step := c.Step
	if step <= 0 {
		step = time.Second
	}

	t := start.Add(time.Duration(c.calls) * step)
	c.calls++

	return t
}

// IsAfter implements Clock.
func (c *SequentialClock) IsAfter(a, b time.Time) bool { return a.After(b) }
