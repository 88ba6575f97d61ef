// Package clock abstracts wall-clock reads so timestamped output can be
// pinned in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f).UTC() }

// Func adapts a plain function.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
