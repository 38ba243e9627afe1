// Package clock supplies "now" in the salon's business time zone. Every
// date and "is this slot in the past" decision goes through a Clock so tests
// can pin time.
package clock

import (
	"sync"
	"time"
)

// DateLayout and TimeLayout are the wire formats for dates and slot starts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock reports the current instant in a fixed location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// System is a Clock backed by time.Now.
type System struct {
	loc *time.Location
}

// NewSystem returns a wall clock for loc (UTC when nil).
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.UTC
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time            { return time.Now().In(s.loc) }
func (s *System) Location() *time.Location { return s.loc }

// Fixed is a settable Clock for tests.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed returns a Clock frozen at t.
func NewFixed(t time.Time) *Fixed { return &Fixed{now: t} }

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *Fixed) Location() *time.Location {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now.Location()
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Today returns midnight of the clock's current day in its location.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }
