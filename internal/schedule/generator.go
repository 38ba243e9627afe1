// Package schedule generates the bookable slot grid for a business day.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Generator produces HH:MM slot starts between Open (inclusive) and Close
// (exclusive) every Step minutes. The grid is the same for every date.
type Generator struct {
	open  int // minutes since midnight
	close int
	step  int
	grid  []string
	index map[string]struct{}
}

var (
	ErrInvalidHours = errors.New("schedule: open must be before close")
	ErrInvalidStep  = errors.New("schedule: slot step must be positive")
)

// New builds a Generator from "HH:MM" bounds and a step in minutes.
func New(open, close string, stepMinutes int) (*Generator, error) {
	o, err := ParseClock(open)
	if err != nil {
		return nil, fmt.Errorf("schedule: open: %w", err)
	}
	c, err := ParseClock(close)
	if err != nil {
		return nil, fmt.Errorf("schedule: close: %w", err)
	}
	if o >= c {
		return nil, ErrInvalidHours
	}
	if stepMinutes <= 0 {
		return nil, ErrInvalidStep
	}

	g := &Generator{open: o, close: c, step: stepMinutes, index: make(map[string]struct{})}
	for m := o; m < c; m += stepMinutes {
		s := FormatClock(m)
		g.grid = append(g.grid, s)
		g.index[s] = struct{}{}
	}
	return g, nil
}

// MustNew is New that panics on error.
func MustNew(open, close string, stepMinutes int) *Generator {
	g, err := New(open, close, stepMinutes)
	if err != nil {
		panic(err)
	}
	return g
}

// Generate returns the ordered slot starts for date. The result is a fresh
// slice the caller may modify.
func (g *Generator) Generate(_ time.Time) []string {
	out := make([]string, len(g.grid))
	copy(out, g.grid)
	return out
}

// Contains reports whether hhmm is on the grid.
func (g *Generator) Contains(hhmm string) bool {
	_, ok := g.index[hhmm]
	return ok
}

// Len is the number of slots per day.
func (g *Generator) Len() int { return len(g.grid) }

// ParseClock converts a strict "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
