package attendance

import (
	"fmt"
	"time"
)

// Precedence decides which of the weekend and future checks wins when a
// non-holiday date is both.
type Precedence int

const (
	// PrecedenceHolidayWeekendFuture reports a future Saturday as Weekend.
	PrecedenceHolidayWeekendFuture Precedence = iota
	// PrecedenceHolidayFutureWeekend reports a future Saturday as Upcoming.
	PrecedenceHolidayFutureWeekend
)

func (p Precedence) String() string {
	if p == PrecedenceHolidayFutureWeekend {
		return "holiday-future-weekend"
	}
	return "holiday-weekend-future"
}

func ParsePrecedence(s string) (Precedence, error) {
	switch s {
	case "holiday-weekend-future":
		return PrecedenceHolidayWeekendFuture, nil
	case "holiday-future-weekend":
		return PrecedenceHolidayFutureWeekend, nil
	}
	return 0, fmt.Errorf("unknown precedence %q", s)
}

// Policy holds every tunable threshold of the engine. The zero value is not
// useful; start from DefaultPolicy.
type Policy struct {
	// Location anchors calendar days to instants.
	Location *time.Location

	LateGrace        time.Duration
	EarlyGrace       time.Duration
	HalfDayThreshold time.Duration
	DefaultBreak     time.Duration
	OvertimeGrace    time.Duration

	MinPunchGap     time.Duration
	MaxBackwardSkew time.Duration
	SkewTolerance   time.Duration
	// MaxForwardSkew bounds how far a device clock may run ahead of the
	// server clock.
	MaxForwardSkew time.Duration

	Precedence         Precedence
	CalendarPrecedence Precedence
}

func DefaultPolicy() Policy {
	return Policy{
		Location:           time.UTC,
		LateGrace:          15 * time.Minute,
		EarlyGrace:         10 * time.Minute,
		HalfDayThreshold:   240 * time.Minute,
		DefaultBreak:       60 * time.Minute,
		OvertimeGrace:      0,
		MinPunchGap:        5 * time.Second,
		MaxBackwardSkew:    21600 * time.Second,
		SkewTolerance:      1600 * time.Second,
		MaxForwardSkew:     5 * time.Minute,
		Precedence:         PrecedenceHolidayWeekendFuture,
		CalendarPrecedence: PrecedenceHolidayFutureWeekend,
	}
}

// Engine evaluates attendance rules under a fixed Policy. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) Location() *time.Location {
	return e.policy.Location
}
