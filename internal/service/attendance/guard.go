package attendance

import (
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
)

// PunchVerdict is an accepted punch decision.
type PunchVerdict struct {
	// Next is the direction the new punch must be recorded with.
	Next attendance.Direction

	// Warning marks a candidate behind the last punch but within the
	// backward-skew threshold.
	Warning         bool
	ClockBehind     time.Duration
	WithinTolerance bool
}

// ValidateNewPunch checks a candidate timestamp against the latest committed
// punch. last must be the true latest punch; the caller serializes inserts.
func (e *Engine) ValidateNewPunch(last *attendance.PunchEvent, candidate time.Time) (PunchVerdict, error) {
	if last == nil {
		return PunchVerdict{Next: attendance.DirectionIn}, nil
	}

	verdict := PunchVerdict{Next: NextDirection(last.Direction)}
	diff := candidate.Sub(last.Timestamp)

	switch {
	case diff < -e.policy.MaxBackwardSkew:
		return PunchVerdict{}, &attendance.ClockSkewError{
			Last:      last.Timestamp,
			Candidate: candidate,
			Behind:    -diff,
		}
	case diff >= 0 && diff < e.policy.MinPunchGap:
		return PunchVerdict{}, &attendance.DuplicatePunchError{
			LastDirection: last.Direction,
			Last:          last.Timestamp,
			Candidate:     candidate,
			Gap:           diff,
		}
	case diff < 0:
		verdict.Warning = true
		verdict.ClockBehind = -diff
		verdict.WithinTolerance = -diff <= e.policy.SkewTolerance
	}

	return verdict, nil
}

// CheckPunchTime rejects a candidate that lies further ahead of now than the
// forward-skew threshold. A punch from the future would otherwise become the
// latest punch and block every real one behind it.
func (e *Engine) CheckPunchTime(candidate, now time.Time) error {
	ahead := candidate.Sub(now)
	if ahead > e.policy.MaxForwardSkew {
		return &attendance.FuturePunchError{
			Candidate: candidate,
			Now:       now,
			Ahead:     ahead,
		}
	}
	return nil
}
