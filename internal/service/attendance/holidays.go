package attendance

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/teambition/rrule-go"
)

// ExpandHolidays turns holiday rows into the set of dates they cover inside
// rng. Rows with a recurrence rule repeat from their own date. Rows whose
// rule cannot be parsed are skipped and reported in the joined error; the
// returned set is still usable.
func ExpandHolidays(holidays []attendance.Holiday, rng attendance.DateRange) (attendance.HolidaySet, error) {
	set := make(attendance.HolidaySet)
	var errs []error

	rangeStart, _ := rng.Start.Bounds(time.UTC)
	rangeEnd, _ := rng.End.Bounds(time.UTC)

	for _, h := range holidays {
		if h.RecurrenceRule == "" {
			if rng.Contains(h.Date) {
				set[h.Date] = h
			}
			continue
		}

		rOption, err := rrule.StrToROption(h.RecurrenceRule)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: holiday %s: %v", attendance.ErrInvalidRule, h.ID, err))
			continue
		}
		rOption.Dtstart, _ = h.Date.Bounds(time.UTC)

		rr, err := rrule.NewRRule(*rOption)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: holiday %s: %v", attendance.ErrInvalidRule, h.ID, err))
			continue
		}

		ruleSet := rrule.Set{}
		ruleSet.RRule(rr)
		for _, instance := range ruleSet.Between(rangeStart, rangeEnd, true) {
			d := attendance.DateOf(instance, time.UTC)
			if _, exists := set[d]; !exists {
				set[d] = h
			}
		}
	}

	return set, errors.Join(errs...)
}
