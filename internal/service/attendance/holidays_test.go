package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHolidays_OneOff(t *testing.T) {
	inside := attendance.NewDate(2025, time.February, 12)
	outside := attendance.NewDate(2025, time.March, 3)

	set, err := ExpandHolidays([]attendance.Holiday{
		{ID: "h1", Date: inside, Name: "Founders Day"},
		{ID: "h2", Date: outside, Name: "Spring Break"},
	}, february)

	require.NoError(t, err)
	assert.Len(t, set, 1)
	assert.Equal(t, "Founders Day", set[inside].Name)
}

func TestExpandHolidays_Yearly(t *testing.T) {
	set, err := ExpandHolidays([]attendance.Holiday{
		{ID: "h1", Date: attendance.NewDate(2020, time.January, 26), Name: "Republic Day", RecurrenceRule: "FREQ=YEARLY"},
	}, attendance.MonthRange(2025, time.January))

	require.NoError(t, err)
	assert.Len(t, set, 1)
	assert.True(t, set.Contains(attendance.NewDate(2025, time.January, 26)))
}

func TestExpandHolidays_WeeklyInsideRange(t *testing.T) {
	set, err := ExpandHolidays([]attendance.Holiday{
		{ID: "h1", Date: attendance.NewDate(2025, time.February, 7), Name: "Half Friday", RecurrenceRule: "FREQ=WEEKLY;BYDAY=FR"},
	}, february)

	require.NoError(t, err)
	assert.Len(t, set, 4)
	for _, day := range []int{7, 14, 21, 28} {
		assert.True(t, set.Contains(attendance.NewDate(2025, time.February, day)), "day %d", day)
	}
}

func TestExpandHolidays_InvalidRuleSkipped(t *testing.T) {
	valid := attendance.NewDate(2025, time.February, 12)

	set, err := ExpandHolidays([]attendance.Holiday{
		{ID: "bad", Date: attendance.NewDate(2025, time.February, 3), RecurrenceRule: "FREQ=SOMETIMES"},
		{ID: "good", Date: valid},
	}, february)

	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrInvalidRule)
	assert.True(t, set.Contains(valid))
	assert.Len(t, set, 1)
}
