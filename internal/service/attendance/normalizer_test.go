package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_OrdersAndPicksExtremes(t *testing.T) {
	d := attendance.NewDate(2025, time.June, 10)
	events := []attendance.PunchEvent{
		punch(at(d, 17, 5), attendance.DirectionOut),
		punch(at(d, 9, 10), attendance.DirectionIn),
		punch(at(d, 13, 0), attendance.DirectionIn),
		punch(at(d, 12, 0), attendance.DirectionOut),
		punch(at(d, 9, 0), attendance.DirectionIn),
	}
	original := make([]attendance.PunchEvent, len(events))
	copy(original, events)

	set := Normalize(events)

	require.Len(t, set.Punches, 5)
	for i := 1; i < len(set.Punches); i++ {
		assert.False(t, set.Punches[i].Timestamp.Before(set.Punches[i-1].Timestamp))
	}
	require.NotNil(t, set.FirstIn)
	require.NotNil(t, set.LastOut)
	assert.Equal(t, at(d, 9, 0), set.FirstIn.Timestamp)
	assert.Equal(t, at(d, 17, 5), set.LastOut.Timestamp)
	assert.Equal(t, original, events, "input must not be reordered")
}

func TestNormalize_Empty(t *testing.T) {
	set := Normalize(nil)

	assert.False(t, set.HasPunches())
	assert.Nil(t, set.FirstIn)
	assert.Nil(t, set.LastOut)
	assert.Nil(t, set.FirstInTime())
}

func TestNormalize_OnlyOuts(t *testing.T) {
	d := attendance.NewDate(2025, time.June, 10)
	set := Normalize([]attendance.PunchEvent{
		punch(at(d, 17, 0), attendance.DirectionOut),
		punch(at(d, 18, 0), attendance.DirectionOut),
	})

	assert.Nil(t, set.FirstIn)
	require.NotNil(t, set.LastOut)
	assert.Equal(t, at(d, 18, 0), set.LastOut.Timestamp)
	assert.False(t, set.IsComplete())
}

func TestCurrentToggleState(t *testing.T) {
	d := attendance.NewDate(2025, time.June, 10)

	assert.Equal(t, attendance.DirectionNone, CurrentToggleState(nil))
	assert.Equal(t, attendance.DirectionOut, CurrentToggleState([]attendance.PunchEvent{
		punch(at(d, 17, 0), attendance.DirectionOut),
		punch(at(d, 9, 0), attendance.DirectionIn),
	}))
}

func TestToggleInvariant_Alternates(t *testing.T) {
	d := attendance.NewDate(2025, time.June, 10)
	var seq []attendance.PunchEvent
	ts := at(d, 8, 0)

	for i := 0; i < 9; i++ {
		next := NextDirection(CurrentToggleState(seq))
		seq = append(seq, punch(ts, next))
		ts = ts.Add(30 * time.Minute)
	}

	for i, p := range seq {
		want := attendance.DirectionIn
		if i%2 == 1 {
			want = attendance.DirectionOut
		}
		assert.Equal(t, want, p.Direction, "punch %d", i)
	}
}

func TestBucketByDay_UsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2025, time.June, 10, 20, 0, 0, 0, time.UTC)
	early := time.Date(2025, time.June, 10, 3, 30, 0, 0, time.UTC)

	buckets := BucketByDay([]attendance.PunchEvent{
		punch(late, attendance.DirectionOut),
		punch(early, attendance.DirectionIn),
	}, ist)

	assert.Len(t, buckets[attendance.NewDate(2025, time.June, 10)], 1)
	assert.Len(t, buckets[attendance.NewDate(2025, time.June, 11)], 1)

	utcBuckets := BucketByDay([]attendance.PunchEvent{punch(late, attendance.DirectionOut)}, time.UTC)
	assert.Len(t, utcBuckets[attendance.NewDate(2025, time.June, 10)], 1)
}

func TestEngine_DayBounds(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	policy := DefaultPolicy()
	policy.Location = ist
	engine := NewEngine(policy)

	start, end := engine.DayBounds(attendance.NewDate(2025, time.June, 10))

	assert.Equal(t, time.Date(2025, time.June, 9, 18, 30, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestEngine_DayPunchRecords(t *testing.T) {
	engine := NewEngine(DefaultPolicy())
	d := attendance.NewDate(2025, time.June, 10)
	set := Normalize([]attendance.PunchEvent{
		punch(at(d, 9, 0), attendance.DirectionIn),
		punch(at(d, 12, 0), attendance.DirectionOut),
		punch(at(d, 13, 0), attendance.DirectionIn),
		punch(at(d, 17, 0), attendance.DirectionOut),
		punch(at(d, 17, 1), attendance.DirectionOut),
	})

	records := engine.DayPunchRecords(set)

	assert.Equal(t, 2, records.InCount())
	assert.Equal(t, 3, records.OutCount())
	require.NotNil(t, records.FirstIn)
	require.NotNil(t, records.LastOut)
	assert.Equal(t, at(d, 9, 0), *records.FirstIn)
	assert.Equal(t, at(d, 17, 1), *records.LastOut)
}
