package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeGridStaysInsideWorkingHours(t *testing.T) {
	cons := Constraints{
		WorkingDays:      []string{"Monday", "Tuesday"},
		WorkingHours:     TimeRange{Start: 9 * 60, End: 17 * 60},
		LunchBreak:       TimeRange{Start: 13 * 60, End: 14 * 60},
		SessionDurations: []int{60, 120},
	}
	require.NoError(t, cons.Normalize())

	slots := BuildTimeGrid(&cons)
	require.NotEmpty(t, slots)

	lunchPerDay := make(map[string]int)
	for _, slot := range slots {
		if slot.Lunch {
			lunchPerDay[slot.Day]++
			assert.Equal(t, cons.LunchBreak, slot.Range())
			continue
		}
		assert.GreaterOrEqual(t, slot.Start, cons.WorkingHours.Start)
		assert.LessOrEqual(t, slot.End, cons.WorkingHours.End)
		assert.False(t, slot.Range().Overlaps(cons.LunchBreak),
			"slot %s on %s overlaps lunch", slot.Range(), slot.Day)
		assert.Equal(t, slot.Duration, slot.End-slot.Start)
	}
	assert.Equal(t, map[string]int{"Monday": 1, "Tuesday": 1}, lunchPerDay)
}

func TestBuildTimeGridStepsAtConfiguredGranularity(t *testing.T) {
	cons := Constraints{
		WorkingDays:      []string{"Monday"},
		WorkingHours:     TimeRange{Start: 9 * 60, End: 11 * 60},
		LunchBreak:       TimeRange{Start: 12 * 60, End: 13 * 60},
		SessionDurations: []int{60},
		SlotStepMinutes:  60,
	}
	require.NoError(t, cons.Normalize())

	var starts []int
	for _, slot := range BuildTimeGrid(&cons) {
		if !slot.Lunch {
			starts = append(starts, slot.Start)
		}
	}
	assert.Equal(t, []int{9 * 60, 10 * 60}, starts)
}

func TestConstraintsRejectInvalidWindows(t *testing.T) {
	cases := map[string]Constraints{
		"inverted working hours": {WorkingHours: TimeRange{Start: 17 * 60, End: 9 * 60}},
		"inverted lunch":         {LunchBreak: TimeRange{Start: 14 * 60, End: 13 * 60}},
		"negative duration":      {SessionDurations: []int{-30}},
		"duplicate day":          {WorkingDays: []string{"Monday", "Monday"}},
	}
	for name, cons := range cases {
		c := cons
		err := c.Normalize()
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestConstraintsDefaults(t *testing.T) {
	var cons Constraints
	require.NoError(t, cons.Normalize())
	assert.Equal(t, DefaultMaxClassesPerDay, cons.MaxClassesPerDay)
	assert.Equal(t, DefaultBreakDurationMinutes, cons.BreakDurationMinutes)
	assert.Equal(t, DefaultGroupSizeLimit, cons.GroupSizeLimit)
	assert.Equal(t, int64(DefaultCheckBudget), cons.CheckBudget)
	assert.Len(t, cons.WorkingDays, 5)
}

func TestTimeRangeHalfOpenSemantics(t *testing.T) {
	a := TimeRange{Start: 9 * 60, End: 10 * 60}
	b := TimeRange{Start: 10 * 60, End: 11 * 60}
	assert.False(t, a.Overlaps(b), "touching ranges must not overlap")
	assert.False(t, b.Overlaps(a))
	c := TimeRange{Start: 9*60 + 59, End: 11 * 60}
	assert.True(t, a.Overlaps(c))
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)
	assert.Equal(t, "09:30", FormatClock(minutes))

	for _, bad := range []string{"", "930", "25:00", "09:61"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
