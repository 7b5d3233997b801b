package engine

import (
	"errors"
	"fmt"
)

// Defaults applied by Constraints.Normalize.
const (
	DefaultMaxClassesPerDay     = 8
	DefaultBreakDurationMinutes = 15
	DefaultGroupSizeLimit       = 30
	DefaultSlotStepMinutes      = 15
	DefaultCheckBudget          = 2_000_000
)

// ErrInvalidConfig wraps every configuration rejection.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// Constraints configures one generation run. Zero values fall back to
// documented defaults during Normalize.
type Constraints struct {
	WorkingDays          []string
	WorkingHours         TimeRange
	LunchBreak           TimeRange
	SessionDurations     []int // allowed session lengths in minutes
	SlotStepMinutes      int
	MaxClassesPerDay     int
	BreakDurationMinutes int
	GroupSizeLimit       int
	// CheckBudget caps the number of constraint checks the search may
	// spend before it falls back to the best-effort pass. Zero selects
	// the default; negative disables the cap.
	CheckBudget int64
}

// Normalize applies defaults and validates the configuration.
func (c *Constraints) Normalize() error {
	if len(c.WorkingDays) == 0 {
		c.WorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	}
	if c.WorkingHours == (TimeRange{}) {
		c.WorkingHours = TimeRange{Start: 9 * 60, End: 17 * 60}
	}
	if c.LunchBreak == (TimeRange{}) {
		c.LunchBreak = TimeRange{Start: 13 * 60, End: 14 * 60}
	}
	if len(c.SessionDurations) == 0 {
		c.SessionDurations = []int{60, 90, 120, 180}
	}
	if c.SlotStepMinutes <= 0 {
		c.SlotStepMinutes = DefaultSlotStepMinutes
	}
	if c.MaxClassesPerDay <= 0 {
		c.MaxClassesPerDay = DefaultMaxClassesPerDay
	}
	if c.BreakDurationMinutes <= 0 {
		c.BreakDurationMinutes = DefaultBreakDurationMinutes
	}
	if c.GroupSizeLimit <= 0 {
		c.GroupSizeLimit = DefaultGroupSizeLimit
	}
	if c.CheckBudget == 0 {
		c.CheckBudget = DefaultCheckBudget
	}

	if c.WorkingHours.Start >= c.WorkingHours.End {
		return fmt.Errorf("%w: working hours start %s must precede end %s",
			ErrInvalidConfig, FormatClock(c.WorkingHours.Start), FormatClock(c.WorkingHours.End))
	}
	if c.LunchBreak.Start >= c.LunchBreak.End {
		return fmt.Errorf("%w: lunch break start %s must precede end %s",
			ErrInvalidConfig, FormatClock(c.LunchBreak.Start), FormatClock(c.LunchBreak.End))
	}
	for _, d := range c.SessionDurations {
		if d <= 0 {
			return fmt.Errorf("%w: session duration %d must be positive", ErrInvalidConfig, d)
		}
		if d > c.WorkingHours.Minutes() {
			return fmt.Errorf("%w: session duration %d exceeds the working day", ErrInvalidConfig, d)
		}
	}
	seen := make(map[string]bool, len(c.WorkingDays))
	for _, day := range c.WorkingDays {
		if day == "" {
			return fmt.Errorf("%w: empty working day name", ErrInvalidConfig)
		}
		if seen[day] {
			return fmt.Errorf("%w: duplicate working day %q", ErrInvalidConfig, day)
		}
		seen[day] = true
	}
	return nil
}

// batchDailyLimit resolves the per-day session cap for a batch.
func (c *Constraints) batchDailyLimit(b *Batch) int {
	if b != nil && b.MaxSessionsPerDay > 0 {
		return b.MaxSessionsPerDay
	}
	return c.MaxClassesPerDay
}
