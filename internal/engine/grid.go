package engine

// BuildTimeGrid expands the constraints into the finite universe of
// candidate slots: every (day, duration, start offset) combination that
// fits inside working hours and stays clear of the lunch window. One
// lunch marker slot per day is appended for downstream constraint
// checks. The caller must Normalize the constraints first.
func BuildTimeGrid(c *Constraints) []TimeSlot {
	var slots []TimeSlot
	for _, day := range c.WorkingDays {
		for _, duration := range c.SessionDurations {
			for start := c.WorkingHours.Start; start+duration <= c.WorkingHours.End; start += c.SlotStepMinutes {
				candidate := TimeRange{Start: start, End: start + duration}
				if candidate.Overlaps(c.LunchBreak) {
					continue
				}
				slots = append(slots, TimeSlot{
					Day:      day,
					Start:    candidate.Start,
					End:      candidate.End,
					Duration: duration,
				})
			}
		}
	}
	for _, day := range c.WorkingDays {
		slots = append(slots, TimeSlot{
			Day:      day,
			Start:    c.LunchBreak.Start,
			End:      c.LunchBreak.End,
			Duration: c.LunchBreak.Minutes(),
			Lunch:    true,
		})
	}
	return slots
}

// slotsMatchingDuration counts schedulable slots for a given session
// length, used by the difficulty orderer.
func slotsMatchingDuration(slots []TimeSlot, duration int) int {
	count := 0
	for _, s := range slots {
		if !s.Lunch && s.Duration == duration {
			count++
		}
	}
	return count
}
