package engine

// searchState owns all mutable occupancy data for one run. Occupancy is
// indexed per entity ID and per day so constraint checks never scan the
// whole schedule.
type searchState struct {
	cons     *Constraints
	slots    []TimeSlot
	rooms    []*Room
	observer Observer

	schedule []Assignment

	facultyBusy map[string]map[string][]TimeRange
	roomBusy    map[string]map[string][]TimeRange
	batchBusy   map[string]map[string][]TimeRange

	batchDayCount   map[string]map[string]int
	facultyDayCount map[string]map[string]int

	checks     int64
	backtracks int64
	budget     int64
	exhausted  bool
}

func newSearchState(cons *Constraints, slots []TimeSlot, rooms []*Room, observer Observer) *searchState {
	if observer == nil {
		observer = NopObserver
	}
	return &searchState{
		cons:            cons,
		slots:           slots,
		rooms:           rooms,
		observer:        observer,
		facultyBusy:     make(map[string]map[string][]TimeRange),
		roomBusy:        make(map[string]map[string][]TimeRange),
		batchBusy:       make(map[string]map[string][]TimeRange),
		batchDayCount:   make(map[string]map[string]int),
		facultyDayCount: make(map[string]map[string]int),
		budget:          cons.CheckBudget,
	}
}

// Run places the ordered requirements. It first attempts a complete
// backtracking solution; if the instance is infeasible or the check
// budget runs out before one is found, it falls back to a first-fit
// sweep so a useful partial schedule is still returned. The returned
// failures cover every requirement left unscheduled.
func (s *searchState) Run(reqs []*SessionRequirement) []Failure {
	if s.solve(reqs, 0) {
		return nil
	}

	// Infeasible as a whole (or budget spent): restart and keep the
	// best-effort placement, skipping whatever cannot go anywhere.
	// The budget only bounds the exhaustive phase; the sweep below is
	// linear in slots*rooms and always runs to completion.
	s.budget = -1
	s.reset()
	var failures []Failure
	for _, req := range reqs {
		if s.placeFirstFit(req) {
			continue
		}
		s.observer.Skipped(req, FailureUnplaceable)
		failures = append(failures, Failure{
			Requirement: req,
			Reason:      FailureUnplaceable,
			Detail:      "no slot/room combination satisfies all hard constraints",
		})
	}
	return failures
}

func (s *searchState) solve(reqs []*SessionRequirement, index int) bool {
	if index == len(reqs) {
		return true
	}
	req := reqs[index]
	for _, slot := range s.slots {
		if slot.Lunch || slot.Duration != req.Duration {
			continue
		}
		for _, room := range s.rooms {
			if !RoomSuitable(room, req) {
				continue
			}
			if s.exhausted {
				return false
			}
			if !s.fits(req, slot, room) {
				continue
			}
			s.push(req, slot, room)
			s.observer.Placed(req, slot, room, index)
			if s.solve(reqs, index+1) {
				return true
			}
			s.pop()
			s.backtracks++
			s.observer.Backtracked(req, index)
		}
	}
	return false
}

func (s *searchState) placeFirstFit(req *SessionRequirement) bool {
	for _, slot := range s.slots {
		if slot.Lunch || slot.Duration != req.Duration {
			continue
		}
		for _, room := range s.rooms {
			if !RoomSuitable(room, req) {
				continue
			}
			if s.fits(req, slot, room) {
				s.push(req, slot, room)
				s.observer.Placed(req, slot, room, len(s.schedule)-1)
				return true
			}
		}
	}
	return false
}

// fits validates every hard constraint for a candidate placement.
func (s *searchState) fits(req *SessionRequirement, slot TimeSlot, room *Room) bool {
	s.checks++
	if s.budget > 0 && s.checks > s.budget {
		s.exhausted = true
		return false
	}

	window := slot.Range()

	if window.Overlaps(s.cons.LunchBreak) {
		return false
	}
	if rangesOverlap(s.facultyBusy[req.Faculty.ID][slot.Day], window) {
		return false
	}
	if rangesOverlap(s.roomBusy[room.ID][slot.Day], window) {
		return false
	}
	if rangesOverlap(s.batchBusy[req.Batch.ID][slot.Day], window) {
		return false
	}
	if s.batchDayCount[req.Batch.ID][slot.Day]+1 > s.cons.batchDailyLimit(req.Batch) {
		return false
	}
	if limit := req.Faculty.MaxSessionsPerDay; limit > 0 && s.facultyDayCount[req.Faculty.ID][slot.Day]+1 > limit {
		return false
	}
	if rangesOverlap(req.Faculty.Blocked[slot.Day], window) {
		return false
	}
	if avail, ok := req.Faculty.Availability[slot.Day]; ok && !avail.Contains(window) {
		return false
	}
	if rangesOverlap(room.Blocked[slot.Day], window) {
		return false
	}
	if rangesOverlap(req.Batch.Blocked[slot.Day], window) {
		return false
	}
	return true
}

func (s *searchState) push(req *SessionRequirement, slot TimeSlot, room *Room) {
	window := slot.Range()
	s.schedule = append(s.schedule, Assignment{Requirement: req, Slot: slot, Room: room})
	appendBusy(s.facultyBusy, req.Faculty.ID, slot.Day, window)
	appendBusy(s.roomBusy, room.ID, slot.Day, window)
	appendBusy(s.batchBusy, req.Batch.ID, slot.Day, window)
	bumpCount(s.batchDayCount, req.Batch.ID, slot.Day, 1)
	bumpCount(s.facultyDayCount, req.Faculty.ID, slot.Day, 1)
}

// pop undoes the most recent placement completely, so a failed attempt
// never leaves occupancy state behind.
func (s *searchState) pop() {
	last := s.schedule[len(s.schedule)-1]
	s.schedule = s.schedule[:len(s.schedule)-1]
	removeBusy(s.facultyBusy, last.Requirement.Faculty.ID, last.Slot.Day)
	removeBusy(s.roomBusy, last.Room.ID, last.Slot.Day)
	removeBusy(s.batchBusy, last.Requirement.Batch.ID, last.Slot.Day)
	bumpCount(s.batchDayCount, last.Requirement.Batch.ID, last.Slot.Day, -1)
	bumpCount(s.facultyDayCount, last.Requirement.Faculty.ID, last.Slot.Day, -1)
}

func (s *searchState) reset() {
	s.schedule = nil
	s.facultyBusy = make(map[string]map[string][]TimeRange)
	s.roomBusy = make(map[string]map[string][]TimeRange)
	s.batchBusy = make(map[string]map[string][]TimeRange)
	s.batchDayCount = make(map[string]map[string]int)
	s.facultyDayCount = make(map[string]map[string]int)
}

func rangesOverlap(busy []TimeRange, window TimeRange) bool {
	for _, r := range busy {
		if r.Overlaps(window) {
			return true
		}
	}
	return false
}

func appendBusy(index map[string]map[string][]TimeRange, id, day string, window TimeRange) {
	if index[id] == nil {
		index[id] = make(map[string][]TimeRange)
	}
	index[id][day] = append(index[id][day], window)
}

func removeBusy(index map[string]map[string][]TimeRange, id, day string) {
	ranges := index[id][day]
	if len(ranges) > 0 {
		index[id][day] = ranges[:len(ranges)-1]
	}
}

func bumpCount(index map[string]map[string]int, id, day string, delta int) {
	if index[id] == nil {
		index[id] = make(map[string]int)
	}
	index[id][day] += delta
}
