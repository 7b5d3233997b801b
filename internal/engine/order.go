package engine

import "sort"

// roomKindCompat is the fixed compatibility table between a subject's
// required room kind and the kinds of room that may host it.
var roomKindCompat = map[RoomKind][]RoomKind{
	RoomLectureHall:  {RoomLectureHall, RoomAuditorium, RoomSeminarRoom},
	RoomLaboratory:   {RoomLaboratory, RoomComputerLab},
	RoomComputerLab:  {RoomComputerLab},
	RoomSeminarRoom:  {RoomSeminarRoom, RoomLectureHall},
	RoomTutorialRoom: {RoomTutorialRoom, RoomLectureHall, RoomSeminarRoom},
	RoomAuditorium:   {RoomAuditorium},
}

// requiredRoomKind resolves the effective room kind for a requirement,
// deriving a default from the subject kind when none is declared.
func requiredRoomKind(req *SessionRequirement) RoomKind {
	if req.Subject.Room.Kind != "" {
		return req.Subject.Room.Kind
	}
	switch req.Subject.Kind {
	case KindLab:
		return RoomLaboratory
	case KindSeminar:
		return RoomSeminarRoom
	case KindTutorial:
		return RoomTutorialRoom
	default:
		return RoomLectureHall
	}
}

// RoomSuitable is the suitability predicate used both by the orderer
// and the search: capacity, kind compatibility, facilities and
// department restriction must all pass.
func RoomSuitable(room *Room, req *SessionRequirement) bool {
	if room.Capacity < req.MaxStudents {
		return false
	}
	if req.Subject.Room.MinCapacity > 0 && room.Capacity < req.Subject.Room.MinCapacity {
		return false
	}
	if !containsRoomKind(roomKindCompat[requiredRoomKind(req)], room.Kind) {
		return false
	}
	for _, facility := range req.Subject.Room.Facilities {
		if !containsString(room.Facilities, facility) {
			return false
		}
	}
	if len(room.Departments) > 0 && !containsString(room.Departments, req.Batch.Department) {
		return false
	}
	return true
}

func containsRoomKind(list []RoomKind, kind RoomKind) bool {
	for _, item := range list {
		if item == kind {
			return true
		}
	}
	return false
}

func suitableRoomCount(rooms []*Room, req *SessionRequirement) int {
	count := 0
	for _, room := range rooms {
		if RoomSuitable(room, req) {
			count++
		}
	}
	return count
}

// OrderByDifficulty sorts requirements hardest-first: priority
// descending, then fewest matching slots, then fewest suitable rooms,
// then longest duration. Placing the most restricted variables first
// keeps backtracking shallow.
func OrderByDifficulty(reqs []*SessionRequirement, slots []TimeSlot, rooms []*Room) {
	slotCounts := make(map[int]int, len(reqs))
	roomCounts := make([]int, len(reqs))
	for i, req := range reqs {
		if _, ok := slotCounts[req.Duration]; !ok {
			slotCounts[req.Duration] = slotsMatchingDuration(slots, req.Duration)
		}
		roomCounts[i] = suitableRoomCount(rooms, req)
	}
	order := make(map[*SessionRequirement]int, len(reqs))
	for i, req := range reqs {
		order[req] = roomCounts[i]
	}

	sort.SliceStable(reqs, func(i, j int) bool {
		a, b := reqs[i], reqs[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if slotCounts[a.Duration] != slotCounts[b.Duration] {
			return slotCounts[a.Duration] < slotCounts[b.Duration]
		}
		if order[a] != order[b] {
			return order[a] < order[b]
		}
		return a.Duration > b.Duration
	})
}
