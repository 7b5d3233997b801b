package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderFixtureRooms() []*Room {
	return []*Room{
		{ID: "hall-1", Capacity: 120, Kind: RoomLectureHall},
		{ID: "hall-2", Capacity: 80, Kind: RoomLectureHall},
		{ID: "lab-1", Capacity: 30, Kind: RoomComputerLab, Facilities: []string{"workstations"}},
	}
}

func orderRequirement(subject *Subject, duration, priority, students int) *SessionRequirement {
	return &SessionRequirement{
		Subject:     subject,
		Batch:       &Batch{ID: "batch-1", Department: "CSE"},
		Group:       GroupAll,
		MaxStudents: students,
		Duration:    duration,
		Priority:    priority,
	}
}

func TestOrderByDifficultyPriorityFirst(t *testing.T) {
	cons := Constraints{}
	require.NoError(t, cons.Normalize())
	slots := BuildTimeGrid(&cons)

	easy := orderRequirement(&Subject{ID: "s-easy", Code: "E1", Kind: KindTheory}, 60, 1, 40)
	hard := orderRequirement(&Subject{ID: "s-hard", Code: "H1", Kind: KindTheory}, 60, 5, 40)
	reqs := []*SessionRequirement{easy, hard}

	OrderByDifficulty(reqs, slots, orderFixtureRooms())

	assert.Same(t, hard, reqs[0])
	assert.Same(t, easy, reqs[1])
}

func TestOrderByDifficultyFewerRoomsFirst(t *testing.T) {
	cons := Constraints{}
	require.NoError(t, cons.Normalize())
	slots := BuildTimeGrid(&cons)

	// Same priority and duration: the lab fits only one room, the
	// lecture fits two, so the lab must come first.
	lecture := orderRequirement(&Subject{ID: "s-lec", Code: "L1", Kind: KindTheory}, 60, 3, 40)
	lab := orderRequirement(&Subject{
		ID: "s-lab", Code: "LAB1", Kind: KindLab,
		Room: RoomRequirements{Kind: RoomComputerLab, Facilities: []string{"workstations"}},
	}, 60, 3, 25)
	reqs := []*SessionRequirement{lecture, lab}

	OrderByDifficulty(reqs, slots, orderFixtureRooms())

	assert.Same(t, lab, reqs[0])
}

func TestOrderByDifficultyStableOnTies(t *testing.T) {
	cons := Constraints{SessionDurations: []int{60}}
	require.NoError(t, cons.Normalize())
	slots := BuildTimeGrid(&cons)

	first := orderRequirement(&Subject{ID: "s-1", Code: "S1", Kind: KindTheory}, 60, 3, 40)
	second := orderRequirement(&Subject{ID: "s-2", Code: "S2", Kind: KindTheory}, 60, 3, 40)
	reqs := []*SessionRequirement{first, second}

	OrderByDifficulty(reqs, slots, orderFixtureRooms())

	// Fully tied requirements keep their submission order.
	assert.Same(t, first, reqs[0])
	assert.Same(t, second, reqs[1])
}

func TestRoomSuitableChecksAllDimensions(t *testing.T) {
	req := orderRequirement(&Subject{
		ID: "s-lab", Code: "LAB1", Kind: KindLab,
		Room: RoomRequirements{Kind: RoomComputerLab, MinCapacity: 25, Facilities: []string{"workstations"}},
	}, 120, 3, 25)

	assert.True(t, RoomSuitable(&Room{Capacity: 30, Kind: RoomComputerLab, Facilities: []string{"workstations"}}, req))
	assert.False(t, RoomSuitable(&Room{Capacity: 20, Kind: RoomComputerLab, Facilities: []string{"workstations"}}, req), "capacity below group size")
	assert.False(t, RoomSuitable(&Room{Capacity: 30, Kind: RoomLectureHall, Facilities: []string{"workstations"}}, req), "incompatible kind")
	assert.False(t, RoomSuitable(&Room{Capacity: 30, Kind: RoomComputerLab}, req), "missing facility")
	assert.False(t, RoomSuitable(&Room{Capacity: 30, Kind: RoomComputerLab, Facilities: []string{"workstations"}, Departments: []string{"ECE"}}, req), "department restricted")
}

func TestRequiredRoomKindDefaults(t *testing.T) {
	assert.Equal(t, RoomLaboratory, requiredRoomKind(orderRequirement(&Subject{Kind: KindLab}, 60, 1, 20)))
	assert.Equal(t, RoomSeminarRoom, requiredRoomKind(orderRequirement(&Subject{Kind: KindSeminar}, 60, 1, 20)))
	assert.Equal(t, RoomTutorialRoom, requiredRoomKind(orderRequirement(&Subject{Kind: KindTutorial}, 60, 1, 20)))
	assert.Equal(t, RoomLectureHall, requiredRoomKind(orderRequirement(&Subject{Kind: KindTheory}, 60, 1, 20)))
	assert.Equal(t, RoomAuditorium, requiredRoomKind(orderRequirement(&Subject{Kind: KindTheory, Room: RoomRequirements{Kind: RoomAuditorium}}, 60, 1, 20)))
}
