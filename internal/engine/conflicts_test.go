package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignmentFixture(day string, start, end int, facultyID, roomID, batchID string) Assignment {
	return Assignment{
		Requirement: &SessionRequirement{
			Subject: theorySubject("s", 1, end-start),
			Batch:   &Batch{ID: batchID, Department: "CSE", Enrolled: 20},
			Group:   GroupAll,
			Faculty: &Faculty{ID: facultyID},
		},
		Slot: TimeSlot{Day: day, Start: start, End: end, Duration: end - start},
		Room: &Room{ID: roomID, Number: roomID, Capacity: 40, Kind: RoomLectureHall},
	}
}

func TestDetectConflictsClassifiesByDimension(t *testing.T) {
	assignments := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 9*60+30, 10*60+30, "f1", "r2", "b2"), // faculty clash
		assignmentFixture("Monday", 9*60, 10*60, "f2", "r1", "b3"),       // room clash with first
		assignmentFixture("Tuesday", 9*60, 10*60, "f3", "r3", "b1"),      // different day, no clash
	}

	conflicts := DetectConflicts(assignments)
	kinds := make(map[ConflictKind]int)
	for _, c := range conflicts {
		kinds[c.Kind]++
	}
	assert.Equal(t, 1, kinds[ConflictFaculty])
	assert.Equal(t, 1, kinds[ConflictRoom])
	assert.Zero(t, kinds[ConflictBatch])
}

func TestDetectConflictsIgnoresTouchingRanges(t *testing.T) {
	assignments := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 10*60, 11*60, "f1", "r1", "b1"),
	}
	assert.Empty(t, DetectConflicts(assignments))
}

func TestScoringIsIdempotent(t *testing.T) {
	cons := twoDayConstraints()
	require.NoError(t, cons.Normalize())

	assignments := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 10*60, 11*60, "f2", "r2", "b1"),
		assignmentFixture("Tuesday", 9*60, 10*60, "f1", "r1", "b1"),
	}

	first := ScoreSchedule(assignments, &cons, 4)
	firstConflicts := DetectConflicts(assignments)
	second := ScoreSchedule(assignments, &cons, 4)
	secondConflicts := DetectConflicts(assignments)

	assert.Equal(t, first, second)
	assert.Equal(t, firstConflicts, secondConflicts)
}

func TestScorePenalizesLunchViolations(t *testing.T) {
	cons := twoDayConstraints()
	require.NoError(t, cons.Normalize())

	clean := []Assignment{assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1")}
	violating := []Assignment{assignmentFixture("Monday", 13*60, 14*60, "f1", "r1", "b1")}

	assert.Greater(t, ScoreSchedule(clean, &cons, 20), ScoreSchedule(violating, &cons, 20))
}

func TestScorePenalizesIdleGaps(t *testing.T) {
	cons := twoDayConstraints()
	require.NoError(t, cons.Normalize())

	compact := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 10*60, 11*60, "f2", "r1", "b1"),
	}
	gappy := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 15*60, 16*60, "f2", "r1", "b1"),
	}

	assert.Greater(t, ScoreSchedule(compact, &cons, 10), ScoreSchedule(gappy, &cons, 10))
}

func TestScoreRewardsRoomSpread(t *testing.T) {
	cons := twoDayConstraints()
	require.NoError(t, cons.Normalize())

	oneRoom := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 16*60, 17*60, "f2", "r1", "b1"),
	}
	spread := []Assignment{
		assignmentFixture("Monday", 9*60, 10*60, "f1", "r1", "b1"),
		assignmentFixture("Monday", 16*60, 17*60, "f2", "r2", "b1"),
	}

	assert.Greater(t, ScoreSchedule(spread, &cons, 10), ScoreSchedule(oneRoom, &cons, 10))
}

func TestScoreClampedToRange(t *testing.T) {
	cons := twoDayConstraints()
	require.NoError(t, cons.Normalize())

	var terrible []Assignment
	for i := 0; i < 60; i++ {
		terrible = append(terrible, assignmentFixture("Monday", 13*60, 14*60, "f1", "r1", "b1"))
	}
	score := ScoreSchedule(terrible, &cons, 1)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)

	assert.LessOrEqual(t, ScoreSchedule(nil, &cons, 0), 100)
}
