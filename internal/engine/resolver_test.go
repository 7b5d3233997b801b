package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facultyFixture(id string, limit int, specs ...string) *Faculty {
	return &Faculty{
		ID:              id,
		Name:            id,
		Departments:     []string{"CSE"},
		Specializations: specs,
		WeeklyLoadLimit: limit,
	}
}

func requirementFixture(subject *Subject, batch *Batch) *SessionRequirement {
	return &SessionRequirement{
		Subject:     subject,
		Batch:       batch,
		Group:       GroupAll,
		MaxStudents: batch.Enrolled,
		Duration:    subject.DurationMinutes,
	}
}

func TestResolveFacultyPrefersLowestLoad(t *testing.T) {
	subject := theorySubject("algo", 1, 60)
	batch := &Batch{ID: "b1", Department: "CSE", Enrolled: 30}
	busy := facultyFixture("f-busy", 10)
	idle := facultyFixture("f-idle", 10)

	reqs := []*SessionRequirement{
		requirementFixture(subject, batch),
		requirementFixture(subject, batch),
		requirementFixture(subject, batch),
	}
	resolved, failures := ResolveFaculty(reqs, nil, []*Faculty{busy, idle})
	require.Empty(t, failures)
	require.Len(t, resolved, 3)

	counts := map[string]int{}
	for _, req := range resolved {
		counts[req.Faculty.ID]++
	}
	// Load balancing alternates between the two equally-matched candidates.
	assert.Equal(t, 2, counts["f-busy"])
	assert.Equal(t, 1, counts["f-idle"])
}

func TestResolveFacultyTieBreaksOnSpecialization(t *testing.T) {
	subject := theorySubject("ml", 1, 60)
	subject.Faculty.Specializations = []string{"Machine Learning"}

	generalist := facultyFixture("f-gen", 10, "Machine Learning Basics")
	specialist := facultyFixture("f-spec", 10, "Machine Learning")

	resolved, failures := ResolveFaculty(
		[]*SessionRequirement{requirementFixture(subject, &Batch{ID: "b1", Department: "CSE", Enrolled: 30})},
		nil,
		[]*Faculty{generalist, specialist},
	)
	require.Empty(t, failures)
	require.Len(t, resolved, 1)
	assert.Equal(t, "f-spec", resolved[0].Faculty.ID)
}

func TestResolveFacultySkipsNonMatchingSpecialization(t *testing.T) {
	subject := theorySubject("quantum", 1, 60)
	subject.Faculty.Specializations = []string{"Quantum Computing"}

	unrelated := facultyFixture("f-db", 10, "Databases")
	resolved, failures := ResolveFaculty(
		[]*SessionRequirement{requirementFixture(subject, &Batch{ID: "b1", Department: "CSE", Enrolled: 30})},
		nil,
		[]*Faculty{unrelated},
	)
	assert.Empty(t, resolved)
	require.Len(t, failures, 1)
	assert.Equal(t, FailureUnassignable, failures[0].Reason)
}

func TestResolveFacultyHonoursPreassignment(t *testing.T) {
	subject := theorySubject("os", 1, 60)
	batch := &Batch{ID: "b1", Department: "CSE", Enrolled: 30,
		Subjects: []BatchSubject{{SubjectID: subject.ID, FacultyID: "f-pre"}}}
	pre := facultyFixture("f-pre", 10)
	other := facultyFixture("f-other", 10)

	resolved, failures := ResolveFaculty(
		[]*SessionRequirement{requirementFixture(subject, batch)},
		PreassignmentIndex([]*Batch{batch}),
		[]*Faculty{other, pre},
	)
	require.Empty(t, failures)
	require.Len(t, resolved, 1)
	assert.Equal(t, "f-pre", resolved[0].Faculty.ID)
}

func TestResolveFacultyWeeklyBudgetExhaustion(t *testing.T) {
	// One teachable hour, two one-hour sessions: the second session must
	// be reported unassignable, not silently dropped.
	subject := theorySubject("micro", 2, 60)
	batch := &Batch{ID: "b1", Department: "CSE", Enrolled: 25}
	limited := facultyFixture("f-lim", 1)

	reqs := []*SessionRequirement{
		requirementFixture(subject, batch),
		requirementFixture(subject, batch),
	}
	resolved, failures := ResolveFaculty(reqs, nil, []*Faculty{limited})
	require.Len(t, resolved, 1)
	require.Len(t, failures, 1)
	assert.Equal(t, FailureUnassignable, failures[0].Reason)
	assert.Equal(t, "f-lim", resolved[0].Faculty.ID)
}

func TestSpecializationScore(t *testing.T) {
	f := &Faculty{Specializations: []string{"Machine Learning", "Data Mining"}}
	assert.Equal(t, 2, specializationScore(f, []string{"machine learning"}))
	assert.Equal(t, 1, specializationScore(f, []string{"Mining"}))
	assert.Equal(t, 0, specializationScore(f, []string{"Compilers"}))
	assert.Equal(t, 3, specializationScore(f, []string{"Data Mining", "Learning"}))
}
