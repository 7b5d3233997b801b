package engine

import (
	"fmt"
	"strings"
)

// facultyLedger tracks generation-scoped workload per instructor.
type facultyLedger struct {
	hours map[string]float64
}

func newFacultyLedger() *facultyLedger {
	return &facultyLedger{hours: make(map[string]float64)}
}

func (l *facultyLedger) fits(f *Faculty, duration int) bool {
	if f.WeeklyLoadLimit <= 0 {
		return true
	}
	return l.hours[f.ID]+float64(duration)/60 <= float64(f.WeeklyLoadLimit)
}

func (l *facultyLedger) charge(f *Faculty, duration int) {
	l.hours[f.ID] += float64(duration) / 60
}

// ResolveFaculty binds each requirement to an instructor. Pre-assigned
// instructors are honoured while their weekly budget lasts; everyone
// else is chosen from the eligible set by lowest current load, tie
// broken by best specialization match. Requirements with no eligible
// candidate are returned as failures and excluded from the search.
func ResolveFaculty(reqs []*SessionRequirement, preassigned map[string]string, faculty []*Faculty) ([]*SessionRequirement, []Failure) {
	byID := make(map[string]*Faculty, len(faculty))
	for _, f := range faculty {
		byID[f.ID] = f
	}

	ledger := newFacultyLedger()
	var resolved []*SessionRequirement
	var failures []Failure

	for _, req := range reqs {
		if id := preassigned[req.Batch.ID+"|"+req.Subject.ID]; id != "" {
			if f, ok := byID[id]; ok && ledger.fits(f, req.Duration) {
				req.Faculty = f
				ledger.charge(f, req.Duration)
				resolved = append(resolved, req)
				continue
			}
		}

		best := pickFaculty(req, faculty, ledger)
		if best == nil {
			failures = append(failures, Failure{
				Requirement: req,
				Reason:      FailureUnassignable,
				Detail:      fmt.Sprintf("no eligible faculty for %s", req.Key()),
			})
			continue
		}
		req.Faculty = best
		ledger.charge(best, req.Duration)
		resolved = append(resolved, req)
	}
	return resolved, failures
}

func pickFaculty(req *SessionRequirement, faculty []*Faculty, ledger *facultyLedger) *Faculty {
	var best *Faculty
	var bestLoad float64
	var bestScore int

	for _, f := range faculty {
		if !containsString(f.Departments, req.Subject.Department) {
			continue
		}
		score := specializationScore(f, req.Subject.Faculty.Specializations)
		if len(req.Subject.Faculty.Specializations) > 0 && score == 0 {
			continue
		}
		if !ledger.fits(f, req.Duration) {
			continue
		}
		load := ledger.hours[f.ID]
		if best == nil || load < bestLoad || (load == bestLoad && score > bestScore) {
			best, bestLoad, bestScore = f, load, score
		}
	}
	return best
}

// specializationScore sums match quality over the required tags: an
// exact tag match counts 2, a substring match counts 1.
func specializationScore(f *Faculty, required []string) int {
	score := 0
	for _, want := range required {
		wantLower := strings.ToLower(want)
		tagScore := 0
		for _, have := range f.Specializations {
			haveLower := strings.ToLower(have)
			switch {
			case haveLower == wantLower:
				tagScore = 2
			case tagScore < 1 && (strings.Contains(haveLower, wantLower) || strings.Contains(wantLower, haveLower)):
				tagScore = 1
			}
			if tagScore == 2 {
				break
			}
		}
		score += tagScore
	}
	return score
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// PreassignmentIndex builds the (batch, subject) -> faculty lookup used
// by the resolver from batch subject references.
func PreassignmentIndex(batches []*Batch) map[string]string {
	index := make(map[string]string)
	for _, batch := range batches {
		for _, ref := range batch.Subjects {
			if ref.FacultyID != "" {
				index[batch.ID+"|"+ref.SubjectID] = ref.FacultyID
			}
		}
	}
	return index
}
