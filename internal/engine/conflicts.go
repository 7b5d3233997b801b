package engine

import (
	"math"
	"sort"
)

// DetectConflicts re-scans all assignment pairs for residual overlaps.
// The search already enforces these constraints, so any hit here is a
// defect signal and is reported in full rather than dropped.
func DetectConflicts(assignments []Assignment) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(assignments); i++ {
		for j := i + 1; j < len(assignments); j++ {
			a, b := assignments[i], assignments[j]
			if a.Slot.Day != b.Slot.Day || !a.Slot.Range().Overlaps(b.Slot.Range()) {
				continue
			}
			if a.Requirement.Faculty != nil && b.Requirement.Faculty != nil &&
				a.Requirement.Faculty.ID == b.Requirement.Faculty.ID {
				conflicts = append(conflicts, Conflict{First: i, Second: j, Kind: ConflictFaculty, Severity: "critical"})
			}
			if a.Room.ID == b.Room.ID {
				conflicts = append(conflicts, Conflict{First: i, Second: j, Kind: ConflictRoom, Severity: "critical"})
			}
			if a.Requirement.Batch.ID == b.Requirement.Batch.ID {
				conflicts = append(conflicts, Conflict{First: i, Second: j, Kind: ConflictBatch, Severity: "critical"})
			}
		}
	}
	return conflicts
}

// ScoreSchedule computes the advisory 0-100 quality score: lunch
// violations and idle gaps cost points, an even day spread and wide
// room usage earn them. Deterministic for a given schedule.
func ScoreSchedule(assignments []Assignment, cons *Constraints, totalRooms int) int {
	score := 100.0

	for _, a := range assignments {
		if a.Slot.Range().Overlaps(cons.LunchBreak) {
			score -= 2
		}
	}

	score -= dayCountVariance(assignments, cons.WorkingDays) * 0.1

	if totalRooms > 0 {
		used := make(map[string]bool)
		for _, a := range assignments {
			used[a.Room.ID] = true
		}
		score += float64(len(used)) / float64(totalRooms) * 0.1 * 100
	}

	score -= float64(batchGapMinutes(assignments, cons.BreakDurationMinutes)) / 60 * 0.5

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

func dayCountVariance(assignments []Assignment, days []string) float64 {
	if len(days) == 0 {
		return 0
	}
	counts := make(map[string]int, len(days))
	for _, a := range assignments {
		counts[a.Slot.Day]++
	}
	mean := float64(len(assignments)) / float64(len(days))
	variance := 0.0
	for _, day := range days {
		diff := float64(counts[day]) - mean
		variance += diff * diff
	}
	return variance / float64(len(days))
}

// batchGapMinutes totals idle time inside each batch's day beyond the
// configured break allowance.
func batchGapMinutes(assignments []Assignment, breakMinutes int) int {
	byBatchDay := make(map[string][]TimeRange)
	for _, a := range assignments {
		key := a.Requirement.Batch.ID + "|" + a.Slot.Day
		byBatchDay[key] = append(byBatchDay[key], a.Slot.Range())
	}

	total := 0
	for _, ranges := range byBatchDay {
		if len(ranges) < 2 {
			continue
		}
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
		for i := 1; i < len(ranges); i++ {
			gap := ranges[i].Start - ranges[i-1].End
			if gap > breakMinutes {
				total += gap - breakMinutes
			}
		}
	}
	return total
}
