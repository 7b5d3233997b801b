package export

import (
	"fmt"
	"sort"
)

// TimetableRow is one rendered session row in an export.
type TimetableRow struct {
	Day     string
	Start   string
	End     string
	Subject string
	Batch   string
	Group   string
	Faculty string
	Room    string
}

var timetableHeaders = []string{"Day", "Start", "End", "Subject", "Batch", "Group", "Faculty", "Room"}

var dayOrder = map[string]int{
	"Monday": 1, "Tuesday": 2, "Wednesday": 3, "Thursday": 4,
	"Friday": 5, "Saturday": 6, "Sunday": 7,
}

// TimetableDataset arranges session rows into the shared Dataset
// shape, ordered by day then start time.
func TimetableDataset(rows []TimetableRow) Dataset {
	sorted := make([]TimetableRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if dayOrder[sorted[i].Day] != dayOrder[sorted[j].Day] {
			return dayOrder[sorted[i].Day] < dayOrder[sorted[j].Day]
		}
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Batch < sorted[j].Batch
	})

	dataset := Dataset{Headers: timetableHeaders}
	for _, row := range sorted {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":     row.Day,
			"Start":   row.Start,
			"End":     row.End,
			"Subject": row.Subject,
			"Batch":   row.Batch,
			"Group":   row.Group,
			"Faculty": row.Faculty,
			"Room":    row.Room,
		})
	}
	return dataset
}

// TimetableTitle composes the export heading for one stored version.
func TimetableTitle(institution, department, academicYear string, semester, version int) string {
	if institution == "" {
		institution = "Timetable"
	}
	return fmt.Sprintf("%s - %s %s Sem %d (v%d)", institution, department, academicYear, semester, version)
}
