package service

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/uni-timetable-api/internal/engine"
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// snapshot maps persistence models into the immutable input the engine
// consumes. Window JSON that fails to parse rejects the run rather
// than silently dropping constraints.

func snapshotSubjects(subjects []models.Subject) []*engine.Subject {
	out := make([]*engine.Subject, 0, len(subjects))
	for i := range subjects {
		s := &subjects[i]
		out = append(out, &engine.Subject{
			ID:              s.ID,
			Code:            s.Code,
			Name:            s.Name,
			Department:      s.Department,
			Credits:         s.Credits,
			Kind:            engine.SubjectKind(s.Kind),
			SessionsPerWeek: s.SessionsPerWeek,
			DurationMinutes: s.DurationMinutes,
			Room: engine.RoomRequirements{
				Kind:        engine.RoomKind(s.RoomKind),
				MinCapacity: s.MinCapacity,
				Facilities:  append([]string(nil), s.Facilities...),
			},
			Faculty: engine.FacultyRequirements{
				Specializations: append([]string(nil), s.Specializations...),
				MinimumRank:     s.MinimumRank,
			},
		})
	}
	return out
}

func snapshotFaculty(faculty []models.Faculty) ([]*engine.Faculty, error) {
	out := make([]*engine.Faculty, 0, len(faculty))
	for i := range faculty {
		f := &faculty[i]
		availability, err := parseAvailability(f.Availability)
		if err != nil {
			return nil, fmt.Errorf("faculty %s availability: %w", f.ID, err)
		}
		blocked, err := parseBlocked(f.Blocked)
		if err != nil {
			return nil, fmt.Errorf("faculty %s blocked windows: %w", f.ID, err)
		}
		out = append(out, &engine.Faculty{
			ID:                f.ID,
			Name:              f.FullName,
			Rank:              f.Rank,
			Departments:       append([]string(nil), f.Departments...),
			Specializations:   append([]string(nil), f.Specializations...),
			WeeklyLoadLimit:   f.WeeklyLoadLimit,
			MaxSessionsPerDay: f.MaxSessionsPerDay,
			Availability:      availability,
			Blocked:           blocked,
		})
	}
	return out, nil
}

func snapshotRooms(rooms []models.Room) ([]*engine.Room, error) {
	out := make([]*engine.Room, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		blocked, err := parseBlocked(r.Blocked)
		if err != nil {
			return nil, fmt.Errorf("room %s blocked windows: %w", r.ID, err)
		}
		out = append(out, &engine.Room{
			ID:          r.ID,
			Building:    r.Building,
			Number:      r.RoomNumber,
			Capacity:    r.Capacity,
			Kind:        engine.RoomKind(r.Kind),
			Facilities:  append([]string(nil), r.Facilities...),
			Departments: append([]string(nil), r.Departments...),
			Blocked:     blocked,
		})
	}
	return out, nil
}

func snapshotBatch(batch *models.Batch, subjects []models.BatchSubject) (*engine.Batch, error) {
	blocked, err := parseBlocked(batch.Blocked)
	if err != nil {
		return nil, fmt.Errorf("batch %s blocked windows: %w", batch.ID, err)
	}
	links := make([]engine.BatchSubject, 0, len(subjects))
	for _, link := range subjects {
		facultyID := ""
		if link.FacultyID != nil {
			facultyID = *link.FacultyID
		}
		links = append(links, engine.BatchSubject{SubjectID: link.SubjectID, FacultyID: facultyID})
	}
	return &engine.Batch{
		ID:                batch.ID,
		Name:              batch.Name,
		Department:        batch.Department,
		Level:             batch.ProgramLevel,
		Semester:          batch.Semester,
		Enrolled:          batch.Enrolled,
		MaxCapacity:       batch.MaxCapacity,
		Subjects:          links,
		MaxSessionsPerDay: batch.MaxSessionsPerDay,
		Blocked:           blocked,
	}, nil
}

// parseAvailability reads a window list and keeps the last window per
// day as the teachable range.
func parseAvailability(raw []byte) (map[string]engine.TimeRange, error) {
	windows, err := parseWindows(raw)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}
	out := make(map[string]engine.TimeRange, len(windows))
	for _, w := range windows {
		rng, err := windowRange(w)
		if err != nil {
			return nil, err
		}
		out[w.Day] = rng
	}
	return out, nil
}

func parseBlocked(raw []byte) (map[string][]engine.TimeRange, error) {
	windows, err := parseWindows(raw)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}
	out := make(map[string][]engine.TimeRange, len(windows))
	for _, w := range windows {
		rng, err := windowRange(w)
		if err != nil {
			return nil, err
		}
		out[w.Day] = append(out[w.Day], rng)
	}
	return out, nil
}

func parseWindows(raw []byte) ([]models.TimeWindow, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" || string(raw) == "[]" {
		return nil, nil
	}
	var windows []models.TimeWindow
	if err := json.Unmarshal(raw, &windows); err != nil {
		return nil, fmt.Errorf("decode time windows: %w", err)
	}
	return windows, nil
}

func windowRange(w models.TimeWindow) (engine.TimeRange, error) {
	start, err := engine.ParseClock(w.Start)
	if err != nil {
		return engine.TimeRange{}, err
	}
	end, err := engine.ParseClock(w.End)
	if err != nil {
		return engine.TimeRange{}, err
	}
	if start >= end {
		return engine.TimeRange{}, fmt.Errorf("window %s-%s is empty", w.Start, w.End)
	}
	return engine.TimeRange{Start: start, End: end}, nil
}
