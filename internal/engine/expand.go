package engine

import "fmt"

// ExpandRequirements turns every (batch, subject) pairing into atomic
// session requirements. Lab subjects whose enrollment exceeds the group
// size limit are split into capacity-bounded groups, each carrying its
// own weekly quota. Unknown subject references become failures rather
// than aborting the expansion.
func ExpandRequirements(batches []*Batch, subjects map[string]*Subject, groupLimit int) ([]*SessionRequirement, []Failure) {
	if groupLimit <= 0 {
		groupLimit = DefaultGroupSizeLimit
	}

	var reqs []*SessionRequirement
	var failures []Failure

	for _, batch := range batches {
		for _, ref := range batch.Subjects {
			subject, ok := subjects[ref.SubjectID]
			if !ok {
				failures = append(failures, Failure{
					Requirement: &SessionRequirement{
						Subject: &Subject{ID: ref.SubjectID, Code: ref.SubjectID},
						Batch:   batch,
						Group:   GroupAll,
					},
					Reason: FailureUnknownRef,
					Detail: fmt.Sprintf("batch %s references unknown subject %s", batch.ID, ref.SubjectID),
				})
				continue
			}

			if subject.Kind == KindLab && batch.Enrolled > groupLimit {
				groups := (batch.Enrolled + groupLimit - 1) / groupLimit
				remaining := batch.Enrolled
				for g := 1; g <= groups; g++ {
					size := groupLimit
					if remaining < groupLimit {
						size = remaining
					}
					remaining -= size
					label := fmt.Sprintf("Group %d", g)
					for i := 0; i < subject.SessionsPerWeek; i++ {
						reqs = append(reqs, newRequirement(subject, batch, label, size))
					}
				}
				continue
			}

			for i := 0; i < subject.SessionsPerWeek; i++ {
				reqs = append(reqs, newRequirement(subject, batch, GroupAll, batch.Enrolled))
			}
		}
	}
	return reqs, failures
}

func newRequirement(subject *Subject, batch *Batch, group string, size int) *SessionRequirement {
	req := &SessionRequirement{
		Subject:     subject,
		Batch:       batch,
		Group:       group,
		MaxStudents: size,
		Duration:    subject.DurationMinutes,
	}
	req.Priority = requirementPriority(req)
	return req
}

// requirementPriority scores expected scheduling difficulty. Higher
// means the requirement is placed earlier by the orderer.
func requirementPriority(req *SessionRequirement) int {
	priority := 0
	if req.Subject.Kind == KindLab {
		priority += 3
	}
	switch {
	case req.Duration >= 120:
		priority += 2
	case req.Duration >= 90:
		priority++
	}
	switch {
	case req.Batch.Enrolled > 60:
		priority += 2
	case req.Batch.Enrolled > 30:
		priority++
	}
	if kind := req.Subject.Room.Kind; kind != "" && kind != RoomLectureHall {
		priority += 2
	}
	if len(req.Subject.Room.Facilities) > 2 {
		priority++
	}
	return priority
}
