package solver

import (
	"slices"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// ConsistencyChecker validates a candidate class against the running partial
// assignment. Consistent is a pure predicate; Place and Undo keep the
// checker's occupancy indexes in step with the search engine's assignment so
// clash lookups stay O(1).
type ConsistencyChecker interface {
	Consistent(candidate ScheduledClass, assignment []ScheduledClass) bool
	Place(class ScheduledClass)
	Undo(class ScheduledClass)
}

func NewConsistencyChecker(data *model.Dataset, config Config) ConsistencyChecker {
	return newIndexedChecker(data, config)
}

type instructorSlot struct {
	instructor model.InstructorID
	slot       model.TimeSlotID
}

type roomSlot struct {
	room model.RoomID
	slot model.TimeSlotID
}

type sectionSlot struct {
	section model.SectionKey
	slot    model.TimeSlotID
}

type indexedChecker struct {
	instructorBusy map[instructorSlot]bool
	roomBusy       map[roomSlot]bool
	sectionBusy    map[sectionSlot]bool

	qualified    map[model.InstructorID]map[model.CourseID]bool
	roomSupports map[model.RoomID]map[model.SessionType]bool
	rolePolicy   map[model.SessionType][]model.InstructorRole
}

func newIndexedChecker(data *model.Dataset, config Config) *indexedChecker {
	qualified := make(map[model.InstructorID]map[model.CourseID]bool, len(data.Instructors))
	for _, instructor := range data.Instructors {
		qualified[instructor.ID] = make(map[model.CourseID]bool, len(instructor.Qualifications))
		for _, courseID := range instructor.Qualifications {
			qualified[instructor.ID][courseID] = true
		}
	}

	roomSupports := make(map[model.RoomID]map[model.SessionType]bool, len(data.Rooms))
	for _, room := range data.Rooms {
		roomSupports[room.ID] = make(map[model.SessionType]bool, len(room.SessionTypes))
		for _, sessionType := range room.SessionTypes {
			roomSupports[room.ID][sessionType] = true
		}
	}

	return &indexedChecker{
		instructorBusy: map[instructorSlot]bool{},
		roomBusy:       map[roomSlot]bool{},
		sectionBusy:    map[sectionSlot]bool{},
		qualified:      qualified,
		roomSupports:   roomSupports,
		rolePolicy:     config.RolePolicy,
	}
}

// Consistent runs the hard constraint checks in order, short-circuiting on the
// first failure: instructor clash, room clash, section clash, resource match,
// project-day exclusivity.
func (checker *indexedChecker) Consistent(candidate ScheduledClass, assignment []ScheduledClass) bool {
	if candidate.Instructor != nil && checker.instructorBusy[instructorSlot{candidate.Instructor.ID, candidate.Slot.ID}] {
		return false
	}

	if candidate.Room != nil && checker.roomBusy[roomSlot{candidate.Room.ID, candidate.Slot.ID}] {
		return false
	}

	for _, section := range candidate.Sections {
		if checker.sectionBusy[sectionSlot{section.Key(), candidate.Slot.ID}] {
			return false
		}
	}

	if !checker.resourcesMatch(candidate) {
		return false
	}

	return !checker.projectDayConflict(candidate, assignment)
}

// resourcesMatch re-asserts the unary filters the offering generator already
// applied, so a generator bug surfaces as a rejected candidate rather than a
// corrupt timetable.
func (checker *indexedChecker) resourcesMatch(candidate ScheduledClass) bool {
	if candidate.Room != nil && !checker.roomSupports[candidate.Room.ID][candidate.Unit.Session] {
		return false
	}
	if candidate.Instructor != nil {
		if !checker.qualified[candidate.Instructor.ID][candidate.Unit.Course] {
			return false
		}
		if !slices.Contains(checker.rolePolicy[candidate.Unit.Session], candidate.Instructor.Role) {
			return false
		}
	}
	return true
}

// projectDayConflict enforces project-day exclusivity in both directions: a
// project blocks the whole day for every section sharing its major scope, and
// a regular class may not land on a day an already placed project owns.
func (checker *indexedChecker) projectDayConflict(candidate ScheduledClass, assignment []ScheduledClass) bool {
	candidateIsProject := candidate.Unit.Session == model.Project
	for c := range assignment {
		existing := &assignment[c]
		if !candidateIsProject && existing.Unit.Session != model.Project {
			continue
		}
		if existing.Slot.Day != candidate.Slot.Day {
			continue
		}
		if scopesOverlap(candidate.Sections, existing.Sections) {
			return true
		}
	}
	return false
}

// scopesOverlap reports whether two classes touch a common cohort: same year
// and either a shared major or a general-major section on either side.
func scopesOverlap(left, right []model.Section) bool {
	for _, a := range left {
		for _, b := range right {
			if a.Year != b.Year {
				continue
			}
			if a.Major == model.MajorGeneral || b.Major == model.MajorGeneral || a.Major == b.Major {
				return true
			}
		}
	}
	return false
}

func (checker *indexedChecker) Place(class ScheduledClass) {
	if class.Instructor != nil {
		checker.instructorBusy[instructorSlot{class.Instructor.ID, class.Slot.ID}] = true
	}
	if class.Room != nil {
		checker.roomBusy[roomSlot{class.Room.ID, class.Slot.ID}] = true
	}
	for _, section := range class.Sections {
		checker.sectionBusy[sectionSlot{section.Key(), class.Slot.ID}] = true
	}
}

func (checker *indexedChecker) Undo(class ScheduledClass) {
	if class.Instructor != nil {
		delete(checker.instructorBusy, instructorSlot{class.Instructor.ID, class.Slot.ID})
	}
	if class.Room != nil {
		delete(checker.roomBusy, roomSlot{class.Room.ID, class.Slot.ID})
	}
	for _, section := range class.Sections {
		delete(checker.sectionBusy, sectionSlot{section.Key(), class.Slot.ID})
	}
}
