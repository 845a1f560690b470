package model

import (
	"fmt"

	"github.com/samber/lo"
)

// DataIntegrityError reports malformed or inconsistent input data. It is fatal
// and always surfaced before any search starts.
type DataIntegrityError struct {
	Reason string
}

func (err *DataIntegrityError) Error() string {
	return "data integrity: " + err.Reason
}

func integrityErrorf(format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{Reason: fmt.Sprintf(format, args...)}
}

// Dataset is the immutable entity store consumed read-only by the solver. Use
// NewDataset to obtain a validated instance.
type Dataset struct {
	Courses     []Course
	Instructors []Instructor
	Rooms       []Room
	TimeSlots   []TimeSlot
	Sections    []Section
	Curriculum  []CurriculumRule
}

// NewDataset validates entity uniqueness and foreign keys and returns the
// store. Demand-level validation (curriculum coverage, room support) belongs to
// the solver's requirement map builder.
func NewDataset(
	courses []Course,
	instructors []Instructor,
	rooms []Room,
	timeSlots []TimeSlot,
	sections []Section,
	curriculum []CurriculumRule,
) (*Dataset, error) {
	courseIDs := make(map[CourseID]bool, len(courses))
	for _, course := range courses {
		if courseIDs[course.ID] {
			return nil, integrityErrorf("duplicate course id %v", course.ID)
		}
		courseIDs[course.ID] = true

		if len(course.SessionTypes) == 0 {
			return nil, integrityErrorf("course %v lists no session types", course.ID)
		}
		if duplicated(course.SessionTypes) {
			return nil, integrityErrorf("course %v repeats a session type", course.ID)
		}
	}

	instructorIDs := make(map[InstructorID]bool, len(instructors))
	for _, instructor := range instructors {
		if instructorIDs[instructor.ID] {
			return nil, integrityErrorf("duplicate instructor id %v", instructor.ID)
		}
		instructorIDs[instructor.ID] = true

		for _, qualification := range instructor.Qualifications {
			if !courseIDs[qualification] {
				return nil, integrityErrorf("instructor %v is qualified for unknown course %v", instructor.ID, qualification)
			}
		}
	}

	roomIDs := make(map[RoomID]bool, len(rooms))
	for _, room := range rooms {
		if roomIDs[room.ID] {
			return nil, integrityErrorf("duplicate room id %v", room.ID)
		}
		roomIDs[room.ID] = true

		if room.Capacity <= 0 {
			return nil, integrityErrorf("room %v has non-positive capacity %v", room.ID, room.Capacity)
		}
	}

	slotIDs := make(map[TimeSlotID]bool, len(timeSlots))
	for _, slot := range timeSlots {
		if slotIDs[slot.ID] {
			return nil, integrityErrorf("duplicate time slot id %v", slot.ID)
		}
		slotIDs[slot.ID] = true

		if slot.End <= slot.Start {
			return nil, integrityErrorf("time slot %v ends before it starts", slot.ID)
		}
	}

	sectionKeys := make(map[SectionKey]bool, len(sections))
	for _, section := range sections {
		if sectionKeys[section.Key()] {
			return nil, integrityErrorf("duplicate section %v", section.Key())
		}
		sectionKeys[section.Key()] = true

		if section.StudentCount <= 0 {
			return nil, integrityErrorf("section %v has non-positive student count", section.Key())
		}
	}

	for _, rule := range curriculum {
		if !courseIDs[rule.CourseID] {
			return nil, integrityErrorf("curriculum rule for year %v references unknown course %v", rule.Year, rule.CourseID)
		}
	}

	return &Dataset{
		Courses:     courses,
		Instructors: instructors,
		Rooms:       rooms,
		TimeSlots:   timeSlots,
		Sections:    sections,
		Curriculum:  curriculum,
	}, nil
}

func duplicated[T comparable](items []T) bool {
	return len(lo.Uniq(items)) != len(items)
}
