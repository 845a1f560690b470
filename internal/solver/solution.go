package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// CourseUnit is one required session type of one course: the atomic
// schedulable demand unit.
type CourseUnit struct {
	Course  model.CourseID
	Session model.SessionType
}

func (unit CourseUnit) String() string {
	return fmt.Sprintf("%v/%v", unit.Course, unit.Session)
}

// less orders units by course id, then session type, for deterministic
// iteration and MRV tie-breaking.
func (unit CourseUnit) less(other CourseUnit) bool {
	if unit.Course != other.Course {
		return unit.Course < other.Course
	}
	return unit.Session < other.Session
}

// SectionSet is the set of sections still needing a course unit.
type SectionSet map[model.SectionKey]model.Section

func newSectionSet(sections ...model.Section) SectionSet {
	set := make(SectionSet, len(sections))
	for _, section := range sections {
		set[section.Key()] = section
	}
	return set
}

// without returns a copy of the set with the given sections removed. The
// receiver is left untouched so it can serve as the backtracking checkpoint.
func (set SectionSet) without(sections []model.Section) SectionSet {
	remaining := make(SectionSet, len(set))
	for key, section := range set {
		remaining[key] = section
	}
	for _, section := range sections {
		delete(remaining, section.Key())
	}
	return remaining
}

// Offering is a (TimeSlot, Room, Instructor) triple admissible for a course
// unit's unary constraints. Project sessions occupy a slot without a room or
// an instructor, so both pointers are nil for them.
type Offering struct {
	Slot       model.TimeSlot
	Room       *model.Room
	Instructor *model.Instructor
}

// ScheduledClass is immutable once created: one course unit taught to one
// student group at one offering.
type ScheduledClass struct {
	Unit       CourseUnit
	Slot       model.TimeSlot
	Room       *model.Room
	Instructor *model.Instructor
	Sections   []model.Section
}

// Solution is a complete, conflict-free assignment tagged with its soft
// constraint penalty. Lower scores are better.
type Solution struct {
	Classes []ScheduledClass
	Score   float64
}

// Record is one row of the flat export consumed by the presentation layer.
type Record struct {
	CourseID     int    `csv:"course_id" json:"courseId"`
	SessionType  string `csv:"session_type" json:"sessionType"`
	Day          string `csv:"day" json:"day"`
	Start        string `csv:"start" json:"start"`
	End          string `csv:"end" json:"end"`
	RoomID       int    `csv:"room_id" json:"roomId"`
	InstructorID int    `csv:"instructor_id" json:"instructorId"`
	Sections     string `csv:"sections" json:"sections"`
}

// Records flattens the solution for export. Rooms and instructors are absent
// on project sessions and exported as -1.
func (solution *Solution) Records() []Record {
	return lo.Map(solution.Classes, func(class ScheduledClass, _ int) Record {
		record := Record{
			CourseID:     int(class.Unit.Course),
			SessionType:  string(class.Unit.Session),
			Day:          string(class.Slot.Day),
			Start:        class.Slot.Start.String(),
			End:          class.Slot.End.String(),
			RoomID:       -1,
			InstructorID: -1,
			Sections: strings.Join(lo.Map(class.Sections, func(section model.Section, _ int) string {
				return section.Key().String()
			}), ","),
		}
		if class.Room != nil {
			record.RoomID = int(class.Room.ID)
		}
		if class.Instructor != nil {
			record.InstructorID = int(class.Instructor.ID)
		}
		return record
	})
}

// Mode selects the search strategy: FindFirst stops at the first complete
// assignment, Optimize keeps searching for a better-scored one until the
// deadline.
type Mode int

const (
	FindFirst Mode = iota
	Optimize
)

var (
	// ErrUnsatisfiable signals that the search space was exhausted without a
	// single complete assignment. More time will not help; the data must be
	// relaxed before re-invoking the solver.
	ErrUnsatisfiable = errors.New("no conflict-free timetable exists for the given data")

	// ErrTimeoutNoSolution signals that the optimize deadline fired before any
	// complete assignment was found. Unlike ErrUnsatisfiable, more time might.
	ErrTimeoutNoSolution = errors.New("deadline reached before any complete timetable was found")
)
