package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

func TestConsistencyChecker(t *testing.T) {
	instructor := model.Instructor{ID: 1, Name: "A", Role: model.Doctor, Qualifications: []model.CourseID{101, 102}}
	assistant := model.Instructor{ID: 2, Name: "B", Role: model.TeachingAssistant, Qualifications: []model.CourseID{101}}
	room := model.Room{ID: 1, SessionTypes: []model.SessionType{model.Lecture}, Capacity: 45}
	otherRoom := model.Room{ID: 2, SessionTypes: []model.SessionType{model.Lecture}, Capacity: 45}
	slots := mondayGrid(2)
	sectionA := makeSection(1, 1, 1, "cs", 10)
	sectionB := makeSection(2, 1, 1, "cs", 10)

	dataset := &model.Dataset{
		Instructors: []model.Instructor{instructor, assistant},
		Rooms:       []model.Room{room, otherRoom},
		TimeSlots:   slots,
		Sections:    []model.Section{sectionA, sectionB},
	}

	lecture := func(course model.CourseID, slot model.TimeSlot, room *model.Room, who *model.Instructor, sections ...model.Section) ScheduledClass {
		return ScheduledClass{
			Unit:       CourseUnit{Course: course, Session: model.Lecture},
			Slot:       slot,
			Room:       room,
			Instructor: who,
			Sections:   sections,
		}
	}

	t.Run("instructor clash", func(t *testing.T) {
		//** Arrange
		checker := NewConsistencyChecker(dataset, DefaultConfig())
		placed := lecture(101, slots[0], &room, &instructor, sectionA)
		checker.Place(placed)

		//** Act & Assert
		clash := lecture(102, slots[0], &otherRoom, &instructor, sectionB)
		assert.False(t, checker.Consistent(clash, []ScheduledClass{placed}))

		later := lecture(102, slots[1], &otherRoom, &instructor, sectionB)
		assert.True(t, checker.Consistent(later, []ScheduledClass{placed}))
	})

	t.Run("room clash", func(t *testing.T) {
		checker := NewConsistencyChecker(dataset, DefaultConfig())
		placed := lecture(101, slots[0], &room, &instructor, sectionA)
		checker.Place(placed)

		// Check order: the busy room short-circuits before the assistant's
		// role would be rejected.
		clash := lecture(102, slots[0], &room, &assistant, sectionB)
		assert.False(t, checker.Consistent(clash, []ScheduledClass{placed}))
	})

	t.Run("section clash", func(t *testing.T) {
		checker := NewConsistencyChecker(dataset, DefaultConfig())
		placed := lecture(101, slots[0], &room, &instructor, sectionA, sectionB)
		checker.Place(placed)

		clash := lecture(102, slots[0], &otherRoom, &assistant, sectionB)
		assert.False(t, checker.Consistent(clash, []ScheduledClass{placed}))
	})

	t.Run("resource match rejects unqualified or role-breaking candidates", func(t *testing.T) {
		checker := NewConsistencyChecker(dataset, DefaultConfig())

		// Assistant is not qualified for course 102.
		unqualified := lecture(102, slots[0], &room, &assistant, sectionA)
		assert.False(t, checker.Consistent(unqualified, nil))

		// Assistants may not lecture at all.
		badRole := lecture(101, slots[0], &room, &assistant, sectionA)
		assert.False(t, checker.Consistent(badRole, nil))

		// Lab candidate in a lecture-only room.
		badRoom := ScheduledClass{
			Unit:       CourseUnit{Course: 101, Session: model.Lab},
			Slot:       slots[0],
			Room:       &room,
			Instructor: &assistant,
			Sections:   []model.Section{sectionA},
		}
		assert.False(t, checker.Consistent(badRoom, nil))
	})

	t.Run("undo releases every occupied resource", func(t *testing.T) {
		checker := NewConsistencyChecker(dataset, DefaultConfig())
		placed := lecture(101, slots[0], &room, &instructor, sectionA)
		checker.Place(placed)
		checker.Undo(placed)

		again := lecture(102, slots[0], &room, &instructor, sectionA)
		assert.True(t, checker.Consistent(again, nil))
	})

	t.Run("project day blocks same-cohort classes in both directions", func(t *testing.T) {
		checker := NewConsistencyChecker(dataset, DefaultConfig())
		project := ScheduledClass{
			Unit:     CourseUnit{Course: 103, Session: model.Project},
			Slot:     slots[0],
			Sections: []model.Section{sectionA, sectionB},
		}
		assignment := []ScheduledClass{project}
		checker.Place(project)

		// Regular class on the project's day, same cohort: rejected even in a
		// different slot.
		sameDay := lecture(101, slots[1], &room, &instructor, sectionA)
		assert.False(t, checker.Consistent(sameDay, assignment))

		// Different year on the same day is fine.
		otherYear := lecture(101, slots[1], &room, &instructor, makeSection(1, 2, 1, "cs", 10))
		assert.True(t, checker.Consistent(otherYear, assignment))

		// And the inverse direction: placing a project onto an occupied day.
		checker2 := NewConsistencyChecker(dataset, DefaultConfig())
		placed := lecture(101, slots[0], &room, &instructor, sectionA)
		checker2.Place(placed)
		assert.False(t, checker2.Consistent(project, []ScheduledClass{placed}))
	})

	t.Run("general major widens the project scope to the whole year", func(t *testing.T) {
		checker := NewConsistencyChecker(dataset, DefaultConfig())
		project := ScheduledClass{
			Unit:     CourseUnit{Course: 103, Session: model.Project},
			Slot:     slots[0],
			Sections: []model.Section{makeSection(5, 1, 3, model.MajorGeneral, 10)},
		}
		assignment := []ScheduledClass{project}
		checker.Place(project)

		sameYearOtherMajor := lecture(101, slots[1], &room, &instructor, makeSection(6, 1, 4, "math", 10))
		assert.False(t, checker.Consistent(sameYearOtherMajor, assignment))
	})
}
