package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

func TestBuildDemand(t *testing.T) {
	t.Run("expands curriculum rules across session types and majors", func(t *testing.T) {
		//** Arrange
		dataset := &model.Dataset{
			Courses: []model.Course{
				{ID: 101, Name: "Programming", SessionTypes: []model.SessionType{model.Lecture, model.Lab}},
				{ID: 102, Name: "Calculus", SessionTypes: []model.SessionType{model.Lecture}},
			},
			Rooms: []model.Room{
				{ID: 1, SessionTypes: []model.SessionType{model.Lecture, model.Lab}, Capacity: 45},
			},
			Sections: []model.Section{
				makeSection(1, 1, 1, "cs", 12),
				makeSection(2, 1, 1, "math", 14),
				makeSection(1, 2, 1, "cs", 10),
			},
			Curriculum: []model.CurriculumRule{
				{Year: 1, Major: model.MajorGeneral, CourseID: 101},
				{Year: 1, Major: "cs", CourseID: 102},
			},
		}

		//** Act
		demand, err := buildDemand(dataset)

		//** Assert
		assert.Nil(t, err)
		assert.Len(t, demand, 3)

		general := demand[CourseUnit{Course: 101, Session: model.Lecture}]
		assert.Len(t, general, 2) // both year-1 sections, no year-2 spill
		assert.Contains(t, general, model.SectionKey{Year: 1, ID: 1})
		assert.Contains(t, general, model.SectionKey{Year: 1, ID: 2})

		assert.Len(t, demand[CourseUnit{Course: 101, Session: model.Lab}], 2)

		csOnly := demand[CourseUnit{Course: 102, Session: model.Lecture}]
		assert.Len(t, csOnly, 1)
		assert.Contains(t, csOnly, model.SectionKey{Year: 1, ID: 1})
	})

	t.Run("drops units no section needs", func(t *testing.T) {
		dataset := &model.Dataset{
			Courses: []model.Course{
				{ID: 101, Name: "Programming", SessionTypes: []model.SessionType{model.Lecture}},
			},
			Rooms: []model.Room{
				{ID: 1, SessionTypes: []model.SessionType{model.Lecture}, Capacity: 45},
			},
			Curriculum: []model.CurriculumRule{
				{Year: 3, Major: model.MajorGeneral, CourseID: 101},
			},
		}

		demand, err := buildDemand(dataset)

		assert.Nil(t, err)
		assert.Empty(t, demand)
	})

	t.Run("fails on a rule referencing an unknown course", func(t *testing.T) {
		dataset := &model.Dataset{
			Curriculum: []model.CurriculumRule{
				{Year: 1, Major: model.MajorGeneral, CourseID: 999},
			},
		}

		demand, err := buildDemand(dataset)

		assert.Nil(t, demand)
		var integrityErr *model.DataIntegrityError
		assert.ErrorAs(t, err, &integrityErr)
	})

	t.Run("fails when no room supports a required session type", func(t *testing.T) {
		dataset := &model.Dataset{
			Courses: []model.Course{
				{ID: 101, Name: "Programming", SessionTypes: []model.SessionType{model.Lab}},
			},
			Rooms: []model.Room{
				{ID: 1, SessionTypes: []model.SessionType{model.Lecture}, Capacity: 45},
			},
			Sections: []model.Section{makeSection(1, 1, 1, "cs", 12)},
			Curriculum: []model.CurriculumRule{
				{Year: 1, Major: model.MajorGeneral, CourseID: 101},
			},
		}

		_, err := buildDemand(dataset)

		var integrityErr *model.DataIntegrityError
		assert.ErrorAs(t, err, &integrityErr)
	})

	t.Run("project units need no room support", func(t *testing.T) {
		dataset := &model.Dataset{
			Courses: []model.Course{
				{ID: 101, Name: "Graduation Project", SessionTypes: []model.SessionType{model.Project}},
			},
			Sections: []model.Section{makeSection(1, 4, 1, "cs", 12)},
			Curriculum: []model.CurriculumRule{
				{Year: 4, Major: model.MajorGeneral, CourseID: 101},
			},
		}

		demand, err := buildDemand(dataset)

		assert.Nil(t, err)
		assert.Len(t, demand, 1)
	})

	t.Run("fails on a section whose major matches no rule of its year", func(t *testing.T) {
		dataset := &model.Dataset{
			Courses: []model.Course{
				{ID: 101, Name: "Programming", SessionTypes: []model.SessionType{model.Lecture}},
			},
			Rooms: []model.Room{
				{ID: 1, SessionTypes: []model.SessionType{model.Lecture}, Capacity: 45},
			},
			Sections: []model.Section{
				makeSection(1, 1, 1, "cs", 12),
				makeSection(2, 1, 1, "biology", 12),
			},
			Curriculum: []model.CurriculumRule{
				{Year: 1, Major: "cs", CourseID: 101},
			},
		}

		_, err := buildDemand(dataset)

		var integrityErr *model.DataIntegrityError
		assert.ErrorAs(t, err, &integrityErr)
		assert.Contains(t, err.Error(), "biology")
	})
}
