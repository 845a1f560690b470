package solver

import (
	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

func mustClock(raw string) model.ClockTime {
	clock, err := model.ParseClock(raw)
	if err != nil {
		panic(err)
	}
	return clock
}

func makeSlot(id int, day model.DayOfWeek, start, end string) model.TimeSlot {
	return model.TimeSlot{
		ID:    model.TimeSlotID(id),
		Day:   day,
		Start: mustClock(start),
		End:   mustClock(end),
	}
}

func makeSection(id, year, groupNumber int, major string, students int) model.Section {
	return model.Section{
		ID:           id,
		Year:         year,
		GroupNumber:  groupNumber,
		Major:        major,
		StudentCount: students,
	}
}

// mondayGrid builds n back-to-back 105-minute slots on Monday starting at
// 09:00, matching the production grid's shape.
func mondayGrid(n int) []model.TimeSlot {
	starts := []string{"09:00", "10:45", "12:30", "14:15", "16:00", "17:45"}
	ends := []string{"10:30", "12:15", "14:00", "15:45", "17:30", "19:15"}
	slots := make([]model.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, makeSlot(i+1, model.Monday, starts[i], ends[i]))
	}
	return slots
}

// scoringClass builds the minimal class shape the scorer inspects: a slot and
// the sections attending it.
func scoringClass(slot model.TimeSlot, sections ...model.Section) ScheduledClass {
	return ScheduledClass{Slot: slot, Sections: sections}
}

func mustDataset(
	courses []model.Course,
	instructors []model.Instructor,
	rooms []model.Room,
	timeSlots []model.TimeSlot,
	sections []model.Section,
	curriculum []model.CurriculumRule,
) *model.Dataset {
	dataset, err := model.NewDataset(courses, instructors, rooms, timeSlots, sections, curriculum)
	if err != nil {
		panic(err)
	}
	return dataset
}
