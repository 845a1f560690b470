package solver

import (
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// offeringGenerator enumerates the admissible (TimeSlot, Room, Instructor)
// triples of a course unit. Only unary filters apply here: clashes against the
// partial assignment are the consistency checker's job.
type offeringGenerator struct {
	slots               []model.TimeSlot
	roomsBySession      map[model.SessionType][]model.Room
	instructorsByCourse map[model.CourseID][]model.Instructor
	rolePolicy          map[model.SessionType][]model.InstructorRole
}

func newOfferingGenerator(data *model.Dataset, config Config) *offeringGenerator {
	slots := slices.Clone(data.TimeSlots)
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day.Order() < slots[j].Day.Order()
		}
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].ID < slots[j].ID
	})

	roomsBySession := make(map[model.SessionType][]model.Room)
	for _, room := range data.Rooms {
		for _, sessionType := range room.SessionTypes {
			roomsBySession[sessionType] = append(roomsBySession[sessionType], room)
		}
	}
	for sessionType := range roomsBySession {
		sort.Slice(roomsBySession[sessionType], func(i, j int) bool {
			return roomsBySession[sessionType][i].ID < roomsBySession[sessionType][j].ID
		})
	}

	instructorsByCourse := make(map[model.CourseID][]model.Instructor)
	for _, instructor := range data.Instructors {
		for _, courseID := range instructor.Qualifications {
			instructorsByCourse[courseID] = append(instructorsByCourse[courseID], instructor)
		}
	}
	for courseID := range instructorsByCourse {
		sort.Slice(instructorsByCourse[courseID], func(i, j int) bool {
			return instructorsByCourse[courseID][i].ID < instructorsByCourse[courseID][j].ID
		})
	}

	return &offeringGenerator{
		slots:               slots,
		roomsBySession:      roomsBySession,
		instructorsByCourse: instructorsByCourse,
		rolePolicy:          config.RolePolicy,
	}
}

// offerings returns the unit's candidate triples in fixed order: time slot
// ascending by day and start, then room id, then instructor id. The fixed
// order is what makes find-first runs reproducible.
func (generator *offeringGenerator) offerings(unit CourseUnit) []Offering {
	// Project sessions block a slot for their whole cohort without consuming a
	// room or an instructor.
	if unit.Session == model.Project {
		return lo.Map(generator.slots, func(slot model.TimeSlot, _ int) Offering {
			return Offering{Slot: slot}
		})
	}

	rooms := generator.roomsBySession[unit.Session]
	allowedRoles := generator.rolePolicy[unit.Session]
	instructors := lo.Filter(generator.instructorsByCourse[unit.Course], func(instructor model.Instructor, _ int) bool {
		return slices.Contains(allowedRoles, instructor.Role)
	})

	offerings := make([]Offering, 0, len(generator.slots)*len(rooms)*len(instructors))
	for _, slot := range generator.slots {
		for r := range rooms {
			for i := range instructors {
				offerings = append(offerings, Offering{
					Slot:       slot,
					Room:       &rooms[r],
					Instructor: &instructors[i],
				})
			}
		}
	}
	return offerings
}
