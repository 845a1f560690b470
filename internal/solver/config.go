package solver

import "github.com/EyadMostafa/automated-timetable-generator/internal/model"

// Config carries the solver's tunable constants. Tests vary these instead of
// patching package globals.
type Config struct {
	// PlanningSectionSize is the fixed student count of one planning slot. A
	// room fits floor(capacity / PlanningSectionSize) sections per class.
	PlanningSectionSize int

	// GapPenalty is added per idle slot between a section's first and last
	// class of a day.
	GapPenalty float64

	// EdgeSlotPenalty is added per attending section for a class occupying the
	// first or last slot of a day.
	EdgeSlotPenalty float64

	// RolePolicy maps each session type to the instructor roles allowed to
	// teach it. Project sessions bypass the policy entirely; any other session
	// type absent from the map admits no instructor and yields no offerings.
	RolePolicy map[model.SessionType][]model.InstructorRole
}

// DefaultConfig returns the production constants: 15-student planning slots,
// the 10/3 penalty weights, lectures taught by doctors and professors, labs
// and tutorials by teaching assistants, projects unsupervised.
func DefaultConfig() Config {
	return Config{
		PlanningSectionSize: 15,
		GapPenalty:          10,
		EdgeSlotPenalty:     3,
		RolePolicy: map[model.SessionType][]model.InstructorRole{
			model.Lecture:  {model.Doctor, model.Professor},
			model.Lab:      {model.TeachingAssistant},
			model.Tutorial: {model.TeachingAssistant},
		},
	}
}
