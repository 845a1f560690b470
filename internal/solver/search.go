package solver

import (
	"slices"
	"time"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// Solver owns one search over a validated dataset. It is not safe for
// concurrent use: the partial assignment and the requirement map belong to a
// single in-flight search path, restored exactly on every backtrack.
type Solver interface {
	// Solve runs the configured search mode. FindFirst ignores the timeout and
	// returns the first complete assignment; Optimize keeps searching until the
	// deadline and returns the best-scored one. Errors are ErrUnsatisfiable,
	// ErrTimeoutNoSolution, or a *model.DataIntegrityError surfaced earlier by
	// NewSolver.
	Solve(mode Mode, timeout time.Duration) (*Solution, error)

	// Verify independently re-checks a solution against the dataset: no
	// instructor, room, or section clashes, full curriculum coverage, and room
	// capacity respected.
	Verify(solution *Solution) bool
}

// NewSolver builds the requirement map for the dataset and returns a ready
// engine. All data integrity problems surface here, before any search starts.
func NewSolver(data *model.Dataset, config Config) (Solver, error) {
	demand, err := buildDemand(data)
	if err != nil {
		return nil, err
	}
	return &engine{
		data:      data,
		config:    config,
		generator: newOfferingGenerator(data, config),
		scorer:    NewScorer(data, config),
		demand:    demand,
	}, nil
}

type engine struct {
	data      *model.Dataset
	config    Config
	generator *offeringGenerator
	checker   ConsistencyChecker
	scorer    Scorer

	// Search state, exclusively owned by the running search path.
	demand     map[CourseUnit]SectionSet
	assignment []ScheduledClass

	mode     Mode
	deadline time.Time
	best     *Solution
}

type searchOutcome int

const (
	// searchExhausted: every candidate under this node failed; the parent
	// resumes at its next candidate.
	searchExhausted searchOutcome = iota
	// searchDone: a find-first solution was recorded; unwind immediately.
	searchDone
	// searchDeadline: the optimize deadline fired; unwind immediately.
	searchDeadline
)

func (e *engine) Solve(mode Mode, timeout time.Duration) (*Solution, error) {
	e.mode = mode
	e.best = nil
	e.assignment = e.assignment[:0]
	// Fresh occupancy indexes per run; backtracking restores them to empty
	// anyway, but a clean build keeps successive runs independent.
	e.checker = NewConsistencyChecker(e.data, e.config)
	e.deadline = time.Time{}
	if mode == Optimize {
		e.deadline = time.Now().Add(timeout)
	}

	outcome := e.search()

	switch {
	case e.best != nil:
		return e.best, nil
	case outcome == searchDeadline:
		return nil, ErrTimeoutNoSolution
	default:
		return nil, ErrUnsatisfiable
	}
}

// search is one SELECT cycle of the engine's state machine: deadline check,
// completion check, MRV unit selection, then candidate generation with
// place/recurse/undo around each recursive call.
func (e *engine) search() searchOutcome {
	if e.mode == Optimize && time.Now().After(e.deadline) {
		return searchDeadline
	}

	if len(e.demand) == 0 {
		solution := &Solution{
			Classes: slices.Clone(e.assignment),
			Score:   e.scorer.Score(e.assignment),
		}
		if e.mode == FindFirst {
			e.best = solution
			return searchDone
		}
		if e.best == nil || solution.Score < e.best.Score {
			e.best = solution
		}
		// Optimize mode treats a completed assignment as one more dead end and
		// keeps searching for a better score.
		return searchExhausted
	}

	unit, candidates := e.selectUnit()
	if len(candidates) == 0 {
		return searchExhausted
	}

	// The un-mutated section set is the checkpoint: restoring it is a single
	// map write, and every candidate group below was drawn from it.
	checkpoint := e.demand[unit]
	for _, cand := range candidates {
		class := ScheduledClass{
			Unit:       unit,
			Slot:       cand.offering.Slot,
			Room:       cand.offering.Room,
			Instructor: cand.offering.Instructor,
			Sections:   cand.group,
		}

		remaining := checkpoint.without(cand.group)
		if len(remaining) == 0 {
			delete(e.demand, unit)
		} else {
			e.demand[unit] = remaining
		}
		e.assignment = append(e.assignment, class)
		e.checker.Place(class)

		outcome := e.search()

		e.checker.Undo(class)
		e.assignment = e.assignment[:len(e.assignment)-1]
		e.demand[unit] = checkpoint

		if outcome != searchExhausted {
			return outcome
		}
	}

	return searchExhausted
}

type candidate struct {
	offering Offering
	group    []model.Section
}

// selectUnit applies the MRV heuristic: branch on the unit with the fewest
// candidates that pass the consistency checker right now. Units are visited in
// identity order, so ties resolve deterministically to the smaller unit. A
// zero-candidate unit wins outright; it forces the immediate backtrack the
// heuristic exists to find early.
func (e *engine) selectUnit() (CourseUnit, []candidate) {
	var bestUnit CourseUnit
	var bestCandidates []candidate
	found := false

	for _, unit := range sortedUnits(e.demand) {
		candidates := e.candidatesFor(unit)
		if !found || len(candidates) < len(bestCandidates) {
			found = true
			bestUnit = unit
			bestCandidates = candidates
			if len(candidates) == 0 {
				break
			}
		}
	}

	return bestUnit, bestCandidates
}

// candidatesFor enumerates the unit's admissible (offering, group) pairs
// against the present partial assignment: outer loop over offerings, inner
// over the groups formable in that offering's room.
func (e *engine) candidatesFor(unit CourseUnit) []candidate {
	remaining := e.demand[unit]
	var candidates []candidate
	for _, offering := range e.generator.offerings(unit) {
		for _, group := range formGroups(remaining, offering.Room, e.config.PlanningSectionSize) {
			class := ScheduledClass{
				Unit:       unit,
				Slot:       offering.Slot,
				Room:       offering.Room,
				Instructor: offering.Instructor,
				Sections:   group,
			}
			if e.checker.Consistent(class, e.assignment) {
				candidates = append(candidates, candidate{offering: offering, group: group})
			}
		}
	}
	return candidates
}

func (e *engine) Verify(solution *Solution) bool {
	if solution == nil {
		return false
	}

	instructorBusy := map[instructorSlot]bool{}
	roomBusy := map[roomSlot]bool{}
	sectionBusy := map[sectionSlot]bool{}

	covered := map[CourseUnit]map[model.SectionKey]bool{}
	for _, class := range solution.Classes {
		if class.Instructor != nil {
			key := instructorSlot{class.Instructor.ID, class.Slot.ID}
			if instructorBusy[key] {
				return false
			}
			instructorBusy[key] = true
		}

		if class.Room != nil {
			key := roomSlot{class.Room.ID, class.Slot.ID}
			if roomBusy[key] {
				return false
			}
			roomBusy[key] = true

			students := 0
			for _, section := range class.Sections {
				students += section.StudentCount
			}
			if students > class.Room.Capacity {
				return false
			}
		}

		for _, section := range class.Sections {
			key := sectionSlot{section.Key(), class.Slot.ID}
			if sectionBusy[key] {
				return false
			}
			sectionBusy[key] = true

			if covered[class.Unit] == nil {
				covered[class.Unit] = map[model.SectionKey]bool{}
			}
			if covered[class.Unit][section.Key()] {
				// The section was already taught this unit by another class.
				return false
			}
			covered[class.Unit][section.Key()] = true
		}
	}

	// Every section of the initial requirement map must be covered exactly
	// once for its unit.
	initial, err := buildDemand(e.data)
	if err != nil {
		return false
	}
	for unit, set := range initial {
		for key := range set {
			if !covered[unit][key] {
				return false
			}
		}
	}

	return true
}
