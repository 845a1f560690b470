package solver

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// buildDemand expands curriculum rules into the initial requirement map:
// every session type of every required course, mapped to the sections that
// still need it. The map is the search state; the solver's goal is to empty it.
func buildDemand(data *model.Dataset) (map[CourseUnit]SectionSet, error) {
	coursesByID := lo.KeyBy(data.Courses, func(course model.Course) model.CourseID {
		return course.ID
	})
	supportedByRooms := make(map[model.SessionType]bool)
	for _, room := range data.Rooms {
		for _, sessionType := range room.SessionTypes {
			supportedByRooms[sessionType] = true
		}
	}

	demand := make(map[CourseUnit]SectionSet)
	for _, rule := range data.Curriculum {
		course, ok := coursesByID[rule.CourseID]
		if !ok {
			return nil, &model.DataIntegrityError{
				Reason: fmt.Sprintf("curriculum rule references unknown course %v", rule.CourseID),
			}
		}

		for _, sessionType := range course.SessionTypes {
			// Project sessions occupy no room, so room support is moot for them.
			if sessionType != model.Project && !supportedByRooms[sessionType] {
				return nil, &model.DataIntegrityError{
					Reason: fmt.Sprintf("no room supports session type %v required by course %v", sessionType, course.ID),
				}
			}

			unit := CourseUnit{Course: course.ID, Session: sessionType}
			set, ok := demand[unit]
			if !ok {
				set = SectionSet{}
				demand[unit] = set
			}
			for _, section := range data.Sections {
				if rule.AppliesTo(section) {
					set[section.Key()] = section
				}
			}
		}
	}

	if err := checkSectionCoverage(data); err != nil {
		return nil, err
	}

	// Drop units no section needs so the solver never branches on them.
	for unit, set := range demand {
		if len(set) == 0 {
			delete(demand, unit)
		}
	}

	return demand, nil
}

// checkSectionCoverage rejects sections whose major matches no curriculum rule
// of their year even though the year has required courses: such a section
// carries an unknown major and would silently receive no classes.
func checkSectionCoverage(data *model.Dataset) error {
	rulesByYear := lo.GroupBy(data.Curriculum, func(rule model.CurriculumRule) int {
		return rule.Year
	})

	for _, section := range data.Sections {
		rules := rulesByYear[section.Year]
		if len(rules) == 0 {
			continue
		}
		covered := lo.SomeBy(rules, func(rule model.CurriculumRule) bool {
			return rule.AppliesTo(section)
		})
		if !covered {
			return &model.DataIntegrityError{
				Reason: fmt.Sprintf("section %v has major %q matching no curriculum rule for year %d", section.Key(), section.Major, section.Year),
			}
		}
	}
	return nil
}

// sortedUnits returns the demand's course units in deterministic order.
func sortedUnits(demand map[CourseUnit]SectionSet) []CourseUnit {
	units := lo.Keys(demand)
	sort.Slice(units, func(i, j int) bool {
		return units[i].less(units[j])
	})
	return units
}

// sortedSections orders a section set by composite key.
func sortedSections(set SectionSet) []model.Section {
	sections := lo.Values(set)
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Year != sections[j].Year {
			return sections[i].Year < sections[j].Year
		}
		return sections[i].ID < sections[j].ID
	})
	return sections
}
