package solver

import (
	"sort"

	"github.com/samber/lo"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// formGroups enumerates the candidate student groups for a course unit's
// remaining sections within one room. Sections sharing a group number are
// co-schedulable; a room fits floor(capacity / planningSize) of them per
// class. Larger groups come first to waste less room capacity and fragment
// fewer sessions, but correctness never depends on the order.
//
// A nil room (project sessions) places no capacity bound, so the whole
// remaining set is the single candidate.
func formGroups(remaining SectionSet, room *model.Room, planningSize int) [][]model.Section {
	if len(remaining) == 0 {
		return nil
	}
	if room == nil {
		return [][]model.Section{sortedSections(remaining)}
	}

	capacity := room.Capacity / planningSize
	if capacity == 0 {
		return nil
	}

	// Only sections sharing a year and a parent group number may be taught as
	// one class.
	buckets := lo.GroupBy(sortedSections(remaining), func(section model.Section) [2]int {
		return [2]int{section.Year, section.GroupNumber}
	})
	bucketKeys := lo.Keys(buckets)
	sort.Slice(bucketKeys, func(i, j int) bool {
		if bucketKeys[i][0] != bucketKeys[j][0] {
			return bucketKeys[i][0] < bucketKeys[j][0]
		}
		return bucketKeys[i][1] < bucketKeys[j][1]
	})

	var groups [][]model.Section
	for _, key := range bucketKeys {
		bucket := buckets[key]
		for size := min(capacity, len(bucket)); size >= 1; size-- {
			for _, group := range combinations(bucket, size) {
				if fits(group, room) {
					groups = append(groups, group)
				}
			}
		}
	}
	return groups
}

// fits reports whether the group's student count stays within the room's
// physical capacity. Planning slots bound the section count; oversized
// sections could still overflow the room without this.
func fits(group []model.Section, room *model.Room) bool {
	students := 0
	for _, section := range group {
		students += section.StudentCount
	}
	return students <= room.Capacity
}

// combinations enumerates every subset of the given size in lexicographic
// order over the input slice.
func combinations(sections []model.Section, size int) [][]model.Section {
	var result [][]model.Section
	combo := make([]model.Section, 0, size)

	var expand func(start int)
	expand = func(start int) {
		if len(combo) == size {
			result = append(result, append([]model.Section(nil), combo...))
			return
		}
		// Not enough sections left to complete the subset.
		for i := start; i <= len(sections)-(size-len(combo)); i++ {
			combo = append(combo, sections[i])
			expand(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	expand(0)

	return result
}
