package solver

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// Scorer computes the soft constraint penalty of a complete assignment. Lower
// is better; scoring the same assignment twice yields the same value.
type Scorer interface {
	Score(classes []ScheduledClass) float64
}

func NewScorer(data *model.Dataset, config Config) Scorer {
	return newPenaltyScorer(data, config)
}

type penaltyScorer struct {
	config Config

	// slotPos maps each time slot to its position within its day; lastPos
	// holds the final position of each day.
	slotPos map[model.TimeSlotID]int
	lastPos map[model.DayOfWeek]int
	days    []model.DayOfWeek
}

func newPenaltyScorer(data *model.Dataset, config Config) *penaltyScorer {
	byDay := lo.GroupBy(data.TimeSlots, func(slot model.TimeSlot) model.DayOfWeek {
		return slot.Day
	})

	slotPos := make(map[model.TimeSlotID]int, len(data.TimeSlots))
	lastPos := make(map[model.DayOfWeek]int, len(byDay))
	for day, slots := range byDay {
		sort.Slice(slots, func(i, j int) bool {
			return slots[i].Start < slots[j].Start
		})
		for position, slot := range slots {
			slotPos[slot.ID] = position
		}
		lastPos[day] = len(slots) - 1
	}

	days := lo.Keys(byDay)
	sort.Slice(days, func(i, j int) bool {
		return days[i].Order() < days[j].Order()
	})

	return &penaltyScorer{
		config:  config,
		slotPos: slotPos,
		lastPos: lastPos,
		days:    days,
	}
}

func (scorer *penaltyScorer) Score(classes []ScheduledClass) float64 {
	slotsPerSection := make(map[model.SectionKey][]model.TimeSlot)
	for _, class := range classes {
		for _, section := range class.Sections {
			slotsPerSection[section.Key()] = append(slotsPerSection[section.Key()], class.Slot)
		}
	}

	score := scorer.gapPenalty(slotsPerSection)
	score += scorer.edgeSlotPenalty(classes)
	score += scorer.distributionPenalty(slotsPerSection)
	return score
}

// gapPenalty charges for every idle slot a section spends between its first
// and last class of a day.
func (scorer *penaltyScorer) gapPenalty(slotsPerSection map[model.SectionKey][]model.TimeSlot) float64 {
	score := 0.0
	for _, slots := range slotsPerSection {
		byDay := lo.GroupBy(slots, func(slot model.TimeSlot) model.DayOfWeek {
			return slot.Day
		})
		for _, daySlots := range byDay {
			if len(daySlots) < 2 {
				continue
			}
			positions := lo.Map(daySlots, func(slot model.TimeSlot, _ int) int {
				return scorer.slotPos[slot.ID]
			})
			sort.Ints(positions)
			for i := 0; i < len(positions)-1; i++ {
				gap := positions[i+1] - positions[i] - 1
				if gap > 0 {
					score += scorer.config.GapPenalty * float64(gap)
				}
			}
		}
	}
	return score
}

// edgeSlotPenalty charges once per attending section for classes occupying the
// first or last slot of a day.
func (scorer *penaltyScorer) edgeSlotPenalty(classes []ScheduledClass) float64 {
	score := 0.0
	for _, class := range classes {
		position := scorer.slotPos[class.Slot.ID]
		if position == 0 || position == scorer.lastPos[class.Slot.Day] {
			score += scorer.config.EdgeSlotPenalty * float64(len(class.Sections))
		}
	}
	return score
}

// distributionPenalty is the per-section standard deviation of classes per day
// across the whole weekly grid, summed over sections.
func (scorer *penaltyScorer) distributionPenalty(slotsPerSection map[model.SectionKey][]model.TimeSlot) float64 {
	if len(scorer.days) < 2 {
		return 0
	}

	score := 0.0
	for _, slots := range slotsPerSection {
		counts := make([]float64, len(scorer.days))
		for _, slot := range slots {
			for i, day := range scorer.days {
				if day == slot.Day {
					counts[i]++
					break
				}
			}
		}
		score += stddev(counts)
	}
	return score
}

// stddev is the sample standard deviation.
func stddev(values []float64) float64 {
	mean := lo.Sum(values) / float64(len(values))
	sum := 0.0
	for _, value := range values {
		sum += (value - mean) * (value - mean)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
