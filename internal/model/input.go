package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type CourseRecord struct {
	CourseID int      `mapstructure:"courseId"`
	Name     string   `mapstructure:"name"`
	Types    []string `mapstructure:"types"`
}

type InstructorRecord struct {
	InstructorID   int    `mapstructure:"instructorId"`
	Name           string `mapstructure:"name"`
	Role           string `mapstructure:"role"`
	Qualifications []int  `mapstructure:"qualifications"`
}

type RoomRecord struct {
	RoomID   int      `mapstructure:"roomId"`
	Types    []string `mapstructure:"types"`
	Capacity int      `mapstructure:"capacity"`
}

type TimeSlotRecord struct {
	TimeSlotID int    `mapstructure:"timeSlotId"`
	Day        string `mapstructure:"day"`
	Start      string `mapstructure:"start"`
	End        string `mapstructure:"end"`
}

type SectionRecord struct {
	SectionID    int    `mapstructure:"sectionId"`
	Year         int    `mapstructure:"year"`
	GroupNumber  int    `mapstructure:"groupNumber"`
	Major        string `mapstructure:"major"`
	StudentCount int    `mapstructure:"studentCount"`
}

type CurriculumRecord struct {
	Year     int    `mapstructure:"year"`
	Major    string `mapstructure:"major"`
	CourseID int    `mapstructure:"courseId"`
}

// ModelInput is the raw JSON shape of a timetable problem instance.
type ModelInput struct {
	Courses     []CourseRecord     `mapstructure:"courses"`
	Instructors []InstructorRecord `mapstructure:"instructors"`
	Rooms       []RoomRecord       `mapstructure:"rooms"`
	TimeSlots   []TimeSlotRecord   `mapstructure:"timeSlots"`
	Sections    []SectionRecord    `mapstructure:"sections"`
	Curriculum  []CurriculumRecord `mapstructure:"curriculum"`
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var input ModelInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}

	return input, nil
}

// Dataset converts the raw input into a validated entity store.
func (input ModelInput) Dataset() (*Dataset, error) {
	courses := make([]Course, 0, len(input.Courses))
	for _, record := range input.Courses {
		types := make([]SessionType, 0, len(record.Types))
		for _, raw := range record.Types {
			sessionType, err := ParseSessionType(raw)
			if err != nil {
				return nil, integrityErrorf("course %v: %v", record.CourseID, err)
			}
			types = append(types, sessionType)
		}
		courses = append(courses, Course{
			ID:           CourseID(record.CourseID),
			Name:         record.Name,
			SessionTypes: types,
		})
	}

	instructors := make([]Instructor, 0, len(input.Instructors))
	for _, record := range input.Instructors {
		role, err := ParseInstructorRole(record.Role)
		if err != nil {
			return nil, integrityErrorf("instructor %v: %v", record.InstructorID, err)
		}
		instructors = append(instructors, Instructor{
			ID:   InstructorID(record.InstructorID),
			Name: record.Name,
			Role: role,
			Qualifications: lo.Map(record.Qualifications, func(id int, _ int) CourseID {
				return CourseID(id)
			}),
		})
	}

	rooms := make([]Room, 0, len(input.Rooms))
	for _, record := range input.Rooms {
		types := make([]SessionType, 0, len(record.Types))
		for _, raw := range record.Types {
			sessionType, err := ParseSessionType(raw)
			if err != nil {
				return nil, integrityErrorf("room %v: %v", record.RoomID, err)
			}
			types = append(types, sessionType)
		}
		rooms = append(rooms, Room{
			ID:           RoomID(record.RoomID),
			SessionTypes: types,
			Capacity:     record.Capacity,
		})
	}

	timeSlots := make([]TimeSlot, 0, len(input.TimeSlots))
	for _, record := range input.TimeSlots {
		day, err := ParseDayOfWeek(record.Day)
		if err != nil {
			return nil, integrityErrorf("time slot %v: %v", record.TimeSlotID, err)
		}
		start, err := ParseClock(record.Start)
		if err != nil {
			return nil, integrityErrorf("time slot %v: %v", record.TimeSlotID, err)
		}
		end, err := ParseClock(record.End)
		if err != nil {
			return nil, integrityErrorf("time slot %v: %v", record.TimeSlotID, err)
		}
		timeSlots = append(timeSlots, TimeSlot{
			ID:    TimeSlotID(record.TimeSlotID),
			Day:   day,
			Start: start,
			End:   end,
		})
	}

	sections := lo.Map(input.Sections, func(record SectionRecord, _ int) Section {
		return Section{
			ID:           record.SectionID,
			Year:         record.Year,
			GroupNumber:  record.GroupNumber,
			Major:        record.Major,
			StudentCount: record.StudentCount,
		}
	})

	curriculum := lo.Map(input.Curriculum, func(record CurriculumRecord, _ int) CurriculumRule {
		return CurriculumRule{
			Year:     record.Year,
			Major:    record.Major,
			CourseID: CourseID(record.CourseID),
		}
	})

	return NewDataset(courses, instructors, rooms, timeSlots, sections, curriculum)
}
