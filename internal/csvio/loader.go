// Package csvio loads the six entity tables from CSV files and writes solved
// timetables back out as flat CSV records.
package csvio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/EyadMostafa/automated-timetable-generator/internal/model"
)

// Expected file names inside the table directory.
const (
	CoursesFile     = "courses.csv"
	InstructorsFile = "instructors.csv"
	RoomsFile       = "rooms.csv"
	TimeSlotsFile   = "timeslots.csv"
	SectionsFile    = "sections.csv"
	CurriculumFile  = "curriculum.csv"
)

type courseRow struct {
	CourseID int    `csv:"course_id"`
	Name     string `csv:"course_name"`
	Types    string `csv:"type"`
}

type instructorRow struct {
	InstructorID   int    `csv:"instructor_id"`
	Name           string `csv:"name"`
	Role           string `csv:"role"`
	Qualifications string `csv:"qualifications"`
}

type roomRow struct {
	RoomID   int    `csv:"room_id"`
	Types    string `csv:"type"`
	Capacity int    `csv:"capacity"`
}

type timeSlotRow struct {
	TimeSlotID int    `csv:"time_slot_id"`
	Day        string `csv:"day"`
	Start      string `csv:"start_time"`
	End        string `csv:"end_time"`
}

type sectionRow struct {
	SectionID    int    `csv:"section_id"`
	Year         int    `csv:"year"`
	GroupNumber  int    `csv:"group_number"`
	Major        string `csv:"major"`
	StudentCount int    `csv:"student_count"`
}

type curriculumRow struct {
	Year     int    `csv:"year"`
	Major    string `csv:"major"`
	CourseID int    `csv:"course_id"`
}

// LoadDataset reads all six tables from dir and returns a validated entity
// store. Multi-value cells (course types, room types, qualifications) hold
// comma-delimited lists.
func LoadDataset(dir string) (*model.Dataset, error) {
	courseRows, err := readRows[courseRow](filepath.Join(dir, CoursesFile))
	if err != nil {
		return nil, err
	}
	instructorRows, err := readRows[instructorRow](filepath.Join(dir, InstructorsFile))
	if err != nil {
		return nil, err
	}
	roomRows, err := readRows[roomRow](filepath.Join(dir, RoomsFile))
	if err != nil {
		return nil, err
	}
	timeSlotRows, err := readRows[timeSlotRow](filepath.Join(dir, TimeSlotsFile))
	if err != nil {
		return nil, err
	}
	sectionRows, err := readRows[sectionRow](filepath.Join(dir, SectionsFile))
	if err != nil {
		return nil, err
	}
	curriculumRows, err := readRows[curriculumRow](filepath.Join(dir, CurriculumFile))
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(courseRows))
	for _, row := range courseRows {
		types := make([]model.SessionType, 0)
		for _, raw := range splitField(row.Types) {
			sessionType, err := model.ParseSessionType(raw)
			if err != nil {
				// Lenient on unknown types: scheduling proceeds with the rest.
				log.Printf("skipping invalid session type %q for course %v", raw, row.CourseID)
				continue
			}
			types = append(types, sessionType)
		}
		if len(types) == 0 {
			log.Printf("skipping course %v: no valid session types", row.CourseID)
			continue
		}
		courses = append(courses, model.Course{
			ID:           model.CourseID(row.CourseID),
			Name:         row.Name,
			SessionTypes: types,
		})
	}

	instructors := make([]model.Instructor, 0, len(instructorRows))
	for _, row := range instructorRows {
		role, err := model.ParseInstructorRole(row.Role)
		if err != nil {
			return nil, fmt.Errorf("instructor %v: %w", row.InstructorID, err)
		}
		qualifications := make([]model.CourseID, 0)
		for _, raw := range splitField(row.Qualifications) {
			courseID, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("instructor %v: malformed qualification %q", row.InstructorID, raw)
			}
			qualifications = append(qualifications, model.CourseID(courseID))
		}
		instructors = append(instructors, model.Instructor{
			ID:             model.InstructorID(row.InstructorID),
			Name:           row.Name,
			Role:           role,
			Qualifications: qualifications,
		})
	}

	rooms := make([]model.Room, 0, len(roomRows))
	for _, row := range roomRows {
		types := make([]model.SessionType, 0)
		for _, raw := range splitField(row.Types) {
			sessionType, err := model.ParseSessionType(raw)
			if err != nil {
				log.Printf("skipping invalid session type %q for room %v", raw, row.RoomID)
				continue
			}
			types = append(types, sessionType)
		}
		if len(types) == 0 {
			log.Printf("skipping room %v: no valid session types", row.RoomID)
			continue
		}
		rooms = append(rooms, model.Room{
			ID:           model.RoomID(row.RoomID),
			SessionTypes: types,
			Capacity:     row.Capacity,
		})
	}

	timeSlots := make([]model.TimeSlot, 0, len(timeSlotRows))
	for _, row := range timeSlotRows {
		day, err := model.ParseDayOfWeek(row.Day)
		if err != nil {
			return nil, fmt.Errorf("time slot %v: %w", row.TimeSlotID, err)
		}
		start, err := model.ParseClock(row.Start)
		if err != nil {
			return nil, fmt.Errorf("time slot %v: %w", row.TimeSlotID, err)
		}
		end, err := model.ParseClock(row.End)
		if err != nil {
			return nil, fmt.Errorf("time slot %v: %w", row.TimeSlotID, err)
		}
		timeSlots = append(timeSlots, model.TimeSlot{
			ID:    model.TimeSlotID(row.TimeSlotID),
			Day:   day,
			Start: start,
			End:   end,
		})
	}

	sections := make([]model.Section, 0, len(sectionRows))
	for _, row := range sectionRows {
		sections = append(sections, model.Section{
			ID:           row.SectionID,
			Year:         row.Year,
			GroupNumber:  row.GroupNumber,
			Major:        row.Major,
			StudentCount: row.StudentCount,
		})
	}

	curriculum := make([]model.CurriculumRule, 0, len(curriculumRows))
	for _, row := range curriculumRows {
		curriculum = append(curriculum, model.CurriculumRule{
			Year:     row.Year,
			Major:    row.Major,
			CourseID: model.CourseID(row.CourseID),
		})
	}

	return model.NewDataset(courses, instructors, rooms, timeSlots, sections, curriculum)
}

func readRows[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %v: %w", path, err)
	}
	defer file.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("cannot parse %v: %w", path, err)
	}
	return rows, nil
}

// splitField parses a comma-delimited multi-value cell, dropping empty items.
func splitField(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
