package model

import (
	"fmt"
	"strconv"
	"strings"
)

type SessionType string

const (
	Lecture  SessionType = "Lecture"
	Lab      SessionType = "Lab"
	Tutorial SessionType = "Tutorial"
	Project  SessionType = "Project"
)

var sessionTypes = map[SessionType]bool{
	Lecture:  true,
	Lab:      true,
	Tutorial: true,
	Project:  true,
}

// ParseSessionType validates a raw session type string.
func ParseSessionType(raw string) (SessionType, error) {
	sessionType := SessionType(strings.TrimSpace(raw))
	if !sessionTypes[sessionType] {
		return "", fmt.Errorf("unknown session type %q", raw)
	}
	return sessionType, nil
}

type InstructorRole string

const (
	Professor         InstructorRole = "Professor"
	Doctor            InstructorRole = "Doctor"
	TeachingAssistant InstructorRole = "TeachingAssistant"
)

var instructorRoles = map[InstructorRole]bool{
	Professor:         true,
	Doctor:            true,
	TeachingAssistant: true,
}

func ParseInstructorRole(raw string) (InstructorRole, error) {
	role := InstructorRole(strings.TrimSpace(raw))
	if !instructorRoles[role] {
		return "", fmt.Errorf("unknown instructor role %q", raw)
	}
	return role, nil
}

type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sunday"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

var dayOrder = map[DayOfWeek]int{
	Sunday:    0,
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
}

// Order returns the position of the day within the week, starting at Sunday.
func (day DayOfWeek) Order() int {
	order, ok := dayOrder[day]
	if !ok {
		panic(fmt.Sprintf("unknown day of week %q", day))
	}
	return order
}

func ParseDayOfWeek(raw string) (DayOfWeek, error) {
	day := DayOfWeek(strings.TrimSpace(raw))
	if _, ok := dayOrder[day]; !ok {
		return "", fmt.Errorf("unknown day of week %q", raw)
	}
	return day, nil
}

// ClockTime is a time of day expressed as minutes since midnight.
type ClockTime int

// ParseClock parses an "HH:MM" string into a ClockTime.
func ParseClock(raw string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", raw)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", raw)
	}
	return ClockTime(hours*60 + minutes), nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

type (
	CourseID     int
	InstructorID int
	RoomID       int
	TimeSlotID   int
)

// MajorGeneral is the wildcard major: a curriculum rule carrying it applies to
// every major active in its year.
const MajorGeneral = "general"

type Course struct {
	ID           CourseID
	Name         string
	SessionTypes []SessionType
}

type Instructor struct {
	ID             InstructorID
	Name           string
	Role           InstructorRole
	Qualifications []CourseID
}

type Room struct {
	ID           RoomID
	SessionTypes []SessionType
	Capacity     int
}

type TimeSlot struct {
	ID    TimeSlotID
	Day   DayOfWeek
	Start ClockTime
	End   ClockTime
}

// SectionKey is the composite primary key of a Section.
type SectionKey struct {
	Year int
	ID   int
}

func (key SectionKey) String() string {
	return fmt.Sprintf("%d-%d", key.Year, key.ID)
}

type Section struct {
	ID           int
	Year         int
	GroupNumber  int
	Major        string
	StudentCount int
}

func (section Section) Key() SectionKey {
	return SectionKey{Year: section.Year, ID: section.ID}
}

// CurriculumRule states that every section of the given year and major must
// take the given course.
type CurriculumRule struct {
	Year     int
	Major    string
	CourseID CourseID
}

// AppliesTo reports whether the rule covers the section.
func (rule CurriculumRule) AppliesTo(section Section) bool {
	return rule.Year == section.Year && (rule.Major == MajorGeneral || rule.Major == section.Major)
}
