package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CourseID identifies one of the tracked courses.
type CourseID int

const (
	CourseJava      CourseID = 1
	CourseDSA       CourseID = 2
	CourseDatabases CourseID = 3
	CourseSpring    CourseID = 4
)

// CourseCount is the number of tracked courses.
const CourseCount = 4

// Course describes a tracked course and the points needed to complete it.
type Course struct {
	ID      CourseID `json:"id"`
	Name    string   `json:"name"`
	Ceiling int      `json:"ceiling"`
}

var courseCatalogue = map[CourseID]Course{
	CourseJava:      {ID: CourseJava, Name: "Java", Ceiling: 600},
	CourseDSA:       {ID: CourseDSA, Name: "DSA", Ceiling: 400},
	CourseDatabases: {ID: CourseDatabases, Name: "Databases", Ceiling: 480},
	CourseSpring:    {ID: CourseSpring, Name: "Spring", Ceiling: 550},
}

var courseOrder = [CourseCount]CourseID{CourseJava, CourseDSA, CourseDatabases, CourseSpring}

// courseSlot maps a course id to its position in per-course arrays.
var courseSlot = func() map[CourseID]int {
	slots := make(map[CourseID]int, CourseCount)
	for i, id := range courseOrder {
		slots[id] = i
	}
	return slots
}()

// Valid reports whether the id belongs to the catalogue.
func (id CourseID) Valid() bool {
	_, ok := courseCatalogue[id]
	return ok
}

func (id CourseID) index() int {
	slot, ok := courseSlot[id]
	if !ok {
		panic(fmt.Sprintf("models: invalid course id %d", int(id)))
	}
	return slot
}

// Courses returns the catalogue in course id order.
func Courses() []Course {
	courses := make([]Course, 0, CourseCount)
	for _, id := range courseOrder {
		courses = append(courses, courseCatalogue[id])
	}
	return courses
}

// LookupCourse returns the course registered under id.
func LookupCourse(id CourseID) (Course, bool) {
	course, ok := courseCatalogue[id]
	return course, ok
}

// MustCourse returns the course registered under id and panics for ids outside the
// catalogue. Course ids are closed at the boundary, so an unknown id here is a bug.
func MustCourse(id CourseID) Course {
	course, ok := courseCatalogue[id]
	if !ok {
		panic(fmt.Sprintf("models: invalid course id %d", int(id)))
	}
	return course
}

// ParseCourse resolves a course from its name (case-insensitive) or numeric id.
func ParseCourse(raw string) (Course, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Course{}, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return LookupCourse(CourseID(n))
	}
	for _, id := range courseOrder {
		if strings.EqualFold(courseCatalogue[id].Name, raw) {
			return courseCatalogue[id], true
		}
	}
	return Course{}, false
}

// CoursePoints holds one point value per course.
type CoursePoints [CourseCount]int

// NewCoursePoints builds CoursePoints in catalogue order.
func NewCoursePoints(java, dsa, databases, spring int) CoursePoints {
	return CoursePoints{java, dsa, databases, spring}
}

// Get returns the value for the course.
func (p CoursePoints) Get(id CourseID) int {
	return p[id.index()]
}

// Set stores the value for the course.
func (p *CoursePoints) Set(id CourseID, value int) {
	p[id.index()] = value
}

// HasNegative reports whether any course value is below zero.
func (p CoursePoints) HasNegative() bool {
	for _, v := range p {
		if v < 0 {
			return true
		}
	}
	return false
}
