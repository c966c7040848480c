package models

import "fmt"

// FirstStudentID is the id assigned to the first registered student.
const FirstStudentID = 10000

// NotificationStatus tracks the completion notice for one course of one student.
// It only moves forward: NotComplete, Pending, Notified.
type NotificationStatus int

const (
	NotificationNotComplete NotificationStatus = iota
	NotificationPending
	NotificationNotified
)

// String returns the status label.
func (s NotificationStatus) String() string {
	switch s {
	case NotificationNotComplete:
		return "not_complete"
	case NotificationPending:
		return "pending"
	case NotificationNotified:
		return "notified"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Valid reports whether the status is one of the known states.
func (s NotificationStatus) Valid() bool {
	return s >= NotificationNotComplete && s <= NotificationNotified
}

// MarshalText renders the label for JSON payloads.
func (s NotificationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status label.
func (s *NotificationStatus) UnmarshalText(text []byte) error {
	for _, status := range []NotificationStatus{NotificationNotComplete, NotificationPending, NotificationNotified} {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown notification status %q", string(text))
}

// CourseProgress is the per-course state embedded in a student.
type CourseProgress struct {
	Points int                `json:"points"`
	Status NotificationStatus `json:"status"`
}

// Student represents a learner registered in the tracker.
type Student struct {
	ID        int                         `json:"id"`
	FirstName string                      `json:"first_name"`
	LastName  string                      `json:"last_name"`
	Email     string                      `json:"email"`
	Progress  [CourseCount]CourseProgress `json:"-"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Course returns the progress for the course.
func (s Student) Course(id CourseID) CourseProgress {
	return s.Progress[id.index()]
}

// SetCourse replaces the progress for the course.
func (s *Student) SetCourse(id CourseID, progress CourseProgress) {
	s.Progress[id.index()] = progress
}

// Points returns the raw cumulative totals per course.
func (s Student) Points() CoursePoints {
	var points CoursePoints
	for i, p := range s.Progress {
		points[i] = p.Points
	}
	return points
}

// StudentCourseView is the JSON shape of one course in a student payload.
type StudentCourseView struct {
	Course Course             `json:"course"`
	Points int                `json:"points"`
	Status NotificationStatus `json:"status"`
}

// StudentView is the JSON representation of a student including course progress.
type StudentView struct {
	Student
	Courses []StudentCourseView `json:"courses"`
}

// View expands the embedded progress with course metadata.
func (s Student) View() StudentView {
	courses := make([]StudentCourseView, 0, CourseCount)
	for _, course := range Courses() {
		progress := s.Course(course.ID)
		courses = append(courses, StudentCourseView{Course: course, Points: progress.Points, Status: progress.Status})
	}
	return StudentView{Student: s, Courses: courses}
}
