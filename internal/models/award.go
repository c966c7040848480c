package models

import "time"

// FirstAwardID is the id assigned to the first recorded award.
const FirstAwardID = 10000

// PointAward is one accepted "add points" transaction. Records are immutable once stored.
type PointAward struct {
	ID        int          `json:"id"`
	StudentID int          `json:"student_id"`
	Points    CoursePoints `json:"points"`
	CreatedAt time.Time    `json:"created_at"`
}

// Qualifies reports whether the award carries positive points for the course.
func (a PointAward) Qualifies(id CourseID) bool {
	return a.Points.Get(id) > 0
}

// CompletionNotice carries what a delivery channel needs to tell a student they
// completed a course.
type CompletionNotice struct {
	StudentID  int      `json:"student_id"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	CourseID   CourseID `json:"course_id"`
	CourseName string   `json:"course_name"`
}
