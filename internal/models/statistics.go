package models

import (
	"encoding/json"
	"strings"
)

// NotAvailable is displayed for a ranking that has no qualifying course.
const NotAvailable = "n/a"

// CourseSummary aggregates ledger activity for one course.
type CourseSummary struct {
	Course       Course  `json:"course"`
	Enrollment   int     `json:"enrollment"`
	Activity     int     `json:"activity"`
	AverageGrade float64 `json:"average_grade"`
}

// CourseRanking lists course names sharing an extreme value, in course id order.
type CourseRanking []string

// String joins the names or returns "n/a" when the ranking is empty.
func (r CourseRanking) String() string {
	if len(r) == 0 {
		return NotAvailable
	}
	return strings.Join(r, ", ")
}

// MarshalJSON encodes an empty ranking as an empty array.
func (r CourseRanking) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(r))
}

// OverallStatistics is the cross-course summary derived from the ledger.
type OverallStatistics struct {
	Courses         []CourseSummary `json:"courses"`
	MostPopular     CourseRanking   `json:"most_popular"`
	LeastPopular    CourseRanking   `json:"least_popular"`
	HighestActivity CourseRanking   `json:"highest_activity"`
	LowestActivity  CourseRanking   `json:"lowest_activity"`
	Easiest         CourseRanking   `json:"easiest"`
	Hardest         CourseRanking   `json:"hardest"`
}

// LeaderboardRow is one student's standing in a course.
type LeaderboardRow struct {
	StudentID int     `json:"student_id"`
	Points    int     `json:"points"`
	Completed float64 `json:"completed"`
	Orphaned  bool    `json:"orphaned,omitempty"`
}

// CourseLeaderboard ranks every student with activity in a course.
type CourseLeaderboard struct {
	Course Course           `json:"course"`
	Rows   []LeaderboardRow `json:"rows"`
}
