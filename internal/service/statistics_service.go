package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
)

type ledgerReader interface {
	List() []models.PointAward
	ListByCourse(courseID models.CourseID) []models.PointAward
}

type registryReader interface {
	Exists(id int) bool
}

// StatisticsService derives course statistics by rescanning the ledger on every call.
type StatisticsService struct {
	awards   ledgerReader
	students registryReader
	logger   *zap.Logger
}

// NewStatisticsService constructs the statistics service.
func NewStatisticsService(awards ledgerReader, students registryReader, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{awards: awards, students: students, logger: logger}
}

// Overall summarises enrollment, activity and average grade per course and ranks the
// courses on each measure. Enrollment counts distinct students, activity counts award
// records, and the average grade is the mean of individual award values.
func (s *StatisticsService) Overall(ctx context.Context) models.OverallStatistics {
	courses := models.Courses()
	enrolled := make(map[models.CourseID]map[int]struct{}, len(courses))
	activity := make(map[models.CourseID]int, len(courses))
	gradeSum := make(map[models.CourseID]int, len(courses))
	for _, course := range courses {
		enrolled[course.ID] = make(map[int]struct{})
	}

	for _, award := range s.awards.List() {
		for _, course := range courses {
			points := award.Points.Get(course.ID)
			if points <= 0 {
				continue
			}
			enrolled[course.ID][award.StudentID] = struct{}{}
			activity[course.ID]++
			gradeSum[course.ID] += points
		}
	}

	summaries := make([]models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summary := models.CourseSummary{
			Course:     course,
			Enrollment: len(enrolled[course.ID]),
			Activity:   activity[course.ID],
		}
		if summary.Activity > 0 {
			summary.AverageGrade = float64(gradeSum[course.ID]) / float64(summary.Activity)
		}
		summaries = append(summaries, summary)
	}

	stats := models.OverallStatistics{Courses: summaries}
	stats.MostPopular, stats.LeastPopular = rankCourses(summaries, func(c models.CourseSummary) float64 { return float64(c.Enrollment) })
	stats.HighestActivity, stats.LowestActivity = rankCourses(summaries, func(c models.CourseSummary) float64 { return float64(c.Activity) })
	stats.Easiest, stats.Hardest = rankCourses(summaries, func(c models.CourseSummary) float64 { return c.AverageGrade })
	return stats
}

// CourseLeaderboard totals each student's awards for the course, clamped to the course
// ceiling, ordered by points descending and student id ascending.
func (s *StatisticsService) CourseLeaderboard(ctx context.Context, courseID models.CourseID) models.CourseLeaderboard {
	course := models.MustCourse(courseID)

	totals := make(map[int]int)
	for _, award := range s.awards.ListByCourse(course.ID) {
		totals[award.StudentID] += award.Points.Get(course.ID)
	}

	rows := make([]models.LeaderboardRow, 0, len(totals))
	for studentID, total := range totals {
		points := total
		if points > course.Ceiling {
			points = course.Ceiling
		}
		rows = append(rows, models.LeaderboardRow{
			StudentID: studentID,
			Points:    points,
			Completed: completionPercent(points, course.Ceiling),
			Orphaned:  s.students != nil && !s.students.Exists(studentID),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].StudentID < rows[j].StudentID
	})

	return models.CourseLeaderboard{Course: course, Rows: rows}
}

// rankCourses returns the courses holding the highest and lowest value among courses
// with any activity. Both lists are in course id order and compare values exactly.
func rankCourses(summaries []models.CourseSummary, value func(models.CourseSummary) float64) (highest, lowest models.CourseRanking) {
	var maxValue, minValue float64
	found := false
	for _, summary := range summaries {
		if summary.Activity == 0 {
			continue
		}
		v := value(summary)
		if !found {
			maxValue, minValue, found = v, v, true
			continue
		}
		if v > maxValue {
			maxValue = v
		}
		if v < minValue {
			minValue = v
		}
	}
	if !found {
		return nil, nil
	}

	for _, summary := range summaries {
		if summary.Activity == 0 {
			continue
		}
		v := value(summary)
		if v == maxValue {
			highest = append(highest, summary.Course.Name)
		}
		if v == minValue {
			lowest = append(lowest, summary.Course.Name)
		}
	}
	return highest, lowest
}

// completionPercent is 100 * points / ceiling rounded half-up to one decimal.
func completionPercent(points, ceiling int) float64 {
	tenths := (2000*points + ceiling) / (2 * ceiling)
	return float64(tenths) / 10
}
