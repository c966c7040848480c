package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
)

func newStatisticsForFixture(f *trackerFixture) *StatisticsService {
	return NewStatisticsService(f.awards, f.students, zap.NewNop())
}

func TestStatisticsOverallEmpty(t *testing.T) {
	f := newTrackerFixture(t)
	stats := newStatisticsForFixture(f).Overall(context.Background())

	require.Len(t, stats.Courses, models.CourseCount)
	for _, ranking := range []models.CourseRanking{stats.MostPopular, stats.LeastPopular, stats.HighestActivity, stats.LowestActivity, stats.Easiest, stats.Hardest} {
		assert.Equal(t, "n/a", ranking.String())
	}
}

func TestStatisticsOverallSingleCourse(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	f.award(t, alice, models.NewCoursePoints(10, 0, 0, 0))

	stats := newStatisticsForFixture(f).Overall(context.Background())
	assert.Equal(t, models.CourseRanking{"Java"}, stats.MostPopular)
	assert.Equal(t, models.CourseRanking{"Java"}, stats.LeastPopular)
	assert.Equal(t, 1, stats.Courses[0].Enrollment)
	assert.Zero(t, stats.Courses[1].Enrollment)
}

func TestStatisticsOverallAllTied(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	f.award(t, alice, models.NewCoursePoints(10, 10, 10, 10))

	stats := newStatisticsForFixture(f).Overall(context.Background())
	all := "Java, DSA, Databases, Spring"
	assert.Equal(t, all, stats.MostPopular.String())
	assert.Equal(t, all, stats.LeastPopular.String())
	assert.Equal(t, all, stats.Easiest.String())
	assert.Equal(t, all, stats.Hardest.String())
}

func TestStatisticsOverallRankings(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	bob := f.addStudent(t, "Bob", "Jones", "bob@x.com")
	f.award(t, alice, models.NewCoursePoints(10, 0, 0, 0))
	f.award(t, alice, models.NewCoursePoints(20, 0, 0, 0))
	f.award(t, bob, models.NewCoursePoints(30, 30, 0, 0))

	stats := newStatisticsForFixture(f).Overall(context.Background())
	java := stats.Courses[0]
	assert.Equal(t, 2, java.Enrollment)
	assert.Equal(t, 3, java.Activity)
	assert.InDelta(t, 20.0, java.AverageGrade, 1e-9)

	assert.Equal(t, models.CourseRanking{"Java"}, stats.MostPopular)
	assert.Equal(t, models.CourseRanking{"DSA"}, stats.LeastPopular)
	assert.Equal(t, models.CourseRanking{"Java"}, stats.HighestActivity)
	assert.Equal(t, models.CourseRanking{"DSA"}, stats.LowestActivity)
	assert.Equal(t, models.CourseRanking{"DSA"}, stats.Easiest)
	assert.Equal(t, models.CourseRanking{"Java"}, stats.Hardest)
}

func TestStatisticsCourseLeaderboard(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	bob := f.addStudent(t, "Bob", "Jones", "bob@x.com")
	carol := f.addStudent(t, "Carol", "White", "carol@x.com")
	f.award(t, alice, models.NewCoursePoints(500, 0, 0, 0))
	f.award(t, alice, models.NewCoursePoints(150, 0, 0, 0))
	f.award(t, carol, models.NewCoursePoints(12, 0, 0, 0))
	f.award(t, bob, models.NewCoursePoints(12, 4, 0, 0))

	board := newStatisticsForFixture(f).CourseLeaderboard(context.Background(), models.CourseJava)
	assert.Equal(t, "Java", board.Course.Name)
	require.Len(t, board.Rows, 3)
	assert.Equal(t, models.LeaderboardRow{StudentID: alice, Points: 600, Completed: 100.0}, board.Rows[0])
	assert.Equal(t, models.LeaderboardRow{StudentID: bob, Points: 12, Completed: 2.0}, board.Rows[1])
	assert.Equal(t, models.LeaderboardRow{StudentID: carol, Points: 12, Completed: 2.0}, board.Rows[2])

	dsa := newStatisticsForFixture(f).CourseLeaderboard(context.Background(), models.CourseDSA)
	require.Len(t, dsa.Rows, 1)
	assert.Equal(t, 1.0, dsa.Rows[0].Completed)

	assert.Empty(t, newStatisticsForFixture(f).CourseLeaderboard(context.Background(), models.CourseSpring).Rows)
}

func TestStatisticsLeaderboardMarksDeletedStudents(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	f.award(t, alice, models.NewCoursePoints(0, 0, 48, 0))
	require.NoError(t, f.students.Delete(alice))

	board := newStatisticsForFixture(f).CourseLeaderboard(context.Background(), models.CourseDatabases)
	require.Len(t, board.Rows, 1)
	assert.True(t, board.Rows[0].Orphaned)
	assert.Equal(t, 10.0, board.Rows[0].Completed)
}

func TestStatisticsLeaderboardInvalidCoursePanics(t *testing.T) {
	f := newTrackerFixture(t)
	assert.Panics(t, func() {
		newStatisticsForFixture(f).CourseLeaderboard(context.Background(), models.CourseID(5))
	})
}

func TestCompletionPercent(t *testing.T) {
	assert.Equal(t, 0.3, completionPercent(1, 400))
	assert.Equal(t, 1.0, completionPercent(5, 480))
	assert.Equal(t, 33.3, completionPercent(200, 600))
	assert.Equal(t, 66.7, completionPercent(400, 600))
	assert.Equal(t, 100.0, completionPercent(550, 550))
	assert.Equal(t, 0.0, completionPercent(0, 550))
}
