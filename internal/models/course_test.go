package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCatalogue(t *testing.T) {
	courses := Courses()
	require.Len(t, courses, CourseCount)
	assert.Equal(t, Course{ID: CourseJava, Name: "Java", Ceiling: 600}, courses[0])
	assert.Equal(t, Course{ID: CourseDSA, Name: "DSA", Ceiling: 400}, courses[1])
	assert.Equal(t, Course{ID: CourseDatabases, Name: "Databases", Ceiling: 480}, courses[2])
	assert.Equal(t, Course{ID: CourseSpring, Name: "Spring", Ceiling: 550}, courses[3])
}

func TestParseCourse(t *testing.T) {
	for raw, want := range map[string]CourseID{"java": CourseJava, " DSA ": CourseDSA, "databases": CourseDatabases, "4": CourseSpring} {
		course, ok := ParseCourse(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, course.ID)
	}
	for _, raw := range []string{"", "0", "5", "cobol"} {
		_, ok := ParseCourse(raw)
		assert.False(t, ok, raw)
	}
}

func TestInvalidCourseIDPanics(t *testing.T) {
	assert.Panics(t, func() { MustCourse(0) })
	assert.Panics(t, func() { CoursePoints{}.Get(5) })
	assert.Panics(t, func() { Student{}.Course(-1) })
	assert.NotPanics(t, func() { MustCourse(CourseSpring) })
}

func TestCoursePoints(t *testing.T) {
	p := NewCoursePoints(1, 2, 3, 4)
	assert.Equal(t, 3, p.Get(CourseDatabases))
	p.Set(CourseDSA, 7)
	assert.Equal(t, NewCoursePoints(1, 7, 3, 4), p)
	assert.False(t, p.HasNegative())
	assert.True(t, NewCoursePoints(0, -1, 0, 0).HasNegative())
}

func TestCourseSlotsFollowCatalogueOrder(t *testing.T) {
	seen := map[int]bool{}
	for i, course := range Courses() {
		assert.Equal(t, i, course.ID.index(), course.Name)
		seen[course.ID.index()] = true
	}
	assert.Len(t, seen, CourseCount)

	var p CoursePoints
	for i, course := range Courses() {
		p.Set(course.ID, (i+1)*10)
	}
	assert.Equal(t, NewCoursePoints(10, 20, 30, 40), p)
}

func TestNotificationStatusText(t *testing.T) {
	raw, err := json.Marshal(NotificationPending)
	require.NoError(t, err)
	assert.Equal(t, `"pending"`, string(raw))

	var status NotificationStatus
	require.NoError(t, json.Unmarshal([]byte(`"notified"`), &status))
	assert.Equal(t, NotificationNotified, status)
	assert.Error(t, json.Unmarshal([]byte(`"done"`), &status))
	assert.False(t, NotificationStatus(7).Valid())
}

func TestStudentView(t *testing.T) {
	s := Student{ID: 10000, FirstName: "Alice", LastName: "van Dyke", Email: "alice@x.com"}
	s.SetCourse(CourseDSA, CourseProgress{Points: 400, Status: NotificationPending})

	assert.Equal(t, "Alice van Dyke", s.FullName())
	assert.Equal(t, NewCoursePoints(0, 400, 0, 0), s.Points())

	view := s.View()
	require.Len(t, view.Courses, CourseCount)
	assert.Equal(t, "DSA", view.Courses[1].Course.Name)
	assert.Equal(t, NotificationPending, view.Courses[1].Status)
}

func TestCourseRanking(t *testing.T) {
	assert.Equal(t, "n/a", CourseRanking(nil).String())
	assert.Equal(t, "Java, Spring", CourseRanking{"Java", "Spring"}.String())

	raw, err := json.Marshal(OverallStatistics{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"most_popular":[]`)
}
