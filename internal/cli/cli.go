// Package cli implements the interactive console front end of the tracker.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/service"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
)

const (
	msgNoInput      = "No input"
	msgExitHint     = "Enter 'exit' to exit the program."
	msgNotFoundByID = "No student is found for id=%s."
)

var whitespace = regexp.MustCompile(`\s+`)

type studentService interface {
	List(ctx context.Context) []models.Student
	Count(ctx context.Context) int
	Get(ctx context.Context, id int) (*models.Student, error)
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
}

type pointsService interface {
	Add(ctx context.Context, req service.AddPointsRequest) (*service.AwardResult, error)
}

type statisticsService interface {
	Overall(ctx context.Context) models.OverallStatistics
	CourseLeaderboard(ctx context.Context, courseID models.CourseID) models.CourseLeaderboard
}

type notificationService interface {
	SendPending(ctx context.Context) (int, error)
}

// Services are the use cases the console drives.
type Services struct {
	Students      studentService
	Points        pointsService
	Statistics    statisticsService
	Notifications notificationService
}

// App reads commands line by line and writes the dialogue to out.
type App struct {
	svc    Services
	logger *zap.Logger

	in  *bufio.Scanner
	out io.Writer
}

// New constructs the console app.
func New(svc Services, in io.Reader, out io.Writer, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{svc: svc, logger: logger, in: bufio.NewScanner(in), out: out}
}

// Run prints the banner and processes commands until "exit", the end of input or
// context cancellation.
func (a *App) Run(ctx context.Context) error {
	a.println("Learning Progress Tracker")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := a.readLine()
		if !ok {
			return a.in.Err()
		}
		command := strings.ToLower(strings.ReplaceAll(line, " ", "_"))
		switch command {
		case "":
			a.println(msgNoInput)
		case "add_students":
			a.addStudents(ctx)
		case "list":
			a.list(ctx)
		case "find":
			a.find(ctx)
		case "add_points":
			a.addPoints(ctx)
		case "statistics":
			a.statistics(ctx)
		case "notify":
			a.notify(ctx)
		case "exit":
			a.println("Bye!")
			return nil
		default:
			a.println(msgExitHint)
		}
	}
}

// readLine returns the next line trimmed with inner whitespace collapsed.
func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return whitespace.ReplaceAllString(strings.TrimSpace(a.in.Text()), " "), true
}

// prompt runs a sub-dialogue: each non-empty line other than "back" goes to handle.
// It reports false when input ended before "back".
func (a *App) prompt(ctx context.Context, message string, handle func(string)) bool {
	a.println(message)
	for {
		if ctx.Err() != nil {
			return false
		}
		line, ok := a.readLine()
		if !ok {
			return false
		}
		switch {
		case line == "":
			a.println(msgNoInput)
		case strings.EqualFold(line, "back"):
			return true
		default:
			handle(line)
		}
	}
}

func (a *App) addStudents(ctx context.Context) {
	if a.prompt(ctx, "Enter student credentials or 'back' to return:", func(line string) {
		a.println(a.addStudent(ctx, line))
	}) {
		a.printf("Total %d students have been added.\n", a.svc.Students.Count(ctx))
	}
}

func (a *App) addStudent(ctx context.Context, line string) string {
	fields := strings.Split(line, " ")
	if len(fields) < 3 {
		return "Incorrect credentials."
	}
	req := service.CreateStudentRequest{
		FirstName: fields[0],
		LastName:  strings.Join(fields[1:len(fields)-1], " "),
		Email:     fields[len(fields)-1],
	}
	switch {
	case !service.IsValidName(req.FirstName):
		return "Incorrect first name."
	case !service.IsValidLastName(req.LastName):
		return "Incorrect last name."
	case !service.IsValidEmail(req.Email):
		return "Incorrect email."
	}

	if _, err := a.svc.Students.Create(ctx, req); err != nil {
		if appErrors.Is(err, appErrors.ErrEmailTaken) {
			return "This email is already taken."
		}
		a.logger.Warn("add student failed", zap.Error(err))
		return "Incorrect credentials."
	}
	return "The student has been added."
}

func (a *App) list(ctx context.Context) {
	a.println("Students:")
	students := a.svc.Students.List(ctx)
	if len(students) == 0 {
		a.println("No students found.")
		return
	}
	for _, student := range students {
		a.println(strconv.Itoa(student.ID))
	}
}

func (a *App) find(ctx context.Context) {
	a.prompt(ctx, "Enter an id or 'back' to return:", func(line string) {
		id, err := strconv.Atoi(line)
		if err != nil {
			a.printf(msgNotFoundByID+"\n", line)
			return
		}
		student, err := a.svc.Students.Get(ctx, id)
		if err != nil {
			a.printf(msgNotFoundByID+"\n", line)
			return
		}
		p := student.Points()
		a.printf("%d points: Java=%d; DSA=%d; Databases=%d; Spring=%d\n",
			student.ID, p.Get(models.CourseJava), p.Get(models.CourseDSA), p.Get(models.CourseDatabases), p.Get(models.CourseSpring))
	})
}

func (a *App) addPoints(ctx context.Context) {
	a.prompt(ctx, "Enter an id and points or 'back' to return:", func(line string) {
		req, ok := parsePoints(line)
		if !ok {
			a.println("Incorrect points format.")
			return
		}
		if _, err := a.svc.Points.Add(ctx, req); err != nil {
			if appErrors.Is(err, appErrors.ErrNotFound) {
				a.printf(msgNotFoundByID+"\n", strconv.Itoa(req.StudentID))
				return
			}
			a.logger.Warn("add points failed", zap.Int("student_id", req.StudentID), zap.Error(err))
			a.println("Incorrect points format.")
			return
		}
		a.println("Points updated.")
	})
}

// parsePoints reads "<id> <java> <dsa> <databases> <spring>". Every value must be a
// non-negative integer and no course value may exceed its ceiling.
func parsePoints(line string) (service.AddPointsRequest, bool) {
	fields := strings.Split(line, " ")
	if len(fields) != 1+models.CourseCount {
		return service.AddPointsRequest{}, false
	}
	values := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil || v < 0 {
			return service.AddPointsRequest{}, false
		}
		values[i] = v
	}
	var points models.CoursePoints
	for i, course := range models.Courses() {
		points.Set(course.ID, values[i+1])
	}
	if !service.WithinCeilings(points) {
		return service.AddPointsRequest{}, false
	}
	return service.AddPointsRequest{StudentID: values[0], Points: points}, true
}

func (a *App) statistics(ctx context.Context) {
	a.println("Type the name of a course to see details or 'back' to quit:")
	a.printOverall(a.svc.Statistics.Overall(ctx))

	for {
		if ctx.Err() != nil {
			return
		}
		line, ok := a.readLine()
		if !ok {
			return
		}
		name := strings.ReplaceAll(line, " ", "_")
		switch {
		case name == "":
			a.println(msgNoInput)
		case strings.EqualFold(name, "back"):
			return
		default:
			course, found := courseByName(name)
			if !found {
				a.println("Unknown course.")
				continue
			}
			a.printLeaderboard(a.svc.Statistics.CourseLeaderboard(ctx, course.ID))
		}
	}
}

// courseByName accepts course names only; numeric ids are not course commands here.
func courseByName(name string) (models.Course, bool) {
	for _, course := range models.Courses() {
		if strings.EqualFold(course.Name, name) {
			return course, true
		}
	}
	return models.Course{}, false
}

func (a *App) printOverall(stats models.OverallStatistics) {
	a.printf("Most popular: %s\n", stats.MostPopular)
	a.printf("Least popular: %s\n", stats.LeastPopular)
	a.printf("Highest activity: %s\n", stats.HighestActivity)
	a.printf("Lowest activity: %s\n", stats.LowestActivity)
	a.printf("Easiest course: %s\n", stats.Easiest)
	a.printf("Hardest course: %s\n", stats.Hardest)
}

func (a *App) printLeaderboard(board models.CourseLeaderboard) {
	a.println(board.Course.Name)
	a.printf("%-7s %-6s %s\n", "id", "points", "completed")
	for _, row := range board.Rows {
		a.printf("%-7d %-6d %.1f%%\n", row.StudentID, row.Points, row.Completed)
	}
}

func (a *App) notify(ctx context.Context) {
	sent, err := a.svc.Notifications.SendPending(ctx)
	if err != nil {
		a.logger.Warn("some completion notices were not delivered", zap.Error(err))
	}
	a.printf("Total %d students have been notified.\n", sent)
}

func (a *App) println(line string) {
	fmt.Fprintln(a.out, line)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
