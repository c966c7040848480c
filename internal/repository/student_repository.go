package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/noah-isme/learning-tracker/internal/models"
)

// StudentRepository is the in-memory student registry. It owns student identity and
// per-course notification status, and mirrors the ledger's running point totals.
// Every mutation runs under one exclusive lock, so readers never see a points update
// without the status transition it triggers.
type StudentRepository struct {
	mu     sync.RWMutex
	table  map[int]*models.Student
	nextID int
}

// NewStudentRepository constructs an empty registry.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		table:  make(map[int]*models.Student),
		nextID: models.FirstStudentID,
	}
}

// Create registers a student and returns it with its assigned id.
func (r *StudentRepository) Create(firstName, lastName, email string) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findByEmail(email); ok {
		return models.Student{}, ErrDuplicateEmail
	}

	student := &models.Student{
		ID:        r.nextID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	r.table[student.ID] = student
	r.nextID++
	return *student, nil
}

// FindByID returns a copy of the student.
func (r *StudentRepository) FindByID(id int) (models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if student, ok := r.table[id]; ok {
		return *student, nil
	}
	return models.Student{}, ErrNotFound
}

// FindByEmail returns a copy of the student registered with the email.
func (r *StudentRepository) FindByEmail(email string) (models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if student, ok := r.findByEmail(email); ok {
		return *student, nil
	}
	return models.Student{}, ErrNotFound
}

// Exists reports whether the id belongs to a current student.
func (r *StudentRepository) Exists(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.table[id]
	return ok
}

// List returns copies of all current students ordered by id.
func (r *StudentRepository) List() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]models.Student, 0, len(r.table))
	for _, student := range r.table {
		students = append(students, *student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

// Count returns the number of current students.
func (r *StudentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

// ApplyPointAward adds the deltas to the student's totals without clamping and moves
// every course whose total reached its ceiling from NotComplete to Pending.
func (r *StudentRepository) ApplyPointAward(id int, points models.CoursePoints) (models.Student, error) {
	if points.HasNegative() {
		return models.Student{}, ErrNegativePoints
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.table[id]
	if !ok {
		return models.Student{}, ErrNotFound
	}

	for _, course := range models.Courses() {
		progress := student.Course(course.ID)
		progress.Points += points.Get(course.ID)
		if progress.Points >= course.Ceiling && progress.Status == models.NotificationNotComplete {
			progress.Status = models.NotificationPending
		}
		student.SetCourse(course.ID, progress)
	}
	return *student, nil
}

// SetNotificationStatus stores the status for one course. Moving backward is refused.
func (r *StudentRepository) SetNotificationStatus(id int, courseID models.CourseID, status models.NotificationStatus) error {
	models.MustCourse(courseID)
	if !status.Valid() {
		return fmt.Errorf("set notification status: unknown status %d", int(status))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.table[id]
	if !ok {
		return ErrNotFound
	}
	progress := student.Course(courseID)
	if status < progress.Status {
		return fmt.Errorf("set notification status %s -> %s: %w", progress.Status, status, ErrStatusRegression)
	}
	progress.Status = status
	student.SetCourse(courseID, progress)
	return nil
}

// Delete removes the student. Awards referencing the id are left in the ledger.
func (r *StudentRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.table[id]; !ok {
		return ErrNotFound
	}
	delete(r.table, id)
	return nil
}

// Reset drops every student. Ids keep counting from where they were.
func (r *StudentRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table = make(map[int]*models.Student)
}

func (r *StudentRepository) findByEmail(email string) (*models.Student, bool) {
	for _, student := range r.table {
		if student.Email == email {
			return student, true
		}
	}
	return nil, false
}
