package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/learning-tracker/internal/models"
)

// AwardRepository is the in-memory points ledger. Records are append-only; the slice
// stays in award id order.
type AwardRepository struct {
	mu      sync.RWMutex
	records []models.PointAward
	nextID  int
	now     func() time.Time
}

// NewAwardRepository constructs an empty ledger.
func NewAwardRepository() *AwardRepository {
	return &AwardRepository{
		nextID: models.FirstAwardID,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record appends an award for the student and returns it with its id.
// Callers must have checked that the student exists.
func (r *AwardRepository) Record(studentID int, points models.CoursePoints) (models.PointAward, error) {
	if points.HasNegative() {
		return models.PointAward{}, ErrNegativePoints
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	award := models.PointAward{
		ID:        r.nextID,
		StudentID: studentID,
		Points:    points,
		CreatedAt: r.now(),
	}
	r.records = append(r.records, award)
	r.nextID++
	return award, nil
}

// FindByID returns one award.
func (r *AwardRepository) FindByID(id int) (models.PointAward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx, ok := r.indexOf(id); ok {
		return r.records[idx], nil
	}
	return models.PointAward{}, ErrNotFound
}

// List returns every award in id order.
func (r *AwardRepository) List() []models.PointAward {
	r.mu.RLock()
	defer r.mu.RUnlock()

	awards := make([]models.PointAward, len(r.records))
	copy(awards, r.records)
	return awards
}

// ListByCourse returns the awards carrying positive points for the course.
func (r *AwardRepository) ListByCourse(courseID models.CourseID) []models.PointAward {
	models.MustCourse(courseID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	awards := make([]models.PointAward, 0)
	for _, award := range r.records {
		if award.Qualifies(courseID) {
			awards = append(awards, award)
		}
	}
	return awards
}

// Delete removes one award.
func (r *AwardRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indexOf(id)
	if !ok {
		return ErrNotFound
	}
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	return nil
}

// Reset drops every award. Ids keep counting from where they were.
func (r *AwardRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}

// indexOf relies on records being sorted by id.
func (r *AwardRepository) indexOf(id int) (int, bool) {
	idx := sort.Search(len(r.records), func(i int) bool { return r.records[i].ID >= id })
	if idx < len(r.records) && r.records[idx].ID == id {
		return idx, true
	}
	return 0, false
}
