package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/service"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
	"github.com/noah-isme/learning-tracker/pkg/response"
)

type pointsService interface {
	Add(ctx context.Context, req service.AddPointsRequest) (*service.AwardResult, error)
	List(ctx context.Context) []models.PointAward
	ListByCourse(ctx context.Context, courseID models.CourseID) []models.PointAward
	Get(ctx context.Context, id int) (*models.PointAward, error)
	Delete(ctx context.Context, id int) error
	Reset(ctx context.Context)
}

// PointsPayload carries one award, one field per course.
type PointsPayload struct {
	Java      int `json:"java"`
	DSA       int `json:"dsa"`
	Databases int `json:"databases"`
	Spring    int `json:"spring"`
}

func (p PointsPayload) points() models.CoursePoints {
	return models.NewCoursePoints(p.Java, p.DSA, p.Databases, p.Spring)
}

// PointsHandler exposes point awards and the ledger.
type PointsHandler struct {
	points pointsService
}

// NewPointsHandler constructs PointsHandler.
func NewPointsHandler(points pointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

// Add godoc
// @Summary Award points to a student
// @Tags Points
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body PointsPayload true "Points per course"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/points [post]
func (h *PointsHandler) Add(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload PointsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.points.Add(c.Request.Context(), service.AddPointsRequest{StudentID: id, Points: payload.points()})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"award": result.Award, "student": result.Student.View()})
}

// ListAwards godoc
// @Summary List point awards
// @Tags Points
// @Produce json
// @Param course query string false "Only awards with points for this course (name or id)"
// @Success 200 {object} response.Envelope
// @Router /awards [get]
func (h *PointsHandler) ListAwards(c *gin.Context) {
	var awards []models.PointAward
	if raw, ok := c.GetQuery("course"); ok {
		course, err := courseParam(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		awards = h.points.ListByCourse(c.Request.Context(), course.ID)
	} else {
		awards = h.points.List(c.Request.Context())
	}
	response.JSON(c, http.StatusOK, awards, map[string]interface{}{"total": len(awards)})
}

// GetAward godoc
// @Summary Get one point award
// @Tags Points
// @Produce json
// @Param id path int true "Award ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /awards/{id} [get]
func (h *PointsHandler) GetAward(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	award, err := h.points.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, award)
}

// DeleteAward godoc
// @Summary Remove a point award from the ledger
// @Tags Points
// @Param id path int true "Award ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /awards/{id} [delete]
func (h *PointsHandler) DeleteAward(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.points.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset godoc
// @Summary Drop every student and point award
// @Tags Admin
// @Success 204
// @Router /admin/reset [post]
func (h *PointsHandler) Reset(c *gin.Context) {
	h.points.Reset(c.Request.Context())
	response.NoContent(c)
}
