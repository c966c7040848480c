package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/service"
	"github.com/noah-isme/learning-tracker/pkg/response"
)

type statisticsService interface {
	Overall(ctx context.Context) models.OverallStatistics
	CourseLeaderboard(ctx context.Context, courseID models.CourseID) models.CourseLeaderboard
}

type exportService interface {
	CourseLeaderboard(ctx context.Context, courseID models.CourseID, format string) (*service.ExportResult, error)
}

// StatisticsHandler exposes course statistics and leaderboard exports.
type StatisticsHandler struct {
	stats   statisticsService
	exports exportService
}

// NewStatisticsHandler constructs StatisticsHandler.
func NewStatisticsHandler(stats statisticsService, exports exportService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, exports: exports}
}

// Overall godoc
// @Summary Overall course statistics
// @Description Enrollment, activity and average grade per course with the six rankings.
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics [get]
func (h *StatisticsHandler) Overall(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.stats.Overall(c.Request.Context()))
}

// Course godoc
// @Summary Course leaderboard
// @Tags Statistics
// @Produce json
// @Param course path string true "Course name or id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /statistics/courses/{course} [get]
func (h *StatisticsHandler) Course(c *gin.Context) {
	course, err := courseParam(c.Param("course"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stats.CourseLeaderboard(c.Request.Context(), course.ID))
}

// Export godoc
// @Summary Download a course leaderboard
// @Tags Statistics
// @Produce text/csv
// @Produce application/pdf
// @Param course path string true "Course name or id"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /statistics/courses/{course}/export [get]
func (h *StatisticsHandler) Export(c *gin.Context) {
	course, err := courseParam(c.Param("course"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.CourseLeaderboard(c.Request.Context(), course.ID, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, result.Filename, result.ContentType, result.Content)
}
