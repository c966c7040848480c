package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/pkg/response"
)

// ListCourses godoc
// @Summary List tracked courses and their completion ceilings
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func ListCourses(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.Courses())
}
