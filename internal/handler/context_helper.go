package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learning-tracker/internal/models"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
)

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+name+" "+strconv.Quote(raw))
	}
	return id, nil
}

// courseParam resolves a course by name or id. Unknown values never reach the core.
func courseParam(raw string) (models.Course, error) {
	course, ok := models.ParseCourse(raw)
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrUnknownCourse, "unknown course "+strconv.Quote(raw))
	}
	return course, nil
}
