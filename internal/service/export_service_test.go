package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
)

type leaderboardStub struct {
	board models.CourseLeaderboard
}

func (s leaderboardStub) CourseLeaderboard(ctx context.Context, courseID models.CourseID) models.CourseLeaderboard {
	return s.board
}

func newExportServiceForTest() *ExportService {
	board := models.CourseLeaderboard{
		Course: models.MustCourse(models.CourseJava),
		Rows: []models.LeaderboardRow{
			{StudentID: 10000, Points: 600, Completed: 100},
			{StudentID: 10001, Points: 12, Completed: 2},
		},
	}
	return NewExportService(leaderboardStub{board: board}, zap.NewNop())
}

func TestExportServiceCSV(t *testing.T) {
	result, err := newExportServiceForTest().CourseLeaderboard(context.Background(), models.CourseJava, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "java-leaderboard.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "id,points,completed\n10000,600,100.0%\n10001,12,2.0%\n", string(result.Content))
}

func TestExportServicePDF(t *testing.T) {
	result, err := newExportServiceForTest().CourseLeaderboard(context.Background(), models.CourseJava, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "java-leaderboard.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF-")))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	_, err := newExportServiceForTest().CourseLeaderboard(context.Background(), models.CourseJava, "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
