package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
	"github.com/noah-isme/learning-tracker/pkg/export"
)

type leaderboardSource interface {
	CourseLeaderboard(ctx context.Context, courseID models.CourseID) models.CourseLeaderboard
}

// ExportResult is a rendered document ready to be served.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders course leaderboards into downloadable documents.
type ExportService struct {
	leaderboards leaderboardSource
	exporters    map[string]export.Exporter
	logger       *zap.Logger
}

// NewExportService constructs an ExportService. When no exporters are given the CSV
// and PDF exporters are registered.
func NewExportService(leaderboards leaderboardSource, logger *zap.Logger, exporters ...export.Exporter) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(exporters) == 0 {
		exporters = []export.Exporter{export.NewCSVExporter(), export.NewPDFExporter()}
	}
	byFormat := make(map[string]export.Exporter, len(exporters))
	for _, exporter := range exporters {
		byFormat[exporter.Extension()] = exporter
	}
	return &ExportService{leaderboards: leaderboards, exporters: byFormat, logger: logger}
}

// CourseLeaderboard renders the course leaderboard in the requested format.
func (s *ExportService) CourseLeaderboard(ctx context.Context, courseID models.CourseID, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	board := s.leaderboards.CourseLeaderboard(ctx, courseID)
	content, err := exporter.Render(LeaderboardDataset(board))
	if err != nil {
		s.logger.Error("render leaderboard export failed", zap.String("course", board.Course.Name), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-leaderboard.%s", strings.ToLower(board.Course.Name), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}

// LeaderboardDataset converts a leaderboard into the id/points/completed table.
func LeaderboardDataset(board models.CourseLeaderboard) export.Dataset {
	rows := make([][]string, 0, len(board.Rows))
	for _, row := range board.Rows {
		rows = append(rows, []string{
			strconv.Itoa(row.StudentID),
			strconv.Itoa(row.Points),
			strconv.FormatFloat(row.Completed, 'f', 1, 64) + "%",
		})
	}
	return export.Dataset{
		Title:   board.Course.Name,
		Headers: []string{"id", "points", "completed"},
		Rows:    rows,
	}
}
