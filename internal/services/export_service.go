package services

import (
	"fmt"
	"io"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	profileSheet   = "Profile"
	statsSheet     = "Statistics"
	languagesSheet = "Languages"
)

// ExportService renders a profile and its repository statistics as an XLSX workbook
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteXLSX writes the workbook to w. stats may be nil, in which case only
// the profile sheet is written.
func (s *ExportService) WriteXLSX(w io.Writer, profile *models.UserProfile, stats *models.RepoStats) error {
	f, err := s.BuildWorkbook(profile, stats)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook creates the workbook; the caller closes it
func (s *ExportService) BuildWorkbook(profile *models.UserProfile, stats *models.RepoStats) (*excelize.File, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required for export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", profileSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	profileRows := [][]interface{}{
		{"Field", "Value"},
		{"Username", profile.Login},
		{"Name", models.Field(profile.Name)},
		{"Bio", models.Field(profile.Bio)},
		{"Company", models.Field(profile.Company)},
		{"Location", models.Field(profile.Location)},
	}
	if err := writeRows(f, profileSheet, profileRows); err != nil {
		f.Close()
		return nil, err
	}

	if stats == nil {
		return f, nil
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", statsSheet, err)
	}
	statsRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total repos", stats.RepoCount},
		{"Total stargazers", stats.StargazerCount},
		{"Total forks", stats.ForkCount},
		{"Average repo size", stats.FormattedAvgRepoSize()},
		{"Average repo size (bytes)", stats.AvgRepoSize},
		{"Forks excluded", stats.ForksExcluded},
	}
	if err := writeRows(f, statsSheet, statsRows); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(languagesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", languagesSheet, err)
	}
	languageRows := [][]interface{}{{"Language", "Repositories"}}
	for _, lc := range stats.Languages {
		languageRows = append(languageRows, []interface{}{lc.Language, lc.Count})
	}
	if err := writeRows(f, languagesSheet, languageRows); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
