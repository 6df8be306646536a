package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

// ExporterService renders a candidate list as an Excel workbook.
type ExporterService interface {
	ExportCandidates(candidates []models.Candidate) ([]byte, error)
}

type exporterService struct{}

func NewExporterService() ExporterService {
	return &exporterService{}
}

// ExportCandidates writes one row per candidate plus one column per category
// that appears anywhere in the list, in the list's order.
func (s *exporterService) ExportCandidates(candidates []models.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Candidates"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	categories := collectCategories(candidates)

	headers := []string{"Name", "Email", "Phone", "LinkedIn", "GitHub", "Status", "Rating", "Overall Score"}
	headers = append(headers, categories...)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header cell: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "E", 24); err != nil {
		return nil, fmt.Errorf("failed to set column widths: %w", err)
	}

	for i := range candidates {
		c := &candidates[i]
		row := i + 2

		values := []interface{}{
			c.Name, c.Email, c.Phone, c.LinkedIn, c.GitHub,
			string(c.Status), c.Rating, c.OverallScore,
		}
		for _, category := range categories {
			if score, ok := c.Scores[category]; ok {
				values = append(values, score)
			} else {
				values = append(values, "")
			}
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func collectCategories(candidates []models.Candidate) []string {
	seen := map[string]bool{}
	for i := range candidates {
		for category := range candidates[i].Scores {
			seen[category] = true
		}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
