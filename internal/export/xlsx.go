// Package export renders achievement lists to Excel workbooks for offline
// record keeping.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FryoPie/Student-portal/internal/models"
)

const sheetName = "Achievements"

var headers = []string{"Title", "Category", "Status", "Date", "Verified By", "Notes", "Submitted"}

// WriteAchievementsXLSX writes the list as a single-sheet workbook.
func WriteAchievementsXLSX(w io.Writer, achievements []models.Achievement) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, a := range achievements {
		label := models.CategoryLabels[a.Category]
		values := []interface{}{
			a.Title,
			label,
			string(a.Status),
			a.AchievementDate,
			a.VerifiedByName,
			a.VerificationNotes,
			a.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
