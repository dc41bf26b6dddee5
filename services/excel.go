package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"techpro-backoffice/models"
)

// ParseStudentsExcel reads a bulk-upload spreadsheet and returns the student
// rows, detecting the column order from the header row.
func ParseStudentsExcel(filePath string) ([]models.Student, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data in sheet")
	}

	cols := detectColumns(rows[0])

	var students []models.Student
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		name := extractField(row, cols["name"])
		email := extractField(row, cols["email"])
		phone := extractField(row, cols["phone"])

		// Required fields; incomplete rows are skipped, not fatal.
		if name == "" || email == "" || phone == "" {
			continue
		}

		students = append(students, models.Student{
			Name:          name,
			Email:         email,
			Phone:         phone,
			Education:     extractField(row, cols["education"]),
			DesiredCourse: extractField(row, cols["course"]),
			Batch:         extractField(row, cols["batch"]),
		})
	}

	return students, nil
}

// detectColumns maps logical fields to column indices by header name,
// falling back to the conventional order when a header is missing.
func detectColumns(header []string) map[string]int {
	cols := map[string]int{
		"name":      0,
		"email":     1,
		"phone":     2,
		"education": 3,
		"course":    4,
		"batch":     5,
	}

	for i, h := range header {
		switch normalized := strings.ToLower(strings.TrimSpace(h)); {
		case normalized == "name" || strings.Contains(normalized, "student name"):
			cols["name"] = i
		case strings.Contains(normalized, "email"):
			cols["email"] = i
		case strings.Contains(normalized, "phone") || strings.Contains(normalized, "mobile"):
			cols["phone"] = i
		case strings.Contains(normalized, "education") || strings.Contains(normalized, "qualification"):
			cols["education"] = i
		case strings.Contains(normalized, "course"):
			cols["course"] = i
		case strings.Contains(normalized, "batch"):
			cols["batch"] = i
		}
	}

	return cols
}

func extractField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ExportBookingsExcel renders the booking list as a spreadsheet for the
// back-office export endpoint.
func ExportBookingsExcel(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Name", "Email", "Phone", "Course", "Mode", "Date", "Time", "Status", "Counselor", "Reminder Sent"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, b := range bookings {
		values := []interface{}{
			b.ID, b.Name, b.Email, b.Phone, b.Course, b.Mode,
			b.SelectedDate, b.SelectedTime, b.Status, b.AssignedCounselor, b.ReminderSent,
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
