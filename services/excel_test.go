package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"techpro-backoffice/models"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseStudentsExcel(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Name", "Email", "Phone", "Education", "Course", "Batch"},
		{"Asha Rao", "asha@example.com", "+919876543210", "B.Tech", "Go Fundamentals", "Jan-2026"},
		{"", "missing-name@example.com", "+919876543211"}, // skipped, no name
		{"Ravi Kumar", "ravi@example.com", "+919876543212"},
	})

	students, err := ParseStudentsExcel(path)
	require.NoError(t, err)
	require.Len(t, students, 2)

	require.Equal(t, "Asha Rao", students[0].Name)
	require.Equal(t, "asha@example.com", students[0].Email)
	require.Equal(t, "Go Fundamentals", students[0].DesiredCourse)
	require.Equal(t, "Jan-2026", students[0].Batch)
	require.Equal(t, "Ravi Kumar", students[1].Name)
}

func TestParseStudentsExcelReordersColumnsByHeader(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Email Address", "Student Name", "Mobile Number"},
		{"asha@example.com", "Asha Rao", "+919876543210"},
	})

	students, err := ParseStudentsExcel(path)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Asha Rao", students[0].Name)
	require.Equal(t, "asha@example.com", students[0].Email)
	require.Equal(t, "+919876543210", students[0].Phone)
}

func TestParseStudentsExcelMissingFile(t *testing.T) {
	_, err := ParseStudentsExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}

func TestExportBookingsExcel(t *testing.T) {
	f, err := ExportBookingsExcel([]models.Booking{
		{ID: "b1", Name: "Asha", Email: "asha@example.com", Mode: "online", Status: "Confirmed", AssignedCounselor: "Priya"},
		{ID: "b2", Name: "Ravi", Mode: "offline", Status: "assigned", ReminderSent: true},
	})
	require.NoError(t, err)

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "ID", rows[0][0])
	require.Equal(t, "b1", rows[1][0])
	require.Equal(t, "Priya", rows[1][9])
	require.Equal(t, "TRUE", rows[2][10])
}
