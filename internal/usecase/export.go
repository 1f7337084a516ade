package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"mancarijo/internal/domain"
)

const exportSheet = "Pelamar"

var exportHeaders = []string{
	"STATUS", "NAMA", "NAMA PENGGUNA", "TEMPAT LAHIR", "TANGGAL LAHIR",
	"PENDIDIKAN TERAKHIR", "RATING", "TANGGAL",
}

// ExportApplicants writes the job's applicants and employees to an XLSX
// workbook with one row per person.
func (u *jobUsecase) ExportApplicants(ctx context.Context, session domain.Session, id string) ([]byte, error) {
	job, err := u.ownedJob(ctx, session, id)
	if err != nil {
		return nil, err
	}
	people, err := loadJobPeople(ctx, u.userRepo, job)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", endCell, headerStyle)

	row := 2
	groups := []struct {
		status string
		rows   []domain.PersonRow
	}{
		{"Pelamar", people.applicants},
		{"Bekerja", people.working},
		{"Berhenti", people.stopped},
	}
	for _, g := range groups {
		for _, p := range g.rows {
			user := people.users[p.ID]
			values := []any{
				g.status,
				p.Name,
				user.Username,
				deref(user.BirthPlace),
				deref(user.BirthDate),
				deref(user.LastEducation),
				p.Rating,
				p.Date,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(exportSheet, cell, v)
			}
			row++
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename names the workbook after the job id.
func ExportFilename(jobID string) string {
	return fmt.Sprintf("pelamar_%s.xlsx", jobID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
