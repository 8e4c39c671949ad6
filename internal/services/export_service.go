package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the pending review queue as a downloadable file
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// PendingCSV renders the review queue as CSV
func (s *ExportService) PendingCSV(ctx context.Context, pending []PendingSocietySummary) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Solicitudes Pendientes", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Nombre", "Número de Registro", "Tipo", "Contacto", "Correo", "Teléfono", "Documentos", "Enviada"})

	for _, p := range pending {
		_ = writer.Write([]string{
			p.Name,
			p.RegistrationNumber,
			p.SocietyType,
			p.AdminName,
			p.AdminEmail,
			p.AdminPhone,
			fmt.Sprintf("%d", p.DocumentCount),
			p.SubmittedAt.Format("2006-01-02"),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pending_societies_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// PendingXLSX renders the review queue as an Excel workbook
func (s *ExportService) PendingXLSX(ctx context.Context, pending []PendingSocietySummary) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pendientes"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"Nombre", "Número de Registro", "Tipo", "Contacto", "Correo", "Teléfono", "Documentos", "Enviada"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, p := range pending {
		values := []any{
			p.Name,
			p.RegistrationNumber,
			p.SocietyType,
			p.AdminName,
			p.AdminEmail,
			p.AdminPhone,
			p.DocumentCount,
			p.SubmittedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pending_societies_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
