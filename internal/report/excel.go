// Package report renders anomaly and copy records into a spreadsheet for
// offline review, the export behind the statistics destination.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

const (
	anomaliesSheet = "Аномалии"
	copiesSheet    = "Копии"

	dateLayout = "02/01/2006"
)

// WriteXLSX writes one workbook with an anomalies sheet and a copies sheet.
func WriteXLSX(w io.Writer, anomalies []models.Anomaly, copies []models.Copy) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", anomaliesSheet); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(copiesSheet); err != nil {
		return fmt.Errorf("report: add sheet: %w", err)
	}

	if err := writeAnomalies(f, anomalies); err != nil {
		return err
	}
	if err := writeCopies(f, copies); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}
	return nil
}

func writeAnomalies(f *excelize.File, anomalies []models.Anomaly) error {
	headers := []interface{}{"Пользователь", "Дата", "Задание"}
	if err := f.SetSheetRow(anomaliesSheet, "A1", &headers); err != nil {
		return fmt.Errorf("report: anomalies header: %w", err)
	}
	for i, a := range anomalies {
		row := []interface{}{a.GithubLogin, a.CommitDate.Format(dateLayout), a.Task.Name}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(anomaliesSheet, cell, &row); err != nil {
			return fmt.Errorf("report: anomalies row %d: %w", i, err)
		}
	}
	return nil
}

func writeCopies(f *excelize.File, copies []models.Copy) error {
	headers := []interface{}{"Пользователь 1", "Пользователь 2", "Файл", "Сходство, %", "Дата обнаружения", "Задание"}
	if err := f.SetSheetRow(copiesSheet, "A1", &headers); err != nil {
		return fmt.Errorf("report: copies header: %w", err)
	}
	for i, c := range copies {
		row := []interface{}{
			c.GithubLogin1,
			c.GithubLogin2,
			c.Filename,
			c.SimilarityPercent,
			c.DetectedAt.Format(dateLayout),
			c.Task.Name,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(copiesSheet, cell, &row); err != nil {
			return fmt.Errorf("report: copies row %d: %w", i, err)
		}
	}
	return nil
}
