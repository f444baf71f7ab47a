// Package export renders reports into downloadable workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const dateFormat = "2006-01-02"

// CustomerAMCWorkbook renders the customer AMC period report as an xlsx
// workbook with summary, services, callbacks and materials sheets.
func CustomerAMCWorkbook(report *domain.CustomerAMCReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeServicesSheet(f, report.Services); err != nil {
		return nil, err
	}
	if err := writeCallbacksSheet(f, report.Callbacks); err != nil {
		return nil, err
	}
	if err := writeMaterialsSheet(f, report.Materials); err != nil {
		return nil, err
	}

	// Drop the default sheet created by NewFile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// Filename builds the download name for an AMC report workbook.
func Filename(report *domain.CustomerAMCReport, now time.Time) string {
	return fmt.Sprintf("amc_report_%s_%s.xlsx", report.JobNumber, now.Format("20060102_150405"))
}

func writeSummarySheet(f *excelize.File, report *domain.CustomerAMCReport) error {
	const sheet = "Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", "AMC Period Report"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	rows := [][2]interface{}{
		{"Site", report.SiteName},
		{"Job Number", report.JobNumber},
		{"Period Start", report.PeriodStart.Format(dateFormat)},
		{"Period End", report.PeriodEnd.Format(dateFormat)},
		{"Scheduled Visits", report.ScheduledCount},
		{"Completed Visits", report.CompletedCount},
		{"Overdue Visits", report.OverdueCount},
		{"On-Time Rate (%)", report.OnTimeRate},
		{"Avg Visit Duration (min)", report.AvgServiceMinutes},
		{"Avg Callback Response (min)", report.AvgResponseMinutes},
		{"Avg Rating", report.AvgRating},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+3)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{row[0], row[1]}); err != nil {
			return err
		}
	}
	return nil
}

func writeServicesSheet(f *excelize.File, services []domain.ServiceHistoryEntry) error {
	const sheet = "Services"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Schedule ID", "Scheduled Date", "Status", "Technicians", "Completed At", "Duration (min)", "Rating"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, svc := range services {
		completedAt := ""
		if svc.CompletedAt != nil {
			completedAt = svc.CompletedAt.Format(dateFormat)
		}
		var rating interface{}
		if svc.Rating != nil {
			rating = *svc.Rating
		}
		row := []interface{}{
			svc.ScheduleID,
			svc.ScheduledDate.Format(dateFormat),
			svc.Status,
			strings.Join(svc.TechnicianNames, ", "),
			completedAt,
			svc.DurationMinutes,
			rating,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeCallbacksSheet(f *excelize.File, callbacks []domain.CallbackHistoryEntry) error {
	const sheet = "Callbacks"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Callback ID", "Reported", "Status", "Problem", "Response (min)", "Completed At"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, cb := range callbacks {
		completedAt := ""
		if cb.CompletedAt != nil {
			completedAt = cb.CompletedAt.Format(dateFormat)
		}
		row := []interface{}{
			cb.CallbackID,
			cb.CreatedAt.Format(dateFormat),
			cb.Status,
			cb.ReportedProblem,
			cb.ResponseMinutes,
			completedAt,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeMaterialsSheet(f *excelize.File, materials []domain.MaterialSummaryLine) error {
	const sheet = "Materials"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Material", "Total Quantity", "Total Cost", "Services", "Callbacks", "Repairs", "First Used", "Last Used"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, m := range materials {
		firstUsed, lastUsed := "", ""
		if m.FirstUsed != nil {
			firstUsed = m.FirstUsed.Format(dateFormat)
		}
		if m.LastUsed != nil {
			lastUsed = m.LastUsed.Format(dateFormat)
		}
		row := []interface{}{
			m.MaterialName,
			m.TotalQuantity,
			m.TotalCost,
			m.ServiceCount,
			m.CallbackCount,
			m.RepairCount,
			firstUsed,
			lastUsed,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
