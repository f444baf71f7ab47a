package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.CustomerAMCReport {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	completed := start.AddDate(0, 0, 10)
	rating := 4
	used := start.AddDate(0, 0, 5)
	return &domain.CustomerAMCReport{
		CustomerID:  uuid.New(),
		JobNumber:   "JB-0042",
		SiteName:    "Sunview Towers",
		PeriodStart: start,
		PeriodEnd:   start.AddDate(1, 0, 0),
		Services: []domain.ServiceHistoryEntry{
			{
				ScheduleID:      "SRV-20260110-0001",
				ScheduledDate:   start.AddDate(0, 0, 9),
				Status:          "completed",
				TechnicianNames: []string{"Ravi Kumar", "Helper"},
				CompletedAt:     &completed,
				DurationMinutes: 55,
				Rating:          &rating,
			},
		},
		Callbacks: []domain.CallbackHistoryEntry{
			{
				CallbackID:      "CB-20260112-001",
				CreatedAt:       start.AddDate(0, 0, 11),
				Status:          "COMPLETED",
				ReportedProblem: "Lift stuck between floors",
				ResponseMinutes: 22,
				CompletedAt:     &completed,
			},
		},
		Materials: []domain.MaterialSummaryLine{
			{
				MaterialName:  "Wire rope",
				TotalQuantity: 15,
				TotalCost:     3750,
				ServiceCount:  1,
				CallbackCount: 1,
				FirstUsed:     &used,
				LastUsed:      &used,
			},
		},
		ScheduledCount: 1,
		CompletedCount: 1,
	}
}

func TestCustomerAMCWorkbook(t *testing.T) {
	buf, err := export.CustomerAMCWorkbook(sampleReport())
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Services", "Callbacks", "Materials"}, f.GetSheetList())

	site, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Sunview Towers", site)

	technicians, err := f.GetCellValue("Services", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar, Helper", technicians)

	material, err := f.GetCellValue("Materials", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Wire rope", material)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 30, 15, 0, time.UTC)
	got := export.Filename(&domain.CustomerAMCReport{JobNumber: "JB-0042"}, now)
	assert.Equal(t, "amc_report_JB-0042_20260828_093015.xlsx", got)
}
