package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
)

func TestLiftStatusType_RequiresFollowup(t *testing.T) {
	tests := []struct {
		status domain.LiftStatusType
		want   bool
	}{
		{domain.LiftShutDown, true},
		{domain.LiftRunningWithError, true},
		{domain.LiftNormalRunning, false},
	}
	for _, tt := range tests {
		if got := tt.status.RequiresFollowup(); got != tt.want {
			t.Errorf("%s.RequiresFollowup() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCallbackStatusType_IsTerminal(t *testing.T) {
	terminal := map[domain.CallbackStatusType]bool{
		domain.CallbackPending:    false,
		domain.CallbackPicked:     false,
		domain.CallbackOnTheWay:   false,
		domain.CallbackAtSite:     false,
		domain.CallbackInProgress: false,
		domain.CallbackCompleted:  true,
		domain.CallbackCancelled:  true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestServiceSchedule_OverdueDays(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		schedule domain.ServiceSchedule
		want     int
	}{
		{
			"five days past due",
			domain.ServiceSchedule{Status: domain.SchedulePending, ScheduledDate: now.AddDate(0, 0, -5)},
			5,
		},
		{
			"future visits are not overdue",
			domain.ServiceSchedule{Status: domain.SchedulePending, ScheduledDate: now.AddDate(0, 0, 3)},
			0,
		},
		{
			"completed visits stop counting",
			domain.ServiceSchedule{Status: domain.ScheduleCompleted, ScheduledDate: now.AddDate(0, 0, -30)},
			0,
		},
		{
			"cancelled visits stop counting",
			domain.ServiceSchedule{Status: domain.ScheduleCancelled, ScheduledDate: now.AddDate(0, 0, -30)},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schedule.OverdueDays(now); got != tt.want {
				t.Errorf("OverdueDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServiceSchedule_IsHighPriority(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	tenDays := domain.ServiceSchedule{Status: domain.ScheduleOverdue, ScheduledDate: now.AddDate(0, 0, -10)}
	if tenDays.IsHighPriority(now) {
		t.Error("a visit exactly ten days overdue should not be high priority")
	}

	elevenDays := domain.ServiceSchedule{Status: domain.ScheduleOverdue, ScheduledDate: now.AddDate(0, 0, -11)}
	if !elevenDays.IsHighPriority(now) {
		t.Error("a visit eleven days overdue should be high priority")
	}
}

func TestServiceReport_DurationMinutes(t *testing.T) {
	checkIn := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	open := domain.ServiceReport{CheckInAt: checkIn}
	if got := open.DurationMinutes(); got != 0 {
		t.Errorf("open report DurationMinutes() = %v, want 0", got)
	}

	checkOut := checkIn.Add(90 * time.Minute)
	closed := domain.ServiceReport{CheckInAt: checkIn, CheckOutAt: &checkOut}
	if got := closed.DurationMinutes(); got != 90 {
		t.Errorf("DurationMinutes() = %v, want 90", got)
	}
}

func TestMaterialUsage_ParentCount(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name  string
		usage domain.MaterialUsage
		want  int
	}{
		{"no parent", domain.MaterialUsage{}, 0},
		{"schedule only", domain.MaterialUsage{ScheduleID: &id}, 1},
		{"callback and repair", domain.MaterialUsage{CallbackID: &id, RepairID: &id}, 2},
		{"all three", domain.MaterialUsage{ScheduleID: &id, CallbackID: &id, RepairID: &id}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.usage.ParentCount(); got != tt.want {
				t.Errorf("ParentCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAMCContract_PendingServices(t *testing.T) {
	tests := []struct {
		name     string
		contract domain.AMCContract
		want     int
	}{
		{"fresh contract", domain.AMCContract{TotalServices: 12}, 12},
		{"partially served", domain.AMCContract{TotalServices: 12, CompletedServices: 5}, 7},
		{"over-served clamps to zero", domain.AMCContract{TotalServices: 12, CompletedServices: 14}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.contract.PendingServices(); got != tt.want {
				t.Errorf("PendingServices() = %d, want %d", got, tt.want)
			}
		})
	}
}
