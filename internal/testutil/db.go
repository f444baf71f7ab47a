// Package testutil provides an in-memory database and seed helpers shared by
// the package test suites.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/database"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// unique returns a process-unique suffix for seeded business identifiers.
func unique() int64 {
	return seq.Add(1)
}

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// Each call gets an isolated database, so tests can run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database so the connection pool sees one store.
	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", unique())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestCustomer seeds a customer with an active AMC running for one year
// from now.
func CreateTestCustomer(t *testing.T, db *gorm.DB, siteName string) *domain.Customer {
	t.Helper()

	from := time.Now().UTC().AddDate(0, -1, 0)
	to := time.Now().UTC().AddDate(1, 0, 0)
	customer := &domain.Customer{
		JobNumber:       fmt.Sprintf("JB-%04d", unique()),
		SiteName:        siteName,
		Area:            "Central",
		Route:           1,
		ContactPerson:   "Site Manager",
		ContactPhone:    "9876543210",
		AMCValidFrom:    &from,
		AMCValidTo:      &to,
		ServicesPerYear: 12,
		AMCAmount:       48000,
		AMCStatus:       domain.AMCStatusActive,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// CreateTestTechnician seeds an active technician account.
func CreateTestTechnician(t *testing.T, db *gorm.DB, fullName string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:       fmt.Sprintf("tech%d", unique()),
		Email:          fmt.Sprintf("tech%d@example.com", unique()),
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		FullName:       fullName,
		Role:           domain.RoleTechnician,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestAdmin seeds an active admin account.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:       fmt.Sprintf("admin%d", unique()),
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		FullName:       "Admin",
		Role:           domain.RoleAdmin,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestCallback seeds a pending callback for the customer.
func CreateTestCallback(t *testing.T, db *gorm.DB, customerID uuid.UUID) *domain.CallBack {
	t.Helper()

	callback := &domain.CallBack{
		CallbackID:      fmt.Sprintf("CB-20260101-%03d", unique()),
		CustomerID:      customerID,
		ReportedProblem: "lift stuck between floors",
		CallerName:      "Front Desk",
		Status:          domain.CallbackPending,
	}
	require.NoError(t, db.Create(callback).Error)
	return callback
}

// CreateTestSchedule seeds a pending schedule for the customer on the given
// date.
func CreateTestSchedule(t *testing.T, db *gorm.DB, customerID uuid.UUID, scheduledDate time.Time) *domain.ServiceSchedule {
	t.Helper()

	schedule := &domain.ServiceSchedule{
		ScheduleID:    fmt.Sprintf("SRV-20260101-%04d", unique()),
		CustomerID:    customerID,
		ServiceType:   domain.ServiceTypeService,
		ScheduledDate: scheduledDate,
		Status:        domain.SchedulePending,
	}
	require.NoError(t, db.Create(schedule).Error)
	return schedule
}

// CreateTestRepair seeds a pending repair for the customer.
func CreateTestRepair(t *testing.T, db *gorm.DB, customerID uuid.UUID) *domain.Repair {
	t.Helper()

	repair := &domain.Repair{
		RepairID:    fmt.Sprintf("RP-20260101-%03d", unique()),
		CustomerID:  &customerID,
		Description: "door operator replacement",
		Status:      domain.RepairPending,
	}
	require.NoError(t, db.Create(repair).Error)
	return repair
}
