package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportingService is the read-only aggregation layer behind the report and
// dashboard endpoints. It never mutates state.
type ReportingService struct {
	customerRepo   *repository.CustomerRepository
	contractRepo   *repository.ContractRepository
	callbackRepo   *repository.CallbackRepository
	repairRepo     *repository.RepairRepository
	complaintRepo  *repository.ComplaintRepository
	scheduleRepo   *repository.ScheduleRepository
	reportRepo     *repository.ReportRepository
	materialRepo   *repository.MaterialRepository
	paymentRepo    *repository.PaymentRepository
	userRepo       *repository.UserRepository
	assignmentRepo *repository.AssignmentRepository
	logger         *zap.Logger
}

// NewReportingService creates a new reporting service
func NewReportingService(
	customerRepo *repository.CustomerRepository,
	contractRepo *repository.ContractRepository,
	callbackRepo *repository.CallbackRepository,
	repairRepo *repository.RepairRepository,
	complaintRepo *repository.ComplaintRepository,
	scheduleRepo *repository.ScheduleRepository,
	reportRepo *repository.ReportRepository,
	materialRepo *repository.MaterialRepository,
	paymentRepo *repository.PaymentRepository,
	userRepo *repository.UserRepository,
	assignmentRepo *repository.AssignmentRepository,
	logger *zap.Logger,
) *ReportingService {
	return &ReportingService{
		customerRepo:   customerRepo,
		contractRepo:   contractRepo,
		callbackRepo:   callbackRepo,
		repairRepo:     repairRepo,
		complaintRepo:  complaintRepo,
		scheduleRepo:   scheduleRepo,
		reportRepo:     reportRepo,
		materialRepo:   materialRepo,
		paymentRepo:    paymentRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// DailySummary reports one calendar day.
func (s *ReportingService) DailySummary(ctx context.Context, day time.Time) (*domain.PeriodSummaryReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return s.periodSummary(ctx, from, from.AddDate(0, 0, 1))
}

// MonthlySummary reports one calendar month with a per-day breakdown.
func (s *ReportingService) MonthlySummary(ctx context.Context, year int, month time.Month) (*domain.PeriodSummaryReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	summary, err := s.periodSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	daily, err := s.dailyBreakdown(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.DailyBreakdown = daily
	return summary, nil
}

// YearlySummary reports one calendar year with a per-month breakdown.
func (s *ReportingService) YearlySummary(ctx context.Context, year int) (*domain.PeriodSummaryReport, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	summary, err := s.periodSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthlyBreakdown(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.MonthlyBreakdown = monthly
	return summary, nil
}

func (s *ReportingService) periodSummary(ctx context.Context, from, to time.Time) (*domain.PeriodSummaryReport, error) {
	serviceCounts, err := s.scheduleRepo.StatusCountsInPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("count schedules: %w", err)
	}
	callbackCounts, err := s.callbackRepo.StatusCountsInPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("count callbacks: %w", err)
	}
	repairCounts, err := s.repairRepo.StatusCountsInPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("count repairs: %w", err)
	}
	adhoc, err := s.scheduleRepo.CountAdhocInPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("count adhoc services: %w", err)
	}
	technicians, err := s.technicianPerformance(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.PeriodSummaryReport{
		PeriodStart:   from,
		PeriodEnd:     to,
		Services:      jobTypeSummary(serviceCounts, string(domain.ScheduleCompleted)),
		Callbacks:     jobTypeSummary(callbackCounts, string(domain.CallbackCompleted)),
		Repairs:       jobTypeSummary(repairCounts, string(domain.RepairCompleted)),
		AdhocServices: adhoc,
		Technicians:   technicians,
	}, nil
}

// jobTypeSummary folds raw status counts into totals. The completion rate
// is zero for an empty period, never NaN.
func jobTypeSummary(counts domain.StatusCounts, completedKey string) domain.JobTypeSummary {
	var total int64
	for _, n := range counts {
		total += n
	}
	completed := counts[completedKey]

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}
	return domain.JobTypeSummary{
		Total:          total,
		Completed:      completed,
		StatusCounts:   counts,
		CompletionRate: rate,
	}
}

func (s *ReportingService) technicianPerformance(ctx context.Context, from, to time.Time) ([]domain.TechnicianPerformance, error) {
	role := domain.RoleTechnician
	technicians, _, err := s.userRepo.List(ctx, repository.UserFilters{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}

	schedules, err := s.scheduleRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	callbacks, err := s.callbackRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("list callbacks: %w", err)
	}
	repairs, _, err := s.repairRepo.List(ctx, repository.RepairFilters{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}

	completedServices := map[uuid.UUID]*domain.ServiceSchedule{}
	for i := range schedules {
		if schedules[i].Status == domain.ScheduleCompleted {
			completedServices[schedules[i].ID] = &schedules[i]
		}
	}
	completedCallbacks := map[uuid.UUID]bool{}
	for _, cb := range callbacks {
		if cb.Status == domain.CallbackCompleted {
			completedCallbacks[cb.ID] = true
		}
	}
	completedRepairs := map[uuid.UUID]bool{}
	for _, rp := range repairs {
		if rp.Status == domain.RepairCompleted {
			completedRepairs[rp.ID] = true
		}
	}

	var out []domain.TechnicianPerformance
	for _, tech := range technicians {
		serviceJobs, err := s.technicianJobSet(ctx, domain.JobTypeService, tech.ID)
		if err != nil {
			return nil, err
		}
		// Legacy slot columns still carry assignments made before the
		// association table existed.
		for id, schedule := range completedServices {
			if legacySlotHolds(schedule, tech.ID) {
				serviceJobs[id] = true
			}
		}
		callbackJobs, err := s.technicianJobSet(ctx, domain.JobTypeCallback, tech.ID)
		if err != nil {
			return nil, err
		}
		repairJobs, err := s.technicianJobSet(ctx, domain.JobTypeRepair, tech.ID)
		if err != nil {
			return nil, err
		}

		perf := domain.TechnicianPerformance{
			TechnicianID:   tech.ID,
			TechnicianName: tech.FullName,
		}
		for id := range completedServices {
			if serviceJobs[id] {
				perf.ServicesCompleted++
			}
		}
		for id := range completedCallbacks {
			if callbackJobs[id] {
				perf.CallbacksCompleted++
			}
		}
		for id := range completedRepairs {
			if repairJobs[id] {
				perf.RepairsCompleted++
			}
		}
		perf.TotalCompleted = perf.ServicesCompleted + perf.CallbacksCompleted + perf.RepairsCompleted
		if perf.TotalCompleted > 0 {
			out = append(out, perf)
		}
	}
	return out, nil
}

func (s *ReportingService) technicianJobSet(ctx context.Context, jobType domain.JobTypeType, technicianID uuid.UUID) (map[uuid.UUID]bool, error) {
	ids, err := s.assignmentRepo.ListJobIDsForTechnician(ctx, jobType, technicianID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s jobs for technician: %w", jobType, err)
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func legacySlotHolds(schedule *domain.ServiceSchedule, technicianID uuid.UUID) bool {
	for _, slot := range []*uuid.UUID{schedule.TechnicianID, schedule.Technician2ID, schedule.Technician3ID} {
		if slot != nil && *slot == technicianID {
			return true
		}
	}
	return false
}

func (s *ReportingService) dailyBreakdown(ctx context.Context, from, to time.Time) ([]domain.DailyBucket, error) {
	schedules, callbacks, repairs, err := s.periodLists(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*domain.DailyBucket{}
	order := []string{}
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		buckets[key] = &domain.DailyBucket{Date: key}
		order = append(order, key)
	}

	for _, sched := range schedules {
		if b, ok := buckets[sched.ScheduledDate.UTC().Format("2006-01-02")]; ok {
			b.Services++
		}
	}
	for _, cb := range callbacks {
		if b, ok := buckets[cb.CreatedAt.UTC().Format("2006-01-02")]; ok {
			b.Callbacks++
		}
	}
	for _, rp := range repairs {
		if b, ok := buckets[rp.CreatedAt.UTC().Format("2006-01-02")]; ok {
			b.Repairs++
		}
	}

	out := make([]domain.DailyBucket, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	return out, nil
}

func (s *ReportingService) monthlyBreakdown(ctx context.Context, from, to time.Time) ([]domain.MonthlyBucket, error) {
	schedules, callbacks, repairs, err := s.periodLists(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*domain.MonthlyBucket{}
	order := []string{}
	for month := from; month.Before(to); month = month.AddDate(0, 1, 0) {
		key := month.Format("2006-01")
		buckets[key] = &domain.MonthlyBucket{Month: key}
		order = append(order, key)
	}

	for _, sched := range schedules {
		if b, ok := buckets[sched.ScheduledDate.UTC().Format("2006-01")]; ok {
			b.Services++
		}
	}
	for _, cb := range callbacks {
		if b, ok := buckets[cb.CreatedAt.UTC().Format("2006-01")]; ok {
			b.Callbacks++
		}
	}
	for _, rp := range repairs {
		if b, ok := buckets[rp.CreatedAt.UTC().Format("2006-01")]; ok {
			b.Repairs++
		}
	}

	out := make([]domain.MonthlyBucket, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	return out, nil
}

func (s *ReportingService) periodLists(ctx context.Context, from, to time.Time) ([]domain.ServiceSchedule, []domain.CallBack, []domain.Repair, error) {
	schedules, err := s.scheduleRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list schedules: %w", err)
	}
	callbacks, err := s.callbackRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list callbacks: %w", err)
	}
	repairs, _, err := s.repairRepo.List(ctx, repository.RepairFilters{From: &from, To: &to})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list repairs: %w", err)
	}
	return schedules, callbacks, repairs, nil
}

// CustomerAMC builds the per-customer AMC period report. The window is the
// explicit from/to when both are given, otherwise the customer's AMC dates,
// otherwise the active contract's dates. With no window anywhere the request
// is a bad one.
func (s *ReportingService) CustomerAMC(ctx context.Context, customerID uuid.UUID, from, to *time.Time) (*domain.CustomerAMCReport, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	start, end, err := s.resolveWindow(ctx, customer, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.CustomerAMCReport{
		CustomerID:  customer.ID,
		JobNumber:   customer.JobNumber,
		SiteName:    customer.SiteName,
		PeriodStart: start,
		PeriodEnd:   end,
	}

	if err := s.fillServiceHistory(ctx, report, customer.ID, start, end); err != nil {
		return nil, err
	}
	if err := s.fillCallbackHistory(ctx, report, customer.ID, start, end); err != nil {
		return nil, err
	}

	usages, err := s.materialRepo.ListInPeriod(ctx, start, end, &customer.ID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	report.Materials = consolidateMaterials(usages)

	return report, nil
}

func (s *ReportingService) resolveWindow(ctx context.Context, customer *domain.Customer, from, to *time.Time) (time.Time, time.Time, error) {
	if from != nil && to != nil {
		return *from, *to, nil
	}
	if customer.AMCValidFrom != nil && customer.AMCValidTo != nil {
		return *customer.AMCValidFrom, *customer.AMCValidTo, nil
	}
	contract, err := s.contractRepo.ActiveForCustomer(ctx, customer.ID, time.Now().UTC())
	if err == nil {
		return contract.StartDate, contract.EndDate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, time.Time{}, fmt.Errorf("get active contract: %w", err)
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: customer has no AMC period to report on", ErrBadRequest)
}

func (s *ReportingService) fillServiceHistory(ctx context.Context, report *domain.CustomerAMCReport, customerID uuid.UUID, from, to time.Time) error {
	schedules, err := s.scheduleRepo.ListInPeriod(ctx, from, to, &customerID)
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}

	scheduleIDs := make([]uuid.UUID, 0, len(schedules))
	for _, sched := range schedules {
		scheduleIDs = append(scheduleIDs, sched.ID)
	}
	visitReports, err := s.reportRepo.ListForSchedules(ctx, scheduleIDs)
	if err != nil {
		return fmt.Errorf("list visit reports: %w", err)
	}
	reportsBySchedule := map[uuid.UUID][]domain.ServiceReport{}
	for _, vr := range visitReports {
		reportsBySchedule[vr.ScheduleID] = append(reportsBySchedule[vr.ScheduleID], vr)
	}

	var totalMinutes, totalRating float64
	var timedVisits, ratedVisits int64

	for _, sched := range schedules {
		entry := domain.ServiceHistoryEntry{
			ScheduleID:    sched.ScheduleID,
			ScheduledDate: sched.ScheduledDate,
			Status:        string(sched.Status),
			CompletedAt:   sched.CompletedAt,
		}

		assignments, err := s.assignmentRepo.ListForJob(ctx, domain.JobTypeService, sched.ID)
		if err != nil {
			return fmt.Errorf("list schedule technicians: %w", err)
		}
		for _, a := range assignments {
			if a.Technician != nil {
				entry.TechnicianNames = append(entry.TechnicianNames, a.Technician.FullName)
			}
		}

		for _, vr := range reportsBySchedule[sched.ID] {
			if minutes := vr.DurationMinutes(); minutes > 0 {
				entry.DurationMinutes = minutes
				totalMinutes += minutes
				timedVisits++
			}
			if vr.Rating != nil {
				entry.Rating = vr.Rating
				totalRating += float64(*vr.Rating)
				ratedVisits++
			}
		}

		report.ScheduledCount++
		switch sched.Status {
		case domain.ScheduleCompleted:
			report.CompletedCount++
		case domain.ScheduleOverdue:
			report.OverdueCount++
		}
		report.Services = append(report.Services, entry)
	}

	if timedVisits > 0 {
		report.AvgServiceMinutes = totalMinutes / float64(timedVisits)
	}
	if ratedVisits > 0 {
		report.AvgRating = totalRating / float64(ratedVisits)
	}
	if report.ScheduledCount > 0 {
		report.OnTimeRate = float64(report.CompletedCount-report.OverdueCount) / float64(report.ScheduledCount) * 100
	}
	return nil
}

func (s *ReportingService) fillCallbackHistory(ctx context.Context, report *domain.CustomerAMCReport, customerID uuid.UUID, from, to time.Time) error {
	callbacks, err := s.callbackRepo.ListInPeriod(ctx, from, to, &customerID)
	if err != nil {
		return fmt.Errorf("list callbacks: %w", err)
	}

	var totalResponse float64
	var responded int64
	for _, cb := range callbacks {
		entry := domain.CallbackHistoryEntry{
			CallbackID:      cb.CallbackID,
			CreatedAt:       cb.CreatedAt,
			Status:          string(cb.Status),
			ReportedProblem: cb.ReportedProblem,
			CompletedAt:     cb.CompletedAt,
		}
		if cb.PickedAt != nil {
			entry.ResponseMinutes = cb.PickedAt.Sub(cb.CreatedAt).Minutes()
			totalResponse += entry.ResponseMinutes
			responded++
		}
		report.Callbacks = append(report.Callbacks, entry)
	}
	if responded > 0 {
		report.AvgResponseMinutes = totalResponse / float64(responded)
	}
	return nil
}

// consolidateMaterials groups raw usage rows by material name, keeping
// per-job-type counts and the first and last usage dates.
func consolidateMaterials(usages []domain.MaterialUsage) []domain.MaterialSummaryLine {
	byName := map[string]*domain.MaterialSummaryLine{}
	order := []string{}
	for i := range usages {
		u := &usages[i]
		line, ok := byName[u.MaterialName]
		if !ok {
			line = &domain.MaterialSummaryLine{MaterialName: u.MaterialName}
			byName[u.MaterialName] = line
			order = append(order, u.MaterialName)
		}
		line.TotalQuantity += u.Quantity
		line.TotalCost += u.TotalCost
		switch {
		case u.ScheduleID != nil:
			line.ServiceCount++
		case u.CallbackID != nil:
			line.CallbackCount++
		case u.RepairID != nil:
			line.RepairCount++
		}
		used := u.UsedDate
		if line.FirstUsed == nil || used.Before(*line.FirstUsed) {
			line.FirstUsed = &used
		}
		if line.LastUsed == nil || used.After(*line.LastUsed) {
			line.LastUsed = &used
		}
	}

	out := make([]domain.MaterialSummaryLine, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// TechnicianMonthly builds the per-technician monthly performance report.
func (s *ReportingService) TechnicianMonthly(ctx context.Context, technicianID uuid.UUID, year int, month time.Month) (*domain.TechnicianMonthlyReport, error) {
	tech, err := s.userRepo.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	out := &domain.TechnicianMonthlyReport{
		TechnicianID:   tech.ID,
		TechnicianName: tech.FullName,
		Year:           year,
		Month:          int(month),
	}

	serviceJobs, err := s.technicianJobSet(ctx, domain.JobTypeService, technicianID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.scheduleRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	routes := map[int]bool{}
	for i := range schedules {
		sched := &schedules[i]
		if !serviceJobs[sched.ID] && !legacySlotHolds(sched, technicianID) {
			continue
		}
		out.ServicesAssigned++
		if sched.Status == domain.ScheduleCompleted {
			out.ServicesCompleted++
		}
		customer, err := s.customerRepo.GetByID(ctx, sched.CustomerID)
		if err == nil {
			routes[customer.Route] = true
		}
	}
	for route := range routes {
		out.RoutesCovered = append(out.RoutesCovered, route)
	}

	callbackJobs, err := s.technicianJobSet(ctx, domain.JobTypeCallback, technicianID)
	if err != nil {
		return nil, err
	}
	callbacks, err := s.callbackRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("list callbacks: %w", err)
	}
	for _, cb := range callbacks {
		if callbackJobs[cb.ID] {
			out.CallbacksWorked++
		}
	}

	repairJobs, err := s.technicianJobSet(ctx, domain.JobTypeRepair, technicianID)
	if err != nil {
		return nil, err
	}
	repairs, _, err := s.repairRepo.List(ctx, repository.RepairFilters{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	for _, rp := range repairs {
		if repairJobs[rp.ID] {
			out.RepairsWorked++
		}
	}

	daysInMonth := to.Sub(from).Hours() / 24
	if daysInMonth > 0 {
		out.ServicesPerDay = float64(out.ServicesCompleted) / daysInMonth
	}

	visitReports, err := s.reportRepo.ListByTechnicianInPeriod(ctx, technicianID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list visit reports: %w", err)
	}
	var totalRating float64
	var rated int64
	for _, vr := range visitReports {
		if vr.Rating == nil {
			continue
		}
		totalRating += float64(*vr.Rating)
		rated++
		if *vr.Rating == 5 {
			out.FiveStarCount++
		}
	}
	if rated > 0 {
		out.AvgRating = totalRating / float64(rated)
	}

	return out, nil
}

// Materials reports consolidated material consumption over a window.
func (s *ReportingService) Materials(ctx context.Context, from, to time.Time) ([]domain.MaterialSummaryLine, error) {
	usages, err := s.materialRepo.ListInPeriod(ctx, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return consolidateMaterials(usages), nil
}

// Revenue reports AMC collection standing plus payment movement over the
// window.
func (s *ReportingService) Revenue(ctx context.Context, from, to time.Time) (*domain.RevenueReport, error) {
	active, err := s.customerRepo.CountByStatus(ctx, domain.AMCStatusActive)
	if err != nil {
		return nil, fmt.Errorf("count active customers: %w", err)
	}
	total, received, err := s.customerRepo.ActiveAMCTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum AMC totals: %w", err)
	}

	paid, err := s.paymentRepo.SumInPeriod(ctx, from, to, []domain.PaymentStatusType{domain.PaymentPaid})
	if err != nil {
		return nil, fmt.Errorf("sum paid payments: %w", err)
	}
	pending, err := s.paymentRepo.SumInPeriod(ctx, from, to, []domain.PaymentStatusType{
		domain.PaymentPending, domain.PaymentPartial, domain.PaymentOverdue,
	})
	if err != nil {
		return nil, fmt.Errorf("sum pending payments: %w", err)
	}

	rate := 0.0
	if total > 0 {
		rate = received / total * 100
	}
	return &domain.RevenueReport{
		PeriodStart:         from,
		PeriodEnd:           to,
		ActiveCustomers:     active,
		TotalAMCValue:       total,
		TotalAMCReceived:    received,
		CollectionRate:      rate,
		PeriodPaidAmount:    paid,
		PeriodPendingAmount: pending,
	}, nil
}

// Dashboard assembles the landing-page overview.
func (s *ReportingService) Dashboard(ctx context.Context) (*domain.DashboardOverview, error) {
	openCallbacks, err := s.callbackRepo.CountByStatus(ctx,
		domain.CallbackPending, domain.CallbackPicked, domain.CallbackOnTheWay,
		domain.CallbackAtSite, domain.CallbackInProgress)
	if err != nil {
		return nil, fmt.Errorf("count open callbacks: %w", err)
	}
	openRepairs, err := s.repairRepo.CountByStatus(ctx, domain.RepairPending, domain.RepairInProgress)
	if err != nil {
		return nil, fmt.Errorf("count open repairs: %w", err)
	}
	openComplaints, err := s.complaintRepo.CountByStatus(ctx, domain.ComplaintOpen, domain.ComplaintInProgress)
	if err != nil {
		return nil, fmt.Errorf("count open complaints: %w", err)
	}
	today, err := s.scheduleRepo.CountInDay(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("count today's schedules: %w", err)
	}
	overdue, err := s.scheduleRepo.CountByStatus(ctx, domain.ScheduleOverdue)
	if err != nil {
		return nil, fmt.Errorf("count overdue schedules: %w", err)
	}
	pendingPayments, err := s.paymentRepo.CountByStatus(ctx,
		domain.PaymentPending, domain.PaymentPartial, domain.PaymentOverdue)
	if err != nil {
		return nil, fmt.Errorf("count pending payments: %w", err)
	}
	activeCustomers, err := s.customerRepo.CountByStatus(ctx, domain.AMCStatusActive)
	if err != nil {
		return nil, fmt.Errorf("count active customers: %w", err)
	}

	recentCallbacks, _, err := s.callbackRepo.List(ctx, repository.CallbackFilters{Limit: 5})
	if err != nil {
		return nil, fmt.Errorf("list recent callbacks: %w", err)
	}
	recentSchedules, _, err := s.scheduleRepo.List(ctx, repository.ScheduleFilters{Limit: 5})
	if err != nil {
		return nil, fmt.Errorf("list recent schedules: %w", err)
	}

	return &domain.DashboardOverview{
		OpenCallbacks:    openCallbacks,
		OpenRepairs:      openRepairs,
		OpenComplaints:   openComplaints,
		TodaySchedules:   today,
		OverdueSchedules: overdue,
		PendingPayments:  pendingPayments,
		ActiveCustomers:  activeCustomers,
		RecentCallbacks:  recentCallbacks,
		RecentSchedules:  recentSchedules,
	}, nil
}
