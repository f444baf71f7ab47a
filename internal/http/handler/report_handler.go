package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/export"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportingService *service.ReportingService
	logger           *zap.Logger
}

func NewReportHandler(reportingService *service.ReportingService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportingService: reportingService,
		logger:           logger,
	}
}

// Daily godoc
// @Summary Daily operations summary
// @Tags Reports
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.PeriodSummaryReport
// @Security BearerAuth
// @Router /reports/daily [get]
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	report, err := h.reportingService.DailySummary(r.Context(), day)
	if err != nil {
		h.logger.Error("daily report failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Monthly godoc
// @Summary Monthly operations summary with daily breakdown
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.PeriodSummaryReport
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthQuery(w, r)
	if !ok {
		return
	}

	report, err := h.reportingService.MonthlySummary(r.Context(), year, month)
	if err != nil {
		h.logger.Error("monthly report failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Yearly godoc
// @Summary Yearly operations summary with monthly breakdown
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Success 200 {object} domain.PeriodSummaryReport
// @Security BearerAuth
// @Router /reports/yearly [get]
func (h *ReportHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "year is required")
		return
	}

	report, err := h.reportingService.YearlySummary(r.Context(), year)
	if err != nil {
		h.logger.Error("yearly report failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// CustomerAMC godoc
// @Summary Full AMC service history for a customer
// @Description Window defaults to the customer's current AMC period when from/to are omitted
// @Tags Reports
// @Produce json
// @Param id path string true "Customer ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} domain.CustomerAMCReport
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/customer-amc/{id} [get]
func (h *ReportHandler) CustomerAMC(w http.ResponseWriter, r *http.Request) {
	report, ok := h.customerAMCReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// ExportCustomerAMC godoc
// @Summary Download the customer AMC report as an Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Customer ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/customer-amc/{id}/export [get]
func (h *ReportHandler) ExportCustomerAMC(w http.ResponseWriter, r *http.Request) {
	report, ok := h.customerAMCReport(w, r)
	if !ok {
		return
	}

	buf, err := export.CustomerAMCWorkbook(report)
	if err != nil {
		h.logger.Error("excel export failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, domain.ErrorTypeInternal, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(report, time.Now().UTC()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("export stream interrupted", zap.Error(err))
	}
}

// Technician godoc
// @Summary Monthly performance report for a technician
// @Tags Reports
// @Produce json
// @Param id path string true "Technician ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.TechnicianMonthlyReport
// @Security BearerAuth
// @Router /reports/technician/{id} [get]
func (h *ReportHandler) Technician(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(w, r)
	if !ok {
		return
	}

	report, err := h.reportingService.TechnicianMonthly(r.Context(), id, year, month)
	if err != nil {
		h.logger.Error("technician report failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Materials godoc
// @Summary Consolidated material usage over a window
// @Tags Reports
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {array} domain.MaterialSummaryLine
// @Security BearerAuth
// @Router /reports/materials [get]
func (h *ReportHandler) Materials(w http.ResponseWriter, r *http.Request) {
	from, to, ok := windowQuery(w, r)
	if !ok {
		return
	}

	lines, err := h.reportingService.Materials(r.Context(), from, to)
	if err != nil {
		h.logger.Error("materials report failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

// Revenue godoc
// @Summary AMC revenue and collection overview
// @Tags Reports
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} domain.RevenueReport
// @Security BearerAuth
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	from, to, ok := windowQuery(w, r)
	if !ok {
		return
	}

	report, err := h.reportingService.Revenue(r.Context(), from, to)
	if err != nil {
		h.logger.Error("revenue report failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Dashboard godoc
// @Summary Live operations dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.DashboardOverview
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reportingService.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("dashboard failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *ReportHandler) customerAMCReport(w http.ResponseWriter, r *http.Request) (*domain.CustomerAMCReport, bool) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return nil, false
	}
	from, ok := timeQuery(w, r, "from")
	if !ok {
		return nil, false
	}
	to, ok := timeQuery(w, r, "to")
	if !ok {
		return nil, false
	}

	report, err := h.reportingService.CustomerAMC(r.Context(), id, from, to)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return report, true
}

func yearMonthQuery(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "year is required")
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "month must be between 1 and 12")
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func windowQuery(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, ok := timeQuery(w, r, "from")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := timeQuery(w, r, "to")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if from == nil || to == nil {
		respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "from and to are required")
		return time.Time{}, time.Time{}, false
	}
	if !to.After(*from) {
		respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "to must be after from")
		return time.Time{}, time.Time{}, false
	}
	return *from, *to, true
}
