package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request payloads. Validation tags are enforced at the HTTP boundary; enum
// fields are additionally checked with IsValid before anything is persisted.

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"omitempty,email"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required,oneof=admin technician customer"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type CreateCustomerRequest struct {
	SiteName      string `json:"siteName" validate:"required"`
	Area          string `json:"area"`
	Route         int    `json:"route" validate:"gte=0"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	ContactPhone  string `json:"contactPhone"`
	ContactEmail  string `json:"contactEmail" validate:"omitempty,email"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`

	AMCValidFrom    *time.Time `json:"amcValidFrom"`
	AMCValidTo      *time.Time `json:"amcValidTo"`
	ServicesPerYear int        `json:"servicesPerYear" validate:"omitempty,oneof=6 9 10 12"`
	AMCAmount       float64    `json:"amcAmount" validate:"gte=0"`

	AMCType        string `json:"amcType"`
	DoorType       string `json:"doorType"`
	ControllerType string `json:"controllerType"`
	NumberOfFloors int    `json:"numberOfFloors" validate:"gte=0"`
}

type UpdateCustomerRequest struct {
	SiteName          *string    `json:"siteName"`
	Area              *string    `json:"area"`
	Route             *int       `json:"route"`
	Address           *string    `json:"address"`
	ContactPerson     *string    `json:"contactPerson"`
	ContactPhone      *string    `json:"contactPhone"`
	ContactEmail      *string    `json:"contactEmail" validate:"omitempty,email"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	AMCValidFrom      *time.Time `json:"amcValidFrom"`
	AMCValidTo        *time.Time `json:"amcValidTo"`
	ServicesPerYear   *int       `json:"servicesPerYear" validate:"omitempty,oneof=6 9 10 12"`
	AMCAmount         *float64   `json:"amcAmount"`
	AMCAmountReceived *float64   `json:"amcAmountReceived"`
	AMCStatus         *string    `json:"amcStatus" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	AMCType           *string    `json:"amcType"`
	DoorType          *string    `json:"doorType"`
	ControllerType    *string    `json:"controllerType"`
	NumberOfFloors    *int       `json:"numberOfFloors"`
}

type CreateContractRequest struct {
	CustomerID    uuid.UUID `json:"customerId" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=Active Warranty Renewal Closed"`
	Frequency     string    `json:"frequency" validate:"omitempty,oneof=monthly bi_monthly quarterly half_yearly yearly"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	EndDate       time.Time `json:"endDate" validate:"required"`
	TotalServices int       `json:"totalServices" validate:"gte=0"`
	Amount        float64   `json:"amount" validate:"gte=0"`
	Notes         string    `json:"notes"`
}

type CreateCallbackRequest struct {
	CustomerID      uuid.UUID `json:"customerId" validate:"required"`
	ReportedProblem string    `json:"reportedProblem" validate:"required"`
	CallerName      string    `json:"callerName"`
	CallerPhone     string    `json:"callerPhone"`
}

// CompleteCallbackRequest carries the closure payload. RequiresFollowup is
// accepted for wire compatibility but the stored value is always derived from
// LiftStatusOnClosure.
type CompleteCallbackRequest struct {
	IssueFaced              string            `json:"issueFaced" validate:"required"`
	CustomerReportingPerson string            `json:"customerReportingPerson"`
	ProblemSolved           string            `json:"problemSolved" validate:"required"`
	ReportAttachmentURL     string            `json:"reportAttachmentUrl"`
	MaterialsChanged        []MaterialChanged `json:"materialsChanged"`
	LiftStatusOnClosure     string            `json:"liftStatusOnClosure" validate:"required,oneof=SHUT_DOWN NORMAL_RUNNING RUNNING_WITH_ERROR"`
	RequiresFollowup        *bool             `json:"requiresFollowup"`
}

type AssignTechnicianRequest struct {
	TechnicianID uuid.UUID `json:"technicianId" validate:"required"`
}

type CreateRepairRequest struct {
	CustomerID    *uuid.UUID `json:"customerId"`
	CustomerName  string     `json:"customerName"`
	ContactNumber string     `json:"contactNumber"`
	Description   string     `json:"description" validate:"required"`
	QuotedAmount  float64    `json:"quotedAmount" validate:"gte=0"`
}

type UpdateRepairStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	InvoiceNumber string `json:"invoiceNumber"`
}

type CreateComplaintRequest struct {
	CustomerID  uuid.UUID `json:"customerId" validate:"required"`
	Subject     string    `json:"subject" validate:"required"`
	Description string    `json:"description"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateComplaintStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	Resolution string `json:"resolution"`
}

type CreateScheduleRequest struct {
	CustomerID    uuid.UUID `json:"customerId" validate:"required"`
	ServiceType   string    `json:"serviceType" validate:"omitempty,oneof=SERVICE CALLBACK REPAIR"`
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
	Notes         string    `json:"notes"`
}

type CreateAdhocServiceRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
	Notes      string    `json:"notes"`
}

type CheckInRequest struct {
	ScheduleID uuid.UUID `json:"scheduleId" validate:"required"`
	Location   GeoPoint  `json:"location" validate:"required"`
}

type CheckOutRequest struct {
	ReportID               uuid.UUID `json:"reportId" validate:"required"`
	Location               GeoPoint  `json:"location" validate:"required"`
	WorkDone               string    `json:"workDone" validate:"required"`
	PartsReplaced          []string  `json:"partsReplaced"`
	ImageURLs              []string  `json:"imageUrls"`
	TechnicianSignatureURL string    `json:"technicianSignatureUrl"`
	CustomerSignatureURL   string    `json:"customerSignatureUrl"`
	CustomerFeedback       string    `json:"customerFeedback"`
	Rating                 *int      `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

type CreateMaterialUsageRequest struct {
	MaterialName string     `json:"materialName" validate:"required"`
	Quantity     float64    `json:"quantity" validate:"required,gt=0"`
	Unit         string     `json:"unit"`
	UnitCost     float64    `json:"unitCost" validate:"gte=0"`
	UsedDate     *time.Time `json:"usedDate"`
	CustomerID   uuid.UUID  `json:"customerId" validate:"required"`
	ScheduleID   *uuid.UUID `json:"scheduleId"`
	CallbackID   *uuid.UUID `json:"callbackId"`
	RepairID     *uuid.UUID `json:"repairId"`
}

type CreateMinorPointRequest struct {
	CustomerID  uuid.UUID `json:"customerId" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

type CreatePaymentRequest struct {
	CustomerID  uuid.UUID  `json:"customerId" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	PaymentType string     `json:"paymentType"`
	DueDate     *time.Time `json:"dueDate"`
	Notes       string     `json:"notes"`
}

type MarkPaymentPaidRequest struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// Reporting response shapes.

type StatusCounts map[string]int64

type JobTypeSummary struct {
	Total          int64        `json:"total"`
	Completed      int64        `json:"completed"`
	StatusCounts   StatusCounts `json:"statusCounts"`
	CompletionRate float64      `json:"completionRate"`
}

type TechnicianPerformance struct {
	TechnicianID       uuid.UUID `json:"technicianId"`
	TechnicianName     string    `json:"technicianName"`
	ServicesCompleted  int64     `json:"servicesCompleted"`
	CallbacksCompleted int64     `json:"callbacksCompleted"`
	RepairsCompleted   int64     `json:"repairsCompleted"`
	TotalCompleted     int64     `json:"totalCompleted"`
}

type PeriodSummaryReport struct {
	PeriodStart      time.Time               `json:"periodStart"`
	PeriodEnd        time.Time               `json:"periodEnd"`
	Services         JobTypeSummary          `json:"services"`
	Callbacks        JobTypeSummary          `json:"callbacks"`
	Repairs          JobTypeSummary          `json:"repairs"`
	AdhocServices    int64                   `json:"adhocServices"`
	Technicians      []TechnicianPerformance `json:"technicians"`
	DailyBreakdown   []DailyBucket           `json:"dailyBreakdown,omitempty"`
	MonthlyBreakdown []MonthlyBucket         `json:"monthlyBreakdown,omitempty"`
}

type DailyBucket struct {
	Date      string `json:"date"`
	Services  int64  `json:"services"`
	Callbacks int64  `json:"callbacks"`
	Repairs   int64  `json:"repairs"`
}

type MonthlyBucket struct {
	Month     string `json:"month"`
	Services  int64  `json:"services"`
	Callbacks int64  `json:"callbacks"`
	Repairs   int64  `json:"repairs"`
}

type ServiceHistoryEntry struct {
	ScheduleID      string     `json:"scheduleId"`
	ScheduledDate   time.Time  `json:"scheduledDate"`
	Status          string     `json:"status"`
	TechnicianNames []string   `json:"technicianNames"`
	CompletedAt     *time.Time `json:"completedAt"`
	DurationMinutes float64    `json:"durationMinutes"`
	Rating          *int       `json:"rating"`
}

type CallbackHistoryEntry struct {
	CallbackID      string     `json:"callbackId"`
	CreatedAt       time.Time  `json:"createdAt"`
	Status          string     `json:"status"`
	ReportedProblem string     `json:"reportedProblem"`
	ResponseMinutes float64    `json:"responseMinutes"`
	CompletedAt     *time.Time `json:"completedAt"`
}

type MaterialSummaryLine struct {
	MaterialName  string     `json:"materialName"`
	TotalQuantity float64    `json:"totalQuantity"`
	TotalCost     float64    `json:"totalCost"`
	ServiceCount  int64      `json:"serviceCount"`
	CallbackCount int64      `json:"callbackCount"`
	RepairCount   int64      `json:"repairCount"`
	FirstUsed     *time.Time `json:"firstUsed"`
	LastUsed      *time.Time `json:"lastUsed"`
}

type CustomerAMCReport struct {
	CustomerID         uuid.UUID              `json:"customerId"`
	JobNumber          string                 `json:"jobNumber"`
	SiteName           string                 `json:"siteName"`
	PeriodStart        time.Time              `json:"periodStart"`
	PeriodEnd          time.Time              `json:"periodEnd"`
	Services           []ServiceHistoryEntry  `json:"services"`
	Callbacks          []CallbackHistoryEntry `json:"callbacks"`
	Materials          []MaterialSummaryLine  `json:"materials"`
	AvgServiceMinutes  float64                `json:"avgServiceMinutes"`
	AvgResponseMinutes float64                `json:"avgResponseMinutes"`
	AvgRating          float64                `json:"avgRating"`
	OnTimeRate         float64                `json:"onTimeRate"`
	ScheduledCount     int64                  `json:"scheduledCount"`
	CompletedCount     int64                  `json:"completedCount"`
	OverdueCount       int64                  `json:"overdueCount"`
}

type TechnicianMonthlyReport struct {
	TechnicianID      uuid.UUID `json:"technicianId"`
	TechnicianName    string    `json:"technicianName"`
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	ServicesAssigned  int64     `json:"servicesAssigned"`
	ServicesCompleted int64     `json:"servicesCompleted"`
	CallbacksWorked   int64     `json:"callbacksWorked"`
	RepairsWorked     int64     `json:"repairsWorked"`
	ServicesPerDay    float64   `json:"servicesPerDay"`
	RoutesCovered     []int     `json:"routesCovered"`
	FiveStarCount     int64     `json:"fiveStarCount"`
	AvgRating         float64   `json:"avgRating"`
}

type RevenueReport struct {
	PeriodStart         time.Time `json:"periodStart"`
	PeriodEnd           time.Time `json:"periodEnd"`
	ActiveCustomers     int64     `json:"activeCustomers"`
	TotalAMCValue       float64   `json:"totalAmcValue"`
	TotalAMCReceived    float64   `json:"totalAmcReceived"`
	CollectionRate      float64   `json:"collectionRate"`
	PeriodPaidAmount    float64   `json:"periodPaidAmount"`
	PeriodPendingAmount float64   `json:"periodPendingAmount"`
}

type PaymentStats struct {
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	OverdueCount  int64   `json:"overdueCount"`
}

type DashboardOverview struct {
	OpenCallbacks      int64             `json:"openCallbacks"`
	OpenRepairs        int64             `json:"openRepairs"`
	OpenComplaints     int64             `json:"openComplaints"`
	TodaySchedules     int64             `json:"todaySchedules"`
	OverdueSchedules   int64             `json:"overdueSchedules"`
	PendingPayments    int64             `json:"pendingPayments"`
	ActiveCustomers    int64             `json:"activeCustomers"`
	RecentCallbacks    []CallBack        `json:"recentCallbacks"`
	RecentSchedules    []ServiceSchedule `json:"recentSchedules"`
}

// AvailableTickets is the work a technician can see and pick from.
type AvailableTickets struct {
	Callbacks []CallBack        `json:"callbacks"`
	Services  []ServiceSchedule `json:"services"`
	Repairs   []Repair          `json:"repairs"`
}

// AMCSweepResult summarizes a bulk AMC status refresh.
type AMCSweepResult struct {
	UpdatedCount     int64 `json:"updatedCount"`
	CheckedCustomers int64 `json:"checkedCustomers"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ListResponse is the standard paginated list envelope
type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
