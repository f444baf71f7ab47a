package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UserRoleType represents the role of a user account
type UserRoleType string

const (
	RoleAdmin      UserRoleType = "admin"
	RoleTechnician UserRoleType = "technician"
	RoleCustomer   UserRoleType = "customer"
)

func (r UserRoleType) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleCustomer:
		return true
	}
	return false
}

// User is an account that can authenticate against the API. Technicians are
// users with RoleTechnician; an inactive technician cannot receive new work.
type User struct {
	BaseModel
	Username       string       `gorm:"uniqueIndex;not null" json:"username"`
	Email          string       `gorm:"index" json:"email"`
	HashedPassword string       `gorm:"not null" json:"-"`
	FullName       string       `json:"fullName"`
	Phone          string       `json:"phone"`
	Role           UserRoleType `gorm:"type:varchar(20);not null;default:'technician'" json:"role"`
	IsActive       bool         `gorm:"default:true" json:"isActive"`
}

// AMCStatusType is the annual maintenance contract standing of a customer
type AMCStatusType string

const (
	AMCStatusActive   AMCStatusType = "ACTIVE"
	AMCStatusInactive AMCStatusType = "INACTIVE"
)

func (s AMCStatusType) IsValid() bool {
	return s == AMCStatusActive || s == AMCStatusInactive
}

// Customer is a lift installation site under maintenance
type Customer struct {
	BaseModel
	JobNumber     string  `gorm:"uniqueIndex;not null" json:"jobNumber"`
	SiteName      string  `gorm:"not null;index" json:"siteName"`
	Area          string  `gorm:"index" json:"area"`
	Route         int     `gorm:"index" json:"route"`
	Address       string  `json:"address"`
	ContactPerson string  `json:"contactPerson"`
	ContactPhone  string  `json:"contactPhone"`
	ContactEmail  string  `json:"contactEmail"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`

	// AMC terms
	AMCValidFrom      *time.Time    `json:"amcValidFrom"`
	AMCValidTo        *time.Time    `json:"amcValidTo"`
	ServicesPerYear   int           `gorm:"default:12" json:"servicesPerYear"`
	AMCAmount         float64       `json:"amcAmount"`
	AMCAmountReceived float64       `json:"amcAmountReceived"`
	AMCStatus         AMCStatusType `gorm:"type:varchar(10);default:'ACTIVE';index" json:"amcStatus"`

	// Equipment details
	AMCType        string `json:"amcType"`
	DoorType       string `json:"doorType"`
	ControllerType string `json:"controllerType"`
	NumberOfFloors int    `json:"numberOfFloors"`
}

// ContractType classifies an AMC contract
type ContractType string

const (
	ContractActive   ContractType = "Active"
	ContractWarranty ContractType = "Warranty"
	ContractRenewal  ContractType = "Renewal"
	ContractClosed   ContractType = "Closed"
)

func (t ContractType) IsValid() bool {
	switch t {
	case ContractActive, ContractWarranty, ContractRenewal, ContractClosed:
		return true
	}
	return false
}

// ContractFrequency is the service visit cadence of a contract
type ContractFrequency string

const (
	FrequencyMonthly    ContractFrequency = "monthly"
	FrequencyBiMonthly  ContractFrequency = "bi_monthly"
	FrequencyQuarterly  ContractFrequency = "quarterly"
	FrequencyHalfYearly ContractFrequency = "half_yearly"
	FrequencyYearly     ContractFrequency = "yearly"
)

func (f ContractFrequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyBiMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly:
		return true
	}
	return false
}

// AMCContract records a maintenance contract period for a customer
type AMCContract struct {
	BaseModel
	ContractNumber    string            `gorm:"uniqueIndex;not null" json:"contractNumber"`
	CustomerID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer          *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Type              ContractType      `gorm:"type:varchar(20);not null" json:"type"`
	Frequency         ContractFrequency `gorm:"type:varchar(20);default:'monthly'" json:"frequency"`
	StartDate         time.Time         `gorm:"not null" json:"startDate"`
	EndDate           time.Time         `gorm:"not null" json:"endDate"`
	TotalServices     int               `json:"totalServices"`
	CompletedServices int               `json:"completedServices"`
	Amount            float64           `json:"amount"`
	Notes             string            `json:"notes"`
}

// PendingServices is the remainder of the contracted visit count.
func (c *AMCContract) PendingServices() int {
	if n := c.TotalServices - c.CompletedServices; n > 0 {
		return n
	}
	return 0
}

// CallbackStatusType tracks a breakdown call through its field checkpoints
type CallbackStatusType string

const (
	CallbackPending    CallbackStatusType = "PENDING"
	CallbackPicked     CallbackStatusType = "PICKED"
	CallbackOnTheWay   CallbackStatusType = "ON_THE_WAY"
	CallbackAtSite     CallbackStatusType = "AT_SITE"
	CallbackInProgress CallbackStatusType = "IN_PROGRESS"
	CallbackCompleted  CallbackStatusType = "COMPLETED"
	CallbackCancelled  CallbackStatusType = "CANCELLED"
)

func (s CallbackStatusType) IsValid() bool {
	switch s {
	case CallbackPending, CallbackPicked, CallbackOnTheWay, CallbackAtSite,
		CallbackInProgress, CallbackCompleted, CallbackCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no transition other than a
// followup reopen.
func (s CallbackStatusType) IsTerminal() bool {
	return s == CallbackCompleted || s == CallbackCancelled
}

// LiftStatusType is the state the lift was left in when a callback closed
type LiftStatusType string

const (
	LiftShutDown         LiftStatusType = "SHUT_DOWN"
	LiftNormalRunning    LiftStatusType = "NORMAL_RUNNING"
	LiftRunningWithError LiftStatusType = "RUNNING_WITH_ERROR"
)

func (s LiftStatusType) IsValid() bool {
	switch s {
	case LiftShutDown, LiftNormalRunning, LiftRunningWithError:
		return true
	}
	return false
}

// RequiresFollowup reports whether a closure in this lift state keeps the
// ticket eligible for reopening.
func (s LiftStatusType) RequiresFollowup() bool {
	return s == LiftShutDown || s == LiftRunningWithError
}

// MaterialChanged is one materials line recorded on a callback closure
type MaterialChanged struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// CallBack is a customer breakdown call worked by up to three technicians
type CallBack struct {
	BaseModel
	CallbackID      string             `gorm:"uniqueIndex;not null" json:"callbackId"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer        *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ReportedProblem string             `gorm:"not null" json:"reportedProblem"`
	CallerName      string             `json:"callerName"`
	CallerPhone     string             `json:"callerPhone"`
	Status          CallbackStatusType `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	PickedAt    *time.Time `json:"pickedAt"`
	OnTheWayAt  *time.Time `json:"onTheWayAt"`
	AtSiteAt    *time.Time `json:"atSiteAt"`
	RespondedAt *time.Time `json:"respondedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	// Closure details, set when the callback is completed
	IssueFaced              string                               `json:"issueFaced"`
	CustomerReportingPerson string                               `json:"customerReportingPerson"`
	ProblemSolved           string                               `json:"problemSolved"`
	ReportAttachmentURL     string                               `json:"reportAttachmentUrl"`
	MaterialsChanged        datatypes.JSONSlice[MaterialChanged] `json:"materialsChanged"`
	LiftStatusOnClosure     *LiftStatusType                      `gorm:"type:varchar(30)" json:"liftStatusOnClosure"`
	RequiresFollowup        bool                                 `gorm:"default:false" json:"requiresFollowup"`

	Technicians []JobTechnician `gorm:"-" json:"technicians,omitempty"`
}

// RepairStatusType tracks a chargeable repair job
type RepairStatusType string

const (
	RepairPending    RepairStatusType = "PENDING"
	RepairInProgress RepairStatusType = "IN_PROGRESS"
	RepairCompleted  RepairStatusType = "COMPLETED"
	RepairCancelled  RepairStatusType = "CANCELLED"
)

func (s RepairStatusType) IsValid() bool {
	switch s {
	case RepairPending, RepairInProgress, RepairCompleted, RepairCancelled:
		return true
	}
	return false
}

func (s RepairStatusType) IsTerminal() bool {
	return s == RepairCompleted || s == RepairCancelled
}

// Repair is a chargeable repair job, either for an AMC customer or a walk-in
// caller identified only by name and phone number.
type Repair struct {
	BaseModel
	RepairID      string           `gorm:"uniqueIndex;not null" json:"repairId"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customerId"`
	Customer      *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName  string           `json:"customerName"`
	ContactNumber string           `json:"contactNumber"`
	Description   string           `gorm:"not null" json:"description"`
	QuotedAmount  float64          `json:"quotedAmount"`
	InvoiceNumber string           `json:"invoiceNumber"`
	Status        RepairStatusType `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	StartedAt     *time.Time       `json:"startedAt"`
	CompletedAt   *time.Time       `json:"completedAt"`

	Technicians []JobTechnician `gorm:"-" json:"technicians,omitempty"`
}

// ComplaintStatusType tracks a customer complaint
type ComplaintStatusType string

const (
	ComplaintOpen       ComplaintStatusType = "open"
	ComplaintInProgress ComplaintStatusType = "in_progress"
	ComplaintResolved   ComplaintStatusType = "resolved"
	ComplaintClosed     ComplaintStatusType = "closed"
)

func (s ComplaintStatusType) IsValid() bool {
	switch s {
	case ComplaintOpen, ComplaintInProgress, ComplaintResolved, ComplaintClosed:
		return true
	}
	return false
}

// ComplaintPriorityType ranks complaint urgency
type ComplaintPriorityType string

const (
	PriorityLow    ComplaintPriorityType = "low"
	PriorityMedium ComplaintPriorityType = "medium"
	PriorityHigh   ComplaintPriorityType = "high"
	PriorityUrgent ComplaintPriorityType = "urgent"
)

func (p ComplaintPriorityType) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Complaint is a customer-raised issue claimed by a single technician
type Complaint struct {
	BaseModel
	ComplaintID  string                `gorm:"uniqueIndex;not null" json:"complaintId"`
	CustomerID   uuid.UUID             `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer     *Customer             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Subject      string                `gorm:"not null" json:"subject"`
	Description  string                `json:"description"`
	Priority     ComplaintPriorityType `gorm:"type:varchar(10);default:'medium'" json:"priority"`
	Status       ComplaintStatusType   `gorm:"type:varchar(20);default:'open';index" json:"status"`
	AssignedToID *uuid.UUID            `gorm:"type:uuid;index" json:"assignedToId"`
	AssignedTo   *User                 `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	ResolvedAt   *time.Time            `json:"resolvedAt"`
	Resolution   string                `json:"resolution"`
}

// ServiceTypeType classifies a scheduled visit
type ServiceTypeType string

const (
	ServiceTypeService  ServiceTypeType = "SERVICE"
	ServiceTypeCallback ServiceTypeType = "CALLBACK"
	ServiceTypeRepair   ServiceTypeType = "REPAIR"
)

func (t ServiceTypeType) IsValid() bool {
	switch t {
	case ServiceTypeService, ServiceTypeCallback, ServiceTypeRepair:
		return true
	}
	return false
}

// ScheduleStatusType tracks a scheduled maintenance visit
type ScheduleStatusType string

const (
	SchedulePending    ScheduleStatusType = "pending"
	ScheduleScheduled  ScheduleStatusType = "scheduled"
	ScheduleInProgress ScheduleStatusType = "in_progress"
	ScheduleCompleted  ScheduleStatusType = "completed"
	ScheduleOverdue    ScheduleStatusType = "overdue"
	ScheduleCancelled  ScheduleStatusType = "cancelled"
)

func (s ScheduleStatusType) IsValid() bool {
	switch s {
	case SchedulePending, ScheduleScheduled, ScheduleInProgress,
		ScheduleCompleted, ScheduleOverdue, ScheduleCancelled:
		return true
	}
	return false
}

// ServiceSchedule is a planned (or ad-hoc) maintenance visit. The three
// technician slots mirror the first entries of the assignment table for
// consumers that predate it.
type ServiceSchedule struct {
	BaseModel
	ScheduleID    string             `gorm:"uniqueIndex;not null" json:"scheduleId"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer      *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ServiceType   ServiceTypeType    `gorm:"type:varchar(10);default:'SERVICE'" json:"serviceType"`
	ScheduledDate time.Time          `gorm:"not null;index" json:"scheduledDate"`
	Status        ScheduleStatusType `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	IsAdhoc       bool               `gorm:"default:false" json:"isAdhoc"`
	Notes         string             `json:"notes"`
	CompletedAt   *time.Time         `json:"completedAt"`

	TechnicianID  *uuid.UUID `gorm:"type:uuid;index" json:"technicianId"`
	Technician2ID *uuid.UUID `gorm:"type:uuid" json:"technician2Id"`
	Technician3ID *uuid.UUID `gorm:"type:uuid" json:"technician3Id"`

	Technicians []JobTechnician `gorm:"-" json:"technicians,omitempty"`
}

// OverdueDays is how many whole days the visit is past its scheduled date.
// Completed and cancelled visits are never overdue.
func (s *ServiceSchedule) OverdueDays(now time.Time) int {
	if s.Status == ScheduleCompleted || s.Status == ScheduleCancelled {
		return 0
	}
	days := int(now.Sub(s.ScheduledDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsHighPriority marks visits more than ten days overdue.
func (s *ServiceSchedule) IsHighPriority(now time.Time) bool {
	return s.OverdueDays(now) > 10
}

// JobTypeType identifies which job table an assignment row belongs to
type JobTypeType string

const (
	JobTypeCallback JobTypeType = "callback"
	JobTypeRepair   JobTypeType = "repair"
	JobTypeService  JobTypeType = "service"
)

func (t JobTypeType) IsValid() bool {
	switch t {
	case JobTypeCallback, JobTypeRepair, JobTypeService:
		return true
	}
	return false
}

// JobTechnician links a technician to a job. Position is the zero-based
// assignment order; the first assignee is primary. The unique index makes a
// duplicate (job, technician) pair a constraint violation rather than a race.
type JobTechnician struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	JobType      JobTypeType `gorm:"type:varchar(10);not null;uniqueIndex:idx_job_technician,priority:1" json:"jobType"`
	JobID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_job_technician,priority:2;index" json:"jobId"`
	TechnicianID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_job_technician,priority:3;index" json:"technicianId"`
	Technician   *User       `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Position     int         `gorm:"not null;default:0" json:"position"`
	IsPrimary    bool        `gorm:"not null;default:false" json:"isPrimary"`
	AssignedByID *uuid.UUID  `gorm:"type:uuid" json:"assignedById"`
	AssignedAt   time.Time   `gorm:"autoCreateTime" json:"assignedAt"`
}

func (j *JobTechnician) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// GeoPoint is a latitude/longitude pair captured from the technician's device
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ServiceReport is the field record of one maintenance visit
type ServiceReport struct {
	BaseModel
	ReportID     string           `gorm:"uniqueIndex;not null" json:"reportId"`
	ScheduleID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"scheduleId"`
	Schedule     *ServiceSchedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
	TechnicianID uuid.UUID        `gorm:"type:uuid;not null;index" json:"technicianId"`
	Technician   *User            `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`

	CheckInAt              time.Time                     `gorm:"not null" json:"checkInAt"`
	CheckOutAt             *time.Time                    `json:"checkOutAt"`
	CheckInLocation        datatypes.JSONType[GeoPoint]  `json:"checkInLocation"`
	CheckOutLocation       *datatypes.JSONType[GeoPoint] `json:"checkOutLocation"`
	WorkDone               string                        `json:"workDone"`
	PartsReplaced          datatypes.JSONSlice[string]   `json:"partsReplaced"`
	ImageURLs              datatypes.JSONSlice[string]   `json:"imageUrls"`
	TechnicianSignatureURL string                        `json:"technicianSignatureUrl"`
	CustomerSignatureURL   string                        `json:"customerSignatureUrl"`
	CustomerFeedback       string                        `json:"customerFeedback"`
	Rating                 *int                          `json:"rating"`
}

// DurationMinutes is the on-site time of the visit, zero until check-out.
func (r *ServiceReport) DurationMinutes() float64 {
	if r.CheckOutAt == nil {
		return 0
	}
	return r.CheckOutAt.Sub(r.CheckInAt).Minutes()
}

// MaterialUsage records material consumed on a job. At most one of the three
// parent references may be set.
type MaterialUsage struct {
	BaseModel
	MaterialName string     `gorm:"not null;index" json:"materialName"`
	Quantity     float64    `gorm:"not null" json:"quantity"`
	Unit         string     `json:"unit"`
	UnitCost     float64    `json:"unitCost"`
	TotalCost    float64    `json:"totalCost"`
	UsedDate     time.Time  `gorm:"not null;index" json:"usedDate"`
	TechnicianID uuid.UUID  `gorm:"type:uuid;not null;index" json:"technicianId"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"customerId"`
	ScheduleID   *uuid.UUID `gorm:"type:uuid;index" json:"scheduleId"`
	CallbackID   *uuid.UUID `gorm:"type:uuid;index" json:"callbackId"`
	RepairID     *uuid.UUID `gorm:"type:uuid;index" json:"repairId"`
}

// ParentCount is how many job references are set on the record.
func (m *MaterialUsage) ParentCount() int {
	n := 0
	if m.ScheduleID != nil {
		n++
	}
	if m.CallbackID != nil {
		n++
	}
	if m.RepairID != nil {
		n++
	}
	return n
}

// MinorPointStatusType tracks small observations raised during visits
type MinorPointStatusType string

const (
	MinorPointOpen   MinorPointStatusType = "OPEN"
	MinorPointClosed MinorPointStatusType = "CLOSED"
)

func (s MinorPointStatusType) IsValid() bool {
	return s == MinorPointOpen || s == MinorPointClosed
}

// MinorPoint is a non-urgent observation raised against a site
type MinorPoint struct {
	BaseModel
	CustomerID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer    *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Description string               `gorm:"not null" json:"description"`
	Status      MinorPointStatusType `gorm:"type:varchar(10);default:'OPEN';index" json:"status"`
	RaisedByID  *uuid.UUID           `gorm:"type:uuid" json:"raisedById"`
	ClosedAt    *time.Time           `json:"closedAt"`
}

// PaymentStatusType tracks a payment record
type PaymentStatusType string

const (
	PaymentPending PaymentStatusType = "pending"
	PaymentPaid    PaymentStatusType = "paid"
	PaymentOverdue PaymentStatusType = "overdue"
	PaymentPartial PaymentStatusType = "partial"
)

func (s PaymentStatusType) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentPartial:
		return true
	}
	return false
}

// Payment is an expected or received customer payment
type Payment struct {
	BaseModel
	PaymentID   string            `gorm:"uniqueIndex;not null" json:"paymentId"`
	CustomerID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Amount      float64           `gorm:"not null" json:"amount"`
	PaymentType string            `json:"paymentType"`
	DueDate     *time.Time        `gorm:"index" json:"dueDate"`
	Status      PaymentStatusType `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	PaidAt      *time.Time        `json:"paidAt"`
	Method      string            `json:"method"`
	Reference   string            `json:"reference"`
	Notes       string            `json:"notes"`
}

// SequentialCounter backs the human-readable business IDs. DateKey is the
// YYYYMMDD scope for day-rolling sequences and empty for lifetime sequences.
type SequentialCounter struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EntityType string    `gorm:"not null;uniqueIndex:idx_counter_scope,priority:1"`
	DateKey    string    `gorm:"not null;default:'';uniqueIndex:idx_counter_scope,priority:2"`
	LastNumber int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c *SequentialCounter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Attachment is the metadata of an uploaded file (report photos, signed
// closure documents). The bytes live behind the storage.Storage interface.
type Attachment struct {
	BaseModel
	OriginalName string     `gorm:"not null" json:"originalName"`
	ContentType  string     `json:"contentType"`
	SizeBytes    int64      `json:"sizeBytes"`
	StoragePath  string     `gorm:"not null" json:"-"`
	UploadedByID *uuid.UUID `gorm:"type:uuid" json:"uploadedById"`
}
