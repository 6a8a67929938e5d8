package leave

import (
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/dateset"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_employee_range"`
	LeaveTypeID *uuid.UUID `gorm:"type:uuid"`
	Category    string     `gorm:"type:varchar(20);not null"`

	Dates     dateset.Set `gorm:"type:text;not null"`
	StartDate time.Time   `gorm:"type:date;not null;index:idx_leave_requests_employee_range"`
	EndDate   time.Time   `gorm:"type:date;not null;index:idx_leave_requests_employee_range"`
	Purpose   string      `gorm:"type:varchar(100)"`

	DeductedCredit decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0"`

	Status         string     `gorm:"type:varchar(20);not null;default:'FOR_APPROVAL';index:idx_leave_requests_company_status"`
	Remarks        *string    `gorm:"type:text"`
	IsPortalOrigin bool       `gorm:"not null;default:false"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// Employee is the slice of the employee master a leave listing shows.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string
	Department string
}

func (Employee) TableName() string { return "employees" }

// setDates stores the set together with its derived range columns.
func (l *LeaveRequest) setDates(dates dateset.Set) {
	l.Dates = dates
	l.StartDate, l.EndDate = dates.Bounds()
}
