package travel

import (
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/dateset"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TravelRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_travel_requests_number;index:idx_travel_requests_company_status"`
	TravelNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_travel_requests_number"`

	Dates       dateset.Set `gorm:"type:text;not null"`
	StartDate   time.Time   `gorm:"type:date;not null;index:idx_travel_requests_range"`
	EndDate     time.Time   `gorm:"type:date;not null;index:idx_travel_requests_range"`
	Purpose     string      `gorm:"type:varchar(255)"`
	Destination string      `gorm:"type:varchar(255)"`

	Status         string     `gorm:"type:varchar(20);not null;default:'FOR_APPROVAL';index:idx_travel_requests_company_status"`
	Remarks        *string    `gorm:"type:text"`
	IsPortalOrigin bool       `gorm:"not null;default:false"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employees []TravelEmployee `gorm:"foreignKey:TravelRequestID;references:ID"`
}

func (TravelRequest) TableName() string { return "travel_requests" }

// TravelEmployee links one traveller to a request. Each traveller is checked on their own.
type TravelEmployee struct {
	TravelRequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;primaryKey;index"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (TravelEmployee) TableName() string { return "travel_request_employees" }

type Employee struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid"`
	FullName        string
	Department      string
	CanCreateTravel bool
}

func (Employee) TableName() string { return "employees" }

func (t *TravelRequest) setDates(dates dateset.Set) {
	t.Dates = dates
	t.StartDate, t.EndDate = dates.Bounds()
}

// EmployeeIDs lists the travellers in the order they are stored.
func (t *TravelRequest) EmployeeIDs() []string {
	ids := make([]string, len(t.Employees))
	for i, e := range t.Employees {
		ids[i] = e.EmployeeID.String()
	}
	return ids
}

func (t *TravelRequest) setEmployees(ids []uuid.UUID) {
	t.Employees = make([]TravelEmployee, len(ids))
	for i, id := range ids {
		t.Employees[i] = TravelEmployee{TravelRequestID: t.ID, EmployeeID: id}
	}
}
