package events

import (
	"errors"
	"strings"
	"time"
)

// EmployeeCreatedTopic carries the employee master's lifecycle events; this service only
// reacts to EventEmployeeCreated.
const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

const EventEmployeeCreated = "employee_created"

var ErrIncompleteEmployeeEvent = errors.New("employee event needs company_id and employee_id")

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IsCreated reports whether the event announces a new employee. Producers that predate
// event_type send it empty.
func (e EmployeeCreatedEvent) IsCreated() bool {
	return e.EventType == "" || e.EventType == EventEmployeeCreated
}

func (e EmployeeCreatedEvent) Validate() error {
	if strings.TrimSpace(e.CompanyID) == "" || strings.TrimSpace(e.EmployeeID) == "" {
		return ErrIncompleteEmployeeEvent
	}
	return nil
}
