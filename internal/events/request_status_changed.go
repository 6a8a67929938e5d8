package events

import "time"

const (
	LeaveStatusTopic  = "hr.leave.status.v1"
	TravelStatusTopic = "hr.travel.status.v1"
)

const (
	EventRequestSubmitted     = "request_submitted"
	EventRequestStatusChanged = "request_status_changed"
	EventRequestDeleted       = "request_deleted"
)

// RequestStatusChangedEvent is emitted for leave and travel requests alike; RequestKind tells them apart.
type RequestStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	RequestKind string    `json:"request_kind"`
	RequestID   string    `json:"request_id"`
	CompanyID   string    `json:"company_id"`
	EmployeeIDs []string  `json:"employee_ids"`
	Dates       []string  `json:"dates"`
	FromStatus  string    `json:"from_status,omitempty"`
	ToStatus    string    `json:"to_status"`
	Remarks     *string   `json:"remarks,omitempty"`
	ActorID     string    `json:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
