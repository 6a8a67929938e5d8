package leave

type CreateLeaveRequest struct {
	EmployeeID  string   `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string   `json:"leave_type_id" binding:"omitempty,uuid"`
	Category    string   `json:"category"`
	Dates       []string `json:"dates"`
	Purpose     string   `json:"purpose" binding:"max=100"`
}

// UpdateLeaveRequest edits a request waiting for approval, or resubmits a returned one.
type UpdateLeaveRequest struct {
	LeaveTypeID string   `json:"leave_type_id" binding:"omitempty,uuid"`
	Category    string   `json:"category"`
	Dates       []string `json:"dates"`
	Purpose     string   `json:"purpose" binding:"max=100"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

type ValidateLeaveRequest struct {
	EmployeeID       string   `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID      string   `json:"leave_type_id" binding:"omitempty,uuid"`
	Category         string   `json:"category"`
	Dates            []string `json:"dates"`
	ExcludeRequestID string   `json:"exclude_request_id" binding:"omitempty,uuid"`
}

type LeaveFilter struct {
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type LeaveResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	LeaveTypeID    *string  `json:"leave_type_id,omitempty"`
	Category       string   `json:"category"`
	Dates          []string `json:"dates"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Purpose        string   `json:"purpose"`
	DeductedCredit string   `json:"deducted_credit"`
	Status         string   `json:"status"`
	Remarks        *string  `json:"remarks,omitempty"`
	IsPortalOrigin bool     `json:"is_portal_origin"`
	CreatedBy      string   `json:"created_by"`
	ApprovedBy     *string  `json:"approved_by,omitempty"`
	ApprovedAt     *string  `json:"approved_at,omitempty"`
}
