package travel

type CreateTravelRequest struct {
	EmployeeIDs []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
	Dates       []string `json:"dates"`
	Purpose     string   `json:"purpose" binding:"max=255"`
	Destination string   `json:"destination" binding:"max=255"`
}

// UpdateTravelRequest edits a request waiting for approval, or resubmits a returned one.
type UpdateTravelRequest struct {
	EmployeeIDs []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
	Dates       []string `json:"dates"`
	Purpose     string   `json:"purpose" binding:"max=255"`
	Destination string   `json:"destination" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

type ValidateTravelRequest struct {
	EmployeeIDs      []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
	Dates            []string `json:"dates"`
	ExcludeRequestID string   `json:"exclude_request_id" binding:"omitempty,uuid"`
}

type TravelFilter struct {
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type TravellerResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name,omitempty"`
	Department string `json:"department,omitempty"`
}

type TravelResponse struct {
	ID             string              `json:"id"`
	CompanyID      string              `json:"company_id"`
	TravelNumber   string              `json:"travel_number"`
	EmployeeIDs    []string            `json:"employee_ids"`
	Employees      []TravellerResponse `json:"employees"`
	Dates          []string            `json:"dates"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	Purpose        string              `json:"purpose"`
	Destination    string              `json:"destination"`
	Status         string              `json:"status"`
	Remarks        *string             `json:"remarks,omitempty"`
	IsPortalOrigin bool                `json:"is_portal_origin"`
	CreatedBy      string              `json:"created_by"`
	ApprovedBy     *string             `json:"approved_by,omitempty"`
	ApprovedAt     *string             `json:"approved_at,omitempty"`
}
