package employee

type EmployeeFilter struct {
	Department      string `form:"department"`
	Query           string `form:"q"`
	CanCreateTravel *bool  `form:"can_create_travel"`
}

type EmployeeResponse struct {
	ID              string `json:"id"`
	EmployeeNumber  string `json:"employee_number,omitempty"`
	FullName        string `json:"full_name"`
	Department      string `json:"department,omitempty"`
	CompanyID       string `json:"company_id"`
	CanCreateTravel bool   `json:"can_create_travel"`
}

// EmployeeOption is the slim shape pickers load; availability pre-filtering happens client side.
type EmployeeOption struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Department      string `json:"department,omitempty"`
	CanCreateTravel bool   `json:"can_create_travel"`
}
