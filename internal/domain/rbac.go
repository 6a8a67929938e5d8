// Package domain holds request types shared by the rbac module and the HTTP middleware,
// which cannot import each other.
package domain

import "strings"

// EnforceRequest asks whether EmployeeID may perform Action on Resource in CompanyID.
// Resources are the permission components (leave, travel, credit, ...).
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

// Normalized trims every field and lower-cases resource and action, matching how
// permissions are stored.
func (r EnforceRequest) Normalized() EnforceRequest {
	return EnforceRequest{
		EmployeeID: strings.TrimSpace(r.EmployeeID),
		CompanyID:  strings.TrimSpace(r.CompanyID),
		Resource:   strings.ToLower(strings.TrimSpace(r.Resource)),
		Action:     strings.ToLower(strings.TrimSpace(r.Action)),
	}
}

type EnforceResponse struct {
	Allowed  bool   `json:"allowed"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
