package leavetype

type LeaveTypeResponse struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	CreditCategory string `json:"credit_category,omitempty"`
}
