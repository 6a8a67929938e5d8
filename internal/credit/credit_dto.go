package credit

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	Amount     string `json:"amount"`
}

type EntryResponse struct {
	ID           string  `json:"id"`
	Category     string  `json:"category"`
	Delta        string  `json:"delta"`
	BalanceAfter string  `json:"balance_after"`
	Reason       string  `json:"reason"`
	Reference    string  `json:"reference"`
	Note         string  `json:"note,omitempty"`
	CreatedBy    *string `json:"created_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// AdjustCreditRequest is a manual HR correction. Delta may be negative.
type AdjustCreditRequest struct {
	Category string `json:"category" binding:"required"`
	Delta    string `json:"delta" binding:"required"`
	Note     string `json:"note" binding:"max=255"`
}
