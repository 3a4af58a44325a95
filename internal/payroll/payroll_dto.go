package payroll

type SummaryFilterRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1000,max=9999"`
}

type EmployeePayableSummary struct {
	EmployeeID    string `json:"employee_id"`
	DisplayName   string `json:"display_name"`
	OvertimeHours int64  `json:"overtime_hours"`
	OvertimeTotal int64  `json:"overtime_total"`
	ClaimTotal    int64  `json:"claim_total"`
	TotalPayable  int64  `json:"total_payable"`
	Status        string `json:"status"`
}

type PayoutRequest struct {
	EmployeeIDs []string `json:"employee_ids" binding:"required"`
	Month       int      `json:"month" binding:"required,min=1,max=12"`
	Year        int      `json:"year" binding:"required,min=1000,max=9999"`
}

type PayoutResponse struct {
	UpdatedCount int64 `json:"updated_count"`
	Month        int   `json:"month"`
	Year         int   `json:"year"`
}
