package payslip

// ManualAdjustment is transient input; it only survives inside the snapshot
// persisted with the payslip row.
type ManualAdjustment struct {
	Label  string `json:"label" binding:"required,max=120"`
	Amount int64  `json:"amount" binding:"required,min=1"`
	Type   string `json:"type" binding:"required,oneof=earning deduction"`
}

const (
	AdjustmentEarning   = "earning"
	AdjustmentDeduction = "deduction"
)

type ComposeRequest struct {
	EmployeeID  string             `json:"employee_id" binding:"required,uuid"`
	Month       int                `json:"month" binding:"required,min=1,max=12"`
	Year        int                `json:"year" binding:"required,min=1000,max=9999"`
	Adjustments []ManualAdjustment `json:"adjustments" binding:"omitempty,dive"`
}

type PayslipResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	Number        string             `json:"number"`
	PeriodMonth   int                `json:"period_month"`
	PeriodYear    int                `json:"period_year"`
	BaseSalary    int64              `json:"base_salary"`
	OvertimeHours int64              `json:"overtime_hours"`
	OvertimeTotal int64              `json:"overtime_total"`
	ClaimTotal    int64              `json:"claim_total"`
	Adjustments   []ManualAdjustment `json:"adjustments"`
	GrossSalary   int64              `json:"gross_salary"`
	NetSalary     int64              `json:"net_salary"`
	Encrypted     bool               `json:"encrypted"`
	Status        string             `json:"status"`
	CreatedAt     string             `json:"created_at"`
}

type PreviewResponse struct {
	FileName      string             `json:"file_name"`
	ContentType   string             `json:"content_type"`
	Document      []byte             `json:"document"`
	BaseSalary    int64              `json:"base_salary"`
	OvertimeHours int64              `json:"overtime_hours"`
	OvertimeTotal int64              `json:"overtime_total"`
	ClaimTotal    int64              `json:"claim_total"`
	Adjustments   []ManualAdjustment `json:"adjustments"`
	GrossSalary   int64              `json:"gross_salary"`
	NetSalary     int64              `json:"net_salary"`
}
