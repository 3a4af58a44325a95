package payslip

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusIssued = "ISSUED"
	StatusSent   = "SENT"
)

// Payslip is an immutable snapshot of what was communicated to the employee.
// A resend creates a new row; rows are never updated beyond the SENT flip.
type Payslip struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID    uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Number        string    `gorm:"column:number;type:varchar(40);not null"`
	PeriodMonth   int       `gorm:"column:period_month;not null"`
	PeriodYear    int       `gorm:"column:period_year;not null"`
	BaseSalary    int64     `gorm:"column:base_salary;not null"`
	OvertimeHours int64     `gorm:"column:overtime_hours;not null"`
	OvertimeTotal int64     `gorm:"column:overtime_total;not null"`
	ClaimTotal    int64     `gorm:"column:claim_total;not null"`
	Adjustments   []byte    `gorm:"column:adjustments;type:jsonb"`
	GrossSalary   int64     `gorm:"column:gross_salary;not null"`
	NetSalary     int64     `gorm:"column:net_salary;not null"`
	DocumentPath  string    `gorm:"column:document_path;type:varchar(500);not null"`
	Encrypted     bool      `gorm:"column:encrypted;not null"`
	Status        string    `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Payslip) TableName() string {
	return "payslips"
}
