package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ItemStatusPending  = "PENDING"
	ItemStatusApproved = "APPROVED"
	ItemStatusPaid     = "PAID"
	ItemStatusRejected = "REJECTED"
)

const (
	ItemKindOvertime = "overtime"
	ItemKindClaim    = "claim"
)

// Overtime and Claim rows are written by the approval workflow; settlement
// only reads them and flips APPROVED to PAID.

type Overtime struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID   uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	ActivityDate time.Time      `gorm:"column:activity_date;type:date;not null"`
	SubmittedAt  time.Time      `gorm:"column:submitted_at;type:timestamptz;not null;index"`
	Hours        int64          `gorm:"column:hours;not null"`
	Amount       int64          `gorm:"column:amount;not null"`
	Status       string         `gorm:"column:status;type:varchar(20);not null"`
	PaidAt       *time.Time     `gorm:"column:paid_at;type:timestamptz"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Overtime) TableName() string {
	return "overtimes"
}

type Claim struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID   uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	ActivityDate time.Time      `gorm:"column:activity_date;type:date;not null"`
	SubmittedAt  time.Time      `gorm:"column:submitted_at;type:timestamptz;not null;index"`
	Amount       int64          `gorm:"column:amount;not null"`
	Status       string         `gorm:"column:status;type:varchar(20);not null"`
	PaidAt       *time.Time     `gorm:"column:paid_at;type:timestamptz"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Claim) TableName() string {
	return "claims"
}

// PayableLineItem is the read model the aggregator consumes, one row per
// overtime or claim. EmployeeName is nil when the employee row was deleted;
// the money still has to show up in the summary.
type PayableLineItem struct {
	ID           string
	EmployeeID   string
	EmployeeName *string
	Kind         string
	ActivityDate time.Time
	SubmittedAt  time.Time
	Amount       int64
	Hours        int64
	Status       string
}
