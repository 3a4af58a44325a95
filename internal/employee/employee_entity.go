package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the read model this subsystem needs from the HR master data:
// identity for display, date of birth for payslip encryption, the attendance
// capability flag, and the registered email for payslip delivery.
type Employee struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;index"`
	FullName          string     `gorm:"column:full_name"`
	Email             string     `gorm:"uniqueIndex"`
	DateOfBirth       *time.Time `gorm:"column:date_of_birth;type:date"`
	AttendanceEnabled bool       `gorm:"column:attendance_enabled;not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeSalary is an append-only, effective-dated base salary history;
// the row with the latest effective date wins.
type EmployeeSalary struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BaseSalary    int64     `gorm:"type:bigint;not null;default:0"`
	EffectiveDate time.Time `gorm:"type:date;not null"`
	CreatedAt     time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
