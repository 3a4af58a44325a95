package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindClockIn  = "CLOCK_IN"
	KindClockOut = "CLOCK_OUT"
)

// AttendanceEvent is one row of the append-only clock ledger. ServerTS is set
// by the service from its own clock; client-supplied timestamps are never
// trusted. Rows are immutable once written: no updates, no deletes.
type AttendanceEvent struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_employee_server_ts"`
	Kind           string    `gorm:"column:kind;type:varchar(20);not null"`
	ServerTS       time.Time `gorm:"column:server_ts;type:timestamptz;not null;index:idx_employee_server_ts"`
	Latitude       float64   `gorm:"column:latitude;not null"`
	Longitude      float64   `gorm:"column:longitude;not null"`
	AccuracyMeters float64   `gorm:"column:accuracy_m;not null;default:0"`
	Suspicious     bool      `gorm:"column:suspicious;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}
