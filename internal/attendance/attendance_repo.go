package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-payroll/internal/tenant"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *AttendanceEvent) error
	FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*AttendanceEvent, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string, date *time.Time) ([]AttendanceEvent, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*AttendanceEvent, error) {
	var e AttendanceEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("server_ts DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string, date *time.Time) ([]AttendanceEvent, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID)

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("server_ts >= ? AND server_ts < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var rows []AttendanceEvent
	err := q.Order("server_ts DESC").Find(&rows).Error
	return rows, err
}
