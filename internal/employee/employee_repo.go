package employee

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-payroll/internal/tenant"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	AttendanceEnabled(ctx context.Context, companyID, employeeID string) (bool, error)
	CurrentBaseSalary(ctx context.Context, employeeID string, asOf time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) AttendanceEnabled(ctx context.Context, companyID, employeeID string) (bool, error) {
	var enabled bool
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Select("attendance_enabled").
		Scan(&enabled).Error
	return enabled, err
}

// CurrentBaseSalary resolves the salary row effective at asOf.
// No salary history yet means a zero base, not an error.
func (r *repository) CurrentBaseSalary(ctx context.Context, employeeID string, asOf time.Time) (int64, error) {
	var row EmployeeSalary
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("effective_date <= ?", asOf.Format("2006-01-02")).
		Order("effective_date DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.BaseSalary, nil
}
