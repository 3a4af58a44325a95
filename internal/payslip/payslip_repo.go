package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-payroll/internal/tenant"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Payslip, error)
	MarkSent(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	if r.tx != nil {
		query := `
        INSERT INTO payslips (
            id, company_id, employee_id, number, period_month, period_year,
            base_salary, overtime_hours, overtime_total, claim_total,
            adjustments, gross_salary, net_salary, document_path, encrypted, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `
		_, err := r.tx.ExecContext(
			ctx, query,
			p.ID, p.CompanyID, p.EmployeeID, p.Number, p.PeriodMonth, p.PeriodYear,
			p.BaseSalary, p.OvertimeHours, p.OvertimeTotal, p.ClaimTotal,
			p.Adjustments, p.GrossSalary, p.NetSalary, p.DocumentPath, p.Encrypted, p.Status,
		)
		return err
	}

	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Payslip, error) {
	var payslips []Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) MarkSent(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("status", StatusSent).Error
}
