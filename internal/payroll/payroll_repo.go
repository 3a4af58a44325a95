package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-payroll/internal/cutoff"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindLineItemsBySubmission drives settlement: the window is matched
	// against submitted_at, the date the item was filed.
	FindLineItemsBySubmission(ctx context.Context, companyID string, w cutoff.Window) ([]PayableLineItem, error)
	// FindLineItemsByActivity serves reporting views only and must never
	// drive a payout.
	FindLineItemsByActivity(ctx context.Context, companyID string, w cutoff.Window) ([]PayableLineItem, error)
	FindApprovedByEmployee(ctx context.Context, companyID, employeeID string, w cutoff.Window) ([]PayableLineItem, error)
	MarkPaid(ctx context.Context, companyID string, employeeIDs []string, w cutoff.Window, paidAt time.Time) (int64, error)
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

const lineItemSelect = `
SELECT
	t.id::text          AS id,
	t.employee_id::text AS employee_id,
	e.full_name         AS employee_name,
	'overtime'          AS kind,
	t.activity_date     AS activity_date,
	t.submitted_at      AS submitted_at,
	t.amount            AS amount,
	t.hours             AS hours,
	t.status            AS status
FROM overtimes t
LEFT JOIN employees e ON e.id = t.employee_id AND e.deleted_at IS NULL
WHERE t.company_id = @company_id
	AND t.deleted_at IS NULL
	AND t.%[1]s BETWEEN @window_start AND @window_end
	%[2]s
UNION ALL
SELECT
	t.id::text          AS id,
	t.employee_id::text AS employee_id,
	e.full_name         AS employee_name,
	'claim'             AS kind,
	t.activity_date     AS activity_date,
	t.submitted_at      AS submitted_at,
	t.amount            AS amount,
	0                   AS hours,
	t.status            AS status
FROM claims t
LEFT JOIN employees e ON e.id = t.employee_id AND e.deleted_at IS NULL
WHERE t.company_id = @company_id
	AND t.deleted_at IS NULL
	AND t.%[1]s BETWEEN @window_start AND @window_end
	%[2]s
ORDER BY submitted_at ASC
`

func (r *repository) FindLineItemsBySubmission(
	ctx context.Context,
	companyID string,
	w cutoff.Window,
) ([]PayableLineItem, error) {
	return r.findLineItems(ctx, companyID, "submitted_at", "", w, nil)
}

func (r *repository) FindLineItemsByActivity(
	ctx context.Context,
	companyID string,
	w cutoff.Window,
) ([]PayableLineItem, error) {
	return r.findLineItems(ctx, companyID, "activity_date", "", w, nil)
}

func (r *repository) FindApprovedByEmployee(
	ctx context.Context,
	companyID, employeeID string,
	w cutoff.Window,
) ([]PayableLineItem, error) {
	extra := "AND t.employee_id = @employee_id AND t.status = @status"
	return r.findLineItems(ctx, companyID, "submitted_at", extra, w, map[string]any{
		"employee_id": employeeID,
		"status":      ItemStatusApproved,
	})
}

func (r *repository) findLineItems(
	ctx context.Context,
	companyID string,
	windowColumn string,
	extraFilter string,
	w cutoff.Window,
	extraParams map[string]any,
) ([]PayableLineItem, error) {
	params := map[string]any{
		"company_id":   companyID,
		"window_start": w.Start,
		"window_end":   w.End,
	}
	for k, v := range extraParams {
		params[k] = v
	}

	query := fmt.Sprintf(lineItemSelect, windowColumn, extraFilter)

	var items []PayableLineItem
	err := r.db.WithContext(ctx).Raw(query, params).Scan(&items).Error
	return items, err
}

// MarkPaid flips APPROVED rows in the window to PAID. Rows already PAID fall
// outside the WHERE clause, so a repeated call affects zero rows.
func (r *repository) MarkPaid(
	ctx context.Context,
	companyID string,
	employeeIDs []string,
	w cutoff.Window,
	paidAt time.Time,
) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}

	var total int64
	for _, table := range []string{"overtimes", "claims"} {
		args := []any{ItemStatusPaid, paidAt, companyID, ItemStatusApproved, w.Start, w.End}
		placeholders := make([]string, len(employeeIDs))
		for i, id := range employeeIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}

		query := fmt.Sprintf(`
UPDATE %s
SET status = $1, paid_at = $2, updated_at = NOW()
WHERE company_id = $3
	AND status = $4
	AND submitted_at BETWEEN $5 AND $6
	AND deleted_at IS NULL
	AND employee_id IN (%s)
`, table, strings.Join(placeholders, ", "))

		res, err := r.execer().ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		total += affected
	}

	return total, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		// surfaces as a query error on the first ExecContext
		return failingExecer{err: err}
	}
	return sqlDB
}

type failingExecer struct{ err error }

func (f failingExecer) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, f.err
}
