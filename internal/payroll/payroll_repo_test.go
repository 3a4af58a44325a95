package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/cutoff"
	"go-payroll/internal/payroll"
)

// The WHERE clause is what makes the payout safe to retry: only APPROVED rows
// inside the submission window flip, so a repeated call matches nothing.
func markPaidPattern(table string) string {
	return "UPDATE " + table + `\s+` +
		`SET status = \$1, paid_at = \$2, updated_at = NOW\(\)\s+` +
		`WHERE company_id = \$3\s+` +
		`AND status = \$4\s+` +
		`AND submitted_at BETWEEN \$5 AND \$6\s+` +
		`AND deleted_at IS NULL\s+` +
		`AND employee_id IN \(\$7\)`
}

func TestRepositoryMarkPaid_FlipsOnlyApprovedRowsInWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	w, err := cutoff.Resolve(1, 2026)
	assert.NoError(t, err)
	paidAt := time.Date(2026, 1, 28, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(markPaidPattern("overtimes")).
		WithArgs(payroll.ItemStatusPaid, paidAt, companyID, payroll.ItemStatusApproved, w.Start, w.End, employeeID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(markPaidPattern("claims")).
		WithArgs(payroll.ItemStatusPaid, paidAt, companyID, payroll.ItemStatusApproved, w.Start, w.End, employeeID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := payroll.NewRepository(nil).WithTx(tx)
	affected, err := repo.MarkPaid(context.Background(), companyID, []string{employeeID}, w, paidAt)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMarkPaid_StatementShapeGuardsRerun(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	w, err := cutoff.Resolve(1, 2026)
	assert.NoError(t, err)
	paidAt := time.Date(2026, 1, 28, 9, 0, 0, 0, time.UTC)

	// every APPROVED row flipped on the first run, so the same statement now
	// matches nothing in either table
	for _, table := range []string{"overtimes", "claims"} {
		mock.ExpectExec(markPaidPattern(table)).
			WithArgs(payroll.ItemStatusPaid, paidAt, companyID, payroll.ItemStatusApproved, w.Start, w.End, employeeID).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	repo := payroll.NewRepository(nil).WithTx(tx)
	affected, err := repo.MarkPaid(context.Background(), companyID, []string{employeeID}, w, paidAt)

	assert.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMarkPaid_BindsTwoEmployees(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	companyID := uuid.New().String()
	first := uuid.New().String()
	second := uuid.New().String()
	w, err := cutoff.Resolve(2, 2026)
	assert.NoError(t, err)
	paidAt := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)

	for _, table := range []string{"overtimes", "claims"} {
		mock.ExpectExec("UPDATE "+table+`[\s\S]+employee_id IN \(\$7, \$8\)`).
			WithArgs(payroll.ItemStatusPaid, paidAt, companyID, payroll.ItemStatusApproved, w.Start, w.End, first, second).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	repo := payroll.NewRepository(nil).WithTx(tx)
	affected, err := repo.MarkPaid(context.Background(), companyID, []string{first, second}, w, paidAt)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
