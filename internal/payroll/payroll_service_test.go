package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/cutoff"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
)

type fakePayrollRepository struct {
	withTxFn                  func(tx *sql.Tx) payroll.Repository
	findLineItemsBySubmission func(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error)
	findLineItemsByActivity   func(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error)
	findApprovedByEmployeeFn  func(ctx context.Context, companyID, employeeID string, w cutoff.Window) ([]payroll.PayableLineItem, error)
	markPaidFn                func(ctx context.Context, companyID string, employeeIDs []string, w cutoff.Window, paidAt time.Time) (int64, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) FindLineItemsBySubmission(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
	if f.findLineItemsBySubmission != nil {
		return f.findLineItemsBySubmission(ctx, companyID, w)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindLineItemsByActivity(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
	if f.findLineItemsByActivity != nil {
		return f.findLineItemsByActivity(ctx, companyID, w)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindApprovedByEmployee(ctx context.Context, companyID, employeeID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
	if f.findApprovedByEmployeeFn != nil {
		return f.findApprovedByEmployeeFn(ctx, companyID, employeeID, w)
	}
	return nil, nil
}

func (f *fakePayrollRepository) MarkPaid(ctx context.Context, companyID string, employeeIDs []string, w cutoff.Window, paidAt time.Time) (int64, error) {
	if f.markPaidFn != nil {
		return f.markPaidFn(ctx, companyID, employeeIDs, w, paidAt)
	}
	return 0, nil
}

func strPtr(s string) *string { return &s }

func TestSummarize_ApprovedCountsPendingDoesNot(t *testing.T) {
	employeeID := uuid.New().String()
	submitted := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	repo := &fakePayrollRepository{
		findLineItemsBySubmission: func(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
			return []payroll.PayableLineItem{
				{EmployeeID: employeeID, EmployeeName: strPtr("Budi Santoso"), Kind: payroll.ItemKindOvertime, SubmittedAt: submitted, Amount: 200000, Hours: 4, Status: payroll.ItemStatusApproved},
				{EmployeeID: employeeID, EmployeeName: strPtr("Budi Santoso"), Kind: payroll.ItemKindClaim, SubmittedAt: submitted, Amount: 50000, Status: payroll.ItemStatusPending},
			}, nil
		},
	}

	svc := payroll.NewService(nil, repo)

	summaries, err := svc.Summarize(context.Background(), uuid.New().String(), 1, 2026)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)

	got := summaries[0]
	assert.Equal(t, "Budi Santoso", got.DisplayName)
	assert.Equal(t, int64(200000), got.OvertimeTotal)
	assert.Equal(t, int64(4), got.OvertimeHours)
	assert.Equal(t, int64(0), got.ClaimTotal, "pending claims are visible in status but not in totals")
	assert.Equal(t, int64(200000), got.TotalPayable)
	assert.Equal(t, payroll.SummaryStatusProcessing, got.Status)
}

func TestSummarize_StatusPrecedence(t *testing.T) {
	submitted := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"approved outranks everything", []string{payroll.ItemStatusPaid, payroll.ItemStatusApproved, payroll.ItemStatusPending}, payroll.SummaryStatusProcessing},
		{"pending outranks paid", []string{payroll.ItemStatusPaid, payroll.ItemStatusPending}, payroll.SummaryStatusPending},
		{"all paid", []string{payroll.ItemStatusPaid, payroll.ItemStatusPaid}, payroll.SummaryStatusPaid},
		{"only rejected", []string{payroll.ItemStatusRejected}, payroll.SummaryStatusNoData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			employeeID := uuid.New().String()
			items := make([]payroll.PayableLineItem, 0, len(tc.statuses))
			for _, st := range tc.statuses {
				items = append(items, payroll.PayableLineItem{
					EmployeeID:   employeeID,
					EmployeeName: strPtr("Siti Rahma"),
					Kind:         payroll.ItemKindClaim,
					SubmittedAt:  submitted,
					Amount:       10000,
					Status:       st,
				})
			}

			repo := &fakePayrollRepository{
				findLineItemsBySubmission: func(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
					return items, nil
				},
			}
			svc := payroll.NewService(nil, repo)

			summaries, err := svc.Summarize(context.Background(), uuid.New().String(), 3, 2026)
			assert.NoError(t, err)
			assert.Len(t, summaries, 1)
			assert.Equal(t, tc.want, summaries[0].Status)
		})
	}
}

func TestSummarize_DeletedEmployeeKeepsBucket(t *testing.T) {
	ghostID := uuid.New().String()
	submitted := time.Date(2026, 5, 3, 8, 0, 0, 0, time.UTC)

	repo := &fakePayrollRepository{
		findLineItemsBySubmission: func(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
			return []payroll.PayableLineItem{
				{EmployeeID: ghostID, EmployeeName: nil, Kind: payroll.ItemKindOvertime, SubmittedAt: submitted, Amount: 75000, Hours: 2, Status: payroll.ItemStatusApproved},
			}, nil
		},
	}
	svc := payroll.NewService(nil, repo)

	summaries, err := svc.Summarize(context.Background(), uuid.New().String(), 5, 2026)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, ghostID, summaries[0].EmployeeID)
	assert.Equal(t, "Unknown User", summaries[0].DisplayName)
	assert.Equal(t, int64(75000), summaries[0].TotalPayable)
}

func TestSummarize_OrderedByTotalDescending(t *testing.T) {
	submitted := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	low := uuid.New().String()
	high := uuid.New().String()

	repo := &fakePayrollRepository{
		findLineItemsBySubmission: func(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
			return []payroll.PayableLineItem{
				{EmployeeID: low, EmployeeName: strPtr("Andi"), Kind: payroll.ItemKindClaim, SubmittedAt: submitted, Amount: 10000, Status: payroll.ItemStatusApproved},
				{EmployeeID: high, EmployeeName: strPtr("Rina"), Kind: payroll.ItemKindClaim, SubmittedAt: submitted, Amount: 90000, Status: payroll.ItemStatusApproved},
			}, nil
		},
	}
	svc := payroll.NewService(nil, repo)

	summaries, err := svc.Summarize(context.Background(), uuid.New().String(), 7, 2026)
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, high, summaries[0].EmployeeID)
	assert.Equal(t, low, summaries[1].EmployeeID)
}

func TestSummarize_EmptyWindow(t *testing.T) {
	repo := &fakePayrollRepository{}
	svc := payroll.NewService(nil, repo)

	summaries, err := svc.Summarize(context.Background(), uuid.New().String(), 2, 2026)
	assert.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSummarize_InvalidPeriod(t *testing.T) {
	svc := payroll.NewService(nil, &fakePayrollRepository{})

	_, err := svc.Summarize(context.Background(), uuid.New().String(), 13, 2026)
	assert.ErrorIs(t, err, cutoff.ErrInvalidPeriod)
}

func TestMarkPaid_EmptySelection(t *testing.T) {
	svc := payroll.NewService(nil, &fakePayrollRepository{})

	_, err := svc.MarkPaid(context.Background(), uuid.New().String(), payroll.PayoutRequest{
		EmployeeIDs: nil, Month: 1, Year: 2026,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrNoSelection)
}

func TestMarkPaid_CommitsAndReportsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	employeeID := uuid.New().String()
	repo := &fakePayrollRepository{
		markPaidFn: func(ctx context.Context, companyID string, employeeIDs []string, w cutoff.Window, paidAt time.Time) (int64, error) {
			assert.Equal(t, []string{employeeID}, employeeIDs)
			assert.Equal(t, 28, w.Start.Day())
			assert.Equal(t, 27, w.End.Day())
			return 3, nil
		},
	}
	svc := payroll.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.MarkPaid(context.Background(), uuid.New().String(), payroll.PayoutRequest{
		EmployeeIDs: []string{employeeID}, Month: 1, Year: 2026,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), resp.UpdatedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_SecondRunAffectsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	paidOut := false
	repo := &fakePayrollRepository{
		markPaidFn: func(ctx context.Context, companyID string, employeeIDs []string, w cutoff.Window, paidAt time.Time) (int64, error) {
			if paidOut {
				return 0, nil
			}
			paidOut = true
			return 2, nil
		},
	}
	svc := payroll.NewService(db, repo)
	req := payroll.PayoutRequest{EmployeeIDs: []string{uuid.New().String()}, Month: 4, Year: 2026}
	companyID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.MarkPaid(context.Background(), companyID, req)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), first.UpdatedCount)

	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.MarkPaid(context.Background(), companyID, req)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), second.UpdatedCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_InvalidEmployeeID(t *testing.T) {
	svc := payroll.NewService(nil, &fakePayrollRepository{})

	_, err := svc.MarkPaid(context.Background(), uuid.New().String(), payroll.PayoutRequest{
		EmployeeIDs: []string{"not-a-uuid"}, Month: 1, Year: 2026,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)
}
