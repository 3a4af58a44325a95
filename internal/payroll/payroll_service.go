package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"go-payroll/internal/cutoff"
	payrollerrors "go-payroll/internal/payroll/errors"
)

const (
	SummaryStatusProcessing = "Processing"
	SummaryStatusPending    = "Pending"
	SummaryStatusPaid       = "Paid"
	SummaryStatusNoData     = "No Data"
)

const unknownUserName = "Unknown User"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Summarize(ctx context.Context, companyID string, month, year int) ([]EmployeePayableSummary, error)
	MarkPaid(ctx context.Context, companyID string, req PayoutRequest) (PayoutResponse, error)
}

type service struct {
	db    *sql.DB
	repo  Repository
	group singleflight.Group
	now   func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the server clock source. Tests only.
func (s *service) WithClock(now func() time.Time) *service {
	s.now = now
	return s
}

// Summarize derives the per-employee payable totals for one settlement window.
// The result is always recomputed from the line items; identical concurrent
// requests share a single computation via singleflight.
func (s *service) Summarize(
	ctx context.Context,
	companyID string,
	month, year int,
) ([]EmployeePayableSummary, error) {
	window, err := cutoff.Resolve(month, year)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%d-%d", companyID, year, month)
	v, err, _ := s.group.Do(key, func() (any, error) {
		items, err := s.repo.FindLineItemsBySubmission(ctx, companyID, window)
		if err != nil {
			return nil, err
		}
		return aggregate(items), nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeePayableSummary), nil
}

func (s *service) MarkPaid(
	ctx context.Context,
	companyID string,
	req PayoutRequest,
) (PayoutResponse, error) {
	if len(req.EmployeeIDs) == 0 {
		return PayoutResponse{}, payrollerrors.ErrNoSelection
	}
	for _, id := range req.EmployeeIDs {
		if _, err := uuid.Parse(id); err != nil {
			return PayoutResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
	}

	window, err := cutoff.Resolve(req.Month, req.Year)
	if err != nil {
		return PayoutResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayoutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.MarkPaid(ctx, companyID, req.EmployeeIDs, window, s.now())
	if err != nil {
		return PayoutResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayoutResponse{}, err
	}

	return PayoutResponse{UpdatedCount: affected, Month: req.Month, Year: req.Year}, nil
}

type summaryBuilder struct {
	summary     EmployeePayableSummary
	hasApproved bool
	hasPending  bool
	hasPaid     bool
}

// aggregate groups line items by employee. Items whose employee row was
// deleted keep a bucket under the original id, money never disappears from
// the summary.
func aggregate(items []PayableLineItem) []EmployeePayableSummary {
	builders := make(map[string]*summaryBuilder)
	order := make([]string, 0)

	for _, item := range items {
		b, ok := builders[item.EmployeeID]
		if !ok {
			name := unknownUserName
			if item.EmployeeName != nil && *item.EmployeeName != "" {
				name = *item.EmployeeName
			}
			b = &summaryBuilder{summary: EmployeePayableSummary{
				EmployeeID:  item.EmployeeID,
				DisplayName: name,
			}}
			builders[item.EmployeeID] = b
			order = append(order, item.EmployeeID)
		}

		switch item.Status {
		case ItemStatusApproved:
			b.hasApproved = true
		case ItemStatusPending:
			b.hasPending = true
		case ItemStatusPaid:
			b.hasPaid = true
		}

		// only money that was approved (or already paid out) counts
		if item.Status != ItemStatusApproved && item.Status != ItemStatusPaid {
			continue
		}

		switch item.Kind {
		case ItemKindOvertime:
			b.summary.OvertimeTotal += item.Amount
			b.summary.OvertimeHours += item.Hours
		case ItemKindClaim:
			b.summary.ClaimTotal += item.Amount
		}
	}

	summaries := make([]EmployeePayableSummary, 0, len(order))
	for _, id := range order {
		b := builders[id]
		b.summary.TotalPayable = b.summary.OvertimeTotal + b.summary.ClaimTotal
		b.summary.Status = deriveStatus(b)
		summaries = append(summaries, b.summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalPayable != summaries[j].TotalPayable {
			return summaries[i].TotalPayable > summaries[j].TotalPayable
		}
		return summaries[i].DisplayName < summaries[j].DisplayName
	})

	return summaries
}

// deriveStatus: an APPROVED item means money is still waiting to be paid out,
// which outranks items waiting for approval, which outranks fully settled.
func deriveStatus(b *summaryBuilder) string {
	switch {
	case b.hasApproved:
		return SummaryStatusProcessing
	case b.hasPending:
		return SummaryStatusPending
	case b.hasPaid:
		return SummaryStatusPaid
	default:
		return SummaryStatusNoData
	}
}
