package payslip

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/cutoff"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
)

const payslipCounterType = "payslip_number"

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Preview(ctx context.Context, companyID string, req ComposeRequest) (PreviewResponse, error)
	Send(ctx context.Context, companyID string, req ComposeRequest) (PayslipResponse, error)
	GetAll(ctx context.Context, companyID, employeeID string) ([]PayslipResponse, error)
	Dispatch(ctx context.Context, companyID, payslipID string) error
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Employees employee.Repository
	LineItems payroll.Repository
	Counters  counter.Repository
	Store     DocumentStore
	Encryptor Encryptor
	Outbox    kafka.OutboxRepository
	Mail      MailDispatcher
}

// MailDispatcher is what the kafka consumer side needs; the service owns the
// document and snapshot, the dispatcher just delivers.
type MailDispatcher interface {
	Deliver(ctx context.Context, companyID string, toName, toEmail, subject, body string, attachmentName string, document []byte) error
}

type service struct {
	deps Deps
	now  func() time.Time
}

func NewService(deps Deps) Service {
	return &service{deps: deps, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the server clock source. Tests only.
func (s *service) WithClock(now func() time.Time) *service {
	s.now = now
	return s
}

// composed is the output of the pure composition step, before anything is
// persisted.
type composed struct {
	employee    *employee.Employee
	doc         payslipDocument
	plain       []byte
	protected   []byte
	encrypted   bool
	adjustments []ManualAdjustment
}

func (s *service) compose(
	ctx context.Context,
	companyID string,
	req ComposeRequest,
	number string,
) (*composed, error) {
	window, err := cutoff.Resolve(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	emp, err := s.deps.Employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paysliperrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	base, err := s.deps.Employees.CurrentBaseSalary(ctx, req.EmployeeID, window.End)
	if err != nil {
		return nil, err
	}

	// preview figures are pre-payout, so only APPROVED items count
	items, err := s.deps.LineItems.FindApprovedByEmployee(ctx, companyID, req.EmployeeID, window)
	if err != nil {
		return nil, err
	}

	var overtimeHours, overtimeTotal, claimTotal int64
	for _, item := range items {
		switch item.Kind {
		case payroll.ItemKindOvertime:
			overtimeTotal += item.Amount
			overtimeHours += item.Hours
		case payroll.ItemKindClaim:
			claimTotal += item.Amount
		}
	}

	var earnings, deductions int64
	for _, adj := range req.Adjustments {
		if adj.Type == AdjustmentDeduction {
			deductions += adj.Amount
			continue
		}
		earnings += adj.Amount
	}

	gross := base + overtimeTotal + claimTotal + earnings
	net := gross - deductions

	doc := payslipDocument{
		EmployeeName:  emp.FullName,
		Number:        number,
		PeriodMonth:   req.Month,
		PeriodYear:    req.Year,
		BaseSalary:    base,
		OvertimeHours: overtimeHours,
		OvertimeTotal: overtimeTotal,
		ClaimTotal:    claimTotal,
		Adjustments:   req.Adjustments,
		GrossSalary:   gross,
		NetSalary:     net,
	}

	plain, err := buildPayslipPDF(doc)
	if err != nil {
		return nil, paysliperrors.ErrRenderingFailed
	}

	out := &composed{
		employee:    emp,
		doc:         doc,
		plain:       plain,
		adjustments: req.Adjustments,
	}

	if emp.DateOfBirth == nil {
		// deliverable, but everyone on call should notice
		contextutil.GetLogger(ctx, zap.L()).Warn("payslip delivered without encryption, employee has no date of birth",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", companyID),
		)
		out.protected = plain
		return out, nil
	}

	userPassword := emp.DateOfBirth.Format("02012006")
	ownerPassword, err := randomOwnerPassword()
	if err == nil {
		var protected []byte
		if protected, err = s.deps.Encryptor.Encrypt(ctx, plain, userPassword, ownerPassword); err == nil {
			out.protected = protected
			out.encrypted = true
			return out, nil
		}
	}

	// encryption trouble must never block delivery; fall back to plain
	contextutil.GetLogger(ctx, zap.L()).Error("payslip encryption failed, delivering unencrypted",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", companyID),
		zap.Error(err),
	)
	out.protected = plain
	return out, nil
}

func (s *service) Preview(
	ctx context.Context,
	companyID string,
	req ComposeRequest,
) (PreviewResponse, error) {
	out, err := s.compose(ctx, companyID, req, "PREVIEW")
	if err != nil {
		return PreviewResponse{}, err
	}

	return PreviewResponse{
		FileName:      fmt.Sprintf("payslip-%s-%d-%02d.pdf", req.EmployeeID, req.Year, req.Month),
		ContentType:   "application/pdf",
		Document:      out.plain,
		BaseSalary:    out.doc.BaseSalary,
		OvertimeHours: out.doc.OvertimeHours,
		OvertimeTotal: out.doc.OvertimeTotal,
		ClaimTotal:    out.doc.ClaimTotal,
		Adjustments:   out.adjustments,
		GrossSalary:   out.doc.GrossSalary,
		NetSalary:     out.doc.NetSalary,
	}, nil
}

func (s *service) Send(
	ctx context.Context,
	companyID string,
	req ComposeRequest,
) (PayslipResponse, error) {
	seq, err := s.deps.Counters.GetNextValue(ctx, companyID, payslipCounterType)
	if err != nil {
		return PayslipResponse{}, err
	}
	number := fmt.Sprintf("PS/%d/%02d/%06d", req.Year, req.Month, seq)

	out, err := s.compose(ctx, companyID, req, number)
	if err != nil {
		return PayslipResponse{}, err
	}

	// plain copy under a predictable path for admin retrieval; the encrypted
	// copy is the only one that leaves the system
	period := fmt.Sprintf("%d-%02d", req.Year, req.Month)
	plainPath, err := s.deps.Store.Save(ctx,
		fmt.Sprintf("%s/%s/%s/%06d.pdf", companyID, req.EmployeeID, period, seq),
		out.plain,
	)
	if err != nil {
		return PayslipResponse{}, err
	}

	documentPath := plainPath
	if out.encrypted {
		documentPath, err = s.deps.Store.Save(ctx,
			fmt.Sprintf("%s/%s/%s/%06d.protected.pdf", companyID, req.EmployeeID, period, seq),
			out.protected,
		)
		if err != nil {
			return PayslipResponse{}, err
		}
	}

	adjustmentsJSON, err := json.Marshal(out.adjustments)
	if err != nil {
		return PayslipResponse{}, err
	}

	row := &Payslip{
		ID:            uuid.New(),
		CompanyID:     out.employee.CompanyID,
		EmployeeID:    out.employee.ID,
		Number:        number,
		PeriodMonth:   req.Month,
		PeriodYear:    req.Year,
		BaseSalary:    out.doc.BaseSalary,
		OvertimeHours: out.doc.OvertimeHours,
		OvertimeTotal: out.doc.OvertimeTotal,
		ClaimTotal:    out.doc.ClaimTotal,
		Adjustments:   adjustmentsJSON,
		GrossSalary:   out.doc.GrossSalary,
		NetSalary:     out.doc.NetSalary,
		DocumentPath:  documentPath,
		Encrypted:     out.encrypted,
		Status:        StatusIssued,
	}

	tx, err := s.deps.DB.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	if err := s.deps.Repo.WithTx(tx).Create(ctx, row); err != nil {
		return PayslipResponse{}, err
	}

	payload, err := json.Marshal(events.PayslipIssuedEvent{
		EventType:    "payslip_issued",
		PayslipID:    row.ID.String(),
		CompanyID:    companyID,
		EmployeeID:   req.EmployeeID,
		PeriodMonth:  req.Month,
		PeriodYear:   req.Year,
		DocumentPath: documentPath,
		IssuedAt:     s.now(),
	})
	if err != nil {
		return PayslipResponse{}, err
	}

	err = s.deps.Outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payslip",
		AggregateID:   row.ID.String(),
		EventType:     "payslip_issued",
		Topic:         events.PayslipIssuedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(row), nil
}

func (s *service) GetAll(ctx context.Context, companyID, employeeID string) ([]PayslipResponse, error) {
	rows, err := s.deps.Repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(rows))
	for i := range rows {
		resp[i] = mapToResponse(&rows[i])
	}
	return resp, nil
}

// Dispatch is invoked by the kafka consumer: load the snapshot and document,
// deliver by mail, flip the row to SENT.
func (s *service) Dispatch(ctx context.Context, companyID, payslipID string) error {
	row, err := s.deps.Repo.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return paysliperrors.ErrDocumentMissing
		}
		return err
	}

	emp, err := s.deps.Employees.FindByIDAndCompany(ctx, companyID, row.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return paysliperrors.ErrEmployeeNotFound
		}
		return err
	}

	document, err := s.deps.Store.Load(ctx, row.DocumentPath)
	if err != nil {
		return paysliperrors.ErrDocumentMissing
	}

	subject := fmt.Sprintf("Payslip %02d/%d", row.PeriodMonth, row.PeriodYear)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour payslip %s for period %02d/%d is attached.",
		emp.FullName, row.Number, row.PeriodMonth, row.PeriodYear,
	)
	if row.Encrypted {
		body += "\nThe document is protected with your date of birth (DDMMYYYY)."
	}

	attachmentName := fmt.Sprintf("payslip-%d-%02d.pdf", row.PeriodYear, row.PeriodMonth)
	if err := s.deps.Mail.Deliver(ctx, companyID, emp.FullName, emp.Email, subject, body, attachmentName, document); err != nil {
		return err
	}

	return s.deps.Repo.MarkSent(ctx, companyID, payslipID)
}

func mapToResponse(p *Payslip) PayslipResponse {
	var adjustments []ManualAdjustment
	if len(p.Adjustments) > 0 {
		_ = json.Unmarshal(p.Adjustments, &adjustments)
	}

	return PayslipResponse{
		ID:            p.ID.String(),
		EmployeeID:    p.EmployeeID.String(),
		Number:        p.Number,
		PeriodMonth:   p.PeriodMonth,
		PeriodYear:    p.PeriodYear,
		BaseSalary:    p.BaseSalary,
		OvertimeHours: p.OvertimeHours,
		OvertimeTotal: p.OvertimeTotal,
		ClaimTotal:    p.ClaimTotal,
		Adjustments:   adjustments,
		GrossSalary:   p.GrossSalary,
		NetSalary:     p.NetSalary,
		Encrypted:     p.Encrypted,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func randomOwnerPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
