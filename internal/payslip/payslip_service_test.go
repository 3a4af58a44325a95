package payslip_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-payroll/internal/cutoff"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
)

type fakeEmployeeRepo struct {
	employee *employee.Employee
	salary   int64
}

func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.employee == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.employee, nil
}

func (f *fakeEmployeeRepo) AttendanceEnabled(ctx context.Context, companyID, employeeID string) (bool, error) {
	return true, nil
}

func (f *fakeEmployeeRepo) CurrentBaseSalary(ctx context.Context, employeeID string, asOf time.Time) (int64, error) {
	return f.salary, nil
}

type fakeLineItemRepo struct {
	items []payroll.PayableLineItem
}

func (f *fakeLineItemRepo) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeLineItemRepo) FindLineItemsBySubmission(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
	return f.items, nil
}

func (f *fakeLineItemRepo) FindLineItemsByActivity(ctx context.Context, companyID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
	return f.items, nil
}

func (f *fakeLineItemRepo) FindApprovedByEmployee(ctx context.Context, companyID, employeeID string, w cutoff.Window) ([]payroll.PayableLineItem, error) {
	return f.items, nil
}

func (f *fakeLineItemRepo) MarkPaid(ctx context.Context, companyID string, employeeIDs []string, w cutoff.Window, paidAt time.Time) (int64, error) {
	return 0, nil
}

type fakePayslipRepo struct {
	created []*payslip.Payslip
	rows    []payslip.Payslip
	sentIDs []string
}

func (f *fakePayslipRepo) WithTx(tx *sql.Tx) payslip.Repository { return f }

func (f *fakePayslipRepo) Create(ctx context.Context, p *payslip.Payslip) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePayslipRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payslip.Payslip, error) {
	for i := range f.rows {
		if f.rows[i].ID.String() == id {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayslipRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]payslip.Payslip, error) {
	return f.rows, nil
}

func (f *fakePayslipRepo) MarkSent(ctx context.Context, companyID, id string) error {
	f.sentIDs = append(f.sentIDs, id)
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeStore struct {
	saved map[string][]byte
}

func (f *fakeStore) Save(ctx context.Context, relPath string, data []byte) (string, error) {
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[relPath] = data
	return relPath, nil
}

func (f *fakeStore) Load(ctx context.Context, path string) ([]byte, error) {
	return f.saved[path], nil
}

type fakeEncryptor struct {
	calls         int
	err           error
	lastUserPass  string
	lastOwnerPass string
}

func (f *fakeEncryptor) Encrypt(ctx context.Context, document []byte, userPassword, ownerPassword string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.lastUserPass = userPassword
	f.lastOwnerPass = ownerPassword
	return append([]byte("ENC:"), document...), nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ClaimPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id, r string) error { return nil }

type fakeDispatcher struct {
	delivered int
	lastTo    string
	lastDoc   []byte
}

func (f *fakeDispatcher) Deliver(ctx context.Context, companyID, toName, toEmail, subject, body, attachmentName string, document []byte) error {
	f.delivered++
	f.lastTo = toEmail
	f.lastDoc = document
	return nil
}

func testEmployee(withDOB bool) *employee.Employee {
	emp := &employee.Employee{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		FullName:  "Dewi Lestari",
		Email:     "dewi@example.com",
	}
	if withDOB {
		dob := time.Date(1991, 7, 5, 0, 0, 0, 0, time.UTC)
		emp.DateOfBirth = &dob
	}
	return emp
}

func TestPreview_ComputesGrossAndNet(t *testing.T) {
	emp := testEmployee(true)
	enc := &fakeEncryptor{}
	svc := payslip.NewService(payslip.Deps{
		Employees: &fakeEmployeeRepo{employee: emp, salary: 5_000_000},
		LineItems: &fakeLineItemRepo{items: []payroll.PayableLineItem{
			{Kind: payroll.ItemKindOvertime, Amount: 200_000, Hours: 4, Status: payroll.ItemStatusApproved},
			{Kind: payroll.ItemKindClaim, Amount: 150_000, Status: payroll.ItemStatusApproved},
		}},
		Encryptor: enc,
	})

	resp, err := svc.Preview(context.Background(), emp.CompanyID.String(), payslip.ComposeRequest{
		EmployeeID: emp.ID.String(),
		Month:      1,
		Year:       2026,
		Adjustments: []payslip.ManualAdjustment{
			{Label: "Transport allowance", Amount: 100_000, Type: payslip.AdjustmentEarning},
			{Label: "Loan installment", Amount: 250_000, Type: payslip.AdjustmentDeduction},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5_000_000), resp.BaseSalary)
	assert.Equal(t, int64(200_000), resp.OvertimeTotal)
	assert.Equal(t, int64(4), resp.OvertimeHours)
	assert.Equal(t, int64(150_000), resp.ClaimTotal)
	assert.Equal(t, int64(5_450_000), resp.GrossSalary)
	assert.Equal(t, int64(5_200_000), resp.NetSalary)
	assert.True(t, bytes.HasPrefix(resp.Document, []byte("%PDF")))
}

func TestPreview_EncryptsWithDateOfBirthPassword(t *testing.T) {
	emp := testEmployee(true)
	enc := &fakeEncryptor{}
	svc := payslip.NewService(payslip.Deps{
		Employees: &fakeEmployeeRepo{employee: emp, salary: 1_000_000},
		LineItems: &fakeLineItemRepo{},
		Encryptor: enc,
	})

	_, err := svc.Preview(context.Background(), emp.CompanyID.String(), payslip.ComposeRequest{
		EmployeeID: emp.ID.String(), Month: 1, Year: 2026,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, enc.calls)
	assert.Equal(t, "05071991", enc.lastUserPass, "user password is DOB as DDMMYYYY")
	assert.NotEmpty(t, enc.lastOwnerPass)
	assert.NotEqual(t, enc.lastUserPass, enc.lastOwnerPass)
}

func TestPreview_MissingDOBSkipsEncryption(t *testing.T) {
	emp := testEmployee(false)
	enc := &fakeEncryptor{}
	svc := payslip.NewService(payslip.Deps{
		Employees: &fakeEmployeeRepo{employee: emp, salary: 1_000_000},
		LineItems: &fakeLineItemRepo{},
		Encryptor: enc,
	})

	resp, err := svc.Preview(context.Background(), emp.CompanyID.String(), payslip.ComposeRequest{
		EmployeeID: emp.ID.String(), Month: 1, Year: 2026,
	})

	assert.NoError(t, err, "missing date of birth degrades, never blocks delivery")
	assert.Equal(t, 0, enc.calls)
	assert.NotEmpty(t, resp.Document)
}

func TestPreview_EncryptionFailureFallsBackToPlain(t *testing.T) {
	emp := testEmployee(true)
	enc := &fakeEncryptor{err: errors.New("qpdf exited 2")}
	svc := payslip.NewService(payslip.Deps{
		Employees: &fakeEmployeeRepo{employee: emp, salary: 1_000_000},
		LineItems: &fakeLineItemRepo{},
		Encryptor: enc,
	})

	resp, err := svc.Preview(context.Background(), emp.CompanyID.String(), payslip.ComposeRequest{
		EmployeeID: emp.ID.String(), Month: 1, Year: 2026,
	})

	assert.NoError(t, err, "encryption trouble degrades, never blocks delivery")
	assert.Equal(t, 1, enc.calls)
	assert.NotEmpty(t, resp.Document)
}

func TestSend_EncryptionFailureDeliversUnprotectedCopy(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	emp := testEmployee(true)
	repo := &fakePayslipRepo{}
	store := &fakeStore{}
	svc := payslip.NewService(payslip.Deps{
		DB:        db,
		Repo:      repo,
		Employees: &fakeEmployeeRepo{employee: emp, salary: 1_000_000},
		LineItems: &fakeLineItemRepo{},
		Counters:  &fakeCounter{},
		Store:     store,
		Encryptor: &fakeEncryptor{err: errors.New("qpdf exited 2")},
		Outbox:    &fakeOutbox{},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Send(context.Background(), emp.CompanyID.String(), payslip.ComposeRequest{
		EmployeeID: emp.ID.String(), Month: 2, Year: 2026,
	})

	assert.NoError(t, err)
	assert.False(t, resp.Encrypted)
	assert.Len(t, repo.created, 1)
	assert.False(t, repo.created[0].Encrypted)

	// only the plain copy exists; nothing claims to be protected
	assert.Len(t, store.saved, 1)
	for path := range store.saved {
		assert.NotContains(t, path, ".protected")
	}
	assert.NotContains(t, repo.created[0].DocumentPath, ".protected")
}

func TestSend_PersistsSnapshotAndQueuesDispatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	emp := testEmployee(true)
	repo := &fakePayslipRepo{}
	outbox := &fakeOutbox{}
	store := &fakeStore{}
	svc := payslip.NewService(payslip.Deps{
		DB:        db,
		Repo:      repo,
		Employees: &fakeEmployeeRepo{employee: emp, salary: 3_000_000},
		LineItems: &fakeLineItemRepo{items: []payroll.PayableLineItem{
			{Kind: payroll.ItemKindClaim, Amount: 120_000, Status: payroll.ItemStatusApproved},
		}},
		Counters:  &fakeCounter{},
		Store:     store,
		Encryptor: &fakeEncryptor{},
		Outbox:    outbox,
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Send(context.Background(), emp.CompanyID.String(), payslip.ComposeRequest{
		EmployeeID: emp.ID.String(), Month: 2, Year: 2026,
	})

	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, payslip.StatusIssued, repo.created[0].Status)
	assert.Equal(t, "PS/2026/02/000001", resp.Number)
	assert.Equal(t, int64(3_120_000), resp.NetSalary)
	assert.True(t, resp.Encrypted)

	// plain and protected copies both land in the store
	assert.Len(t, store.saved, 2)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, events.PayslipIssuedTopic, outbox.events[0].Topic)

	var evt events.PayslipIssuedEvent
	assert.NoError(t, json.Unmarshal(outbox.events[0].Payload, &evt))
	assert.Equal(t, repo.created[0].ID.String(), evt.PayslipID)
	assert.Contains(t, evt.DocumentPath, ".protected.pdf")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_ResendCreatesNewRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	emp := testEmployee(true)
	repo := &fakePayslipRepo{}
	svc := payslip.NewService(payslip.Deps{
		DB:        db,
		Repo:      repo,
		Employees: &fakeEmployeeRepo{employee: emp, salary: 1_000_000},
		LineItems: &fakeLineItemRepo{},
		Counters:  &fakeCounter{},
		Store:     &fakeStore{},
		Encryptor: &fakeEncryptor{},
		Outbox:    &fakeOutbox{},
	})

	req := payslip.ComposeRequest{EmployeeID: emp.ID.String(), Month: 3, Year: 2026}

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Send(context.Background(), emp.CompanyID.String(), req)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.Send(context.Background(), emp.CompanyID.String(), req)
	assert.NoError(t, err)

	assert.Len(t, repo.created, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Number, second.Number)
}

func TestDispatch_DeliversAndMarksSent(t *testing.T) {
	emp := testEmployee(true)
	store := &fakeStore{saved: map[string][]byte{"doc/path.pdf": []byte("ENC:%PDF")}}
	row := payslip.Payslip{
		ID:           uuid.New(),
		CompanyID:    emp.CompanyID,
		EmployeeID:   emp.ID,
		Number:       "PS/2026/02/000001",
		PeriodMonth:  2,
		PeriodYear:   2026,
		DocumentPath: "doc/path.pdf",
		Encrypted:    true,
		Status:       payslip.StatusIssued,
	}
	repo := &fakePayslipRepo{rows: []payslip.Payslip{row}}
	dispatcher := &fakeDispatcher{}

	svc := payslip.NewService(payslip.Deps{
		Repo:      repo,
		Employees: &fakeEmployeeRepo{employee: emp},
		Store:     store,
		Mail:      dispatcher,
	})

	err := svc.Dispatch(context.Background(), emp.CompanyID.String(), row.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 1, dispatcher.delivered)
	assert.Equal(t, "dewi@example.com", dispatcher.lastTo)
	assert.Equal(t, []byte("ENC:%PDF"), dispatcher.lastDoc)
	assert.Equal(t, []string{row.ID.String()}, repo.sentIDs)
}
