package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/geofraud"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordEvent(ctx context.Context, companyID, employeeID string, req RecordEventRequest) (AttendanceEventResponse, error)
	NextExpectedKind(ctx context.Context, companyID, employeeID string) (string, error)
	GetAll(ctx context.Context, companyID, employeeID string, date *time.Time) ([]AttendanceEventResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	now       func() time.Time
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository) Service {
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, employees employee.Repository, outbox kafka.OutboxRepository) Service {
	s := NewService(db, repo, employees).(*service)
	s.outbox = outbox
	return s
}

// WithClock overrides the server clock source. Tests only.
func (s *service) WithClock(now func() time.Time) *service {
	s.now = now
	return s
}

// RecordEvent appends one clock event. The timestamp comes from the service's
// own clock: this is the integrity anchor of the whole subsystem, so a client
// supplied time is never consulted. A suspicious geo jump is flagged and
// surfaced but the event is still written; admins audit flags, the ledger
// never rejects on them.
func (s *service) RecordEvent(ctx context.Context, companyID, employeeID string, req RecordEventRequest) (AttendanceEventResponse, error) {
	if req.Kind != KindClockIn && req.Kind != KindClockOut {
		return AttendanceEventResponse{}, attendanceerrors.ErrInvalidKind
	}

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceEventResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceEventResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	enabled, err := s.employees.AttendanceEnabled(ctx, companyID, employeeID)
	if err != nil {
		return AttendanceEventResponse{}, err
	}
	if !enabled {
		return AttendanceEventResponse{}, attendanceerrors.ErrFeatureDisabled
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceEventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	serverTS := s.now()

	suspicious := false
	prev, err := qtx.FindLatestByEmployee(ctx, companyID, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceEventResponse{}, err
	}
	if err == nil && prev != nil {
		res := geofraud.Evaluate(
			geofraud.Sample{Latitude: prev.Latitude, Longitude: prev.Longitude, At: prev.ServerTS},
			geofraud.Sample{Latitude: req.Latitude, Longitude: req.Longitude, At: serverTS},
		)
		suspicious = res.Suspicious
		if suspicious {
			contextutil.GetLogger(ctx, zap.L()).Warn("implausible travel speed between clock events",
				zap.String("employee_id", employeeID),
				zap.Float64("speed_kmh", res.SpeedKmh),
				zap.Float64("distance_km", res.DistanceKm),
			)
		}
	}

	row := &AttendanceEvent{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		Kind:           req.Kind,
		ServerTS:       serverTS,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
		Suspicious:     suspicious,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceEventResponse{}, err
	}

	if suspicious && s.outbox != nil {
		if err := s.queueFlaggedEvent(ctx, tx, row); err != nil {
			return AttendanceEventResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceEventResponse{}, err
	}
	return mapToResponse(*row), nil
}

// NextExpectedKind derives the ledger state from the latest event alone:
// no prior event or a prior CLOCK_OUT means CLOCK_IN is next. The server
// intentionally does not reject a submitted kind that contradicts this.
func (s *service) NextExpectedKind(ctx context.Context, companyID, employeeID string) (string, error) {
	prev, err := s.repo.FindLatestByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KindClockIn, nil
		}
		return "", err
	}
	if prev.Kind == KindClockOut {
		return KindClockIn, nil
	}
	return KindClockOut, nil
}

func (s *service) GetAll(ctx context.Context, companyID, employeeID string, date *time.Time) ([]AttendanceEventResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID, date)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceEventResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) queueFlaggedEvent(ctx context.Context, tx *sql.Tx, row *AttendanceEvent) error {
	payload, err := json.Marshal(events.AttendanceFlaggedEvent{
		EventType:  "attendance_flagged",
		EventID:    row.ID.String(),
		CompanyID:  row.CompanyID.String(),
		EmployeeID: row.EmployeeID.String(),
		OccurredAt: row.ServerTS,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance_event",
		AggregateID:   row.ID.String(),
		EventType:     "attendance_flagged",
		Topic:         events.AttendanceFlaggedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(e AttendanceEvent) AttendanceEventResponse {
	return AttendanceEventResponse{
		ID:             e.ID.String(),
		CompanyID:      e.CompanyID.String(),
		EmployeeID:     e.EmployeeID.String(),
		Kind:           e.Kind,
		ServerTS:       e.ServerTS.Format(time.RFC3339),
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		AccuracyMeters: e.AccuracyMeters,
		IsSuspicious:   e.Suspicious,
	}
}
