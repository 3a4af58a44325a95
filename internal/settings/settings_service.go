package settings

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-payroll/internal/shared/apperror"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	GetMail(ctx context.Context, companyID string) (MailSettingsResponse, error)
	UpdateMail(ctx context.Context, companyID string, req UpdateMailSettingsRequest) (MailSettingsResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetMail falls back to console delivery when a company has never configured
// mail, so payslip dispatch degrades instead of failing.
func (s *service) GetMail(ctx context.Context, companyID string) (MailSettingsResponse, error) {
	stored, err := s.repo.Load(ctx, companyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return MailSettingsResponse{Provider: MailProviderConsole}, nil
	}
	if err != nil {
		return MailSettingsResponse{}, err
	}

	return mapToResponse(stored), nil
}

func (s *service) UpdateMail(
	ctx context.Context,
	companyID string,
	req UpdateMailSettingsRequest,
) (MailSettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return MailSettingsResponse{}, apperror.InvalidField("company_id")
	}

	stored := &MailSettings{
		CompanyID: companyUUID,
		FromName:  strings.TrimSpace(req.FromName),
		FromEmail: strings.ToLower(strings.TrimSpace(req.FromEmail)),
		ReplyTo:   strings.ToLower(strings.TrimSpace(req.ReplyTo)),
		Provider:  req.Provider,
	}

	if err := s.repo.Save(ctx, stored); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return MailSettingsResponse{}, apperror.Wrap(err, apperror.CodeConflict, "mail settings were updated concurrently", http.StatusConflict)
		}
		return MailSettingsResponse{}, err
	}

	return mapToResponse(stored), nil
}

func mapToResponse(s *MailSettings) MailSettingsResponse {
	return MailSettingsResponse{
		FromName:  s.FromName,
		FromEmail: s.FromEmail,
		ReplyTo:   s.ReplyTo,
		Provider:  s.Provider,
	}
}
