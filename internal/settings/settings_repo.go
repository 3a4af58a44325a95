package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	Load(ctx context.Context, companyID string) (*MailSettings, error)
	Save(ctx context.Context, s *MailSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context, companyID string) (*MailSettings, error) {
	var s MailSettings
	err := r.db.WithContext(ctx).
		First(&s, "company_id = ?", companyID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Save(ctx context.Context, s *MailSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"from_name", "from_email", "reply_to", "provider", "updated_at"}),
		}).
		Create(s).Error
}
