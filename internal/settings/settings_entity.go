package settings

import (
	"time"

	"github.com/google/uuid"
)

const (
	MailProviderSendgrid = "sendgrid"
	MailProviderConsole  = "console"
)

// MailSettings is one row per company. Replaces the old mutable global that
// was read from a flat file at send time.
type MailSettings struct {
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;primaryKey"`
	FromName  string    `gorm:"column:from_name;type:varchar(120);not null"`
	FromEmail string    `gorm:"column:from_email;type:varchar(255);not null"`
	ReplyTo   string    `gorm:"column:reply_to;type:varchar(255)"`
	Provider  string    `gorm:"column:provider;type:varchar(20);not null;default:console"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (MailSettings) TableName() string {
	return "mail_settings"
}
