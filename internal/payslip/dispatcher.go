package payslip

import (
	"context"
	"encoding/base64"

	"go-payroll/internal/mailer"
	"go-payroll/internal/settings"
)

// mailDispatcher resolves the company's mail settings at delivery time and
// routes to the configured provider.
type mailDispatcher struct {
	settings settings.Service
	sendgrid mailer.Mailer
	console  mailer.Mailer
}

func NewMailDispatcher(settingsService settings.Service, sendgrid, console mailer.Mailer) MailDispatcher {
	return &mailDispatcher{settings: settingsService, sendgrid: sendgrid, console: console}
}

func (d *mailDispatcher) Deliver(
	ctx context.Context,
	companyID string,
	toName, toEmail, subject, body string,
	attachmentName string,
	document []byte,
) error {
	cfg, err := d.settings.GetMail(ctx, companyID)
	if err != nil {
		return err
	}

	msg := mailer.Message{
		ToName:    toName,
		ToEmail:   toEmail,
		FromName:  cfg.FromName,
		FromEmail: cfg.FromEmail,
		Subject:   subject,
		TextBody:  body,
		Attachments: []mailer.Attachment{{
			Filename:    attachmentName,
			ContentType: "application/pdf",
			Content:     base64.StdEncoding.EncodeToString(document),
		}},
	}

	if cfg.Provider == settings.MailProviderSendgrid && d.sendgrid != nil {
		return d.sendgrid.Send(ctx, msg)
	}
	return d.console.Send(ctx, msg)
}
