package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-payroll/internal/shared/apperror"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridMailer struct {
	key string
}

func NewSendGrid(apiKey string) Mailer {
	return &sendgridMailer{key: apiKey}
}

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(sgmail.NewEmail(msg.FromName, msg.FromEmail))
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.TextBody))

	for _, a := range msg.Attachments {
		v3.AddAttachment(&sgmail.Attachment{
			Content:     a.Content,
			Type:        a.ContentType,
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, "mail provider request failed", http.StatusServiceUnavailable)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return apperror.Wrap(
			fmt.Errorf("sendgrid responded %d: %s", res.StatusCode, res.Body),
			apperror.CodeServiceUnavailable,
			"mail provider rejected the message",
			http.StatusServiceUnavailable,
		)
	}

	return nil
}
