package mailer

import "context"

type Attachment struct {
	Filename    string
	ContentType string
	// Content is base64-encoded, which is what transactional mail APIs expect.
	Content string
}

type Message struct {
	ToName      string
	ToEmail     string
	FromName    string
	FromEmail   string
	Subject     string
	TextBody    string
	Attachments []Attachment
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
