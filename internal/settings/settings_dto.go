package settings

type UpdateMailSettingsRequest struct {
	FromName  string `json:"from_name" binding:"required,max=120"`
	FromEmail string `json:"from_email" binding:"required,email"`
	ReplyTo   string `json:"reply_to" binding:"omitempty,email"`
	Provider  string `json:"provider" binding:"required,oneof=sendgrid console"`
}

type MailSettingsResponse struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Provider  string `json:"provider"`
}
