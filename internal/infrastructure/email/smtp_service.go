package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"

	"memorial-backend/internal/config"
	"memorial-backend/internal/shared"
)

// EmailService sends transactional email.
type EmailService interface {
	SendContributorInvite(ctx context.Context, data shared.ContributorInvitePayload) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	baseURL  string
}

// NewSMTPEmailService sends through a plain SMTP relay (mailhog in
// development).
func NewSMTPEmailService(cfg config.SMTPConfig, baseURL string) EmailService {
	return &smtpEmailService{
		smtpAddr: cfg.Host + ":" + cfg.Port,
		smtpFrom: cfg.From,
		baseURL:  baseURL,
	}
}

func (s *smtpEmailService) SendContributorInvite(ctx context.Context, data shared.ContributorInvitePayload) error {
	subject := fmt.Sprintf("%s invited you to the memorial for %s", data.InviterName, data.ProfileName)
	acceptLink := fmt.Sprintf("%s/memorial/%s/accept-invitation", s.baseURL, data.ProfileSlug)

	body := fmt.Sprintf(`Hello,

%s has invited you to contribute to the memorial page for %s as a %s.

Follow this link to accept the invitation and start sharing memories:
%s

If you were not expecting this invitation, you can safely ignore this email.`,
		data.InviterName, data.ProfileName, data.Role, acceptLink)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		log.Error().Err(err).
			Str("to", data.Email).
			Str("smtp_addr", s.smtpAddr).
			Msg("Failed to send invitation email")
		return fmt.Errorf("send invitation email: %w", err)
	}
	return nil
}
