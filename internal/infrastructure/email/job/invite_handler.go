package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"memorial-backend/internal/infrastructure/email"
	"memorial-backend/internal/shared"
)

// ContributorInviteHandler delivers invitation emails enqueued by the
// profile service.
type ContributorInviteHandler struct {
	emailService email.EmailService
}

func NewContributorInviteHandler(emailService email.EmailService) *ContributorInviteHandler {
	return &ContributorInviteHandler{
		emailService: emailService,
	}
}

func (h *ContributorInviteHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ContributorInvitePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ContributorInvite payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Str("slug", payload.ProfileSlug).
		Msg("Processing contributor invitation email")

	if err := h.emailService.SendContributorInvite(ctx, payload); err != nil {
		return fmt.Errorf("send contributor invite: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Msg("Invitation email sent")
	return nil
}
