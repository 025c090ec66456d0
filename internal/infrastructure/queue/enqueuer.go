package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"memorial-backend/internal/config"
	"memorial-backend/internal/shared"
)

// Enqueuer pushes background tasks onto the asynq queue. It implements
// the profile service's InviteNotifier.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(cfg config.RedisConfig) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Host,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (e *Enqueuer) NotifyContributorInvite(ctx context.Context, payload shared.ContributorInvitePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal invite payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendContributorInvite, raw)
	info, err := e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Queue("default"),
	)
	if err != nil {
		return fmt.Errorf("enqueue invite email: %w", err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("email", payload.Email).
		Msg("Invitation email enqueued")
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
