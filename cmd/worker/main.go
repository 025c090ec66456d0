package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"memorial-backend/internal/config"
	"memorial-backend/internal/infrastructure/email"
	emailjob "memorial-backend/internal/infrastructure/email/job"
	"memorial-backend/internal/shared"
	"memorial-backend/pkg/logger"
)

// The worker processes background tasks enqueued by the API, currently
// just contributor invitation emails.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.App.Environment)

	emailService := email.NewSMTPEmailService(cfg.SMTP, cfg.App.BaseURL)
	inviteHandler := emailjob.NewContributorInviteHandler(emailService)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeSendContributorInvite, inviteHandler)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("Worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("Worker failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Worker shutting down")
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
