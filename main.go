package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"invest/src/api"
	"invest/src/config"
	"invest/src/monitoring"
	"invest/src/repositories"
	"invest/src/scheduler"
	"invest/src/services"
	"invest/src/utils"
	aws_handler "invest/src/utils/aws"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	if err := resolveDBSecret(cfg); err != nil {
		log.Println(err, "Error while resolving database credentials")
		return
	}

	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

// resolveDBSecret swaps in credentials from AWS Secrets Manager when a secret
// name is configured. Local setups keep the yaml/env values.
func resolveDBSecret(cfg *config.Config) error {
	if cfg.AWS.DBSecretName == "" {
		return nil
	}
	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return err
	}
	creds, err := awsHandler.SecretManager.GetDBCredentials(cfg.AWS.DBSecretName)
	if err != nil {
		return err
	}
	cfg.Databases.SQL.Username = creds.Username
	cfg.Databases.SQL.Password = creds.Password
	return nil
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	server, err := api.NewServer(cfg)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(server)

	sweep, err := startReconciliationSweep(cfg, server)
	if err != nil {
		return nil, err
	}

	go func() {
		server.Logger.WithField("port", httpServer.Addr).Info("starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sweep.Cancel()
			errC <- err
		}
	}()
	return errC, nil
}

// startReconciliationSweep schedules the job that fails transactions stuck in
// pending beyond the configured timeout.
func startReconciliationSweep(cfg *config.Config, server *api.Server) (*scheduler.ScheduledTask, error) {
	logger := server.Logger

	metrics := monitoring.NewMetrics("invest_reconciliation")
	transactionRepo := repositories.NewTransactionRepository(server.DB)
	reconciliation := services.NewReconciliationService(
		transactionRepo,
		time.Duration(cfg.Investment.PendingTimeoutMinutes)*time.Minute,
		metrics,
	)

	return scheduler.NewScheduledTask(cfg.Investment.ReconciliationCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		ctx = utils.WithLogger(ctx, logger)

		if _, err := reconciliation.FailStalePending(ctx); err != nil {
			logger.WithError(err).Error("reconciliation sweep failed")
		}
	})
}
