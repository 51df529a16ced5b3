package main

import (
	"context"
	"errors"
	"os"
	"time"

	"moneymage/internal/amqp"
	"moneymage/internal/backend"
	"moneymage/internal/cli"
	"moneymage/internal/log"
	"moneymage/internal/match"
	"moneymage/internal/services"
	"moneymage/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the import worker")
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration invalid", log.FieldError, err.Error())
		os.Exit(1)
	}
	// The worker consumes from the broker itself; a publishing backend
	// would loop every import back into the queue.
	backendCfg.AMQPURL = ""

	result, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldBackend, backendCfg.Type.String(),
			log.FieldError, err.Error())
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}

	cleanup := func() {
		client.Close()
		if result.Cleanup != nil {
			result.Cleanup()
		}
	}
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, cleanup)

	matcher := match.New(nil, cfg.MatchThreshold)
	svc := services.NewReviewService(result.Backend, matcher, logger.WithComponent(log.ComponentReview))
	importWorker := worker.NewImportWorker(svc, logger)

	logger.Info("Starting import worker",
		log.FieldQueue, cfg.AMQPQueue,
		log.FieldExchange, cfg.AMQPExchange,
		log.FieldBackend, backendCfg.Type.String())

	// A consume loop that dies for any reason other than the shutdown
	// signal (broker drop, closed delivery channel) must not leave a
	// zombie process behind.
	if err := importWorker.Run(ctx, client); fatalConsumeError(err) {
		logger.Error("Message consumption failed", log.FieldError, err.Error())
		cleanup()
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}

// fatalConsumeError reports whether the consume loop stopped for a reason
// other than its context being cancelled by the shutdown path.
func fatalConsumeError(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
