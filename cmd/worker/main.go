package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/quotedesk/quotedesk/internal/app"
	"github.com/quotedesk/quotedesk/internal/company"
	jobmetrics "github.com/quotedesk/quotedesk/internal/jobs"
	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/profile"
	"github.com/quotedesk/quotedesk/internal/quotation"
	"github.com/quotedesk/quotedesk/internal/quotation/pdf"
	"github.com/quotedesk/quotedesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	companyRepo := company.NewRepository(pool)
	profileRepo := profile.NewRepository(pool)
	quotationRepo := quotation.NewRepository(pool)
	quotationService := quotation.NewService(quotationRepo, companyRepo, profileRepo)

	renderer := pdf.NewRenderer(&http.Client{Timeout: cfg.LogoFetchTimeout}, logger, nil)

	renderJob := quotation.NewJob(quotation.JobConfig{
		Service:    quotationService,
		Renderer:   renderer,
		StorageDir: cfg.PDFStorageDir,
		Logger:     logger,
		Metrics:    jobmetrics.NewMetrics(nil),
	})

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeRenderQuotationPDF, Handler: renderJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
