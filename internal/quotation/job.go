package quotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/quotedesk/quotedesk/internal/jobs"
	"github.com/quotedesk/quotedesk/internal/shared"
	"github.com/quotedesk/quotedesk/jobs"
)

// JobConfig wires dependencies required by the worker job.
type JobConfig struct {
	Service    *Service
	Renderer   Renderer
	StorageDir string
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
}

// Job pre-renders quotation PDFs coming from the queue and stores the
// artifact on disk.
type Job struct {
	service    *Service
	renderer   Renderer
	storageDir string
	logger     *slog.Logger
	metrics    *jobmetrics.Metrics
}

// NewJob constructs a Job handler.
func NewJob(cfg JobConfig) *Job {
	return &Job{
		service:    cfg.Service,
		renderer:   cfg.Renderer,
		storageDir: cfg.StorageDir,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *Job) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.service == nil || j.renderer == nil {
		return fmt.Errorf("quotation render job not configured")
	}
	tracker := j.metrics.Track(jobs.TaskTypeRenderQuotationPDF)
	return tracker.End(j.handle(ctx, task))
}

func (j *Job) handle(ctx context.Context, task *asynq.Task) error {
	var payload jobs.RenderQuotationPDFPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.QuotationID == 0 || payload.UserID == 0 {
		return asynq.SkipRetry
	}

	q, comp, prof, err := j.service.Resolve(ctx, payload.UserID, payload.QuotationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return asynq.SkipRetry
		}
		return err
	}

	data, err := j.renderer.Render(ctx, q, comp, prof)
	if err != nil {
		// Fatal render errors will not improve on retry.
		var fatal fatalRenderError
		if errors.As(err, &fatal) {
			return asynq.SkipRetry
		}
		return err
	}

	path, err := j.save(q, comp.Name, data)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("quotation pdf ready", slog.Int64("quotation_id", q.ID), slog.String("file", path))
	}
	return nil
}

// fatalRenderError marks render failures that retrying cannot fix.
type fatalRenderError interface {
	error
	FatalRender() bool
}

func (j *Job) save(q *Quotation, companyName string, data []byte) (string, error) {
	dir := j.storageDir
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join(os.TempDir(), "quotedesk-pdfs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(q.Number, companyName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
