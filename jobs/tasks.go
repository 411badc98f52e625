package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeRenderQuotationPDF pre-renders a quotation PDF to disk.
	TaskTypeRenderQuotationPDF = "quotation:render_pdf"
)

// RenderQuotationPDFPayload identifies the quotation to render.
type RenderQuotationPDFPayload struct {
	QuotationID int64 `json:"quotation_id"`
	UserID      int64 `json:"user_id"`
}

// NewRenderQuotationPDFTask constructs an Asynq task.
func NewRenderQuotationPDFTask(payload RenderQuotationPDFPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRenderQuotationPDF, data), nil
}
