package quotation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quotedesk/quotedesk/internal/platform/httpx"
	"github.com/quotedesk/quotedesk/internal/shared"
	"github.com/quotedesk/quotedesk/jobs"
)

// Handler exposes the quotation endpoints.
type Handler struct {
	service  *Service
	renderer Renderer
	queue    *jobs.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler constructs a quotation handler. The queue client is
// optional; without it the async pre-render endpoint reports the
// feature unavailable.
func NewHandler(service *Service, renderer Renderer, queue *jobs.Client, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		queue:    queue,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req, err := h.listRequest(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list quotations", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) listRequest(r *http.Request) (ListQuotationsRequest, error) {
	query := r.URL.Query()

	status := Status(query.Get("status"))
	if status != "" && !status.Valid() {
		return ListQuotationsRequest{}, fmt.Errorf("unknown status %q", status)
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))
	companyID, _ := strconv.ParseInt(query.Get("companyId"), 10, 64)

	return ListQuotationsRequest{
		UserID:    shared.UserIDFromContext(r.Context()),
		Search:    query.Get("search"),
		Status:    status,
		CompanyID: companyID,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	q, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, "get quotation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())

	var req CreateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	q, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.respondServiceError(w, "create quotation", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	var req UpdateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	q, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		h.respondServiceError(w, "update quotation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) updateProgress(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	var req UpdateProgressRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	q, err := h.service.UpdateProgress(r.Context(), userID, id, req.Progress)
	if err != nil {
		h.respondServiceError(w, "update quotation progress", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.respondServiceError(w, "delete quotation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) duplicate(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	q, err := h.service.Duplicate(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, "duplicate quotation", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())

	s, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("quotation stats", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// downloadPDF renders the quotation synchronously and streams it with
// the download filename.
func (h *Handler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	q, comp, prof, err := h.service.Resolve(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, "resolve quotation", err)
		return
	}

	data, err := h.renderer.Render(r.Context(), q, comp, prof)
	if err != nil {
		h.logger.Error("render quotation pdf", "quotation_id", id, "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "PDF Generation Failed",
			"an unexpected error occurred while creating the PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(q.Number, comp.Name)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// enqueuePDF schedules an async pre-render of the quotation PDF.
func (h *Handler) enqueuePDF(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	if h.queue == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Queue Unavailable", "background rendering is not configured")
		return
	}

	// Existence check so a bad ID fails now, not in the worker.
	if _, err := h.service.Get(r.Context(), userID, id); err != nil {
		h.respondServiceError(w, "get quotation", err)
		return
	}

	info, err := h.queue.EnqueueRenderQuotationPDF(r.Context(), jobs.RenderQuotationPDFPayload{
		QuotationID: id,
		UserID:      userID,
	})
	if err != nil {
		h.logger.Error("enqueue pdf render", "quotation_id", id, "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"taskId": info.ID, "queue": info.Queue})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	req, err := h.listRequest(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="quotations.csv"`)
	if err := h.service.ExportCSV(r.Context(), w, req); err != nil {
		// Headers may already be out; log and drop the connection.
		h.logger.Error("export quotations csv", "error", err)
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	if errors.Is(err, shared.ErrDuplicate) {
		httpx.RespondError(w, httpx.ErrDuplicate)
		return
	}
	h.logger.Error(op, "error", err)
	httpx.RespondError(w, err)
}
