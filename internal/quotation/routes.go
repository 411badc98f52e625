package quotation

import "github.com/go-chi/chi/v5"

// Routes mounts the quotation endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/stats", h.stats)
	r.Get("/export.csv", h.exportCSV)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/duplicate", h.duplicate)
	r.Patch("/{id}/progress", h.updateProgress)
	r.Get("/{id}/pdf", h.downloadPDF)
	r.Post("/{id}/pdf", h.enqueuePDF)
	return r
}
