package hsn

import "github.com/go-chi/chi/v5"

// Routes mounts the HSN catalog endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Delete("/{code}", h.delete)
	return r
}
