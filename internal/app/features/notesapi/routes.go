package notesapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the note collection API endpoints.
//
// When mounted at /api:
//   - GET    /api/state
//   - POST   /api/files
//   - PUT    /api/files/current/content
//   - POST   /api/files/{fileID}/open
//   - POST   /api/files/{fileID}/open-external
//   - POST   /api/files/{fileID}/archive
//   - DELETE /api/files/{fileID}
//   - PUT    /api/settings/show-archived
//
// Mutating requests carry the CSRF token from the page in the X-CSRF-Token
// header; the middleware is applied by the app router, not here.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/state", h.State)

	r.Route("/files", func(fr chi.Router) {
		fr.Post("/", h.Create)
		fr.Put("/current/content", h.UpdateContent)

		fr.Route("/{fileID}", func(ir chi.Router) {
			ir.Post("/open", h.Open)
			ir.Post("/open-external", h.OpenExternal)
			ir.Post("/archive", h.Archive)
			ir.Delete("/", h.Delete)
		})
	})

	r.Put("/settings/show-archived", h.SetShowArchived)

	return r
}
