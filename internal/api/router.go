package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/lingshu/internal/catalog"
	"github.com/starford/lingshu/internal/relay"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *catalog.Service, asker relay.Asker, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, asker)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Browse views.
	r.Get("/{category}", h.ListCategory)

	// Admin CRUD over flat forms.
	r.Get("/admin/{category}", h.AdminList)
	r.Get("/admin/{category}/{id}/form", h.GetForm)
	r.Post("/admin/{category}", h.CreateRecord)
	r.Put("/admin/{category}/{id}", h.UpdateRecord)
	r.Delete("/admin/{category}/{id}", h.DeleteRecord)

	// Exam mode.
	r.Post("/quiz", h.GenerateQuiz)

	// AI expert.
	r.Post("/ask", h.Ask)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
