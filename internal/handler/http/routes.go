package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Get("/api/verify-token", h.verifyToken)
		r.Get("/api/logout", h.logout)
	})

	// every note-scoped route sits behind the session check, including
	// get, share, delete, and passcode verification
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/current-user", h.currentUser)
		r.Get("/api/users", h.listUsers)

		r.Post("/api/upload", h.uploadNote)
		r.Get("/api/files", h.listNotes)
		r.Get("/api/files/{noteID}", h.getNote)
		r.Delete("/api/files/{noteID}", h.deleteNote)

		r.Post("/api/verifyPasscode", h.verifyPasscode)
		r.Post("/api/shareFile", h.shareNote)
		r.Get("/api/shared-files", h.sharedNotes)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
