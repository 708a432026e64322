// Package http assembles the aluno API router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/alunos/internal/http/handlers/student"
	"github.com/aanand-mishra/alunos/internal/metrics"
	"github.com/aanand-mishra/alunos/internal/storage"
	"github.com/aanand-mishra/alunos/internal/utils/response"
)

// NewRouter registers every route of the API.
//
// Route table (trailing slashes are part of the contract):
//
//	GET    /api/alunos/       → list all students
//	POST   /api/alunos/       → create a student
//	GET    /api/alunos/{id}/  → get one student
//	PUT    /api/alunos/{id}/  → replace a student
//	DELETE /api/alunos/{id}/  → delete a student
//	GET    /health            → liveness
//	GET    /metrics           → Prometheus metrics
func NewRouter(store storage.Storage, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())

	r.Get("/api/alunos/", student.GetList(store))
	r.Post("/api/alunos/", student.New(store))
	r.Get("/api/alunos/{id}/", student.GetByID(store))
	r.Put("/api/alunos/{id}/", student.Update(store))
	r.Delete("/api/alunos/{id}/", student.Delete(store))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusNotFound, response.NotFound())
	})

	return r
}
