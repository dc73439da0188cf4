package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const ErrTimeout = "request timed out"

func CreateRoutes(commit *CommitHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	submissionHandler := NewSubmissionHandler()

	r.Route("/commit", func(r chi.Router) {
		r.Post("/", commit.Commit)
	})

	r.Route("/submissions", func(r chi.Router) {
		r.Get("/", submissionHandler.Get)
		r.Delete("/", submissionHandler.DeleteAll)
	})

	return r
}
