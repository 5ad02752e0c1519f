package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

// response is the envelope of every JSON response.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, resp *response) {
	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(resp)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"success":false,"message":"internal error"}`))
		return
	}

	safeWrite(w, code, body)
}

func New(uc interfaces.UseCase) *Server {
	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/github", func(r chi.Router) {
			r.Post("/verify", handleVerify(uc))
			r.Post("/issues", handleCreateIssue(uc))
		})

		r.Get("/templates", handlePredefinedTemplates())

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/repositories", handleListRepositories(uc))
			r.Get("/repositories/{repoName}", handleGetRepository(uc))
			r.Delete("/repositories/{repoName}", handleDeleteRepository(uc))
			r.Get("/templates", handleListTemplates(uc))
			r.Put("/templates/{name}", handleSaveTemplate(uc))
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
