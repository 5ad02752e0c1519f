package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/utils/errutil"
)

func handleVerify(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.VerifyRepositoryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondJSON(w, http.StatusBadRequest, &response{Message: "invalid request body"})
			return
		}

		result, err := uc.VerifyRepository(r.Context(), &input)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, &response{Message: err.Error()})
			return
		}

		if !result.Valid {
			respondJSON(w, http.StatusUnauthorized, &response{Message: result.Message, Data: result})
			return
		}

		respondJSON(w, http.StatusOK, &response{Success: true, Message: result.Message, Data: result})
	}
}

func handleCreateIssue(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.CreateIssueInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondJSON(w, http.StatusBadRequest, &response{Message: "invalid request body"})
			return
		}

		result, err := uc.CreateIssue(r.Context(), &input)
		if err != nil {
			if errors.Is(err, types.ErrValidationFailed) {
				respondJSON(w, http.StatusBadRequest, &response{Message: err.Error()})
				return
			}
			errutil.HandleError(r.Context(), "fail to create issue", err)
			respondJSON(w, http.StatusInternalServerError, &response{Message: err.Error()})
			return
		}

		code := http.StatusOK
		if result.Success {
			code = http.StatusCreated
		}
		respondJSON(w, code, &response{Success: result.Success, Message: result.Message, Data: result})
	}
}

func handleListRepositories(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(chi.URLParam(r, "userID"))

		// The index may list names whose records have expired or cannot be
		// read; those entries are skipped, not errors.
		views := []*repositoryView{}
		for _, name := range uc.ListRepositories(r.Context(), userID) {
			record, err := uc.GetRepository(r.Context(), userID, types.RepoName(name))
			if err != nil {
				errutil.HandleError(r.Context(), "skipping unreadable repository record", err)
				continue
			}
			if record == nil {
				continue
			}
			views = append(views, newRepositoryView(record))
		}

		respondJSON(w, http.StatusOK, &response{Success: true, Data: map[string]any{
			"repositories": views,
		}})
	}
}

// repositoryView is a RepositoryRecord without the token. Tokens never leave
// the backend.
type repositoryView struct {
	Username  string          `json:"username"`
	RepoName  types.RepoName  `json:"repo_name"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func newRepositoryView(record *model.RepositoryRecord) *repositoryView {
	return &repositoryView{
		Username:  record.Username,
		RepoName:  record.RepoName,
		Metadata:  record.Metadata,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func handleGetRepository(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(chi.URLParam(r, "userID"))
		repoName := types.RepoName(chi.URLParam(r, "repoName"))

		record, err := uc.GetRepository(r.Context(), userID, repoName)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to get repository", err)
			respondJSON(w, http.StatusInternalServerError, &response{Message: err.Error()})
			return
		}
		if record == nil {
			respondJSON(w, http.StatusNotFound, &response{Message: "repository not found"})
			return
		}

		respondJSON(w, http.StatusOK, &response{Success: true, Data: newRepositoryView(record)})
	}
}

func handleDeleteRepository(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(chi.URLParam(r, "userID"))
		repoName := types.RepoName(chi.URLParam(r, "repoName"))

		if !uc.DeleteRepository(r.Context(), userID, repoName) {
			respondJSON(w, http.StatusNotFound, &response{Message: "repository not found"})
			return
		}

		respondJSON(w, http.StatusOK, &response{Success: true, Message: "repository deleted"})
	}
}

func handlePredefinedTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, &response{Success: true, Data: model.PredefinedTemplates()})
	}
}

func handleListTemplates(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(chi.URLParam(r, "userID"))

		templates := uc.ListTemplates(r.Context(), userID)
		respondJSON(w, http.StatusOK, &response{Success: true, Data: templates})
	}
}

func handleSaveTemplate(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(chi.URLParam(r, "userID"))
		name := types.TemplateName(chi.URLParam(r, "name"))

		var body json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondJSON(w, http.StatusBadRequest, &response{Message: "invalid request body"})
			return
		}

		if !uc.SaveTemplate(r.Context(), userID, name, body) {
			respondJSON(w, http.StatusBadRequest, &response{Message: "failed to save template"})
			return
		}

		respondJSON(w, http.StatusOK, &response{Success: true, Message: "template saved"})
	}
}
