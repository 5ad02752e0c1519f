package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/issuehub/pkg/controller/server"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/infra"
	"github.com/secmon-lab/issuehub/pkg/infra/cipher"
	"github.com/secmon-lab/issuehub/pkg/store/memory"
	"github.com/secmon-lab/issuehub/pkg/usecase"
)

type githubMock struct {
	createIssueFunc func(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error)
}

var _ interfaces.GitHubClient = (*githubMock)(nil)

func (x *githubMock) VerifyToken(ctx context.Context, token types.AccessToken) error {
	return nil
}

func (x *githubMock) GetRepository(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName) (*model.GitHubRepo, error) {
	return &model.GitHubRepo{Name: string(repo), Owner: owner}, nil
}

func (x *githubMock) CreateIssue(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error) {
	if x.createIssueFunc == nil {
		return &model.IssueRef{HTMLURL: "https://github.example/issues/1", Number: 1}, nil
	}
	return x.createIssueFunc(ctx, token, owner, repo, issue)
}

type testServer struct {
	srv   *server.Server
	gh    *githubMock
	store interfaces.KeyedStore
}

func newTestServer(t *testing.T) *testServer {
	gh := &githubMock{}
	s := memory.New()
	c := gt.R1(cipher.New("test-passphrase")).NoError(t)

	uc := usecase.New(infra.New(
		infra.WithKeyedStore(s),
		infra.WithCipher(c),
		infra.WithGitHub(gh),
	))

	return &testServer{srv: server.New(uc), gh: gh, store: s}
}

func (x *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	x.srv.Mux().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodGet, "/health", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, rec.Body.String()).Equal("ok")
}

func TestVerifyEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodPost, "/api/v1/github/verify", map[string]any{
		"token":     "tok-abc",
		"username":  "alice",
		"repo_name": "repo1",
	})
	gt.V(t, rec.Code).Equal(http.StatusOK)

	resp := decode(t, rec)
	gt.V(t, resp["success"]).Equal(any(true))

	data := resp["data"].(map[string]any)
	gt.V(t, data["valid"]).Equal(any(true))
	gt.V(t, data["repo_exists"]).Equal(any(true))
}

func TestVerifyEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodPost, "/api/v1/github/verify", map[string]any{
		"username": "alice",
	})
	gt.V(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestVerifyEndpointBadBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/github/verify", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	ts.srv.Mux().ServeHTTP(rec, req)
	gt.V(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestRepositoryLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	// Verify with save to create a connection
	rec := ts.request(http.MethodPost, "/api/v1/github/verify", map[string]any{
		"token":     "tok-abc",
		"username":  "alice",
		"repo_name": "repo1",
		"save":      true,
		"user_id":   "u1",
	})
	gt.V(t, rec.Code).Equal(http.StatusOK)

	// List returns enriched entries, without tokens
	rec = ts.request(http.MethodGet, "/api/v1/users/u1/repositories", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	repos := decode(t, rec)["data"].(map[string]any)["repositories"].([]any)
	gt.V(t, len(repos)).Equal(1)
	entry := repos[0].(map[string]any)
	gt.V(t, entry["repo_name"]).Equal(any("repo1"))
	gt.V(t, entry["username"]).Equal(any("alice"))
	_, hasToken := entry["token"]
	gt.False(t, hasToken)

	// Get: the record comes back without the token
	rec = ts.request(http.MethodGet, "/api/v1/users/u1/repositories/repo1", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	record := decode(t, rec)["data"].(map[string]any)
	gt.V(t, record["username"]).Equal(any("alice"))
	_, hasToken = record["token"]
	gt.False(t, hasToken)

	// Delete
	rec = ts.request(http.MethodDelete, "/api/v1/users/u1/repositories/repo1", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)

	// Gone afterwards
	rec = ts.request(http.MethodGet, "/api/v1/users/u1/repositories/repo1", nil)
	gt.V(t, rec.Code).Equal(http.StatusNotFound)

	rec = ts.request(http.MethodDelete, "/api/v1/users/u1/repositories/repo1", nil)
	gt.V(t, rec.Code).Equal(http.StatusNotFound)
}

func TestListRepositoriesSkipsStaleIndexEntries(t *testing.T) {
	ts := newTestServer(t)

	for _, name := range []string{"repo1", "repo2"} {
		rec := ts.request(http.MethodPost, "/api/v1/github/verify", map[string]any{
			"token":     "tok-abc",
			"username":  "alice",
			"repo_name": name,
			"save":      true,
			"user_id":   "u1",
		})
		gt.V(t, rec.Code).Equal(http.StatusOK)
	}

	// Drop one record behind the index's back; the listing must skip the
	// stale name rather than fail
	gt.R1(ts.store.Delete(context.Background(), "user:u1:repo:repo1")).NoError(t)

	rec := ts.request(http.MethodGet, "/api/v1/users/u1/repositories", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	repos := decode(t, rec)["data"].(map[string]any)["repositories"].([]any)
	gt.V(t, len(repos)).Equal(1)
	gt.V(t, repos[0].(map[string]any)["repo_name"]).Equal(any("repo2"))
}

func TestCreateIssueEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.gh.createIssueFunc = func(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error) {
		return &model.IssueRef{HTMLURL: "https://github.com/alice/repo1/issues/42", Number: 42}, nil
	}

	rec := ts.request(http.MethodPost, "/api/v1/github/issues", map[string]any{
		"token":     "tok-abc",
		"username":  "alice",
		"repo_name": "repo1",
		"title":     "Something broke",
	})
	gt.V(t, rec.Code).Equal(http.StatusCreated)

	resp := decode(t, rec)
	gt.V(t, resp["success"]).Equal(any(true))
	data := resp["data"].(map[string]any)
	gt.V(t, data["issue_url"]).Equal(any("https://github.com/alice/repo1/issues/42"))
	gt.V(t, data["issue_number"]).Equal(any(float64(42)))
}

func TestCreateIssueEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodPost, "/api/v1/github/issues", map[string]any{
		"repo_name": "repo1",
		"title":     "no credentials",
	})
	gt.V(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestTemplateEndpoints(t *testing.T) {
	ts := newTestServer(t)

	// Predefined catalog is public
	rec := ts.request(http.MethodGet, "/api/v1/templates", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	catalog := decode(t, rec)["data"].(map[string]any)
	gt.V(t, len(catalog)).Equal(3)

	// Save a custom template
	rec = ts.request(http.MethodPut, "/api/v1/users/u1/templates/incident", map[string]any{
		"name":  "incident",
		"title": "Incident: ",
		"body":  "## Timeline",
	})
	gt.V(t, rec.Code).Equal(http.StatusOK)

	// It shows up in the user's list
	rec = ts.request(http.MethodGet, "/api/v1/users/u1/templates", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	templates := decode(t, rec)["data"].(map[string]any)
	gt.V(t, len(templates)).Equal(1)
	tmpl := templates["incident"].(map[string]any)
	gt.V(t, tmpl["title"]).Equal(any("Incident: "))
}

func TestSaveTemplateBadBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/u1/templates/broken", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	ts.srv.Mux().ServeHTTP(rec, req)
	gt.V(t, rec.Code).Equal(http.StatusBadRequest)
}
