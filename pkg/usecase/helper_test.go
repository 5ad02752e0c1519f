package usecase_test

import (
	"context"
	"time"

	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/infra"
	"github.com/secmon-lab/issuehub/pkg/infra/cipher"
	"github.com/secmon-lab/issuehub/pkg/store/memory"
	"github.com/secmon-lab/issuehub/pkg/usecase"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
)

type githubMock struct {
	verifyTokenFunc   func(ctx context.Context, token types.AccessToken) error
	getRepositoryFunc func(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName) (*model.GitHubRepo, error)
	createIssueFunc   func(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error)
}

var _ interfaces.GitHubClient = (*githubMock)(nil)

func (x *githubMock) VerifyToken(ctx context.Context, token types.AccessToken) error {
	if x.verifyTokenFunc == nil {
		return nil
	}
	return x.verifyTokenFunc(ctx, token)
}

func (x *githubMock) GetRepository(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName) (*model.GitHubRepo, error) {
	if x.getRepositoryFunc == nil {
		return &model.GitHubRepo{Name: string(repo), Owner: owner}, nil
	}
	return x.getRepositoryFunc(ctx, token, owner, repo)
}

func (x *githubMock) CreateIssue(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error) {
	if x.createIssueFunc == nil {
		return &model.IssueRef{HTMLURL: "https://github.example/issues/1", Number: 1}, nil
	}
	return x.createIssueFunc(ctx, token, owner, repo, issue)
}

type fixture struct {
	uc    *usecase.UseCase
	store interfaces.KeyedStore
	gh    *githubMock
}

func newFixture(options ...usecase.Option) *fixture {
	s := memory.New()
	gh := &githubMock{}
	c, err := cipher.New("test-passphrase")
	if err != nil {
		panic(err)
	}

	uc := usecase.New(infra.New(
		infra.WithKeyedStore(s),
		infra.WithCipher(c),
		infra.WithGitHub(gh),
	), options...)

	return &fixture{uc: uc, store: s, gh: gh}
}

func ctxAt(tm time.Time) context.Context {
	return logging.CtxWithTime(context.Background(), func() time.Time { return tm })
}
