package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
)

// Client calls the GitHub REST API with a user-supplied personal access
// token per request.
type Client struct {
	baseURL *url.URL
	timeout time.Duration
}

var _ interfaces.GitHubClient = (*Client)(nil)

type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for GitHub Enterprise or a
// test server. The URL must end with a slash.
func WithBaseURL(rawURL string) Option {
	return func(x *Client) {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		if u, err := url.Parse(rawURL); err == nil {
			x.baseURL = u
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = d
	}
}

func New(options ...Option) *Client {
	client := &Client{
		timeout: 10 * time.Second,
	}
	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Client) newGitHub(ctx context.Context, token types.AccessToken) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)})
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = x.timeout

	gh := github.NewClient(httpClient)
	if x.baseURL != nil {
		gh.BaseURL = x.baseURL
	}

	return gh
}

func (x *Client) VerifyToken(ctx context.Context, token types.AccessToken) error {
	gh := x.newGitHub(ctx, token)

	user, _, err := gh.Users.Get(ctx, "")
	if err != nil {
		status, _, isHTTP := upstreamError(err)
		if !isHTTP {
			return goerr.Wrap(types.ErrNetwork, "failed to reach GitHub API", goerr.V("cause", err.Error()))
		}
		// The status code goes into the message itself: it is part of the
		// result callers relay to the user.
		return goerr.Wrap(types.ErrInvalidToken, fmt.Sprintf("invalid token (status %d)", status))
	}

	logging.From(ctx).Debug("token verified", "login", user.GetLogin())

	return nil
}

func (x *Client) GetRepository(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName) (*model.GitHubRepo, error) {
	gh := x.newGitHub(ctx, token)

	r, _, err := gh.Repositories.Get(ctx, owner, string(repo))
	if err != nil {
		status, msg, isHTTP := upstreamError(err)
		switch {
		case !isHTTP:
			return nil, goerr.Wrap(types.ErrNetwork, "failed to reach GitHub API", goerr.V("cause", err.Error()))
		case status == http.StatusNotFound:
			return nil, goerr.Wrap(types.ErrRepoNotFound, "repository not found",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
			)
		case status == http.StatusForbidden:
			return nil, goerr.Wrap(types.ErrRateLimited, msg, goerr.V("status", status))
		default:
			return nil, goerr.Wrap(types.ErrGitHubAPI, msg, goerr.V("status", status))
		}
	}

	return &model.GitHubRepo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Private:       r.GetPrivate(),
		Description:   r.GetDescription(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		Owner:         r.GetOwner().GetLogin(),
		HTMLURL:       r.GetHTMLURL(),
	}, nil
}

func (x *Client) CreateIssue(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error) {
	gh := x.newGitHub(ctx, token)

	req := &github.IssueRequest{
		Title: github.String(issue.Title),
		Body:  github.String(issue.Body),
	}
	if len(issue.Labels) > 0 {
		req.Labels = &issue.Labels
	}
	if len(issue.Assignees) > 0 {
		req.Assignees = &issue.Assignees
	}

	created, _, err := gh.Issues.Create(ctx, owner, string(repo), req)
	if err != nil {
		status, msg, isHTTP := upstreamError(err)
		switch {
		case !isHTTP:
			return nil, goerr.Wrap(types.ErrNetwork, "failed to reach GitHub API", goerr.V("cause", err.Error()))
		case status == http.StatusForbidden:
			return nil, goerr.Wrap(types.ErrRateLimited, msg, goerr.V("status", status))
		default:
			return nil, goerr.Wrap(types.ErrGitHubAPI, msg, goerr.V("status", status))
		}
	}

	logging.From(ctx).Info("issue created",
		"owner", owner,
		"repo", repo,
		"number", created.GetNumber(),
		"url", created.GetHTMLURL(),
	)

	return &model.IssueRef{
		HTMLURL: created.GetHTMLURL(),
		Number:  created.GetNumber(),
	}, nil
}

// upstreamError splits a go-github error into an HTTP-status error with the
// upstream message, or a transport-level failure (isHTTP=false).
func upstreamError(err error) (status int, msg string, isHTTP bool) {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Response.StatusCode, errResp.Message, true
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Response.StatusCode, rateErr.Message, true
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Response.StatusCode, abuseErr.Message, true
	}

	return 0, err.Error(), false
}
