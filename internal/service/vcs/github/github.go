// Copyright (C) 2026 nyx contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package github provides the built-in GitHub publish service port: it
// creates and looks up releases by tag name. Token retrieval follows
// the same provider chain as a plain git host client would need
// regardless:
//
//   - Environment variable ($GITHUB_TOKEN)
//   - Github CLI (gh auth token)
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v63/github"
	"golang.org/x/oauth2"
)

// provider is a source of a GitHub API token.
type provider interface {
	Token() (string, error)
}

// defaultProviders is the ordered list of credential providers tried
// by [Token].
var defaultProviders = []provider{
	&envProvider{},
	&ghProvider{},
}

// ErrNoToken is returned when no configured provider can produce a
// token.
type ErrNoToken struct {
	errs []error
}

// Error implements the error interface.
func (e ErrNoToken) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("no github token found: %s", strings.Join(msgs, "; "))
}

// Token returns a valid token from one of the configured credential
// providers. If no token is found, [ErrNoToken] is returned.
func Token() (string, error) {
	token := ""
	var errs []error
	for _, p := range defaultProviders {
		var err error
		token, err = p.Token()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if token != "" {
			break
		}
	}
	if token == "" {
		return "", ErrNoToken{errs}
	}
	return token, nil
}

// Client wraps a [*github.Client] with the repository coordinates
// releases are created against.
type Client struct {
	gh    *github.Client
	Owner string
	Repo  string
}

// Client returns the underlying [*github.Client].
func (c *Client) Client() *github.Client {
	return c.gh
}

// New returns a new [Client] for owner/repo using credentials from one
// of the configured credential providers. If no token is found, an
// unauthenticated client is returned (sufficient for public repository
// reads, insufficient for release creation).
func New(owner, repo string) (*Client, error) {
	token, err := Token()
	if err != nil {
		return &Client{gh: github.NewClient(http.DefaultClient), Owner: owner, Repo: repo}, nil
	}

	// Note: background ctx is used here because we don't want the
	// oauth2 client to pick up credentials from a provided context.
	gh := github.NewClient(oauth2.NewClient(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	))
	return &Client{gh: gh, Owner: owner, Repo: repo}, nil
}

// CreateRelease creates a release named tagName with the given body.
// Idempotent: if a release already exists for tagName, it is returned
// unmodified rather than re-created, per spec §4.11.
func (c *Client) CreateRelease(ctx context.Context, tagName, body string) (*github.RepositoryRelease, error) {
	if existing, err := c.GetRelease(ctx, tagName); err == nil && existing != nil {
		return existing, nil
	}

	rel, _, err := c.gh.Repositories.CreateRelease(ctx, c.Owner, c.Repo, &github.RepositoryRelease{
		TagName: &tagName,
		Name:    &tagName,
		Body:    &body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create github release %s: %w", tagName, err)
	}
	return rel, nil
}

// GetRelease looks up a release by tag name. Returns (nil, nil) when
// absent.
func (c *Client) GetRelease(ctx context.Context, tagName string) (*github.RepositoryRelease, error) {
	rel, resp, err := c.gh.Repositories.GetReleaseByTag(ctx, c.Owner, c.Repo, tagName)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get github release %s: %w", tagName, err)
	}
	return rel, nil
}
