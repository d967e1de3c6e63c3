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

// Package gitlab provides the built-in GitLab publish service port,
// mirroring the shape of [github.Client]: credentials come from the
// environment, releases are created/looked-up by tag name.
package gitlab

import (
	"fmt"
	"net/http"
	"os"

	gogitlab "github.com/xanzy/go-gitlab"
)

// Token returns the GitLab API token from the environment. Unlike the
// GitHub provider, no CLI fallback exists in the pack for GitLab, so
// this is the sole provider.
func Token() (string, error) {
	for _, env := range []string{"GITLAB_TOKEN", "CI_JOB_TOKEN"} {
		if token := os.Getenv(env); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("no gitlab token found in environment variables")
}

// Client wraps a [*gogitlab.Client] with the project releases are
// created against.
type Client struct {
	gl        *gogitlab.Client
	ProjectID string
}

// New returns a new [Client] for projectID ("group/project" or a
// numeric ID) using a token from the environment. baseURL, if
// non-empty, points the client at a self-hosted GitLab instance.
func New(projectID, baseURL string) (*Client, error) {
	token, err := Token()
	if err != nil {
		return nil, err
	}

	opts := []gogitlab.ClientOptionFunc{gogitlab.WithHTTPClient(http.DefaultClient)}
	if baseURL != "" {
		opts = append(opts, gogitlab.WithBaseURL(baseURL))
	}

	gl, err := gogitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}

	return &Client{gl: gl, ProjectID: projectID}, nil
}

// CreateRelease creates a release named tagName with the given
// description. Idempotent: an existing release for tagName is
// returned unmodified, per spec §4.11.
func (c *Client) CreateRelease(tagName, body string) (*gogitlab.Release, error) {
	if existing, err := c.GetRelease(tagName); err == nil && existing != nil {
		return existing, nil
	}

	rel, _, err := c.gl.Releases.CreateRelease(c.ProjectID, &gogitlab.CreateReleaseOptions{
		TagName:     &tagName,
		Name:        &tagName,
		Description: &body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab release %s: %w", tagName, err)
	}
	return rel, nil
}

// GetRelease looks up a release by tag name. Returns (nil, nil) when
// absent.
func (c *Client) GetRelease(tagName string) (*gogitlab.Release, error) {
	rel, resp, err := c.gl.Releases.GetRelease(c.ProjectID, tagName)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gitlab release %s: %w", tagName, err)
	}
	return rel, nil
}
