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

package service

import (
	"context"
	"fmt"

	gogithub "github.com/google/go-github/v63/github"
	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/nyx-release/nyx/internal/service/apiv1"
	"github.com/nyx-release/nyx/internal/service/vcs/github"
	"github.com/nyx-release/nyx/internal/service/vcs/gitlab"
)

// githubAdapter exposes [github.Client] as a publish-only
// apiv1.Implementation; it never builds assets.
type githubAdapter struct {
	name   string
	client *github.Client
}

func (a *githubAdapter) GetConfig() (*apiv1.Config, error) {
	return &apiv1.Config{Name: a.name, Kind: "publish"}, nil
}

func (a *githubAdapter) BuildAsset(*apiv1.BuildAssetRequest) (*apiv1.BuildAssetResponse, error) {
	return nil, fmt.Errorf("service %q does not build assets", a.name)
}

func (a *githubAdapter) CreateRelease(req *apiv1.CreateReleaseRequest) (*apiv1.ReleaseHandle, error) {
	if req.DryRun {
		return &apiv1.ReleaseHandle{ID: req.TagName}, nil
	}
	rel, err := a.client.CreateRelease(context.Background(), req.TagName, req.Body)
	if err != nil {
		return nil, err
	}
	return releaseHandleFromGitHub(rel), nil
}

func (a *githubAdapter) GetRelease(req *apiv1.GetReleaseRequest) (*apiv1.ReleaseHandle, error) {
	rel, err := a.client.GetRelease(context.Background(), req.TagName)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, nil
	}
	return releaseHandleFromGitHub(rel), nil
}

func releaseHandleFromGitHub(rel *gogithub.RepositoryRelease) *apiv1.ReleaseHandle {
	h := &apiv1.ReleaseHandle{}
	if rel.NodeID != nil {
		h.ID = *rel.NodeID
	}
	if rel.HTMLURL != nil {
		h.URL = *rel.HTMLURL
	}
	return h
}

// gitlabAdapter exposes [gitlab.Client] as a publish-only
// apiv1.Implementation.
type gitlabAdapter struct {
	name   string
	client *gitlab.Client
}

func (a *gitlabAdapter) GetConfig() (*apiv1.Config, error) {
	return &apiv1.Config{Name: a.name, Kind: "publish"}, nil
}

func (a *gitlabAdapter) BuildAsset(*apiv1.BuildAssetRequest) (*apiv1.BuildAssetResponse, error) {
	return nil, fmt.Errorf("service %q does not build assets", a.name)
}

func (a *gitlabAdapter) CreateRelease(req *apiv1.CreateReleaseRequest) (*apiv1.ReleaseHandle, error) {
	if req.DryRun {
		return &apiv1.ReleaseHandle{ID: req.TagName}, nil
	}
	rel, err := a.client.CreateRelease(req.TagName, req.Body)
	if err != nil {
		return nil, err
	}
	return releaseHandleFromGitLab(rel), nil
}

func (a *gitlabAdapter) GetRelease(req *apiv1.GetReleaseRequest) (*apiv1.ReleaseHandle, error) {
	rel, err := a.client.GetRelease(req.TagName)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, nil
	}
	return releaseHandleFromGitLab(rel), nil
}

func releaseHandleFromGitLab(rel *gogitlab.Release) *apiv1.ReleaseHandle {
	h := &apiv1.ReleaseHandle{ID: rel.TagName}
	if rel.Links != nil {
		h.URL = rel.Links.Self
	}
	return h
}
