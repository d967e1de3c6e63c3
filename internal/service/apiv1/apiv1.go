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

// Package apiv1 defines the asset/publish service port (spec §6) and
// its out-of-process transport: a net/rpc protocol carried over
// hashicorp/go-plugin, generalized from the teacher repo's native
// extension protocol to nyx's asset/publish service boundary instead
// of template-function dispatch.
package apiv1

// Protocol constants. Bumping Version is a breaking change to the
// wire contract; plugins built against an older version are rejected
// during the handshake.
const (
	Version     = 1
	Name        = "nyx-service"
	CookieKey   = "NYX_SERVICE_PLUGIN"
	CookieValue = "3c1e2f3a-9b7c-4e35-8d5b-release-service"
)

// Config is metadata a service implementation returns to the host
// on registration.
type Config struct {
	// Name is the service's self-reported name, should match the name
	// it was registered under.
	Name string

	// Kind distinguishes an asset-producing service from a
	// release-publishing one; a single binary may implement both.
	Kind string
}

// BuildAssetRequest carries the inputs to an asset service's
// buildAsset(path, state, repo) operation (spec §4.9). State and
// Repo are passed as opaque, already-rendered JSON since the wire
// format cannot carry Go interfaces across a process boundary.
type BuildAssetRequest struct {
	Path      string
	StateJSON []byte
	RepoJSON  []byte
	DryRun    bool
}

// BuildAssetResponse is the outcome of building one asset.
type BuildAssetResponse struct {
	// Contents is the built asset's file contents, written by the
	// caller at Path.
	Contents []byte
}

// CreateReleaseRequest carries the inputs to a publish service's
// createRelease(tagName, body, assets) operation (spec §4.11).
type CreateReleaseRequest struct {
	TagName string
	Body    string
	Assets  []string
	DryRun  bool
}

// ReleaseHandle identifies a created (or pre-existing) remote release.
type ReleaseHandle struct {
	ID  string
	URL string
}

// GetReleaseRequest looks up a release by tag name.
type GetReleaseRequest struct {
	TagName string
}

// Implementation is the interface a service (built-in or
// plugin-hosted) must satisfy.
type Implementation interface {
	GetConfig() (*Config, error)
	BuildAsset(*BuildAssetRequest) (*BuildAssetResponse, error)
	CreateRelease(*CreateReleaseRequest) (*ReleaseHandle, error)
	GetRelease(*GetReleaseRequest) (*ReleaseHandle, error)
}
