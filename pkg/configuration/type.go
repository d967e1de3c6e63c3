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

// Package configuration implements the layered configuration resolver
// (spec §4.3): command-line, plugin, custom/standard file, preset, and
// default layers merged with strict precedence into a single resolved
// [Configuration].
package configuration

// BumpExpression pairs a bump identifier with the regular expression,
// evaluated against a convention's capture groups, that selects it.
// Declaration order is significant: the first whose expression matches
// wins (spec §4.6).
type BumpExpression struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
}

// CommitMessageConvention classifies a commit message and derives a
// bump identifier from it (spec §3, §4.6).
type CommitMessageConvention struct {
	// Expression captures at least the "type" and "breaking" named
	// groups.
	Expression string `json:"expression"`

	// BumpExpressions are tried in order against Expression's capture
	// groups; the first match yields the bump id.
	BumpExpressions []BumpExpression `json:"bumpExpressions,omitempty"`
}

// EnvironmentPredicate is a release-type matching predicate requiring
// environment variable Name's value to satisfy ValueFilter (a regular
// expression; empty means "must be set to any value").
type EnvironmentPredicate struct {
	Name        string `json:"name"`
	ValueFilter string `json:"valueFilter,omitempty"`
}

// ReleaseType is a named release policy (spec §3).
type ReleaseType struct {
	BranchFilter              string                 `json:"branchFilter"`
	EnvironmentPredicates     []EnvironmentPredicate `json:"environmentVariables,omitempty"`
	CollapsedVersioning       bool                   `json:"collapsedVersioning,omitempty"`
	CollapsedVersionQualifier string                 `json:"collapsedVersionQualifier,omitempty"`
	VersionRange              string                 `json:"versionRange,omitempty"`
	VersionRangeFromBranchName bool                  `json:"versionRangeFromBranchName,omitempty"`
	Publish                   bool                   `json:"publish,omitempty"`
	GitCommit                 bool                   `json:"gitCommit,omitempty"`
	GitTag                    bool                   `json:"gitTag,omitempty"`
	GitPush                   bool                   `json:"gitPush,omitempty"`
	CommitMessage             string                 `json:"commitMessage,omitempty"`
	TagMessage                string                 `json:"tagMessage,omitempty"`
	PublishMessage            string                 `json:"publishMessage,omitempty"`

	// AssetPaths, if non-empty, restricts Mark's commit step to
	// staging exactly these paths rather than every dirty path
	// (supplemented field, see SPEC_FULL.md §3).
	AssetPaths []string `json:"assetPaths,omitempty"`

	// Services lists the publish services (by name, resolved through
	// internal/service.Registry) this release type publishes to.
	Services []string `json:"services,omitempty"`
}

// Asset is a single configured release artifact, built via the named
// asset service (spec §4.9).
type Asset struct {
	Path    string `json:"path"`
	Service string `json:"service,omitempty"`
}

// Service configures credentials/options for a named asset or publish
// service port. Type selects the built-in implementation ("github",
// "gitlab") or "plugin" for an external go-plugin binary; Options
// carries implementation-specific values ("owner"/"repo" for github,
// "project"/"baseURL" for gitlab, "path" for plugin). Tokens are not
// read from Options; the built-in clients take them from environment
// variables.
type Service struct {
	Type    string            `json:"type"`
	Options map[string]string `json:"options,omitempty"`
}

// ConventionsBlock is the composite "commitMessageConventions" block:
// an ordered list of enabled convention names plus their definitions
// (spec §4.3).
type ConventionsBlock struct {
	Enabled []string                            `json:"enabled,omitempty"`
	Items   map[string]CommitMessageConvention `json:"items,omitempty"`
}

// ReleaseTypesBlock is the composite "releaseTypes" block.
type ReleaseTypesBlock struct {
	Enabled []string               `json:"enabled,omitempty"`
	Items   map[string]ReleaseType `json:"items,omitempty"`
}

// Configuration is the fully-resolved, flattened view produced by
// [Resolver.Resolve] (spec §3).
type Configuration struct {
	Bump           string `json:"bump,omitempty"`
	Directory      string `json:"directory,omitempty"`
	DryRun         bool   `json:"dryRun,omitempty"`
	InitialVersion string `json:"initialVersion,omitempty"`
	ReleasePrefix  string `json:"releasePrefix,omitempty"`
	ReleaseLenient bool   `json:"releaseLenient,omitempty"`
	Resume         bool   `json:"resume,omitempty"`
	Scheme         string `json:"scheme,omitempty"`
	StateFile      string `json:"stateFile,omitempty"`
	Version        string `json:"version,omitempty"`

	Assets                   map[string]Asset   `json:"assets,omitempty"`
	CommitMessageConventions ConventionsBlock    `json:"commitMessageConventions,omitempty"`
	ReleaseTypes             ReleaseTypesBlock   `json:"releaseTypes,omitempty"`
	Services                 map[string]Service  `json:"services,omitempty"`

	// Remotes is the explicit remote name list Mark's push step uses;
	// empty means every remote the repository reports (supplemented field,
	// see SPEC_FULL.md §3).
	Remotes []string `json:"remotes,omitempty"`

	// Meta-options: these name the derived layers themselves and are
	// subject to the resolver's self-reference skip rule (spec §4.3).
	ConfigurationFile       string `json:"configurationFile,omitempty"`
	SharedConfigurationFile string `json:"sharedConfigurationFile,omitempty"`
	Preset                  string `json:"preset,omitempty"`
}
