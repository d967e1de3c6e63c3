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

package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/nyx-release/nyx/internal/convention"
	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/releasetype"
	"github.com/nyx-release/nyx/internal/template"
	"github.com/nyx-release/nyx/pkg/configuration"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
	"github.com/nyx-release/nyx/pkg/version"
)

// InferCommand implements the Infer algorithm (spec §4.8): selecting
// the active release type, computing the release scope, classifying
// commits, and inferring the next version.
type InferCommand struct{}

// Name returns [Infer].
func (c *InferCommand) Name() Name { return Infer }

// Dependencies returns nil: Infer has no prerequisites. Clean is a
// standalone command, never an implicit prerequisite (spec §4.12:
// "Clean, then Infer → Make → Mark → Publish").
func (c *InferCommand) Dependencies() []Name { return nil }

// IsUpToDate reports whether the cached (headSHA, branch, config
// fingerprint) still matches the live repository and st carries a
// version, per spec §4.8.
func (c *InferCommand) IsUpToDate(st *state.State, repo nyxgit.Repository) (bool, error) {
	if st.Version == "" {
		return false, nil
	}

	cachedHead, ok := st.Internal("Infer.headSHA")
	if !ok {
		return false, nil
	}
	cachedBranch, ok := st.Internal("Infer.branch")
	if !ok {
		return false, nil
	}
	cachedFingerprint, ok := st.Internal("Infer.configFingerprint")
	if !ok {
		return false, nil
	}

	head, err := repo.LatestCommit()
	if err != nil {
		return false, err
	}
	branch, err := repo.CurrentBranch()
	if err != nil {
		return false, err
	}
	fp, err := configFingerprint(st.Configuration)
	if err != nil {
		return false, err
	}

	return cachedHead == head.SHA && cachedBranch == branch && cachedFingerprint == fp, nil
}

// Run implements spec §4.8's seven steps.
func (c *InferCommand) Run(_ context.Context, st *state.State, repo nyxgit.Repository) error {
	cfg := st.Configuration

	branch, err := repo.CurrentBranch()
	if err != nil {
		return err
	}

	selector := releasetype.New(cfg.ReleaseTypes, nil)
	sel, err := selector.Select(branch)
	if err != nil {
		return err
	}
	rt := sel.Type

	scheme, err := version.ByScheme(cfg.Scheme)
	if err != nil {
		return wrapVersionErr(err)
	}

	head, err := repo.LatestCommit()
	if err != nil {
		return err
	}

	allCommits, err := repo.CommitsSince("")
	if err != nil {
		return err
	}

	previousVersion, previousVersionCommit, err := findPreviousVersion(scheme, cfg, rt, allCommits)
	if err != nil {
		return err
	}

	scopeCommits, initialCommit, err := releaseScopeCommits(repo, allCommits, previousVersionCommit)
	if err != nil {
		return err
	}

	matcher := convention.New(cfg.CommitMessageConventions, string(version.Major))
	significant, bump, err := classifyCommits(matcher, scopeCommits, cfg.Bump)
	if err != nil {
		return err
	}

	newVersionVal, err := computeNextVersion(scheme, cfg, rt, previousVersion, bump, repo)
	if err != nil {
		return err
	}

	if rt.VersionRange != "" {
		ok, err := scheme.InRange(newVersionVal, rt.VersionRange)
		if err != nil {
			return wrapVersionErr(err)
		}
		if !ok {
			return nyxerr.WrapRelease(nyxerr.ReleaseVersionOutOfRange,
				"inferred version "+newVersionVal.String()+" does not satisfy releaseType.versionRange "+rt.VersionRange, nil)
		}
	}

	newVersion := newVersionVal.Compare(previousVersion) != 0

	st.Branch = branch
	st.ReleaseTypeName = sel.Name
	st.Scheme = scheme.Name()
	st.Version = newVersionVal.String()
	st.NewVersion = newVersion
	st.Bump = bump
	st.NewRelease = newVersion && rt.Publish
	st.ReleaseScope = state.ReleaseScope{
		PreviousVersion:       previousVersion.String(),
		PreviousVersionCommit: previousVersionCommit,
		InitialCommit:         initialCommit,
		FinalCommit:           head.SHA,
		Commits:               scopeCommits,
		SignificantCommits:    significant,
	}

	if !cfg.DryRun {
		fp, err := configFingerprint(cfg)
		if err != nil {
			return err
		}
		st.SetInternal("Infer.headSHA", head.SHA)
		st.SetInternal("Infer.branch", branch)
		st.SetInternal("Infer.configFingerprint", fp)
	}

	return nil
}

// findPreviousVersion walks allCommits (newest-first) looking for the
// first commit carrying a tag that parses as a version under scheme
// and is accepted by rt's version filter (spec §4.8 step 2). Absent a
// match, previousVersion is the configured initial version (or the
// scheme default) and previousVersionCommit is empty.
func findPreviousVersion(scheme version.Scheme, cfg *configuration.Configuration, rt configuration.ReleaseType, allCommits []nyxgit.Commit) (version.Version, string, error) {
	for _, c := range allCommits {
		var candidates []version.Version
		for _, tag := range c.Tags {
			name := strings.TrimPrefix(tag.Name, cfg.ReleasePrefix)
			v, err := scheme.Parse(name, cfg.ReleaseLenient)
			if err != nil {
				continue
			}
			if rt.VersionRange != "" {
				ok, err := scheme.InRange(v, rt.VersionRange)
				if err != nil || !ok {
					continue
				}
			}
			candidates = append(candidates, v)
		}
		if len(candidates) == 0 {
			continue
		}
		best := scheme.MostRecent(candidates, nil)
		return best, c.SHA, nil
	}

	if cfg.InitialVersion != "" {
		v, err := scheme.Parse(cfg.InitialVersion, false)
		if err != nil {
			return nil, "", wrapVersionErr(err)
		}
		return v, "", nil
	}
	return scheme.DefaultInitial(), "", nil
}

// releaseScopeCommits slices allCommits (newest-first) down to (but
// excluding) previousVersionCommit, and resolves the oldest commit in
// scope (spec §4.8 step 3).
func releaseScopeCommits(repo nyxgit.Repository, allCommits []nyxgit.Commit, previousVersionCommit string) ([]nyxgit.Commit, string, error) {
	if previousVersionCommit == "" {
		root, err := repo.RootCommit()
		if err != nil {
			return nil, "", err
		}
		if len(allCommits) == 0 {
			return allCommits, root.SHA, nil
		}
		return allCommits, allCommits[len(allCommits)-1].SHA, nil
	}

	idx := -1
	for i, c := range allCommits {
		if c.SHA == previousVersionCommit {
			idx = i
			break
		}
	}
	if idx < 0 {
		return allCommits, previousVersionCommit, nil
	}

	scope := allCommits[:idx]
	if len(scope) == 0 {
		return scope, previousVersionCommit, nil
	}
	return scope, scope[len(scope)-1].SHA, nil
}

// bumpRank orders bump identifiers per spec §4.8's tie-break rule:
// "major > minor > patch > prerelease-ids".
func bumpRank(id string) int {
	switch version.BumpID(id) {
	case version.Major:
		return 3
	case version.Minor:
		return 2
	case version.Patch:
		return 1
	default:
		return 0
	}
}

// classifyCommits runs matcher over scopeCommits and determines the
// effective bump id (spec §4.8 steps 4-5). pinnedBump, if non-empty,
// always wins.
func classifyCommits(matcher *convention.Matcher, scopeCommits []nyxgit.Commit, pinnedBump string) ([]nyxgit.Commit, string, error) {
	var significant []nyxgit.Commit
	bestRank := -1
	bestBump := ""

	for _, c := range scopeCommits {
		m, err := matcher.Match(c.Message)
		if err != nil {
			return nil, "", err
		}
		if !m.Matched || m.BumpID == "" {
			continue
		}
		significant = append(significant, c)
		if r := bumpRank(m.BumpID); r > bestRank {
			bestRank = r
			bestBump = m.BumpID
		}
	}

	if pinnedBump != "" {
		return significant, pinnedBump, nil
	}
	return significant, bestBump, nil
}

// computeNextVersion applies the effective bump to previousVersion,
// then collapsed-versioning and a configured override, per spec §4.8
// steps 5-6.
func computeNextVersion(scheme version.Scheme, cfg *configuration.Configuration, rt configuration.ReleaseType, previousVersion version.Version, bump string, repo nyxgit.Repository) (version.Version, error) {
	next := previousVersion

	if bump != "" {
		if rt.CollapsedVersioning {
			collapsed, err := applyCollapsedVersioning(scheme, cfg, rt, previousVersion, version.BumpID(bump), repo)
			if err != nil {
				return nil, err
			}
			next = collapsed
		} else {
			bumped, err := scheme.Bump(previousVersion, version.BumpID(bump))
			if err != nil {
				return nil, wrapVersionErr(err)
			}
			next = bumped
		}
	}

	if cfg.Version != "" {
		override, err := scheme.Parse(cfg.Version, false)
		if err != nil {
			return nil, wrapVersionErr(err)
		}
		next = override
	}

	return next, nil
}

// applyCollapsedVersioning sets the target core's prerelease tail to
// "<qualifier>.<N>", N chosen so the result strictly exceeds every
// existing tag sharing the same numeric core and qualifier (spec §4.8
// step 6). The target core is previousVersion's own core when
// previousVersion is itself an in-flight pre-release (the series
// continues without re-bumping), and the freshly bumped core
// otherwise (spec §8 scenario E: "bump relative to the last full
// release, not the in-flight pre-release"). The qualifier is rendered
// from rt.CollapsedVersionQualifier against a minimal template data
// view.
func applyCollapsedVersioning(scheme version.Scheme, cfg *configuration.Configuration, rt configuration.ReleaseType, previousVersion version.Version, bump version.BumpID, repo nyxgit.Repository) (version.Version, error) {
	var core string
	if previousVersion.IsPrerelease() {
		core, _, _ = strings.Cut(previousVersion.String(), "-")
	} else {
		bumped, err := scheme.Bump(previousVersion, bump)
		if err != nil {
			return nil, wrapVersionErr(err)
		}
		core, _, _ = strings.Cut(bumped.String(), "-")
	}

	qualifier := rt.CollapsedVersionQualifier
	if strings.Contains(qualifier, "{{") {
		engine := template.New()
		rendered, err := engine.Render(qualifier, map[string]any{"version": core})
		if err != nil {
			return nil, err
		}
		qualifier = rendered
	}

	floor := 0
	tags, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		name := strings.TrimPrefix(tag.Name, cfg.ReleasePrefix)
		v, err := scheme.Parse(name, cfg.ReleaseLenient)
		if err != nil {
			continue
		}
		tagCore, tagPre, found := strings.Cut(v.String(), "-")
		if !found || tagCore != core {
			continue
		}
		prefix := qualifier + "."
		if !strings.HasPrefix(tagPre, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(tagPre, prefix))
		if err != nil {
			continue
		}
		if n > floor {
			floor = n
		}
	}

	n := floor + 1
	result, err := scheme.Parse(core+"-"+qualifier+"."+strconv.Itoa(n), false)
	if err != nil {
		return nil, wrapVersionErr(err)
	}
	return result, nil
}
