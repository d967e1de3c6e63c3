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

package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

// leadingJunk matches any run of characters before the first digit,
// used to strip arbitrary textual prefixes in lenient parsing mode.
var leadingJunk = regexp.MustCompile(`^[^0-9]*`)

// SemVer implements [Scheme] for Semantic Versioning 2.0.0, backed by
// [github.com/Masterminds/semver/v3].
type SemVer struct{}

// semVerVersion adapts [*mmsemver.Version] to [Version].
type semVerVersion struct {
	v *mmsemver.Version
}

// String renders the version without any lenient-mode prefix, per
// spec §4.1 ("never [tolerant] when rendering").
func (v semVerVersion) String() string {
	return v.v.String()
}

// Compare orders v against other, which must also be a semVerVersion.
func (v semVerVersion) Compare(other Version) int {
	o, ok := other.(semVerVersion)
	if !ok {
		panic(fmt.Sprintf("version: cannot compare semver version with %T", other))
	}
	return v.v.Compare(o.v)
}

// IsPrerelease reports whether v carries a pre-release qualifier.
func (v semVerVersion) IsPrerelease() bool {
	return v.v.Prerelease() != ""
}

// Name returns "semver".
func (SemVer) Name() string { return "semver" }

// Parse parses s as a SemVer version. In lenient mode, any run of
// non-digit characters preceding the first digit is stripped before
// parsing (spec §4.1); this covers prefixes beyond the configured
// releasePrefix (e.g. stray whitespace, "release-").
func (SemVer) Parse(s string, lenient bool) (Version, error) {
	in := s
	if lenient {
		in = leadingJunk.ReplaceAllString(s, "")
	}

	sv, err := mmsemver.StrictNewVersion(in)
	if err != nil {
		return nil, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("%q is not a valid semver version: %v", s, err)}
	}
	return semVerVersion{sv}, nil
}

// Valid reports whether s parses under strict (non-lenient) rules.
func (s SemVer) Valid(str string) bool {
	_, err := s.Parse(str, false)
	return err == nil
}

// DefaultInitial returns 0.1.0, per spec §4.1.
func (SemVer) DefaultInitial() Version {
	sv, _ := mmsemver.StrictNewVersion("0.1.0")
	return semVerVersion{sv}
}

// Bump applies id to v. Major/minor/patch bumps reset any pre-release
// and build metadata, as SemVer requires. Any other id is treated as a
// pre-release qualifier: it is attached with a numeric tail of 1 if
// absent, or its numeric tail is incremented if the qualifier already
// matches (spec §4.1: "Prereleases bump their numeric tail or attach
// it").
func (s SemVer) Bump(v Version, id BumpID) (Version, error) {
	sv, ok := v.(semVerVersion)
	if !ok {
		return nil, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("not a semver version: %T", v)}
	}

	switch id {
	case Major:
		nv := sv.v.IncMajor()
		return semVerVersion{&nv}, nil
	case Minor:
		nv := sv.v.IncMinor()
		return semVerVersion{&nv}, nil
	case Patch:
		nv := sv.v.IncPatch()
		return semVerVersion{&nv}, nil
	default:
		newPre := bumpPrereleaseTail(sv.v.Prerelease(), string(id))
		nv, err := sv.v.SetPrerelease(newPre)
		if err != nil {
			return nil, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("invalid pre-release qualifier %q: %v", id, err)}
		}
		return semVerVersion{&nv}, nil
	}
}

// bumpPrereleaseTail computes the new pre-release string for
// attaching/advancing qualifier on top of the existing pre-release
// string cur.
func bumpPrereleaseTail(cur, qualifier string) string {
	if cur == "" {
		return qualifier + ".1"
	}

	parts := strings.Split(cur, ".")
	if parts[0] != qualifier {
		return qualifier + ".1"
	}

	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			parts[len(parts)-1] = strconv.Itoa(n + 1)
			return strings.Join(parts, ".")
		}
	}
	return cur + ".1"
}

// Compare orders a and b.
func (SemVer) Compare(a, b Version) int {
	return a.Compare(b)
}

// MostRecent returns the greatest of candidates passing filter.
func (s SemVer) MostRecent(candidates []Version, filter func(Version) bool) Version {
	var best Version
	for _, c := range candidates {
		if filter != nil && !filter(c) {
			continue
		}
		if best == nil || c.Compare(best) > 0 {
			best = c
		}
	}
	return best
}

// InRange checks v against a Masterminds/semver constraint expression,
// e.g. ">=1.0.0 <2.0.0" (spec §9 Open Question 2).
func (SemVer) InRange(v Version, rangeExpr string) (bool, error) {
	if rangeExpr == "" {
		return true, nil
	}
	sv, ok := v.(semVerVersion)
	if !ok {
		return false, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("not a semver version: %T", v)}
	}
	c, err := mmsemver.NewConstraint(rangeExpr)
	if err != nil {
		return false, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("invalid version range %q: %v", rangeExpr, err)}
	}
	return c.Check(sv.v), nil
}
