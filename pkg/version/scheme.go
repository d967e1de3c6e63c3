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

// Package version implements the totally-ordered version model (spec
// §3, §4.1): parsing, comparison, and bumping of version identifiers
// under a configurable scheme.
package version

import "fmt"

// BumpID identifies what part of a version a bump affects. The three
// core identifiers are always valid; anything else is interpreted by
// the scheme as a pre-release qualifier (e.g. "alpha", "rc").
type BumpID string

// The three scheme-independent bump identifiers named in spec §4.1.
const (
	Major BumpID = "major"
	Minor BumpID = "minor"
	Patch BumpID = "patch"
)

// Version is an immutable, totally-ordered value under some [Scheme].
// Bump operations on a Scheme produce new Version values; a Version
// never mutates itself.
type Version interface {
	fmt.Stringer

	// Compare returns -1, 0, or 1 as v is less than, equal to, or
	// greater than other. Comparing versions from different schemes is
	// undefined and implementations may panic.
	Compare(other Version) int

	// IsPrerelease reports whether v carries a pre-release
	// qualifier.
	IsPrerelease() bool
}

// Scheme parses, validates, compares, and bumps versions under one
// versioning convention (e.g. SemVer or Maven).
type Scheme interface {
	// Name identifies the scheme, e.g. "semver".
	Name() string

	// Parse parses s into a Version. When lenient is true, arbitrary
	// textual prefixes before the numeric portion are tolerated (spec
	// §4.1); lenient parsing is never used when rendering.
	Parse(s string, lenient bool) (Version, error)

	// Valid reports whether s parses without error under strict
	// (non-lenient) rules.
	Valid(s string) bool

	// DefaultInitial is the version used when no previous version
	// exists, e.g. 0.1.0 for SemVer.
	DefaultInitial() Version

	// Bump returns a new Version with id applied to v. id is one of
	// [Major], [Minor], [Patch], or a scheme-defined pre-release
	// qualifier.
	Bump(v Version, id BumpID) (Version, error)

	// Compare orders a and b; see [Version.Compare].
	Compare(a, b Version) int

	// MostRecent returns the greatest Version among candidates for
	// which filter returns true, or nil if none qualify. A nil filter
	// accepts every candidate.
	MostRecent(candidates []Version, filter func(Version) bool) Version

	// InRange reports whether v satisfies the given range constraint
	// expression (spec §9 Open Question 2: releaseType.versionRange).
	// An empty rangeExpr always satisfies.
	InRange(v Version, rangeExpr string) (bool, error)
}

// ByScheme resolves a [Scheme] by its configured name.
func ByScheme(name string) (Scheme, error) {
	switch name {
	case "", "semver":
		return SemVer{}, nil
	case "maven":
		return Maven{}, nil
	default:
		return nil, &Error{Kind: ErrUnsupportedScheme, Message: fmt.Sprintf("unsupported scheme %q", name)}
	}
}
