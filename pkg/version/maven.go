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
	"strconv"
	"strings"
)

// Maven implements [Scheme] for the dotted-numeric Maven versioning
// convention (major.minor.patch[-qualifier]). No ecosystem library in
// the retrieved pack models Maven version ordering, so this scheme is
// hand-rolled against the standard library; see the design notes for
// the per-dependency justification.
type Maven struct{}

// mavenVersion is a parsed major.minor.patch[-qualifier] value.
type mavenVersion struct {
	major, minor, patch int
	qualifier           string
}

// String renders the version, omitting a blank qualifier.
func (v mavenVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.qualifier != "" {
		s += "-" + v.qualifier
	}
	return s
}

// Compare orders numeric components first, then the qualifier: an
// absent qualifier is considered a final release and so outranks any
// qualified version with the same numeric triple; two qualifiers
// compare lexically.
func (v mavenVersion) Compare(other Version) int {
	o, ok := other.(mavenVersion)
	if !ok {
		panic(fmt.Sprintf("version: cannot compare maven version with %T", other))
	}

	if d := compareInt(v.major, o.major); d != 0 {
		return d
	}
	if d := compareInt(v.minor, o.minor); d != 0 {
		return d
	}
	if d := compareInt(v.patch, o.patch); d != 0 {
		return d
	}

	switch {
	case v.qualifier == "" && o.qualifier == "":
		return 0
	case v.qualifier == "":
		return 1
	case o.qualifier == "":
		return -1
	default:
		return strings.Compare(v.qualifier, o.qualifier)
	}
}

// IsPrerelease reports whether v carries a qualifier.
func (v mavenVersion) IsPrerelease() bool {
	return v.qualifier != ""
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Name returns "maven".
func (Maven) Name() string { return "maven" }

// Parse parses s as major.minor.patch[-qualifier]. In lenient mode,
// any non-numeric prefix before the first digit is stripped, as for
// [SemVer.Parse].
func (Maven) Parse(s string, lenient bool) (Version, error) {
	in := s
	if lenient {
		in = leadingJunk.ReplaceAllString(s, "")
	}

	core, qualifier, _ := strings.Cut(in, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return nil, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("%q is not a valid maven version", s)}
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("%q is not a valid maven version", s)}
		}
		nums[i] = n
	}

	return mavenVersion{major: nums[0], minor: nums[1], patch: nums[2], qualifier: qualifier}, nil
}

// Valid reports whether s parses under strict rules.
func (m Maven) Valid(s string) bool {
	_, err := m.Parse(s, false)
	return err == nil
}

// DefaultInitial returns 0.1.0.
func (Maven) DefaultInitial() Version {
	return mavenVersion{major: 0, minor: 1, patch: 0}
}

// Bump applies id to v. Major/minor/patch bumps clear the qualifier,
// as a final release supersedes any qualified build of the prior
// triple. Any other id is adopted as the new qualifier verbatim: the
// Maven convention has no standard numeric-tail-increment rule for
// qualifiers, so repeated bumps with the same id are idempotent
// (see design notes, Open Question 3).
func (Maven) Bump(v Version, id BumpID) (Version, error) {
	mv, ok := v.(mavenVersion)
	if !ok {
		return nil, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("not a maven version: %T", v)}
	}

	switch id {
	case Major:
		return mavenVersion{major: mv.major + 1, minor: 0, patch: 0}, nil
	case Minor:
		return mavenVersion{major: mv.major, minor: mv.minor + 1, patch: 0}, nil
	case Patch:
		return mavenVersion{major: mv.major, minor: mv.minor, patch: mv.patch + 1}, nil
	default:
		return mavenVersion{major: mv.major, minor: mv.minor, patch: mv.patch, qualifier: string(id)}, nil
	}
}

// Compare orders a and b.
func (Maven) Compare(a, b Version) int {
	return a.Compare(b)
}

// MostRecent returns the greatest of candidates passing filter.
func (m Maven) MostRecent(candidates []Version, filter func(Version) bool) Version {
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

// InRange reports whether v's numeric triple falls within a simple
// "min,max" inclusive bound expression, e.g. "1.0.0,2.0.0". An empty
// rangeExpr always satisfies. This intentionally does not support the
// full constraint grammar available for SemVer; Maven's Open Question
// (spec §9, Open Question 3) leaves advanced range matching
// unspecified.
func (m Maven) InRange(v Version, rangeExpr string) (bool, error) {
	if rangeExpr == "" {
		return true, nil
	}
	mv, ok := v.(mavenVersion)
	if !ok {
		return false, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("not a maven version: %T", v)}
	}

	lo, hi, found := strings.Cut(rangeExpr, ",")
	if !found {
		return false, &Error{Kind: ErrMalformedVersion, Message: fmt.Sprintf("invalid maven version range %q", rangeExpr)}
	}

	loV, err := m.Parse(strings.TrimSpace(lo), false)
	if err != nil {
		return false, err
	}
	hiV, err := m.Parse(strings.TrimSpace(hi), false)
	if err != nil {
		return false, err
	}

	return mv.Compare(loV) >= 0 && mv.Compare(hiV) <= 0, nil
}
