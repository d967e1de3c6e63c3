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

package version_test

import (
	"testing"

	"github.com/nyx-release/nyx/pkg/version"
	"gotest.tools/v3/assert"
)

func TestByScheme(t *testing.T) {
	s, err := version.ByScheme("")
	assert.NilError(t, err)
	assert.Equal(t, "semver", s.Name())

	s, err = version.ByScheme("semver")
	assert.NilError(t, err)
	assert.Equal(t, "semver", s.Name())

	s, err = version.ByScheme("maven")
	assert.NilError(t, err)
	assert.Equal(t, "maven", s.Name())

	_, err = version.ByScheme("bogus")
	assert.ErrorContains(t, err, "unsupported")
}

func TestSemVerRoundTrip(t *testing.T) {
	s := version.SemVer{}
	for _, in := range []string{"0.1.0", "1.2.3", "1.2.3-alpha.1", "2.0.0-rc.4+build.5"} {
		v, err := s.Parse(in, false)
		assert.NilError(t, err)
		assert.Equal(t, in, v.String())
	}
}

func TestSemVerLenientParse(t *testing.T) {
	s := version.SemVer{}
	v, err := s.Parse("v1.2.3", true)
	assert.NilError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	_, err = s.Parse("v1.2.3", false)
	assert.ErrorContains(t, err, "not a valid semver")
}

func TestSemVerCompareTotal(t *testing.T) {
	s := version.SemVer{}
	lower, _ := s.Parse("1.0.0", false)
	higher, _ := s.Parse("1.0.1", false)
	equal, _ := s.Parse("1.0.0", false)

	assert.Equal(t, -1, lower.Compare(higher))
	assert.Equal(t, 1, higher.Compare(lower))
	assert.Equal(t, 0, lower.Compare(equal))
}

func TestSemVerBumpMajorMinorPatch(t *testing.T) {
	s := version.SemVer{}
	base, _ := s.Parse("1.2.3", false)

	major, err := s.Bump(base, version.Major)
	assert.NilError(t, err)
	assert.Equal(t, "2.0.0", major.String())

	minor, err := s.Bump(base, version.Minor)
	assert.NilError(t, err)
	assert.Equal(t, "1.3.0", minor.String())

	patch, err := s.Bump(base, version.Patch)
	assert.NilError(t, err)
	assert.Equal(t, "1.2.4", patch.String())
}

func TestSemVerBumpPrereleaseAttachesThenIncrements(t *testing.T) {
	s := version.SemVer{}
	base, _ := s.Parse("1.2.3", false)

	first, err := s.Bump(base, version.BumpID("alpha"))
	assert.NilError(t, err)
	assert.Equal(t, "1.2.3-alpha.1", first.String())

	second, err := s.Bump(first, version.BumpID("alpha"))
	assert.NilError(t, err)
	assert.Equal(t, "1.2.3-alpha.2", second.String())

	third, err := s.Bump(second, version.BumpID("beta"))
	assert.NilError(t, err)
	assert.Equal(t, "1.2.3-beta.1", third.String())
}

func TestSemVerInRange(t *testing.T) {
	s := version.SemVer{}
	v, _ := s.Parse("1.5.0", false)

	ok, err := s.InRange(v, ">=1.0.0 <2.0.0")
	assert.NilError(t, err)
	assert.Assert(t, ok)

	ok, err = s.InRange(v, ">=2.0.0")
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	ok, err = s.InRange(v, "")
	assert.NilError(t, err)
	assert.Assert(t, ok)
}

func TestSemVerMostRecent(t *testing.T) {
	s := version.SemVer{}
	v1, _ := s.Parse("1.0.0", false)
	v2, _ := s.Parse("1.1.0", false)
	v3, _ := s.Parse("1.2.0-alpha.1", false)

	best := s.MostRecent([]version.Version{v1, v2, v3}, nil)
	assert.Equal(t, "1.2.0-alpha.1", best.String())

	stable := s.MostRecent([]version.Version{v1, v2, v3}, func(v version.Version) bool {
		return !v.IsPrerelease()
	})
	assert.Equal(t, "1.1.0", stable.String())
}

func TestMavenRoundTrip(t *testing.T) {
	m := version.Maven{}
	for _, in := range []string{"0.1.0", "1.2.3", "1.2.3-SNAPSHOT"} {
		v, err := m.Parse(in, false)
		assert.NilError(t, err)
		assert.Equal(t, in, v.String())
	}
}

func TestMavenBumpClearsQualifier(t *testing.T) {
	m := version.Maven{}
	base, _ := m.Parse("1.2.3-SNAPSHOT", false)

	bumped, err := m.Bump(base, version.Patch)
	assert.NilError(t, err)
	assert.Equal(t, "1.2.4", bumped.String())
}

func TestMavenFinalOutranksQualified(t *testing.T) {
	m := version.Maven{}
	final, _ := m.Parse("1.2.3", false)
	snapshot, _ := m.Parse("1.2.3-SNAPSHOT", false)

	assert.Equal(t, 1, final.Compare(snapshot))
	assert.Equal(t, -1, snapshot.Compare(final))
}

func TestMavenInRange(t *testing.T) {
	m := version.Maven{}
	v, _ := m.Parse("1.5.0", false)

	ok, err := m.InRange(v, "1.0.0,2.0.0")
	assert.NilError(t, err)
	assert.Assert(t, ok)

	ok, err = m.InRange(v, "1.6.0,2.0.0")
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestMalformedVersionIsReported(t *testing.T) {
	s := version.SemVer{}
	_, err := s.Parse("not-a-version", false)
	assert.ErrorContains(t, err, "malformed_version")

	m := version.Maven{}
	_, err = m.Parse("1.2", false)
	assert.ErrorContains(t, err, "malformed_version")
}
