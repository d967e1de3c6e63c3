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

import "github.com/nyx-release/nyx/pkg/state"

// templateData projects st into the flat map the template engine
// renders commit/tag/publish messages and asset paths against (spec
// §4.5: "dotted paths navigate the state").
func templateData(st *state.State) map[string]any {
	return map[string]any{
		"version":         st.Version,
		"newVersion":      st.NewVersion,
		"newRelease":      st.NewRelease,
		"bump":            st.Bump,
		"scheme":          st.Scheme,
		"branch":          st.Branch,
		"releaseTypeName": st.ReleaseTypeName,
		"timestamp":       st.Timestamp,
		"releaseScope": map[string]any{
			"previousVersion":       st.ReleaseScope.PreviousVersion,
			"previousVersionCommit": st.ReleaseScope.PreviousVersionCommit,
			"initialCommit":         st.ReleaseScope.InitialCommit,
			"finalCommit":           st.ReleaseScope.FinalCommit,
			"significant":           st.ReleaseScope.Significant(),
		},
	}
}
