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

package main

import "github.com/nyx-release/nyx/internal/nyxerr"

// exitCodeFor maps a pipeline error to the exit codes named in spec
// §6: 0 success, 1 configuration error, 2 Git error, 3 release error,
// 4 transport/auth error.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case nyxerr.IsGitKind(err, nyxerr.GitAuth), nyxerr.IsGitKind(err, nyxerr.GitProtocol), nyxerr.Is(err, nyxerr.Security):
		return 4
	case nyxerr.Is(err, nyxerr.Release) && nyxerr.IsReleaseKind(err, nyxerr.ReleaseUpstreamFailure):
		return 4
	case nyxerr.Is(err, nyxerr.Git):
		return 2
	case nyxerr.Is(err, nyxerr.Release):
		return 3
	case nyxerr.Is(err, nyxerr.DataAccess), nyxerr.Is(err, nyxerr.IllegalProperty), nyxerr.Is(err, nyxerr.MalformedVersion):
		return 1
	default:
		return 1
	}
}
