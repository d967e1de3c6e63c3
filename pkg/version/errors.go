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

// ErrKind classifies a version-model [Error].
type ErrKind string

// The error kinds named in spec §4.1.
const (
	ErrMalformedVersion  ErrKind = "malformed_version"
	ErrUnsupportedScheme ErrKind = "unsupported_scheme"
)

// Error is returned by version model operations. It carries no cause;
// version parsing has no I/O to wrap.
type Error struct {
	Kind    ErrKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}
