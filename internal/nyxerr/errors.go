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

// Package nyxerr implements the tagged error kinds used across the
// pipeline core. A single [Error] type carries a [Kind] rather than
// the core minting one Go type per failure mode, so callers can test
// with errors.Is/errors.As while still branching on kind where needed.
package nyxerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure an [Error] represents.
type Kind string

// The kinds of errors the pipeline core can produce. See spec §7.
const (
	// DataAccess is raised reading or writing configuration or state
	// files.
	DataAccess Kind = "data_access"

	// IllegalProperty is raised when a configuration value is missing
	// or malformed after resolution.
	IllegalProperty Kind = "illegal_property"

	// Git wraps a failure from the repository port. Use [GitKind] to
	// further classify.
	Git Kind = "git"

	// MalformedVersion is raised when a version string is rejected
	// under its scheme.
	MalformedVersion Kind = "malformed_version"

	// Release covers pipeline-level release failures. Use
	// [ReleaseKind] to further classify.
	Release Kind = "release"

	// Security is raised when credential acquisition itself fails,
	// distinct from an auth rejection on use.
	Security Kind = "security"
)

// GitKind further classifies a [Git] error.
type GitKind string

// The git sub-kinds named in spec §4.2 and §7.
const (
	GitNotFound GitKind = "not_found"
	GitAmbiguous GitKind = "ambiguous"
	GitIO        GitKind = "io"
	GitAuth      GitKind = "auth"
	GitProtocol  GitKind = "protocol"
	GitDirty     GitKind = "dirty"
	GitDetached  GitKind = "detached"
)

// ReleaseKind further classifies a [Release] error.
type ReleaseKind string

// The release sub-kinds named in spec §7.
const (
	ReleaseNoMatchingType    ReleaseKind = "no_matching_release_type"
	ReleaseServiceUnknown    ReleaseKind = "service_unknown"
	ReleaseUpstreamFailure   ReleaseKind = "upstream_failure"
	ReleaseVersionOutOfRange ReleaseKind = "version_out_of_range"
)

// Error is the single error type produced by the pipeline core. Every
// failure that bubbles to the orchestrator (spec §7) is one of these.
type Error struct {
	Kind Kind

	// Sub is the kind-specific sub-classification, if any (a
	// [GitKind] or [ReleaseKind] rendered as a string). Empty when the
	// Kind has no sub-classification.
	Sub string

	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Sub != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s(%s): %s: %v", e.Kind, e.Sub, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Sub, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an [Error] with no sub-kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an [Error] with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapGit wraps cause as a [Git] error with the given sub-kind.
func WrapGit(sub GitKind, message string, cause error) *Error {
	return &Error{Kind: Git, Sub: string(sub), Message: message, Cause: cause}
}

// WrapRelease wraps cause as a [Release] error with the given sub-kind.
func WrapRelease(sub ReleaseKind, message string, cause error) *Error {
	return &Error{Kind: Release, Sub: string(sub), Message: message, Cause: cause}
}

// Is reports whether err is a pipeline [Error] of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsGitKind reports whether err is a [Git] error with the given
// sub-kind.
func IsGitKind(err error, sub GitKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == Git && e.Sub == string(sub)
}

// IsReleaseKind reports whether err is a [Release] error with the
// given sub-kind.
func IsReleaseKind(err error, sub ReleaseKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == Release && e.Sub == string(sub)
}
