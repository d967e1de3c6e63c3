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

	"github.com/hashicorp/go-multierror"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/service/apiv1"
	"github.com/nyx-release/nyx/internal/template"
	"github.com/nyx-release/nyx/pkg/logging"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// PublishCommand creates remote releases through each enabled publish
// service port (spec §4.11).
type PublishCommand struct {
	Registry serviceResolver
	Log      logging.Logger
}

// Name returns [Publish].
func (c *PublishCommand) Name() Name { return Publish }

// Dependencies returns [Mark]; Publish needs the pushed tag Mark
// created.
func (c *PublishCommand) Dependencies() []Name { return []Name{Mark} }

// IsUpToDate reports whether Publish already ran for the tag this
// state's version resolves to.
func (c *PublishCommand) IsUpToDate(st *state.State, _ nyxgit.Repository) (bool, error) {
	if st.Version == "" {
		return false, nil
	}
	cached, ok := st.Internal("Publish.version")
	return ok && cached == st.Version, nil
}

// Run creates a release, identified by the release tag, on every
// service named in the active release type's services list. A
// service reporting the release already exists leaves it unmodified
// (spec §4.11: "idempotent").
func (c *PublishCommand) Run(ctx context.Context, st *state.State, _ nyxgit.Repository) error {
	if !st.NewRelease {
		return nil
	}

	rt, ok := st.ActiveReleaseType()
	if !ok {
		return nyxerr.New(nyxerr.IllegalProperty, "no active release type; Infer must run before Publish")
	}
	cfg := st.Configuration

	engine := template.New()
	data := templateData(st)

	body := ""
	if rt.PublishMessage != "" {
		rendered, err := engine.Render(rt.PublishMessage, data)
		if err != nil {
			return err
		}
		body = rendered
	}

	tagName := cfg.ReleasePrefix + st.Version

	// Services publish independently: one service's failure must not
	// prevent the others from being attempted, so failures accumulate
	// into a single combined error rather than returning on the first.
	var result *multierror.Error

	for _, name := range rt.Services {
		if cfg.DryRun {
			c.log().With("service", name).With("tag", tagName).Info("Skipping release publish (dry run)")
			continue
		}

		impl, err := c.Registry.Resolve(ctx, name)
		if err != nil {
			if nyxerr.IsReleaseKind(err, nyxerr.ReleaseServiceUnknown) {
				return nyxerr.New(nyxerr.IllegalProperty, "release type names unresolved service \""+name+"\"")
			}
			return err
		}

		existing, err := impl.GetRelease(&apiv1.GetReleaseRequest{TagName: tagName})
		if err != nil {
			result = multierror.Append(result, nyxerr.WrapRelease(nyxerr.ReleaseUpstreamFailure, "service \""+name+"\" failed looking up release \""+tagName+"\"", err))
			continue
		}
		if existing != nil {
			continue
		}

		if _, err := impl.CreateRelease(&apiv1.CreateReleaseRequest{
			TagName: tagName,
			Body:    body,
			DryRun:  cfg.DryRun,
		}); err != nil {
			result = multierror.Append(result, nyxerr.WrapRelease(nyxerr.ReleaseUpstreamFailure, "service \""+name+"\" failed to create release \""+tagName+"\"", err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	if !cfg.DryRun {
		st.SetInternal("Publish.version", st.Version)
	}

	return nil
}

func (c *PublishCommand) log() logging.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logging.New()
}
