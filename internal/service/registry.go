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

// Package service resolves named asset/publish service ports to a
// concrete [apiv1.Implementation], whether a built-in Go client or an
// external go-plugin binary (spec §4.9, §4.11, §6).
package service

import (
	"context"
	"fmt"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/service/apiv1"
	"github.com/nyx-release/nyx/internal/service/vcs/github"
	"github.com/nyx-release/nyx/internal/service/vcs/gitlab"
	"github.com/nyx-release/nyx/pkg/configuration"
)

// Registry resolves configured service names to Implementations,
// lazily constructing and caching each on first use.
type Registry struct {
	configs map[string]configuration.Service
	built   map[string]apiv1.Implementation
	closers []func() error
}

// NewRegistry builds a Registry over the resolved "services" block.
func NewRegistry(configs map[string]configuration.Service) *Registry {
	return &Registry{configs: configs, built: map[string]apiv1.Implementation{}}
}

// Resolve returns the Implementation for name, constructing it on
// first use. An unconfigured name is [nyxerr.ReleaseServiceUnknown].
func (r *Registry) Resolve(ctx context.Context, name string) (apiv1.Implementation, error) {
	if impl, ok := r.built[name]; ok {
		return impl, nil
	}

	cfg, ok := r.configs[name]
	if !ok {
		return nil, nyxerr.WrapRelease(nyxerr.ReleaseServiceUnknown, fmt.Sprintf("service %q is not configured", name), nil)
	}

	impl, err := r.build(ctx, name, cfg)
	if err != nil {
		return nil, err
	}
	r.built[name] = impl
	return impl, nil
}

func (r *Registry) build(ctx context.Context, name string, cfg configuration.Service) (apiv1.Implementation, error) {
	switch cfg.Type {
	case "github":
		client, err := github.New(cfg.Options["owner"], cfg.Options["repo"])
		if err != nil {
			return nil, nyxerr.WrapRelease(nyxerr.ReleaseUpstreamFailure, fmt.Sprintf("failed to build github service %q", name), err)
		}
		return &githubAdapter{name: name, client: client}, nil

	case "gitlab":
		client, err := gitlab.New(cfg.Options["project"], cfg.Options["baseURL"])
		if err != nil {
			return nil, nyxerr.WrapRelease(nyxerr.ReleaseUpstreamFailure, fmt.Sprintf("failed to build gitlab service %q", name), err)
		}
		return &gitlabAdapter{name: name, client: client}, nil

	case "plugin":
		path := cfg.Options["path"]
		if path == "" {
			return nil, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("service %q of type plugin requires an options.path", name))
		}
		impl, closer, err := apiv1.NewClient(ctx, path)
		if err != nil {
			return nil, nyxerr.WrapRelease(nyxerr.ReleaseUpstreamFailure, fmt.Sprintf("failed to launch plugin service %q", name), err)
		}
		r.closers = append(r.closers, closer)
		return impl, nil

	default:
		return nil, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("service %q has unknown type %q", name, cfg.Type))
	}
}

// Close terminates every plugin subprocess this registry launched.
func (r *Registry) Close() error {
	var firstErr error
	for _, closer := range r.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
