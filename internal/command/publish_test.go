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
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/service/apiv1"
	"github.com/nyx-release/nyx/pkg/configuration"
)

// recordingImplementation is a fakeImplementation that additionally
// tracks GetRelease/CreateRelease invocations for idempotency tests.
type recordingImplementation struct {
	fakeImplementation
	existing      *apiv1.ReleaseHandle
	createdBodies []string
	getCalls      int
}

func (r *recordingImplementation) GetRelease(*apiv1.GetReleaseRequest) (*apiv1.ReleaseHandle, error) {
	r.getCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.existing, nil
}

func (r *recordingImplementation) CreateRelease(req *apiv1.CreateReleaseRequest) (*apiv1.ReleaseHandle, error) {
	r.createdBodies = append(r.createdBodies, req.Body)
	return &apiv1.ReleaseHandle{ID: req.TagName}, nil
}

func publishReleaseType() configuration.ReleaseType {
	return configuration.ReleaseType{
		Publish:        true,
		PublishMessage: "Release {{version}}",
		Services:       []string{"gh"},
	}
}

func TestPublishRunCreatesReleaseWhenAbsent(t *testing.T) {
	impl := &recordingImplementation{}
	cfg := &configuration.Configuration{
		ReleasePrefix: "v",
		ReleaseTypes: configuration.ReleaseTypesBlock{
			Items: map[string]configuration.ReleaseType{"default": publishReleaseType()},
		},
	}
	st := testState(t, cfg)
	st.Version = "1.2.0"
	st.NewRelease = true
	st.ReleaseTypeName = "default"

	cmd := &PublishCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{"gh": impl}}}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.NilError(t, err)

	assert.Equal(t, 1, impl.getCalls)
	assert.DeepEqual(t, impl.createdBodies, []string{"Release 1.2.0"})

	version, ok := st.Internal("Publish.version")
	assert.Assert(t, ok)
	assert.Equal(t, "1.2.0", version)
}

func TestPublishRunIsIdempotentWhenReleaseExists(t *testing.T) {
	impl := &recordingImplementation{existing: &apiv1.ReleaseHandle{ID: "v1.2.0"}}
	cfg := &configuration.Configuration{
		ReleasePrefix: "v",
		ReleaseTypes: configuration.ReleaseTypesBlock{
			Items: map[string]configuration.ReleaseType{"default": publishReleaseType()},
		},
	}
	st := testState(t, cfg)
	st.Version = "1.2.0"
	st.NewRelease = true
	st.ReleaseTypeName = "default"

	cmd := &PublishCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{"gh": impl}}}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.NilError(t, err)
	assert.Equal(t, 0, len(impl.createdBodies))
}

func TestPublishRunSkipsWhenNotNewRelease(t *testing.T) {
	cfg := &configuration.Configuration{
		ReleaseTypes: configuration.ReleaseTypesBlock{
			Items: map[string]configuration.ReleaseType{"default": publishReleaseType()},
		},
	}
	st := testState(t, cfg)
	st.NewRelease = false
	st.ReleaseTypeName = "default"

	cmd := &PublishCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{}}}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.NilError(t, err)
}

func TestPublishRunUnresolvedServiceIsIllegalProperty(t *testing.T) {
	cfg := &configuration.Configuration{
		ReleasePrefix: "v",
		ReleaseTypes: configuration.ReleaseTypesBlock{
			Items: map[string]configuration.ReleaseType{"default": publishReleaseType()},
		},
	}
	st := testState(t, cfg)
	st.Version = "1.2.0"
	st.NewRelease = true
	st.ReleaseTypeName = "default"

	cmd := &PublishCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{}}}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.Assert(t, nyxerr.Is(err, nyxerr.IllegalProperty))
}

func TestPublishRunDryRunSkipsServiceCalls(t *testing.T) {
	impl := &recordingImplementation{}
	cfg := &configuration.Configuration{
		DryRun:        true,
		ReleasePrefix: "v",
		ReleaseTypes: configuration.ReleaseTypesBlock{
			Items: map[string]configuration.ReleaseType{"default": publishReleaseType()},
		},
	}
	st := testState(t, cfg)
	st.Version = "1.2.0"
	st.NewRelease = true
	st.ReleaseTypeName = "default"

	cmd := &PublishCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{"gh": impl}}}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.NilError(t, err)
	assert.Equal(t, 0, impl.getCalls)

	_, ok := st.Internal("Publish.version")
	assert.Assert(t, !ok)
}

func TestPublishRunAttemptsAllServicesDespiteOneFailure(t *testing.T) {
	ok := &recordingImplementation{}
	broken := &recordingImplementation{fakeImplementation: fakeImplementation{err: errors.New("boom")}}
	rt := publishReleaseType()
	rt.Services = []string{"broken", "gh"}
	cfg := &configuration.Configuration{
		ReleasePrefix: "v",
		ReleaseTypes: configuration.ReleaseTypesBlock{
			Items: map[string]configuration.ReleaseType{"default": rt},
		},
	}
	st := testState(t, cfg)
	st.Version = "1.2.0"
	st.NewRelease = true
	st.ReleaseTypeName = "default"

	cmd := &PublishCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{"broken": broken, "gh": ok}}}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.ErrorContains(t, err, "broken")
	assert.DeepEqual(t, ok.createdBodies, []string{"Release 1.2.0"})

	_, isUpToDate := st.Internal("Publish.version")
	assert.Assert(t, !isUpToDate)
}

func TestPublishIsUpToDate(t *testing.T) {
	cfg := &configuration.Configuration{}
	st := testState(t, cfg)
	st.Version = "1.2.0"

	cmd := &PublishCommand{}
	upToDate, err := cmd.IsUpToDate(st, &fakeRepository{})
	assert.NilError(t, err)
	assert.Assert(t, !upToDate)

	st.SetInternal("Publish.version", "1.2.0")
	upToDate, err = cmd.IsUpToDate(st, &fakeRepository{})
	assert.NilError(t, err)
	assert.Assert(t, upToDate)
}
