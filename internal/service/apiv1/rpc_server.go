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

package apiv1

// rpcServer adapts a local Implementation to net/rpc's method-per-call
// dispatch, one exported method per Implementation method.
type rpcServer struct {
	impl Implementation
}

func (s *rpcServer) GetConfig(_ any, resp **Config) error {
	v, err := s.impl.GetConfig()
	*resp = v
	return err
}

func (s *rpcServer) BuildAsset(req *BuildAssetRequest, resp **BuildAssetResponse) error {
	v, err := s.impl.BuildAsset(req)
	*resp = v
	return err
}

func (s *rpcServer) CreateRelease(req *CreateReleaseRequest, resp **ReleaseHandle) error {
	v, err := s.impl.CreateRelease(req)
	*resp = v
	return err
}

func (s *rpcServer) GetRelease(req *GetReleaseRequest, resp **ReleaseHandle) error {
	v, err := s.impl.GetRelease(req)
	*resp = v
	return err
}
