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

import "net/rpc"

// _ is a compile-time assertion that rpcClient implements Implementation.
var _ Implementation = &rpcClient{}

// rpcClient implements Implementation over a net/rpc connection to a
// plugin-hosted service.
type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) GetConfig() (*Config, error) {
	var resp *Config
	err := c.client.Call("Plugin.GetConfig", new(any), &resp)
	return resp, err
}

func (c *rpcClient) BuildAsset(req *BuildAssetRequest) (*BuildAssetResponse, error) {
	var resp *BuildAssetResponse
	err := c.client.Call("Plugin.BuildAsset", req, &resp)
	return resp, err
}

func (c *rpcClient) CreateRelease(req *CreateReleaseRequest) (*ReleaseHandle, error) {
	var resp *ReleaseHandle
	err := c.client.Call("Plugin.CreateRelease", req, &resp)
	return resp, err
}

func (c *rpcClient) GetRelease(req *GetReleaseRequest) (*ReleaseHandle, error) {
	var resp *ReleaseHandle
	err := c.client.Call("Plugin.GetRelease", req, &resp)
	return resp, err
}
