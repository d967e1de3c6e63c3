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

import (
	"github.com/urfave/cli/v2"

	"github.com/nyx-release/nyx/internal/command"
	"github.com/nyx-release/nyx/pkg/logging"
)

// invokeCommand builds a runtime, invokes name (and its prerequisites
// in order), and closes the runtime before returning.
func invokeCommand(log logging.Logger, name command.Name) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := newRuntime(c, log)
		if err != nil {
			return err
		}
		defer rt.close() //nolint:errcheck // the pipeline error, if any, takes precedence

		return rt.pipeline.Invoke(c.Context, name)
	}
}

func newCleanCommand(log logging.Logger) *cli.Command {
	return &cli.Command{
		Name:   "clean",
		Usage:  "remove the state file and invalidate every cached internal",
		Action: invokeCommand(log, command.Clean),
	}
}

func newInferCommand(log logging.Logger) *cli.Command {
	return &cli.Command{
		Name:   "infer",
		Usage:  "infer the next version from commit history",
		Action: invokeCommand(log, command.Infer),
	}
}

func newMakeCommand(log logging.Logger) *cli.Command {
	return &cli.Command{
		Name:   "make",
		Usage:  "build configured release assets",
		Action: invokeCommand(log, command.Make),
	}
}

func newMarkCommand(log logging.Logger) *cli.Command {
	return &cli.Command{
		Name:   "mark",
		Usage:  "commit, tag, and push the release",
		Action: invokeCommand(log, command.Mark),
	}
}

func newPublishCommand(log logging.Logger) *cli.Command {
	return &cli.Command{
		Name:   "publish",
		Usage:  "publish the release to configured services",
		Action: invokeCommand(log, command.Publish),
	}
}

// newReleaseCommand runs the entire pipeline through Publish, the
// common end-to-end entrypoint.
func newReleaseCommand(log logging.Logger) *cli.Command {
	return &cli.Command{
		Name:   "release",
		Usage:  "run the full pipeline: infer, make, mark, and publish",
		Action: invokeCommand(log, command.Publish),
	}
}
