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

// Package main implements the nyx CLI: a thin urfave/cli binding over
// the pipeline core, with sub-commands mapping 1:1 to pipeline
// commands (spec §6).
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nyx-release/nyx/pkg/logging"
)

func main() {
	log := logging.New()

	app := &cli.App{
		Name:        "nyx",
		Usage:       "semantic release automation",
		Description: "Derives the next version from commit history, stages release artifacts, and publishes releases.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "directory", Aliases: []string{"C"}, Value: ".", Usage: "repository directory"},
			&cli.StringFlag{Name: "configuration-file", Usage: "path to a local configuration file"},
			&cli.StringFlag{Name: "shared-configuration-file", Usage: "path to a shared configuration file"},
			&cli.StringFlag{Name: "preset", Usage: "named preset bundle"},
			&cli.StringFlag{Name: "state-file", Value: ".nyx-state.json", Usage: "path to the run state file"},
			&cli.BoolFlag{Name: "dry-run", Usage: "compute, but do not mutate the repository or publish"},
			&cli.BoolFlag{Name: "resume", Usage: "resume from the state file instead of starting fresh"},
			&cli.StringFlag{Name: "bump", Usage: "pin the bump identifier, overriding commit classification"},
			&cli.StringFlag{Name: "scheme", Usage: "versioning scheme (semver, maven)"},
			&cli.StringFlag{Name: "release-prefix", Usage: "prefix stripped from/added to tag names"},
			&cli.BoolFlag{Name: "release-lenient", Usage: "parse tags leniently under the configured scheme"},
			&cli.StringFlag{Name: "initial-version", Usage: "initial version when no previous release exists"},
			&cli.StringFlag{Name: "version", Usage: "override the inferred version"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.SetLevel(logging.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			newCleanCommand(log),
			newInferCommand(log),
			newMakeCommand(log),
			newMarkCommand(log),
			newPublishCommand(log),
			newReleaseCommand(log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("nyx failed")
		os.Exit(exitCodeFor(err))
	}
}
