// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command monitor-osm-domains extracts URL-bearing tags from an OSM PBF
// file and writes, for each distinct URL, every object that referenced it
// together with a resolved location, as a single JSON document.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pbf "github.com/BenWiederhake/monitor-osm-domains"
	"github.com/BenWiederhake/monitor-osm-domains/scan"
)

// errUsage marks an argument-count or flag-parsing failure, which exits
// with code 2 rather than the generic I/O failure code 1.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if errors.Is(err, errUsage) {
			return 2
		}

		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "monitor-osm-domains <input.osm.pbf> <output.json>",
		Short:         "Extract URL-bearing tags from an OSM PBF file into a JSON findings document",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: expected exactly 2 arguments (input PBF path, output JSON path), got %d", errUsage, len(args))
			}

			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runExtract(args[0], args[1])
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	return cmd
}

func runExtract(inputPath, outputPath string) error {
	slog.Info("opening output for writing", "path", outputPath)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer out.Close()

	slog.Info("preparing random access index", "path", inputPath)

	reader, err := pbf.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer reader.Close()

	driver := scan.NewDriver(reader)

	slog.Info("scanning", "path", inputPath)

	if err := driver.Run(context.Background(), inputPath); err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	stats := driver.Stats()
	slog.Info("scan complete",
		"urls", stats.NumURLs, "occurrences", stats.NumOccurrences, "backrefs", stats.NumBackrefs)

	if stats.MostExpensiveBackrefs > 0 {
		slog.Info("most expensive resolution",
			"type", stats.MostExpensiveType, "id", stats.MostExpensiveID, "backrefs", stats.MostExpensiveBackrefs)
	}

	slog.Info("writing results", "path", outputPath)

	if err := scan.WriteResults(out, driver.Findings()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
