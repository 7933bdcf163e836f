/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/unikorn-cloud/api-smoke/pkg/config"
	"github.com/unikorn-cloud/api-smoke/pkg/fakeapi"
	"github.com/unikorn-cloud/api-smoke/pkg/jsonplaceholder"
	"github.com/unikorn-cloud/api-smoke/pkg/report"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"

	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrUnknownScenario is raised when a requested scenario doesn't exist.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrScenariosFailed is raised when any scenario doesn't pass.
	ErrScenariosFailed = errors.New("scenarios did not pass")
)

type runOptions struct {
	envFile     string
	baseURL     string
	resultsDir  string
	scenarios   []string
	parallelism int
	fake        bool
}

func (o *runOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	flags.StringVar(&o.baseURL, "base-url", "", "Base URL of the API, overrides API_BASE_URL")
	flags.StringVar(&o.resultsDir, "results-dir", "", "Directory to write results to, overrides RESULTS_DIR")
	flags.StringSliceVar(&o.scenarios, "scenario", nil, "Scenario to run, may be repeated (default: all)")
	flags.IntVar(&o.parallelism, "parallelism", 1, "Number of scenarios to run concurrently")
	flags.BoolVar(&o.fake, "fake", false, "Run against an in-process fake API")
}

func runCmd() *cobra.Command {
	options := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the smoke scenarios",
		Long: `Run the smoke scenarios and print a summary.

Environment variables:
  API_BASE_URL                 Base URL of the API (default: https://jsonplaceholder.typicode.com)
  REQUEST_TIMEOUT              Per request timeout e.g. 10s (default: none)
  RESULTS_DIR                  Directory to write results to (default: none)
  VALIDATE_REQUESTS            Validate requests against the API description (default: true)
  LOG_REQUESTS                 Log request summaries at verbosity 1 (default: false)
  LOG_RESPONSES                Log response bodies at verbosity 2 (default: false)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), options)
		},
	}

	options.addFlags(cmd.Flags())

	return cmd
}

func loadConfig(o *runOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if o.envFile != "" {
		cfg, err = config.LoadWithEnvFile(o.envFile)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}

	if o.resultsDir != "" {
		cfg.ResultsDir = o.resultsDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// selectScenarios filters by name, preserving the canonical order.
func selectScenarios(all []*smoke.Scenario, names []string) ([]*smoke.Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}

	wanted := sets.New(names...)
	known := sets.New[string]()

	var selected []*smoke.Scenario

	for _, s := range all {
		known.Insert(s.Name)

		if wanted.Has(s.Name) {
			selected = append(selected, s)
		}
	}

	if unknown := wanted.Difference(known); unknown.Len() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, strings.Join(sets.List(unknown), ", "))
	}

	return selected, nil
}

func newStore(cfg *config.Config) (report.Store, error) {
	if cfg.ResultsDir == "" {
		return report.NewMemoryStore(), nil
	}

	return report.NewDirStore(cfg.ResultsDir)
}

//nolint:cyclop
func run(ctx context.Context, out io.Writer, o *runOptions) error {
	log := log.FromContext(ctx)

	if o.parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1", config.ErrInvalid)
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	if o.fake {
		server, err := fakeapi.Listen(ctx, "127.0.0.1:0")
		if err != nil {
			return err
		}

		defer func() {
			if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
				log.Error(err, "failed to shut down fake API")
			}
		}()

		cfg.BaseURL = server.URL()
	}

	all, err := jsonplaceholder.Scenarios(jsonplaceholder.NewEndpoints(cfg.BaseURL))
	if err != nil {
		return err
	}

	scenarios, err := selectScenarios(all, o.scenarios)
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	log.Info("running scenarios", "target", cfg.BaseURL, "count", len(scenarios), "parallelism", o.parallelism)

	results := make([]*report.Result, len(scenarios))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(o.parallelism)

	for i, scenario := range scenarios {
		group.Go(func() error {
			// Each scenario gets its own HTTP client.
			options, err := cfg.ExecutorOptions(gctx)
			if err != nil {
				return err
			}

			result, err := smoke.NewRunner(store, options...).Run(gctx, scenario)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	failed := 0

	for _, result := range results {
		message := ""

		if result.StatusDetails != nil {
			message = result.StatusDetails.Message
		}

		fmt.Fprintf(out, "%-7s %-7s %s\n", result.Status, result.Name, message)

		if result.Status != report.StatusPassed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, failed, len(results))
	}

	return nil
}
