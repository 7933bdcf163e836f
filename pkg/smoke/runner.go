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

package smoke

import (
	"context"
	"errors"
	"fmt"

	"github.com/unikorn-cloud/api-smoke/pkg/report"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Classify reports assertion failures as failed, and any other error as
// broken i.e. the scenario could not be run to completion.
func Classify(err error) report.Status {
	switch {
	case err == nil:
		return report.StatusPassed
	case errors.Is(err, ErrAssertion):
		return report.StatusFailed
	default:
		return report.StatusBroken
	}
}

// Runner runs scenarios outside of a test framework, each with its own
// executor and recorder.
type Runner struct {
	store   report.Store
	options []ExecutorOption
}

// NewRunner persists results via the store, executor options are applied to
// every scenario.
func NewRunner(store report.Store, options ...ExecutorOption) *Runner {
	return &Runner{
		store:   store,
		options: options,
	}
}

// Run executes the scenario and returns its result.  A scenario failing is
// not an error, inspect the result's status for that.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*report.Result, error) {
	logger := log.FromContext(ctx).WithValues("scenario", s.Name)
	ctx = log.IntoContext(ctx, logger)

	recorder := report.NewRecorder(r.store, s.Metadata(), report.WithClassifier(Classify))

	executor := NewExecutor(recorder, r.options...)
	defer executor.Close()

	logger.V(1).Info("running scenario")

	runErr := executor.Run(ctx, s)

	result, err := recorder.Finish(ctx, runErr)
	if err != nil {
		return result, fmt.Errorf("recording scenario %s: %w", s.Name, err)
	}

	logger.V(1).Info("scenario complete", "status", result.Status)

	return result, nil
}
