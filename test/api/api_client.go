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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/types"

	"github.com/unikorn-cloud/api-smoke/pkg/config"
	"github.com/unikorn-cloud/api-smoke/pkg/jsonplaceholder"
	"github.com/unikorn-cloud/api-smoke/pkg/report"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"
)

var errSpecAborted = errors.New("spec did not complete")

// APIClient is scoped to a single spec, create it in BeforeEach and release
// it with DeferCleanup(client.Close).
type APIClient struct {
	endpoints *jsonplaceholder.Endpoints
	recorder  *report.Recorder
	sink      report.Sink
	executor  *smoke.Executor

	// sendErr is the last transport error, it makes a failed spec broken.
	sendErr error
}

// NewAPIClient creates a client for the current spec targeting baseURL.
func NewAPIClient(ctx context.Context, cfg *config.Config, baseURL string) (*APIClient, error) {
	options, err := cfg.ExecutorOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating executor options: %w", err)
	}

	var store report.Store = report.NewMemoryStore()

	if cfg.ResultsDir != "" {
		dirStore, err := report.NewDirStore(cfg.ResultsDir)
		if err != nil {
			return nil, err
		}

		store = dirStore
	}

	recorder := report.NewRecorder(store, specMetadata(), report.WithClassifier(smoke.Classify))
	sink := report.Tee(GinkgoSink{}, recorder)

	client := &APIClient{
		endpoints: jsonplaceholder.NewEndpoints(baseURL),
		recorder:  recorder,
		sink:      sink,
		executor:  smoke.NewExecutor(sink, options...),
	}

	return client, nil
}

func specMetadata() report.Metadata {
	spec := CurrentSpecReport()

	return report.Metadata{
		Name:     spec.LeafNodeText,
		FullName: spec.FullText(),
		Suite:    jsonplaceholder.Suite,
		Severity: jsonplaceholder.Severity,
		Tags:     spec.Labels(),
	}
}

// specError summarises the spec's outcome so far for the recorder.
func (c *APIClient) specError() error {
	spec := CurrentSpecReport()

	switch {
	case spec.Failed() && c.sendErr != nil:
		return c.sendErr
	case spec.Failed() && spec.State.Is(types.SpecStateFailed):
		return fmt.Errorf("%w: %s", smoke.ErrAssertion, spec.Failure.Message)
	case spec.Failed():
		return fmt.Errorf("%w: %s: %s", errSpecAborted, spec.State, spec.Failure.Message)
	}

	return nil
}

// Close finishes the spec's result and releases the HTTP client.
func (c *APIClient) Close(ctx context.Context) error {
	defer c.executor.Close()

	result, err := c.recorder.Finish(ctx, c.specError())
	if err != nil {
		return err
	}

	GinkgoWriter.Printf("Recorded result %s status=%s\n", result.UUID, result.Status)

	return nil
}

// Endpoints returns the endpoints for the target.
func (c *APIClient) Endpoints() *jsonplaceholder.Endpoints {
	return c.endpoints
}

// Result returns the spec's result as recorded so far.
func (c *APIClient) Result() *report.Result {
	return c.recorder.Result()
}

// AttachmentNames lists every attachment recorded so far.
func (c *APIClient) AttachmentNames() []string {
	refs := c.recorder.Result().AllAttachments()

	names := make([]string, 0, len(refs))

	for _, ref := range refs {
		names = append(names, ref.Name)
	}

	return names
}

// Run executes a whole scenario and returns its error without failing the
// spec, so callers can assert on the failure mode.
func (c *APIClient) Run(ctx context.Context, scenario *smoke.Scenario) error {
	return c.executor.Run(ctx, scenario)
}
