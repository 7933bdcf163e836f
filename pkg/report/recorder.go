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

package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Metadata describes the test a recorder is attached to.
type Metadata struct {
	// Name is the short, human readable test name.
	Name string

	// FullName uniquely identifies the test across runs, it defaults to Name.
	FullName string

	// Description is free text shown alongside the result.
	Description string

	// Suite groups related tests.
	Suite string

	// Severity e.g. critical, normal.
	Severity string

	// Tags are free form labels.
	Tags []string
}

// Classifier maps the error a test or step finished with to a status.
type Classifier func(err error) Status

// DefaultClassifier treats any error as a failure.
func DefaultClassifier(err error) Status {
	if err != nil {
		return StatusFailed
	}

	return StatusPassed
}

// RecorderOption customises a recorder.
type RecorderOption func(*Recorder)

// WithClassifier overrides how errors map to statuses.
func WithClassifier(classify Classifier) RecorderOption {
	return func(r *Recorder) {
		r.classify = classify
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// Recorder is a Sink that builds a result tree for a single test, content is
// persisted via the store as it arrives.
type Recorder struct {
	lock     sync.Mutex
	store    Store
	classify Classifier
	now      func() time.Time
	result   *Result
	stack    []*StepResult
	finished bool
}

var _ Sink = &Recorder{}

// NewRecorder starts recording a test.
func NewRecorder(store Store, metadata Metadata, options ...RecorderOption) *Recorder {
	r := &Recorder{
		store:    store,
		classify: DefaultClassifier,
		now:      time.Now,
	}

	for _, option := range options {
		option(r)
	}

	fullName := metadata.FullName
	if fullName == "" {
		fullName = metadata.Name
	}

	r.result = &Result{
		UUID:        uuid.NewString(),
		HistoryID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(fullName)).String(),
		Name:        metadata.Name,
		FullName:    fullName,
		Description: metadata.Description,
		Stage:       StageRunning,
		Labels:      labels(metadata),
		Start:       r.now().UnixMilli(),
	}

	return r
}

func labels(metadata Metadata) []Label {
	var out []Label

	if metadata.Suite != "" {
		out = append(out, Label{Name: "suite", Value: metadata.Suite})
	}

	if metadata.Severity != "" {
		out = append(out, Label{Name: "severity", Value: metadata.Severity})
	}

	for _, tag := range metadata.Tags {
		out = append(out, Label{Name: "tag", Value: tag})
	}

	return out
}

// AddAttachment persists the attachment and links it to the innermost open step.
func (r *Recorder) AddAttachment(ctx context.Context, attachment Attachment) error {
	source, err := r.store.SaveAttachment(ctx, attachment)
	if err != nil {
		return fmt.Errorf("saving attachment %q: %w", attachment.Name, err)
	}

	ref := AttachmentRef{
		Name:   attachment.Name,
		Source: source,
		Type:   attachment.Type,
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if n := len(r.stack); n > 0 {
		r.stack[n-1].Attachments = append(r.stack[n-1].Attachments, ref)
		return nil
	}

	r.result.Attachments = append(r.result.Attachments, ref)

	return nil
}

// StartStep opens a step nested in the current one.
func (r *Recorder) StartStep(_ context.Context, name string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	step := &StepResult{
		Name:  name,
		Stage: StageRunning,
		Start: r.now().UnixMilli(),
	}

	if n := len(r.stack); n > 0 {
		r.stack[n-1].Steps = append(r.stack[n-1].Steps, step)
	} else {
		r.result.Steps = append(r.result.Steps, step)
	}

	r.stack = append(r.stack, step)
}

// StopStep closes the innermost open step.
func (r *Recorder) StopStep(_ context.Context, _ string, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	n := len(r.stack)
	if n == 0 {
		return
	}

	r.stopStep(r.stack[n-1], r.classify(err), err)
	r.stack = r.stack[:n-1]
}

func (r *Recorder) stopStep(step *StepResult, status Status, err error) {
	step.Status = status
	step.Stage = StageFinished
	step.Stop = r.now().UnixMilli()

	if err != nil {
		step.StatusDetails = &StatusDetails{
			Message: err.Error(),
		}
	}
}

// Result returns the result as recorded so far.
func (r *Recorder) Result() *Result {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.result
}

// Finish closes any dangling steps, sets the final status from err and
// persists the result.  Subsequent calls return the same result.
func (r *Recorder) Finish(ctx context.Context, err error) (*Result, error) {
	r.lock.Lock()

	if r.finished {
		r.lock.Unlock()
		return r.result, nil
	}

	// Steps left open were interrupted.
	for i := len(r.stack) - 1; i >= 0; i-- {
		r.stopStep(r.stack[i], StatusBroken, err)
	}

	r.stack = nil

	r.result.Status = r.classify(err)
	r.result.Stage = StageFinished
	r.result.Stop = r.now().UnixMilli()

	if err != nil {
		r.result.StatusDetails = &StatusDetails{
			Message: err.Error(),
		}
	}

	r.finished = true

	result := r.result

	r.lock.Unlock()

	if err := r.store.SaveResult(ctx, result); err != nil {
		return result, fmt.Errorf("saving result %s: %w", result.UUID, err)
	}

	return result, nil
}
