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
	"errors"
)

//go:generate mockgen -source=sink.go -destination=mock/interfaces.go -package=mock

// Sink receives diagnostics for a single test.  Steps may be nested, every
// StartStep is matched by exactly one StopStep.
type Sink interface {
	// AddAttachment records an artifact against the innermost open step,
	// or the test itself when no step is open.
	AddAttachment(ctx context.Context, attachment Attachment) error

	// StartStep opens a named step.
	StartStep(ctx context.Context, name string)

	// StopStep closes the innermost step, err is nil on success.
	StopStep(ctx context.Context, name string, err error)
}

// Store persists attachment content and finished results.
type Store interface {
	// SaveAttachment persists the content and returns the source reference
	// that results use to link to it.
	SaveAttachment(ctx context.Context, attachment Attachment) (string, error)

	// SaveResult persists a finished test result.
	SaveResult(ctx context.Context, result *Result) error
}

type discard struct{}

// Discard returns a sink that drops everything.
func Discard() Sink {
	return discard{}
}

func (discard) AddAttachment(context.Context, Attachment) error { return nil }
func (discard) StartStep(context.Context, string)               {}
func (discard) StopStep(context.Context, string, error)         {}

type tee []Sink

// Tee returns a sink that forwards to all the given sinks in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) AddAttachment(ctx context.Context, attachment Attachment) error {
	var errs []error

	for _, sink := range t {
		if err := sink.AddAttachment(ctx, attachment); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t tee) StartStep(ctx context.Context, name string) {
	for _, sink := range t {
		sink.StartStep(ctx, name)
	}
}

func (t tee) StopStep(ctx context.Context, name string, err error) {
	// Close in reverse so nesting stays consistent across sinks.
	for i := len(t) - 1; i >= 0; i-- {
		t[i].StopStep(ctx, name, err)
	}
}
