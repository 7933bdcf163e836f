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
	"fmt"
)

// ErrStepPanicked is recorded against a step whose body panicked, Gomega
// assertion failures take this path.
var ErrStepPanicked = errors.New("step panicked")

// Step runs fn as a named step and returns its result.  The step boundary is
// recorded on every exit path, a panic is recorded then re-raised.
func Step[T any](ctx context.Context, sink Sink, name string, fn func(context.Context) (T, error)) (result T, err error) {
	sink.StartStep(ctx, name)

	defer func() {
		if r := recover(); r != nil {
			sink.StopStep(ctx, name, fmt.Errorf("%w: %v", ErrStepPanicked, r))
			panic(r)
		}

		sink.StopStep(ctx, name, err)
	}()

	return fn(ctx)
}

// Do is Step for bodies with no result.
func Do(ctx context.Context, sink Sink, name string, fn func(context.Context) error) error {
	_, err := Step(ctx, sink, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})

	return err
}
