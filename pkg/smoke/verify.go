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
	"fmt"
	"strconv"
	"strings"

	"github.com/unikorn-cloud/api-smoke/pkg/report"

	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// VerifyStatus records the status code as a "Response status code"
// attachment, then checks it is one of those allowed.
func VerifyStatus(ctx context.Context, sink report.Sink, resp *Response, allowed sets.Set[int]) error {
	status := "none"

	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	if err := sink.AddAttachment(ctx, report.Text("Response status code", "Status code: "+status)); err != nil {
		log.FromContext(ctx).Error(err, "failed to attach response status code")
	}

	if resp == nil {
		return ErrNilResponse
	}

	if !allowed.Has(resp.StatusCode) {
		return fmt.Errorf("%w: expected status code %s, but got %d", ErrUnexpectedStatus, describeStatus(allowed), resp.StatusCode)
	}

	return nil
}

func describeStatus(allowed sets.Set[int]) string {
	codes := sets.List(allowed)

	if len(codes) == 1 {
		return strconv.Itoa(codes[0])
	}

	return fmt.Sprintf("one of %v", codes)
}

// BodyCheck is a predicate over a response body.
type BodyCheck interface {
	// Check returns nil if the body is acceptable.
	Check(body string) error

	fmt.Stringer
}

type contains []string

// Contains requires the body to be non-empty and contain every field,
// ignoring case.  The match is a plain substring search, structure is not
// inspected.
func Contains(fields ...string) BodyCheck {
	return contains(fields)
}

func (c contains) Check(body string) error {
	if body == "" {
		return ErrEmptyBody
	}

	lower := strings.ToLower(body)

	for _, field := range c {
		if !strings.Contains(lower, strings.ToLower(field)) {
			return fmt.Errorf("%w: response body should contain '%s'", ErrMissingField, field)
		}
	}

	return nil
}

func (c contains) String() string {
	return "contains " + strings.Join(c, ", ")
}

type emptyOr []string

// EmptyOr accepts an empty body or one exactly matching a literal.
func EmptyOr(literals ...string) BodyCheck {
	return emptyOr(literals)
}

func (e emptyOr) Check(body string) error {
	if body == "" {
		return nil
	}

	for _, literal := range e {
		if body == literal {
			return nil
		}
	}

	return fmt.Errorf("%w: response body should be empty or one of %q, got %q", ErrUnexpectedBody, []string(e), body)
}

func (e emptyOr) String() string {
	return fmt.Sprintf("empty or one of %q", []string(e))
}

// VerifyBody applies the checks in order and returns the first failure.
func VerifyBody(body string, checks ...BodyCheck) error {
	for _, check := range checks {
		if err := check.Check(body); err != nil {
			return err
		}
	}

	return nil
}
