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
	"errors"
	"fmt"
)

var (
	// ErrAssertion is the root of all verification failures.
	ErrAssertion = errors.New("assertion failed")

	// ErrNilResponse is raised when there is no response to verify.
	ErrNilResponse = fmt.Errorf("%w: response is nil, request failed", ErrAssertion)

	// ErrUnexpectedStatus is raised when the status code is not allowed.
	ErrUnexpectedStatus = fmt.Errorf("%w: unexpected status code", ErrAssertion)

	// ErrEmptyBody is raised when a body is required but empty.
	ErrEmptyBody = fmt.Errorf("%w: response body is unexpectedly empty", ErrAssertion)

	// ErrMissingField is raised when the body lacks a required substring.
	ErrMissingField = fmt.Errorf("%w: response body is missing a required field", ErrAssertion)

	// ErrUnexpectedBody is raised when the body is not one of the allowed literals.
	ErrUnexpectedBody = fmt.Errorf("%w: unexpected response body", ErrAssertion)

	// ErrUnsupportedMethod is raised for an unknown HTTP method.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrInvalidRequest is raised when a request does not conform to the
	// API description, this is a problem with the scenario not the API.
	ErrInvalidRequest = errors.New("invalid request")
)
