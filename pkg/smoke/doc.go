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

// Package smoke sends scenario requests to a REST API and verifies the
// status code and body of the response, recording every exchange to a
// report.Sink as it goes.
//
// A scenario runs as four steps:
//
//   - Send <METHOD> request
//   - Log and verify response status code
//   - Log response body
//   - the scenario's own body verification step
//
// Execution stops at the first failing step.  Assertion failures wrap
// ErrAssertion, anything else (transport errors, malformed scenarios) is
// considered broken rather than failed, see Classify.
package smoke
