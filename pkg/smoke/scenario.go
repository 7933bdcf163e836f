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
	"fmt"
	"net/http"
	"time"

	"github.com/unikorn-cloud/api-smoke/pkg/report"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Request describes a single HTTP call.
type Request struct {
	// Method is the HTTP method.
	Method Method

	// URL is the absolute URL to call.
	URL string

	// Payload is the optional JSON request body.
	Payload []byte
}

// String renders the request as recorded in the "Request" attachment.
func (r *Request) String() string {
	return fmt.Sprintf("Request Method: %s\nRequest URL: %s\nPayload: %s", r.Method, r.URL, r.Payload)
}

// Response is what came back, read once then immutable.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
	Duration   time.Duration
}

// Scenario is a single, statically defined request and the checks applied
// to its response.
type Scenario struct {
	// Name is a short identifier e.g. "read".
	Name string

	// Description is shown in reports.
	Description string

	// Suite groups scenarios in reports.
	Suite string

	// Tags are free form report labels.
	Tags []string

	// Severity is the report severity.
	Severity string

	// Request is the call to make.
	Request Request

	// ExpectedStatus is the set of acceptable status codes.
	ExpectedStatus sets.Set[int]

	// BodyStep labels the body verification step.
	BodyStep string

	// Body are the checks applied to the response body.
	Body []BodyCheck
}

// Metadata describes the scenario for a report.Recorder.
func (s *Scenario) Metadata() report.Metadata {
	fullName := s.Name
	if s.Suite != "" {
		fullName = s.Suite + ": " + s.Name
	}

	return report.Metadata{
		Name:        s.Name,
		FullName:    fullName,
		Description: s.Description,
		Suite:       s.Suite,
		Severity:    s.Severity,
		Tags:        s.Tags,
	}
}
