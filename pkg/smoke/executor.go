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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unikorn-cloud/api-smoke/pkg/report"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// StepVerifyStatus labels the status code step.
	StepVerifyStatus = "Log and verify response status code"

	// StepLogBody labels the response body step.
	StepLogBody = "Log response body"
)

// StepSend labels the request step for a method e.g. "Send GET request".
func StepSend(method Method) string {
	return "Send " + method.String() + " request"
}

// RequestValidator checks an outgoing request before it is sent.
type RequestValidator interface {
	ValidateRequest(ctx context.Context, r *http.Request) error
}

// Executor sends scenario requests and reports on them.
type Executor struct {
	client       *http.Client
	sink         report.Sink
	validator    RequestValidator
	logRequests  bool
	logResponses bool
}

// ExecutorOption customises an executor.
type ExecutorOption func(*Executor)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) ExecutorOption {
	return func(e *Executor) {
		e.client = client
	}
}

// WithRequestValidator validates requests before sending them.
func WithRequestValidator(validator RequestValidator) ExecutorOption {
	return func(e *Executor) {
		e.validator = validator
	}
}

// WithLogRequests logs a summary of each exchange.
func WithLogRequests(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.logRequests = enabled
	}
}

// WithLogResponses logs response bodies.
func WithLogResponses(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.logResponses = enabled
	}
}

// NewExecutor creates an executor with its own HTTP client, release it
// with Close.
func NewExecutor(sink report.Sink, options ...ExecutorOption) *Executor {
	e := &Executor{
		client: &http.Client{},
		sink:   sink,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

// Close releases any pooled connections.
func (e *Executor) Close() {
	e.client.CloseIdleConnections()
}

func newHTTPRequest(ctx context.Context, method string, r *Request) (*http.Request, error) {
	var body io.Reader

	if r.Payload != nil {
		body = bytes.NewReader(r.Payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if r.Payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Send makes exactly one call.  The "Request" attachment is emitted before
// anything can fail so the report always shows what was attempted.
func (e *Executor) Send(ctx context.Context, r *Request) (*Response, error) {
	log := log.FromContext(ctx)

	if err := e.sink.AddAttachment(ctx, report.Text("Request", r.String())); err != nil {
		log.Error(err, "failed to attach request")
	}

	method, err := r.Method.httpMethod()
	if err != nil {
		return nil, err
	}

	if e.validator != nil {
		// Validation may consume the body, so check a copy.
		probe, err := newHTTPRequest(ctx, method, r)
		if err != nil {
			return nil, err
		}

		if err := e.validator.ValidateRequest(ctx, probe); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	req, err := newHTTPRequest(ctx, method, r)
	if err != nil {
		return nil, err
	}

	traceParent := newTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=api-smoke")

	start := time.Now()
	resp, err := e.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Info("request failed", "method", method, "url", r.URL, "duration", duration, "traceID", traceID(traceParent), "error", err.Error())

		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if e.logRequests {
		log.V(1).Info("request complete", "method", method, "url", r.URL, "status", resp.StatusCode, "duration", duration, "traceID", traceID(traceParent))
	}

	if e.logResponses && len(body) > 0 {
		log.V(2).Info("response body", "method", method, "url", r.URL, "body", string(body))
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(body),
		Duration:   duration,
	}

	return response, nil
}

// AttachBody records the response body as a "Response body" attachment.
func (e *Executor) AttachBody(ctx context.Context, resp *Response) string {
	if resp == nil {
		return ""
	}

	if err := e.sink.AddAttachment(ctx, report.JSON("Response body", resp.Body)); err != nil {
		log.FromContext(ctx).Error(err, "failed to attach response body")
	}

	return resp.Body
}

// Run executes a scenario as a sequence of steps, stopping at the first
// failure.
func (e *Executor) Run(ctx context.Context, s *Scenario) error {
	resp, sendErr := report.Step(ctx, e.sink, StepSend(s.Request.Method), func(ctx context.Context) (*Response, error) {
		return e.Send(ctx, &s.Request)
	})

	statusErr := report.Do(ctx, e.sink, StepVerifyStatus, func(ctx context.Context) error {
		return VerifyStatus(ctx, e.sink, resp, s.ExpectedStatus)
	})

	// A failed send still records the missing status code, but the cause
	// is what's reported.
	if sendErr != nil {
		return sendErr
	}

	if statusErr != nil {
		return statusErr
	}

	body, err := report.Step(ctx, e.sink, StepLogBody, func(ctx context.Context) (string, error) {
		return e.AttachBody(ctx, resp), nil
	})
	if err != nil {
		return err
	}

	return report.Do(ctx, e.sink, s.BodyStep, func(context.Context) error {
		return VerifyBody(body, s.Body...)
	})
}
