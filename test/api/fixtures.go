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

	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/api-smoke/pkg/report"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"

	"k8s.io/apimachinery/pkg/util/sets"
)

// SendRequest sends the request in a "Send <METHOD> request" step.  A
// transport error is returned rather than failing the spec so the status step
// can still record the missing status code, pass it to
// VerifyResponseStatusCode.
func (c *APIClient) SendRequest(ctx context.Context, request *smoke.Request) (*smoke.Response, error) {
	resp, err := report.Step(ctx, c.sink, smoke.StepSend(request.Method), func(ctx context.Context) (*smoke.Response, error) {
		return c.executor.Send(ctx, request)
	})
	if err != nil {
		c.sendErr = err
	}

	return resp, err
}

// VerifyResponseStatusCode records the status code and checks it is one of
// those expected.  When sendErr is set the spec fails with it once the status
// step has been recorded.
func (c *APIClient) VerifyResponseStatusCode(ctx context.Context, resp *smoke.Response, sendErr error, expected ...int) {
	err := report.Do(ctx, c.sink, smoke.StepVerifyStatus, func(ctx context.Context) error {
		return smoke.VerifyStatus(ctx, c.sink, resp, sets.New(expected...))
	})

	if sendErr != nil {
		err = sendErr
	}

	Expect(err).NotTo(HaveOccurred())
}

// LogResponseBody attaches the body and returns it.
func (c *APIClient) LogResponseBody(ctx context.Context, resp *smoke.Response) string {
	body, err := report.Step(ctx, c.sink, smoke.StepLogBody, func(ctx context.Context) (string, error) {
		return c.executor.AttachBody(ctx, resp), nil
	})
	Expect(err).NotTo(HaveOccurred())

	return body
}

// VerifyResponseBody applies the checks in a named step.
func (c *APIClient) VerifyResponseBody(ctx context.Context, step, body string, checks ...smoke.BodyCheck) {
	err := report.Do(ctx, c.sink, step, func(context.Context) error {
		return smoke.VerifyBody(body, checks...)
	})

	Expect(err).NotTo(HaveOccurred())
}
