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

//nolint:testpackage,revive // dot imports are standard for Ginkgo/Gomega test code
package suites

import (
	"net"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/api-smoke/pkg/jsonplaceholder"
	"github.com/unikorn-cloud/api-smoke/pkg/report"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"

	"k8s.io/apimachinery/pkg/util/sets"
)

var _ = Describe("Error Handling and Edge Cases", func() {
	Context("When the API rejects a request", func() {
		Describe("Given a post that does not exist", func() {
			It("should fail status verification with a descriptive message", func() {
				scenario, err := jsonplaceholder.Read(client.Endpoints())
				Expect(err).NotTo(HaveOccurred())

				scenario.Request.URL = mustPostURL(9999)

				err = client.Run(ctx, scenario)
				Expect(err).To(MatchError(smoke.ErrUnexpectedStatus))
				Expect(err).To(MatchError(ContainSubstring("expected status code 200, but got 404")))
				Expect(smoke.Classify(err)).To(Equal(report.StatusFailed))

				Expect(client.AttachmentNames()).To(ConsistOf("Request", "Response status code"))
			})
		})
	})

	Context("When a step helper assertion fails", func() {
		Describe("Given an unexpected status code", func() {
			It("should record the status step as failed", func() {
				resp, err := client.SendRequest(ctx, &smoke.Request{
					Method: smoke.Get,
					URL:    mustPostURL(9999),
				})
				Expect(err).NotTo(HaveOccurred())

				failures := InterceptGomegaFailures(func() {
					client.VerifyResponseStatusCode(ctx, resp, nil, http.StatusOK)
				})
				Expect(failures).To(ConsistOf(ContainSubstring("expected status code 200, but got 404")))

				steps := client.Result().Steps
				Expect(steps).To(HaveLen(2))
				Expect(steps[1].Name).To(Equal(smoke.StepVerifyStatus))
				Expect(steps[1].Status).To(Equal(report.StatusFailed))
			})
		})

		Describe("Given a body missing a field", func() {
			It("should record the body step as failed", func() {
				const step = "Verify response body contains expected fields"

				failures := InterceptGomegaFailures(func() {
					client.VerifyResponseBody(ctx, step, "{}", smoke.Contains(`"userId"`))
				})
				Expect(failures).To(ConsistOf(ContainSubstring(`response body should contain '"userId"'`)))

				steps := client.Result().Steps
				Expect(steps).To(HaveLen(1))
				Expect(steps[0].Name).To(Equal(step))
				Expect(steps[0].Status).To(Equal(report.StatusFailed))
			})
		})
	})

	Context("When a scenario is malformed", func() {
		Describe("Given a payload that does not match the API description", func() {
			It("should be rejected before it is sent", func() {
				if !cfg.ValidateRequests {
					Skip("request validation is disabled")
				}

				scenario := &smoke.Scenario{
					Name: "invalid",
					Request: smoke.Request{
						Method:  smoke.Post,
						URL:     client.Endpoints().Posts(),
						Payload: []byte(`{"title":"foo"}`),
					},
					ExpectedStatus: sets.New(http.StatusCreated),
					BodyStep:       "Verify response body contains 'id' of the newly created post",
					Body:           []smoke.BodyCheck{smoke.Contains(`"id":`)},
				}

				before, ok := requestsServed()

				err := client.Run(ctx, scenario)
				Expect(err).To(MatchError(smoke.ErrInvalidRequest))
				Expect(smoke.Classify(err)).To(Equal(report.StatusBroken))

				if after, _ := requestsServed(); ok {
					Expect(after).To(Equal(before))
				}
			})
		})
	})

	Context("When the API is unreachable", func() {
		Describe("Given nothing is listening", func() {
			It("should report the scenario as broken and keep its attachments", func() {
				listener, err := net.Listen("tcp", "127.0.0.1:0")
				Expect(err).NotTo(HaveOccurred())

				unreachable := "http://" + listener.Addr().String()
				Expect(listener.Close()).To(Succeed())

				scenario, err := jsonplaceholder.Remove(jsonplaceholder.NewEndpoints(unreachable))
				Expect(err).NotTo(HaveOccurred())

				err = client.Run(ctx, scenario)
				Expect(err).To(MatchError(ContainSubstring("http request failed")))
				Expect(smoke.Classify(err)).To(Equal(report.StatusBroken))

				Expect(client.AttachmentNames()).To(ConsistOf("Request", "Response status code"))
			})

			It("should record the missing status code when sent step by step", func() {
				listener, err := net.Listen("tcp", "127.0.0.1:0")
				Expect(err).NotTo(HaveOccurred())

				unreachable := jsonplaceholder.NewEndpoints("http://" + listener.Addr().String())
				Expect(listener.Close()).To(Succeed())

				url, err := unreachable.Post(jsonplaceholder.FixturePostID)
				Expect(err).NotTo(HaveOccurred())

				resp, sendErr := client.SendRequest(ctx, &smoke.Request{
					Method: smoke.Get,
					URL:    url,
				})
				Expect(sendErr).To(HaveOccurred())
				Expect(resp).To(BeNil())

				failures := InterceptGomegaFailures(func() {
					client.VerifyResponseStatusCode(ctx, resp, sendErr, http.StatusOK)
				})
				Expect(failures).To(ConsistOf(ContainSubstring("http request failed")))

				Expect(client.AttachmentNames()).To(ConsistOf("Request", "Response status code"))

				steps := client.Result().Steps
				Expect(steps).To(HaveLen(2))
				Expect(steps[0].Status).To(Equal(report.StatusBroken))
				Expect(steps[1].Status).To(Equal(report.StatusFailed))
			})
		})
	})
})
