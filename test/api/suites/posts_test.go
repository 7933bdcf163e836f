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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/api-smoke/pkg/jsonplaceholder"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"
)

// expectSingleRequest checks exactly one request reached the fake while fn ran.
func expectSingleRequest(fn func()) {
	before, ok := requestsServed()

	fn()

	if after, _ := requestsServed(); ok {
		Expect(after - before).To(Equal(int64(1)))
	}
}

func mustPostURL(id int) string {
	url, err := client.Endpoints().Post(id)
	Expect(err).NotTo(HaveOccurred())

	return url
}

var _ = Describe("Posts", Label("API", "SmokeTest"), func() {
	Context("When reading a post", func() {
		Describe("Given the post exists", func() {
			It("should return the expected post data", func() {
				request := &smoke.Request{
					Method: smoke.Get,
					URL:    mustPostURL(jsonplaceholder.FixturePostID),
				}

				var (
					resp    *smoke.Response
					sendErr error
				)

				expectSingleRequest(func() {
					resp, sendErr = client.SendRequest(ctx, request)
				})

				client.VerifyResponseStatusCode(ctx, resp, sendErr, http.StatusOK)
				body := client.LogResponseBody(ctx, resp)
				client.VerifyResponseBody(ctx, "Verify response body contains expected fields", body,
					smoke.Contains(`"userId"`, `"id"`, `"title"`, `"body"`))
			})

			It("should return the same fields when read again", func() {
				request := &smoke.Request{
					Method: smoke.Get,
					URL:    mustPostURL(jsonplaceholder.FixturePostID),
				}

				fields := smoke.Contains(`"userId"`, `"id"`, `"title"`, `"body"`)

				first, err := client.SendRequest(ctx, request)
				Expect(err).NotTo(HaveOccurred())

				second, err := client.SendRequest(ctx, request)
				Expect(err).NotTo(HaveOccurred())

				Expect(second.StatusCode).To(Equal(first.StatusCode))
				Expect(smoke.VerifyBody(first.Body, fields)).To(Succeed())
				Expect(smoke.VerifyBody(second.Body, fields)).To(Succeed())
			})
		})
	})

	Context("When creating a post", func() {
		Describe("Given a valid payload", func() {
			It("should create the resource", func() {
				payload, err := jsonplaceholder.NewPostPayload().JSON()
				Expect(err).NotTo(HaveOccurred())

				request := &smoke.Request{
					Method:  smoke.Post,
					URL:     client.Endpoints().Posts(),
					Payload: payload,
				}

				var (
					resp    *smoke.Response
					sendErr error
				)

				expectSingleRequest(func() {
					resp, sendErr = client.SendRequest(ctx, request)
				})

				client.VerifyResponseStatusCode(ctx, resp, sendErr, http.StatusCreated)
				body := client.LogResponseBody(ctx, resp)
				client.VerifyResponseBody(ctx, "Verify response body contains 'id' of the newly created post", body,
					smoke.Contains(`"id":`))
			})
		})
	})

	Context("When updating a post", func() {
		Describe("Given a valid payload", func() {
			It("should update the resource", func() {
				payload, err := jsonplaceholder.NewPostPayload().
					WithID(jsonplaceholder.FixturePostID).
					WithTitle("new_foo").
					WithBody("new_bar").
					JSON()
				Expect(err).NotTo(HaveOccurred())

				request := &smoke.Request{
					Method:  smoke.Put,
					URL:     mustPostURL(jsonplaceholder.FixturePostID),
					Payload: payload,
				}

				var (
					resp    *smoke.Response
					sendErr error
				)

				expectSingleRequest(func() {
					resp, sendErr = client.SendRequest(ctx, request)
				})

				client.VerifyResponseStatusCode(ctx, resp, sendErr, http.StatusOK)
				body := client.LogResponseBody(ctx, resp)
				client.VerifyResponseBody(ctx, "Verify response body contains updated fields", body,
					smoke.Contains(`"id"`, `"title": "new_foo"`, `"body": "new_bar"`))
			})
		})
	})

	Context("When deleting a post", func() {
		Describe("Given the post exists", func() {
			It("should remove the resource", func() {
				request := &smoke.Request{
					Method: smoke.Delete,
					URL:    mustPostURL(jsonplaceholder.FixturePostID),
				}

				var (
					resp    *smoke.Response
					sendErr error
				)

				expectSingleRequest(func() {
					resp, sendErr = client.SendRequest(ctx, request)
				})

				client.VerifyResponseStatusCode(ctx, resp, sendErr, http.StatusOK, http.StatusNoContent)
				body := client.LogResponseBody(ctx, resp)
				client.VerifyResponseBody(ctx, "Verify response body is empty or contains '{}'", body,
					smoke.EmptyOr("{}"))
			})
		})
	})

	Context("When running the scenario catalogue", func() {
		DescribeTable("each scenario",
			func(build func(*jsonplaceholder.Endpoints) (*smoke.Scenario, error)) {
				scenario, err := build(client.Endpoints())
				Expect(err).NotTo(HaveOccurred())

				expectSingleRequest(func() {
					Expect(client.Run(ctx, scenario)).To(Succeed())
				})

				Expect(client.AttachmentNames()).To(Equal([]string{
					"Request",
					"Response status code",
					"Response body",
				}))

				result := client.Result()
				Expect(result.Steps).To(HaveLen(4))
				Expect(result.Steps[0].Name).To(Equal(smoke.StepSend(scenario.Request.Method)))
				Expect(result.Steps[3].Name).To(Equal(scenario.BodyStep))
			},
			Entry("read", jsonplaceholder.Read),
			Entry("create", jsonplaceholder.Create),
			Entry("update", jsonplaceholder.Update),
			Entry("remove", jsonplaceholder.Remove),
		)
	})
})
