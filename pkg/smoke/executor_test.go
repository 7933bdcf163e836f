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

package smoke_test

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/unikorn-cloud/api-smoke/pkg/report"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"

	"k8s.io/apimachinery/pkg/util/sets"
)

var errRejected = errors.New("rejected")

type validatorFunc func(r *http.Request) error

func (f validatorFunc) ValidateRequest(_ context.Context, r *http.Request) error {
	return f(r)
}

// attachments flattens the recorded attachments into name/content pairs.
func attachments(store *report.MemoryStore, result *report.Result) map[string]string {
	out := map[string]string{}

	for _, ref := range result.AllAttachments() {
		attachment, ok := store.Attachment(ref.Source)
		Expect(ok).To(BeTrue())

		out[ref.Name] = string(attachment.Content)
	}

	return out
}

func stepNames(result *report.Result) []string {
	names := make([]string, 0, len(result.Steps))

	for _, step := range result.Steps {
		names = append(names, step.Name)
	}

	return names
}

const readBody = `{
  "userId": 1,
  "id": 1,
  "title": "sunt aut facere",
  "body": "quia et suscipit"
}`

var _ = Describe("Executor", func() {
	var (
		server   *ghttp.Server
		store    *report.MemoryStore
		recorder *report.Recorder
		executor *smoke.Executor
		ctx      context.Context
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		DeferCleanup(server.Close)

		store = report.NewMemoryStore()
		recorder = report.NewRecorder(store, report.Metadata{Name: "executor"}, report.WithClassifier(smoke.Classify))

		executor = smoke.NewExecutor(recorder)
		DeferCleanup(executor.Close)

		ctx = context.Background()
	})

	finish := func(err error) *report.Result {
		result, finishErr := recorder.Finish(ctx, err)
		Expect(finishErr).NotTo(HaveOccurred())

		return result
	}

	Describe("Send", func() {
		It("should issue exactly one request and record it", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodGet, "/posts/1"),
					func(_ http.ResponseWriter, r *http.Request) {
						defer GinkgoRecover()

						Expect(r.Header.Get("Traceparent")).To(MatchRegexp(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`))
						Expect(r.Header.Get("Content-Type")).To(BeEmpty())
					},
					ghttp.RespondWith(http.StatusOK, readBody),
				),
			)

			url := server.URL() + "/posts/1"

			resp, err := executor.Send(ctx, &smoke.Request{Method: smoke.Get, URL: url})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Body).To(Equal(readBody))
			Expect(server.ReceivedRequests()).To(HaveLen(1))

			Expect(attachments(store, finish(nil))).To(Equal(map[string]string{
				"Request": "Request Method: GET\nRequest URL: " + url + "\nPayload: ",
			}))
		})

		It("should send the payload as JSON", func() {
			payload := `{"title":"foo","body":"bar","userId":1}`

			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodPost, "/posts"),
					ghttp.VerifyContentType("application/json"),
					ghttp.VerifyJSON(payload),
					ghttp.RespondWith(http.StatusCreated, `{"id": 101}`),
				),
			)

			resp, err := executor.Send(ctx, &smoke.Request{Method: smoke.Post, URL: server.URL() + "/posts", Payload: []byte(payload)})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			Expect(server.ReceivedRequests()).To(HaveLen(1))
		})

		It("should record the request even when the transport fails", func() {
			url := server.URL() + "/posts/1"
			server.Close()

			resp, err := executor.Send(ctx, &smoke.Request{Method: smoke.Delete, URL: url})
			Expect(err).To(MatchError(ContainSubstring("http request failed")))
			Expect(resp).To(BeNil())

			Expect(attachments(store, finish(err))).To(HaveKeyWithValue("Request", "Request Method: DELETE\nRequest URL: "+url+"\nPayload: "))
		})

		It("should reject unsupported methods without sending", func() {
			_, err := executor.Send(ctx, &smoke.Request{Method: smoke.Method(42), URL: server.URL()})
			Expect(err).To(MatchError(smoke.ErrUnsupportedMethod))
			Expect(server.ReceivedRequests()).To(BeEmpty())
			Expect(attachments(store, finish(err))).To(HaveKey("Request"))
		})

		It("should reject requests that fail validation without sending", func() {
			executor = smoke.NewExecutor(recorder, smoke.WithRequestValidator(validatorFunc(func(r *http.Request) error {
				Expect(r.URL.Path).To(Equal("/posts"))

				return errRejected
			})))

			_, err := executor.Send(ctx, &smoke.Request{Method: smoke.Post, URL: server.URL() + "/posts", Payload: []byte(`{}`)})
			Expect(err).To(MatchError(smoke.ErrInvalidRequest))
			Expect(err).To(MatchError(errRejected))
			Expect(server.ReceivedRequests()).To(BeEmpty())
			Expect(smoke.Classify(err)).To(Equal(report.StatusBroken))
		})
	})

	Describe("Run", func() {
		var scenario *smoke.Scenario

		BeforeEach(func() {
			scenario = &smoke.Scenario{
				Name: "read",
				Request: smoke.Request{
					Method: smoke.Get,
					URL:    server.URL() + "/posts/1",
				},
				ExpectedStatus: sets.New(http.StatusOK),
				BodyStep:       "Verify response body contains expected fields",
				Body:           []smoke.BodyCheck{smoke.Contains(`"userId"`, `"id"`, `"title"`, `"body"`)},
			}
		})

		It("should pass with all steps and attachments", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusOK, readBody))

			err := executor.Run(ctx, scenario)
			Expect(err).NotTo(HaveOccurred())
			Expect(server.ReceivedRequests()).To(HaveLen(1))

			result := finish(err)
			Expect(result.Status).To(Equal(report.StatusPassed))
			Expect(stepNames(result)).To(Equal([]string{
				"Send GET request",
				"Log and verify response status code",
				"Log response body",
				"Verify response body contains expected fields",
			}))

			recorded := attachments(store, result)
			Expect(recorded).To(HaveKeyWithValue("Response status code", "Status code: 200"))
			Expect(recorded).To(HaveKeyWithValue("Response body", readBody))
			Expect(recorded).To(HaveKey("Request"))
		})

		It("should stop at a status mismatch", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusNotFound, `{}`))

			err := executor.Run(ctx, scenario)
			Expect(err).To(MatchError(smoke.ErrUnexpectedStatus))
			Expect(err).To(MatchError(ContainSubstring("expected status code 200, but got 404")))

			result := finish(err)
			Expect(result.Status).To(Equal(report.StatusFailed))
			Expect(stepNames(result)).To(HaveLen(2))
			Expect(result.Steps[1].Status).To(Equal(report.StatusFailed))
			Expect(attachments(store, result)).To(HaveKeyWithValue("Response status code", "Status code: 404"))
		})

		It("should fail when a field is missing", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusOK, `{"id": 1}`))

			err := executor.Run(ctx, scenario)
			Expect(err).To(MatchError(smoke.ErrMissingField))

			result := finish(err)
			Expect(result.Status).To(Equal(report.StatusFailed))
			Expect(stepNames(result)).To(HaveLen(4))
			Expect(attachments(store, result)).To(HaveKeyWithValue("Response body", `{"id": 1}`))
		})

		It("should report transport failures as broken with a status attachment", func() {
			server.Close()

			err := executor.Run(ctx, scenario)
			Expect(err).To(MatchError(ContainSubstring("http request failed")))

			result := finish(err)
			Expect(result.Status).To(Equal(report.StatusBroken))
			Expect(stepNames(result)).To(Equal([]string{
				"Send GET request",
				"Log and verify response status code",
			}))

			recorded := attachments(store, result)
			Expect(recorded).To(HaveKey("Request"))
			Expect(recorded).To(HaveKeyWithValue("Response status code", "Status code: none"))
		})
	})
})

var _ = Describe("Runner", func() {
	var (
		server *ghttp.Server
		store  *report.MemoryStore
		runner *smoke.Runner
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		DeferCleanup(server.Close)

		store = report.NewMemoryStore()
		runner = smoke.NewRunner(store, smoke.WithLogRequests(true), smoke.WithLogResponses(true))
	})

	It("should persist one result per scenario", func() {
		server.AppendHandlers(
			ghttp.RespondWith(http.StatusOK, `{}`),
			ghttp.RespondWith(http.StatusNoContent, ``),
		)

		scenario := &smoke.Scenario{
			Name:           "remove",
			Suite:          "posts",
			Tags:           []string{"API", "SmokeTest"},
			Severity:       "critical",
			Request:        smoke.Request{Method: smoke.Delete, URL: server.URL() + "/posts/1"},
			ExpectedStatus: sets.New(http.StatusOK, http.StatusNoContent),
			BodyStep:       "Verify response body is empty or contains '{}'",
			Body:           []smoke.BodyCheck{smoke.EmptyOr("{}")},
		}

		for range 2 {
			result, err := runner.Run(context.Background(), scenario)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(report.StatusPassed))
			Expect(result.FullName).To(Equal("posts: remove"))
			Expect(result.Labels).To(ContainElement(report.Label{Name: "severity", Value: "critical"}))
		}

		Expect(store.Results()).To(HaveLen(2))
		Expect(store.Results()[0].HistoryID).To(Equal(store.Results()[1].HistoryID))
		Expect(server.ReceivedRequests()).To(HaveLen(2))
	})
})
