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

package jsonplaceholder

import (
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/api-smoke/pkg/smoke"

	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	// Suite is the report suite for all post scenarios.
	Suite = "Simple tests to verify the RESTful API of the JSONPlaceholder site"

	// Severity of all post scenarios.
	Severity = "critical"

	// FixturePostID is the post every read, update and remove targets.
	FixturePostID = 1
)

//nolint:gochecknoglobals
var tags = []string{"API", "SmokeTest"}

func scenario(name, description string) *smoke.Scenario {
	return &smoke.Scenario{
		Name:        name,
		Description: description,
		Suite:       Suite,
		Tags:        tags,
		Severity:    Severity,
	}
}

// Read fetches the fixture post.
func Read(e *Endpoints) (*smoke.Scenario, error) {
	url, err := e.Post(FixturePostID)
	if err != nil {
		return nil, err
	}

	s := scenario("read", "Test verifies that the GET /posts/1 endpoint returns 200 status code and the response body contains the expected post data")
	s.Request = smoke.Request{
		Method: smoke.Get,
		URL:    url,
	}
	s.ExpectedStatus = sets.New(http.StatusOK)
	s.BodyStep = "Verify response body contains expected fields"
	s.Body = []smoke.BodyCheck{
		smoke.Contains(`"userId"`, `"id"`, `"title"`, `"body"`),
	}

	return s, nil
}

// Create adds a new post.
func Create(e *Endpoints) (*smoke.Scenario, error) {
	payload, err := NewPostPayload().JSON()
	if err != nil {
		return nil, err
	}

	s := scenario("create", "Test verifies that the POST /posts endpoint returns 201 status code and the response body contains the details of the newly created post")
	s.Request = smoke.Request{
		Method:  smoke.Post,
		URL:     e.Posts(),
		Payload: payload,
	}
	s.ExpectedStatus = sets.New(http.StatusCreated)
	s.BodyStep = "Verify response body contains 'id' of the newly created post"
	s.Body = []smoke.BodyCheck{
		smoke.Contains(`"id":`),
	}

	return s, nil
}

// Update replaces the fixture post.
func Update(e *Endpoints) (*smoke.Scenario, error) {
	url, err := e.Post(FixturePostID)
	if err != nil {
		return nil, err
	}

	payload, err := NewPostPayload().WithID(FixturePostID).WithTitle("new_foo").WithBody("new_bar").JSON()
	if err != nil {
		return nil, err
	}

	s := scenario("update", "Test verifies that the PUT /posts/1 endpoint returns 200 status code and the response body contains the updated post details")
	s.Request = smoke.Request{
		Method:  smoke.Put,
		URL:     url,
		Payload: payload,
	}
	s.ExpectedStatus = sets.New(http.StatusOK)
	s.BodyStep = "Verify response body contains updated fields"
	s.Body = []smoke.BodyCheck{
		smoke.Contains(`"id"`, `"title": "new_foo"`, `"body": "new_bar"`),
	}

	return s, nil
}

// Remove deletes the fixture post.  JSONPlaceholder answers with an empty
// object, other services may legitimately send nothing at all.
func Remove(e *Endpoints) (*smoke.Scenario, error) {
	url, err := e.Post(FixturePostID)
	if err != nil {
		return nil, err
	}

	s := scenario("remove", "Test verifies that the DELETE /posts/1 endpoint returns 200 or 204 status code and the response body is empty or contains '{}'")
	s.Request = smoke.Request{
		Method: smoke.Delete,
		URL:    url,
	}
	s.ExpectedStatus = sets.New(http.StatusOK, http.StatusNoContent)
	s.BodyStep = "Verify response body is empty or contains '{}'"
	s.Body = []smoke.BodyCheck{
		smoke.EmptyOr("{}"),
	}

	return s, nil
}

// Scenarios returns every scenario in a stable order.
func Scenarios(e *Endpoints) ([]*smoke.Scenario, error) {
	constructors := []func(*Endpoints) (*smoke.Scenario, error){
		Read,
		Create,
		Update,
		Remove,
	}

	scenarios := make([]*smoke.Scenario, 0, len(constructors))

	for _, constructor := range constructors {
		s, err := constructor(e)
		if err != nil {
			return nil, fmt.Errorf("building scenarios: %w", err)
		}

		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}
