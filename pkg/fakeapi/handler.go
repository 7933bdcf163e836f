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

// Package fakeapi is an in-memory stand-in for the JSONPlaceholder posts
// resource.  Like the real service, writes are acknowledged but never
// persisted.
package fakeapi

import (
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/unikorn-cloud/api-smoke/pkg/jsonplaceholder"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// SeedTitle is the title of post 1.
	SeedTitle = "sunt aut facere repellat provident occaecati excepturi optio reprehenderit"

	// SeedBody is the body of post 1.
	SeedBody = "quia et suscipit\nsuscipit recusandae consequuntur expedita et cum\nreprehenderit molestiae ut ut quas totam\nnostrum rerum est autem sunt rem eveniet architecto"

	// CreatedID is the ID handed out to every new post.
	CreatedID = 101
)

type Handler struct {
	// lock guards posts.
	lock sync.RWMutex

	// posts are the stored posts, indexed by ID.
	posts map[int]jsonplaceholder.Post

	// requests counts every request served.
	requests atomic.Int64
}

// New returns a handler seeded with post 1.
func New() *Handler {
	return &Handler{
		posts: map[int]jsonplaceholder.Post{
			1: {
				ID:     ptr.To(1),
				Title:  SeedTitle,
				Body:   SeedBody,
				UserID: 1,
			},
		},
	}
}

// Requests returns the number of requests served so far.
func (h *Handler) Requests() int64 {
	return h.requests.Load()
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

// writeJSONResponse indents with two spaces, as JSONPlaceholder does.
func writeJSONResponse(w http.ResponseWriter, r *http.Request, code int, response any) {
	body, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		log.FromContext(r.Context()).Error(err, "failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		log.FromContext(r.Context()).Error(err, "failed to write response")
	}
}

func writeEmpty(w http.ResponseWriter, r *http.Request, code int) {
	writeJSONResponse(w, r, code, struct{}{})
}

// readObject decodes the request body as an arbitrary JSON object, the real
// service echoes whatever it is sent.
func readObject(r *http.Request) (map[string]any, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	object := map[string]any{}

	if err := json.Unmarshal(data, &object); err != nil {
		return nil, err
	}

	return object, nil
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	result := make([]jsonplaceholder.Post, 0, len(h.posts))

	for _, id := range slices.Sorted(maps.Keys(h.posts)) {
		result = append(result, h.posts[id])
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PostPosts(w http.ResponseWriter, r *http.Request) {
	object, err := readObject(r)
	if err != nil {
		log.FromContext(r.Context()).Info("malformed post", "error", err.Error())
		writeEmpty(w, r, http.StatusInternalServerError)

		return
	}

	object["id"] = CreatedID

	writeJSONResponse(w, r, http.StatusCreated, object)
}

func (h *Handler) GetPostsID(w http.ResponseWriter, r *http.Request, id int) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	post, ok := h.posts[id]
	if !ok {
		writeEmpty(w, r, http.StatusNotFound)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, post)
}

func (h *Handler) PutPostsID(w http.ResponseWriter, r *http.Request, id int) {
	object, err := readObject(r)
	if err != nil {
		log.FromContext(r.Context()).Info("malformed post", "id", id, "error", err.Error())
		writeEmpty(w, r, http.StatusInternalServerError)

		return
	}

	object["id"] = id

	writeJSONResponse(w, r, http.StatusOK, object)
}

func (h *Handler) DeletePostsID(w http.ResponseWriter, r *http.Request, _ int) {
	writeEmpty(w, r, http.StatusOK)
}
