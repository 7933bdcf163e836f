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

package fakeapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// withPostID binds the id path parameter the way generated server wrappers
// do.  Anything that isn't an integer can't name a post.
func withPostID(next func(http.ResponseWriter, *http.Request, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id int

		err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
		if err != nil {
			writeEmpty(w, r, http.StatusNotFound)
			return
		}

		next(w, r, id)
	}
}

// logging counts and logs each request.
func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests.Add(1)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.FromContext(r.Context()).V(1).Info("request served", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "traceparent", r.Header.Get("Traceparent"))
	})
}

// Router returns the routes for the posts resource.
func (h *Handler) Router() chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(h.logging)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeEmpty(w, r, http.StatusNotFound)
	})

	router.Get("/posts", h.GetPosts)
	router.Post("/posts", h.PostPosts)
	router.Get("/posts/{id}", withPostID(h.GetPostsID))
	router.Put("/posts/{id}", withPostID(h.PutPostsID))
	router.Delete("/posts/{id}", withPostID(h.DeletePostsID))

	return router
}
