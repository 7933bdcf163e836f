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
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Endpoints builds absolute URLs for the posts resource.
type Endpoints struct {
	baseURL string
}

// NewEndpoints creates endpoints rooted at the base URL.
func NewEndpoints(baseURL string) *Endpoints {
	return &Endpoints{
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// BaseURL returns the normalized base URL.
func (e *Endpoints) BaseURL() string {
	return e.baseURL
}

// Posts is the collection, used for creation.
func (e *Endpoints) Posts() string {
	return e.baseURL + "/posts"
}

// Post is a single post.
func (e *Endpoints) Post(id int) (string, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("styling post id: %w", err)
	}

	return fmt.Sprintf("%s/posts/%s", e.baseURL, pathParam), nil
}
