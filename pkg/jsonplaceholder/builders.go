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
	"encoding/json"
	"fmt"

	"k8s.io/utils/ptr"
)

// PostPayloadBuilder builds post payloads for testing.
type PostPayloadBuilder struct {
	post Post
}

// NewPostPayload creates a new post payload builder with defaults.
func NewPostPayload() *PostPayloadBuilder {
	return &PostPayloadBuilder{
		post: Post{
			Title:  "foo",
			Body:   "bar",
			UserID: 1,
		},
	}
}

// WithID sets the post ID, used for updates.
func (b *PostPayloadBuilder) WithID(id int) *PostPayloadBuilder {
	b.post.ID = ptr.To(id)

	return b
}

// WithTitle sets the post title.
func (b *PostPayloadBuilder) WithTitle(title string) *PostPayloadBuilder {
	b.post.Title = title

	return b
}

// WithBody sets the post body.
func (b *PostPayloadBuilder) WithBody(body string) *PostPayloadBuilder {
	b.post.Body = body

	return b
}

// WithUserID sets the owning user.
func (b *PostPayloadBuilder) WithUserID(userID int) *PostPayloadBuilder {
	b.post.UserID = userID

	return b
}

// Build returns the completed post.
func (b *PostPayloadBuilder) Build() Post {
	return b.post
}

// JSON returns the completed post as a compact JSON document.
func (b *PostPayloadBuilder) JSON() ([]byte, error) {
	data, err := json.Marshal(b.post)
	if err != nil {
		return nil, fmt.Errorf("marshaling post: %w", err)
	}

	return data, nil
}
