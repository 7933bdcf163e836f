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

package report

const (
	// MIMETextPlain is used for human readable diagnostics.
	MIMETextPlain = "text/plain"

	// MIMEJSON is used for raw API payloads.
	MIMEJSON = "application/json"
)

// Attachment is a write-once diagnostic artifact attached to a test report.
type Attachment struct {
	// Name is the label shown in the report e.g. "Request".
	Name string

	// Type is the MIME type of the content.
	Type string

	// Content is the raw artifact.
	Content []byte
}

// Text returns a plain text attachment.
func Text(name, content string) Attachment {
	return Attachment{
		Name:    name,
		Type:    MIMETextPlain,
		Content: []byte(content),
	}
}

// JSON returns a JSON attachment, the content is recorded verbatim.
func JSON(name, content string) Attachment {
	return Attachment{
		Name:    name,
		Type:    MIMEJSON,
		Content: []byte(content),
	}
}

// Extension returns the file extension used when persisting the attachment.
func (a Attachment) Extension() string {
	switch a.Type {
	case MIMETextPlain:
		return ".txt"
	case MIMEJSON:
		return ".json"
	}

	return ""
}
