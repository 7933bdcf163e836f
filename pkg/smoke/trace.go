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

package smoke

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// newTraceParent creates a W3C traceparent header value so a failing request
// can be found in the server's logs.  The first 16 random bytes are the trace
// ID, the remaining 8 the parent span ID.
func newTraceParent() string {
	var id [24]byte

	_, _ = rand.Read(id[:])

	return "00-" + hex.EncodeToString(id[:16]) + "-" + hex.EncodeToString(id[16:]) + "-01"
}

// traceID is the trace-id field of a traceparent, or the whole value if it
// is malformed.
func traceID(traceParent string) string {
	fields := strings.SplitN(traceParent, "-", 3)
	if len(fields) < 3 {
		return traceParent
	}

	return fields[1]
}
