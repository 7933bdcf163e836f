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
	"fmt"
	"net/http"
	"strings"
)

// Method is an HTTP method a scenario may use.
type Method int

const (
	Get Method = iota + 1
	Post
	Put
	Delete
)

//nolint:gochecknoglobals
var methodNames = map[Method]string{
	Get:    http.MethodGet,
	Post:   http.MethodPost,
	Put:    http.MethodPut,
	Delete: http.MethodDelete,
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// httpMethod maps the variant to the net/http method, it is the single
// place an invalid value is rejected.
func (m Method) httpMethod() (string, error) {
	name, ok := methodNames[m]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}

	return name, nil
}

// ParseMethod is case insensitive.
func ParseMethod(s string) (Method, error) {
	for method, name := range methodNames {
		if strings.EqualFold(s, name) {
			return method, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
}

// UnmarshalText allows methods to be used directly as flags and in
// configuration.
func (m *Method) UnmarshalText(text []byte) error {
	method, err := ParseMethod(string(text))
	if err != nil {
		return err
	}

	*m = method

	return nil
}

func (m Method) MarshalText() ([]byte, error) {
	name, err := m.httpMethod()
	if err != nil {
		return nil, err
	}

	return []byte(name), nil
}
