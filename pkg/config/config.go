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

// Package config loads harness configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/unikorn-cloud/api-smoke/pkg/jsonplaceholder"
	"github.com/unikorn-cloud/api-smoke/pkg/smoke"
)

// ErrInvalid is returned when configuration is present but unusable.
var ErrInvalid = errors.New("invalid configuration")

// Config is read from environment variables.
type Config struct {
	// BaseURL is the API under test.
	BaseURL string `envconfig:"API_BASE_URL" default:"https://jsonplaceholder.typicode.com"`

	// Live targets BaseURL from test suites, otherwise they run against an
	// in-process fake.
	Live bool `envconfig:"SMOKE_LIVE" default:"false"`

	// RequestTimeout bounds each request, zero means no timeout.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"0s"`

	// ResultsDir is where results are written, empty disables file output.
	ResultsDir string `envconfig:"RESULTS_DIR"`

	// ValidateRequests checks requests against the OpenAPI description
	// before they are sent.
	ValidateRequests bool `envconfig:"VALIDATE_REQUESTS" default:"true"`

	// LogRequests logs request summaries.
	LogRequests bool `envconfig:"LOG_REQUESTS" default:"false"`

	// LogResponses logs response bodies.
	LogResponses bool `envconfig:"LOG_RESPONSES" default:"false"`

	// JUnitReport is where the test suite writes a JUnit report, if set.
	JUnitReport string `envconfig:"JUNIT_REPORT"`
}

//nolint:gochecknoglobals
var envPaths = []string{
	".env",
	"../../.env", // From test/api/suites directory
}

// Load reads the first .env file found on the search path, if any, then the
// environment.
func Load() (*Config, error) {
	envPath := findEnvFile()

	return LoadWithEnvFile(envPath)
}

// LoadWithEnvFile reads the given .env file then the environment.  Variables
// already set in the environment take precedence over the file.  An empty
// path skips the file.
func LoadWithEnvFile(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envPath, err)
		}
	}

	config := &Config{}

	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func findEnvFile() string {
	for _, path := range envPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		return absPath
	}

	// Not found, this is fine when variables are set directly.
	return ""
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("API_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL))
	}

	if c.RequestTimeout < 0 {
		problems = append(problems, fmt.Sprintf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return nil
}

// HTTPClient returns a new client honouring the request timeout.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{
		Timeout: c.RequestTimeout,
	}
}

// ExecutorOptions translates the configuration for smoke.NewExecutor, a
// fresh HTTP client is created on each call.
func (c *Config) ExecutorOptions(ctx context.Context) ([]smoke.ExecutorOption, error) {
	options := []smoke.ExecutorOption{
		smoke.WithHTTPClient(c.HTTPClient()),
		smoke.WithLogRequests(c.LogRequests),
		smoke.WithLogResponses(c.LogResponses),
	}

	if c.ValidateRequests {
		validator, err := jsonplaceholder.NewValidator(ctx)
		if err != nil {
			return nil, err
		}

		options = append(options, smoke.WithRequestValidator(validator))
	}

	return options, nil
}
