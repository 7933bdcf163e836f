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

// Package api provides Ginkgo glue for the posts smoke suites.
//
// # Reporting
//
// Every spec gets its own APIClient which owns an HTTP client, and reports
// each exchange twice:
//   - to Ginkgo, steps are emitted with By and attachments become report
//     entries visible on failure or with -v
//   - to a report.Recorder, which writes an Allure compatible result when
//     RESULTS_DIR is set
//
// Steps wrap Gomega assertions, a failure is recorded against the step it
// happened in before the spec is aborted.
//
// # Targets
//
// The suites run against an in-process fake of the posts resource unless
// SMOKE_LIVE is set, in which case API_BASE_URL is used.
package api
