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

// Status is the outcome of a test or step, using Allure's vocabulary.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
)

// Stage is the lifecycle stage of a test or step.
type Stage string

const (
	StageRunning  Stage = "running"
	StageFinished Stage = "finished"
)

// Label classifies a result e.g. suite, tag or severity.
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StatusDetails explains a non-passing status.
type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// AttachmentRef links a result or step to persisted attachment content.
type AttachmentRef struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// StepResult is a single, possibly nested, step.
type StepResult struct {
	Name          string          `json:"name"`
	Status        Status          `json:"status,omitempty"`
	StatusDetails *StatusDetails  `json:"statusDetails,omitempty"`
	Stage         Stage           `json:"stage"`
	Steps         []*StepResult   `json:"steps,omitempty"`
	Attachments   []AttachmentRef `json:"attachments,omitempty"`
	Start         int64           `json:"start"`
	Stop          int64           `json:"stop,omitempty"`
}

// Result is a finished test, the layout matches Allure's result files so the
// results directory can be rendered with the stock Allure tooling.
type Result struct {
	UUID          string          `json:"uuid"`
	HistoryID     string          `json:"historyId,omitempty"`
	Name          string          `json:"name"`
	FullName      string          `json:"fullName,omitempty"`
	Description   string          `json:"description,omitempty"`
	Status        Status          `json:"status,omitempty"`
	StatusDetails *StatusDetails  `json:"statusDetails,omitempty"`
	Stage         Stage           `json:"stage"`
	Labels        []Label         `json:"labels,omitempty"`
	Steps         []*StepResult   `json:"steps,omitempty"`
	Attachments   []AttachmentRef `json:"attachments,omitempty"`
	Start         int64           `json:"start"`
	Stop          int64           `json:"stop,omitempty"`
}

// AllAttachments returns every attachment in the result, test level ones
// first then those of each step depth first.
func (r *Result) AllAttachments() []AttachmentRef {
	out := append([]AttachmentRef{}, r.Attachments...)

	var walk func(steps []*StepResult)

	walk = func(steps []*StepResult) {
		for _, step := range steps {
			out = append(out, step.Attachments...)
			walk(step.Steps)
		}
	}

	walk(r.Steps)

	return out
}
