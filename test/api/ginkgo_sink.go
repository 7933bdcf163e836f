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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"

	. "github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/api-smoke/pkg/report"
)

// GinkgoSink reports steps with By and attachments as report entries.
type GinkgoSink struct{}

var _ report.Sink = GinkgoSink{}

func (GinkgoSink) AddAttachment(_ context.Context, attachment report.Attachment) error {
	AddReportEntry(attachment.Name, string(attachment.Content), ReportEntryVisibilityFailureOrVerbose)

	return nil
}

func (GinkgoSink) StartStep(_ context.Context, name string) {
	By(name)
}

func (GinkgoSink) StopStep(_ context.Context, name string, err error) {
	if err != nil {
		GinkgoWriter.Printf("STEP FAILED: %s: %v\n", name, err)
	}
}
