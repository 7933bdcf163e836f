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

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// DirStore writes attachments and results into a directory using Allure's
// naming conventions.
type DirStore struct {
	dir string
}

var _ Store = &DirStore{}

// NewDirStore creates the directory if required.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	return &DirStore{
		dir: dir,
	}, nil
}

// Dir returns the results directory.
func (s *DirStore) Dir() string {
	return s.dir
}

// SaveAttachment writes the content to a uniquely named file and returns its name.
func (s *DirStore) SaveAttachment(_ context.Context, attachment Attachment) (string, error) {
	source := uuid.NewString() + "-attachment" + attachment.Extension()

	//nolint:gosec // reports are meant to be readable
	if err := os.WriteFile(filepath.Join(s.dir, source), attachment.Content, 0o644); err != nil {
		return "", fmt.Errorf("writing attachment: %w", err)
	}

	return source, nil
}

// SaveResult writes the result as <uuid>-result.json.
func (s *DirStore) SaveResult(_ context.Context, result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	//nolint:gosec // reports are meant to be readable
	if err := os.WriteFile(filepath.Join(s.dir, result.UUID+"-result.json"), data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}

// MemoryStore keeps everything in memory, used when no results directory is
// configured and for inspection in tests.
type MemoryStore struct {
	lock        sync.Mutex
	attachments map[string]Attachment
	results     []*Result
}

var _ Store = &MemoryStore{}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		attachments: map[string]Attachment{},
	}
}

func (s *MemoryStore) SaveAttachment(_ context.Context, attachment Attachment) (string, error) {
	source := uuid.NewString() + "-attachment" + attachment.Extension()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.attachments[source] = attachment

	return source, nil
}

func (s *MemoryStore) SaveResult(_ context.Context, result *Result) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.results = append(s.results, result)

	return nil
}

// Attachment looks up attachment content by source reference.
func (s *MemoryStore) Attachment(source string) (Attachment, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	attachment, ok := s.attachments[source]

	return attachment, ok
}

// Results returns all results saved so far.
func (s *MemoryStore) Results() []*Result {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]*Result{}, s.results...)
}
