// Copyright 2026 The fhir-schema-migration-tool Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkDecodesAttributesAndSkipsSearchParameters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"resourceType":"Attribute","id":"Patient.active","path":["Patient","active"],"resource":{"id":"Patient","resourceType":"Entity"},"type":{"id":"boolean","resourceType":"Entity"}}`)
	writeFile(t, dir, "b.json", `{"resourceType":"SearchParameter","id":"patient-active","name":"active"}`)

	docs, diags := Walk(dir, nil)
	if len(diags) != 0 {
		t.Fatalf("Walk() diagnostics = %v, want none", diags)
	}
	if len(docs.Attributes) != 1 || docs.Attributes[0].ID != "Patient.active" {
		t.Errorf("Attributes = %v, want a single Patient.active record", docs.Attributes)
	}
	if len(docs.SearchParameters) != 1 || docs.SearchParameters[0].ID != "patient-active" {
		t.Errorf("SearchParameters = %v, want a single patient-active record", docs.SearchParameters)
	}
}

func TestWalkExcludesBeforeValidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"resourceType":"Attribute","id":"Excluded.attr","resource":{"id":"Excluded","resourceType":"Entity"},"isSummary":true}`)

	docs, diags := Walk(dir, map[string]bool{"Excluded": true})
	if len(diags) != 0 {
		t.Fatalf("Walk() diagnostics = %v, want none (excluded before validation)", diags)
	}
	if len(docs.Attributes) != 0 {
		t.Errorf("Attributes = %v, want none (excluded)", docs.Attributes)
	}
}

func TestWalkUnsupportedResourceType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"resourceType":"Bundle","id":"x"}`)

	_, diags := Walk(dir, nil)
	if len(diags) != 1 {
		t.Fatalf("Walk() diagnostics = %v, want a single NotSupportedResourceType", diags)
	}
}

func TestWalkIgnoresNonAttributeFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "not a resource")

	docs, diags := Walk(dir, nil)
	if len(diags) != 0 || len(docs.Attributes) != 0 {
		t.Errorf("Walk() = (%v, %v), want no diagnostics and no attributes for a non-source file", docs, diags)
	}
}
