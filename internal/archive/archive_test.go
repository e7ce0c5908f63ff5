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

package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"testing"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/sd"
)

func readEntries(t *testing.T, r io.Reader) map[string][]byte {
	t.Helper()
	gz, err := gzip.NewReader(r)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	tr := tar.NewReader(gz)
	entries := make(map[string][]byte)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar read error = %v", err)
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("reading entry %s: %v", hdr.Name, err)
		}
		entries[hdr.Name] = body
	}
	return entries
}

func TestWriteIncludesManifestAndStructureDefinitions(t *testing.T) {
	extensions := []sd.StructureDefinition{{Name: "favorite-color", URL: "http://example.org/ext"}}
	profiles := []sd.StructureDefinition{{Name: "Patient", Type: "Patient"}}

	var buf bytes.Buffer
	if err := Write(&buf, "example.fhir.custom", "4.0.1", extensions, profiles); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries := readEntries(t, &buf)
	manifestBody, ok := entries["package/package.json"]
	if !ok {
		t.Fatal("missing package/package.json entry")
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestBody, &manifest); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if manifest.Name != "example.fhir.custom" || manifest.FHIRVersions[0] != "4.0.1" {
		t.Errorf("manifest = %+v, unexpected", manifest)
	}
	if manifest.Dependencies["hl7.fhir.r4.core"] != "4.0.1" {
		t.Errorf("manifest.Dependencies = %v, want an r4.core dependency", manifest.Dependencies)
	}

	if _, ok := entries["package/StructureDefinition-Extension-favorite-color-0.json"]; !ok {
		t.Errorf("entries = %v, missing the extension SD", keys(entries))
	}
	if _, ok := entries["package/StructureDefinition-Patient-0.json"]; !ok {
		t.Errorf("entries = %v, missing the profile SD", keys(entries))
	}
}

func TestWriteDisambiguatesDuplicateNames(t *testing.T) {
	extensions := []sd.StructureDefinition{
		{Name: "dup", URL: "http://example.org/a"},
		{Name: "dup", URL: "http://example.org/b"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "example.fhir.custom", "4.0.1", extensions, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries := readEntries(t, &buf)
	if _, ok := entries["package/StructureDefinition-Extension-dup-0.json"]; !ok {
		t.Errorf("entries = %v, missing the first dup SD", keys(entries))
	}
	if _, ok := entries["package/StructureDefinition-Extension-dup-1.json"]; !ok {
		t.Errorf("entries = %v, missing the second dup SD", keys(entries))
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
