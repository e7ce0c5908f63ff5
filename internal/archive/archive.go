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

// Package archive packages the emitted StructureDefinitions into a FHIR
// package tarball: a gzip-compressed tar with a package/package.json
// manifest alongside one file per StructureDefinition, following the
// same package/<file>.json layout a FHIR implementation guide publishes.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/bundle"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/sd"
)

// Manifest is the package/package.json contents.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	FHIRVersions []string          `json:"fhirVersions"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Write emits a gzip-compressed tar containing package/package.json plus
// one entry per extension and profile StructureDefinition, to w.
func Write(w io.Writer, packageName, fhirVersion string, extensions, profiles []sd.StructureDefinition) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	manifest := Manifest{
		Name:         packageName,
		Version:      fhirVersion,
		FHIRVersions: []string{fhirVersion},
	}
	if core, ok := bundle.CorePackageName(fhirVersion); ok {
		manifest.Dependencies = map[string]string{core: fhirVersion}
	}
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("archive: encoding package.json: %w", err)
	}
	if err := writeEntry(tw, "package/package.json", manifestBytes); err != nil {
		return err
	}

	seen := make(map[string]int)
	for _, ext := range extensions {
		name := fmt.Sprintf("StructureDefinition-Extension-%s-%d.json", sanitize(ext.Name), nextIndex(seen, "ext:"+ext.Name))
		if err := writeSD(tw, name, ext); err != nil {
			return err
		}
	}
	for _, profile := range profiles {
		name := fmt.Sprintf("StructureDefinition-%s-%d.json", sanitize(profile.Name), nextIndex(seen, "profile:"+profile.Name))
		if err := writeSD(tw, name, profile); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("archive: closing tar writer: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("archive: closing gzip writer: %w", err)
	}
	return nil
}

func writeSD(tw *tar.Writer, name string, def sd.StructureDefinition) error {
	body, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("archive: encoding %s: %w", name, err)
	}
	return writeEntry(tw, "package/"+name, body)
}

func writeEntry(tw *tar.Writer, name string, body []byte) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(body)),
		ModTime: time.Unix(0, 0),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("archive: writing header for %s: %w", name, err)
	}
	if _, err := tw.Write(body); err != nil {
		return fmt.Errorf("archive: writing body for %s: %w", name, err)
	}
	return nil
}

func nextIndex(seen map[string]int, key string) int {
	n := seen[key]
	seen[key] = n + 1
	return n
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
