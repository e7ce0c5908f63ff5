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

// Package bundle embeds the standards bundle: a fixed set of built-in
// A-attributes per supported FHIR version, merged in behind a user's own
// source attributes so that conversion never silently omits the base
// resource shape a profile is constraining.
package bundle

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/attribute"
)

//go:embed data/*.json
var data embed.FS

// Load returns the built-in attributes for fhirVersion (e.g. "4.0.1").
func Load(fhirVersion string) ([]attribute.Raw, error) {
	raw, err := data.ReadFile(fmt.Sprintf("data/%s.json", fhirVersion))
	if err != nil {
		return nil, fmt.Errorf("bundle: no standards bundle for FHIR version %q: %w", fhirVersion, err)
	}
	var attrs []attribute.Raw
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("bundle: decoding standards bundle %q: %w", fhirVersion, err)
	}
	return attrs, nil
}

// Merge appends the standards bundle for fhirVersion after userAttrs, so
// that any identical path a user declared wins under the forest's
// first-wins AlreadyExists rule.
func Merge(userAttrs []attribute.Raw, fhirVersion string) ([]attribute.Raw, error) {
	builtin, err := Load(fhirVersion)
	if err != nil {
		return nil, err
	}
	out := make([]attribute.Raw, 0, len(userAttrs)+len(builtin))
	out = append(out, userAttrs...)
	out = append(out, builtin...)
	return out, nil
}

// corePackageNames maps a FHIR version tag to the core FHIR package name
// its generated package.json should depend on.
var corePackageNames = map[string]string{
	"4.0.0": "hl7.fhir.r4.core",
	"4.0.1": "hl7.fhir.r4.core",
	"4.3.0": "hl7.fhir.r4b.core",
	"5.0.0": "hl7.fhir.r5.core",
}

// CorePackageName returns the core FHIR package name fhirVersion depends
// on, or false if fhirVersion is not one this tool carries a bundle for.
func CorePackageName(fhirVersion string) (string, bool) {
	name, ok := corePackageNames[fhirVersion]
	return name, ok
}
