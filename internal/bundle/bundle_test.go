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

package bundle

import (
	"testing"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/attribute"
)

func TestLoadKnownVersion(t *testing.T) {
	for _, version := range []string{"4.0.0", "4.0.1", "4.3.0", "5.0.0"} {
		attrs, err := Load(version)
		if err != nil {
			t.Fatalf("Load(%q) error = %v, want nil", version, err)
		}
		if len(attrs) == 0 {
			t.Errorf("Load(%q) returned no attributes for a documented version", version)
		}
	}
}

func TestLoadUnknownVersion(t *testing.T) {
	if _, err := Load("9.9.9"); err == nil {
		t.Error("Load() error = nil, want an error for an unsupported version")
	}
}

func TestMergeAppendsBundleAfterUserAttributes(t *testing.T) {
	user := []attribute.Raw{{ID: "Patient.custom"}}
	merged, err := Merge(user, "4.0.1")
	if err != nil {
		t.Fatalf("Merge() error = %v, want nil", err)
	}
	if len(merged) <= len(user) {
		t.Fatalf("Merge() returned %d attributes, want more than the %d user ones", len(merged), len(user))
	}
	if merged[0].ID != "Patient.custom" {
		t.Errorf("merged[0].ID = %q, want the user attribute first", merged[0].ID)
	}
}

func TestCorePackageName(t *testing.T) {
	cases := map[string]string{
		"4.0.0": "hl7.fhir.r4.core",
		"4.0.1": "hl7.fhir.r4.core",
		"4.3.0": "hl7.fhir.r4b.core",
		"5.0.0": "hl7.fhir.r5.core",
	}
	for version, want := range cases {
		if name, ok := CorePackageName(version); !ok || name != want {
			t.Errorf("CorePackageName(%q) = (%q, %v), want (%q, true)", version, name, ok, want)
		}
	}
	if _, ok := CorePackageName("9.9.9"); ok {
		t.Error("CorePackageName(9.9.9) = ok, want false")
	}
}
