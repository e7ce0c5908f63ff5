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

package attribute

import (
	"testing"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
)

func ref(id, resourceType string) Reference {
	return Reference{ID: id, ResourceType: resourceType}
}

func boolPtr(b bool) *bool     { return &b }
func strPtr(s string) *string  { return &s }

func TestValidateConcrete(t *testing.T) {
	raw := Raw{
		ID:       "Patient.gender",
		Path:     []string{"Patient", "gender"},
		Resource: ref("Patient", "Entity"),
		Type:     &Reference{ID: "code", ResourceType: "Entity"},
		ValueSet: &Reference{ID: "administrative-gender", ResourceType: "ValueSet"},
	}

	typed, diags := Validate(raw)
	if len(diags) != 0 {
		t.Fatalf("Validate() diagnostics = %v, want none", diags)
	}
	if typed == nil {
		t.Fatal("Validate() returned nil Typed, want a concrete attribute")
	}
	if typed.Kind != KindConcrete {
		t.Errorf("Kind = %v, want Concrete", typed.Kind)
	}
	if typed.Concrete.Target != "code" {
		t.Errorf("Concrete.Target = %q, want %q", typed.Concrete.Target, "code")
	}
	if typed.Concrete.ValueSet == nil || *typed.Concrete.ValueSet != "administrative-gender" {
		t.Errorf("Concrete.ValueSet = %v, want administrative-gender", typed.Concrete.ValueSet)
	}
}

func TestValidateConcreteValueSetOnWrongType(t *testing.T) {
	raw := Raw{
		ID:       "Patient.active",
		Resource: ref("Patient", "Entity"),
		Type:     &Reference{ID: "boolean", ResourceType: "Entity"},
		ValueSet: &Reference{ID: "some-vs", ResourceType: "ValueSet"},
	}

	_, diags := Validate(raw)
	if !hasKind(diags, diag.ValueSetOnWrongType) {
		t.Errorf("Validate() diagnostics = %v, want ValueSetOnWrongType", diags)
	}
}

func TestValidateConcreteUnknownResourceStillConverts(t *testing.T) {
	raw := Raw{
		ID:       "Frobnicator.active",
		Resource: ref("Frobnicator", "Entity"),
		Type:     &Reference{ID: "boolean", ResourceType: "Entity"},
	}

	typed, diags := Validate(raw)
	if typed == nil {
		t.Fatal("Validate() returned nil, want a converted attribute despite the unknown resource type")
	}
	if !hasKind(diags, diag.NotAllowedTargetResource) {
		t.Errorf("Validate() diagnostics = %v, want NotAllowedTargetResource", diags)
	}
}

func TestValidatePolymorphic(t *testing.T) {
	raw := Raw{
		ID:       "Observation.value",
		Resource: ref("Observation", "Entity"),
		Union: []Reference{
			ref("Quantity", "Entity"),
			ref("CodeableConcept", "Entity"),
		},
	}

	typed, diags := Validate(raw)
	if len(diags) != 0 {
		t.Fatalf("Validate() diagnostics = %v, want none", diags)
	}
	if typed.Kind != KindPolymorphic {
		t.Errorf("Kind = %v, want Polymorphic", typed.Kind)
	}
	if len(typed.Polymorphic.Targets) != 2 {
		t.Errorf("Polymorphic.Targets = %v, want 2 entries", typed.Polymorphic.Targets)
	}
}

func TestValidatePolymorphicNoTargets(t *testing.T) {
	raw := Raw{
		ID:       "Observation.value",
		Resource: ref("Observation", "Entity"),
		Union:    []Reference{},
	}

	typed, diags := Validate(raw)
	if typed != nil {
		t.Errorf("Validate() = %v, want nil (no usable targets)", typed)
	}
	if !hasKind(diags, diag.PolyNoTargets) {
		t.Errorf("Validate() diagnostics = %v, want PolyNoTargets", diags)
	}
}

func TestValidateComplex(t *testing.T) {
	raw := Raw{
		ID:       "Patient.identifier",
		Resource: ref("Patient", "Entity"),
		IsOpen:   boolPtr(true),
	}

	typed, diags := Validate(raw)
	if len(diags) != 0 {
		t.Fatalf("Validate() diagnostics = %v, want none", diags)
	}
	if typed.Kind != KindComplex {
		t.Errorf("Kind = %v, want Complex", typed.Kind)
	}
	if !typed.Complex.Open {
		t.Errorf("Complex.Open = false, want true")
	}
}

func TestValidateInvalidKindBothTypeAndUnion(t *testing.T) {
	raw := Raw{
		ID:       "Bad.attr",
		Resource: ref("Patient", "Entity"),
		Type:     &Reference{ID: "string", ResourceType: "Entity"},
		Union:    []Reference{ref("string", "Entity")},
	}

	typed, diags := Validate(raw)
	if typed != nil {
		t.Errorf("Validate() = %v, want nil", typed)
	}
	if !hasKind(diags, diag.InvalidKind) {
		t.Errorf("Validate() diagnostics = %v, want InvalidKind", diags)
	}
}

func TestValidateUnsupportedProperties(t *testing.T) {
	raw := Raw{
		ID:         "Patient.active",
		Resource:   ref("Patient", "Entity"),
		Type:       &Reference{ID: "boolean", ResourceType: "Entity"},
		Schema:     map[string]any{"type": "boolean"},
		IsSummary:  boolPtr(true),
		IsModifier: boolPtr(true),
		IsUnique:   boolPtr(true),
		Order:      func() *int64 { v := int64(1); return &v }(),
	}

	_, diags := Validate(raw)
	for _, kind := range []diag.Kind{diag.SchemaPresent, diag.SummaryPresent, diag.ModifierPresent, diag.UniquePresent, diag.OrderPresent} {
		if !hasKind(diags, kind) {
			t.Errorf("Validate() diagnostics = %v, want %v", diags, kind)
		}
	}
}

func hasKind(diags diag.Diagnostics, kind diag.Kind) bool {
	for _, d := range diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
