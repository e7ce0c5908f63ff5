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
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/fhirmeta"
)

// Validate classifies a Raw attribute into a Typed one, accumulating
// diagnostics rather than aborting on the first problem. It returns a nil
// Typed when the attribute cannot be used at all (e.g. both type and union
// were set, or no valid resource/target type could be resolved).
func Validate(raw Raw) (*Typed, diag.Diagnostics) {
	var diags diag.Diagnostics
	diags = checkUnsupportedProperties(diags, raw)

	switch {
	case raw.Type != nil && raw.Union == nil:
		return readConcrete(diags, raw)
	case raw.Type == nil && raw.Union != nil:
		return readPolymorphic(diags, raw)
	case raw.Type == nil && raw.Union == nil:
		return readComplex(diags, raw)
	default:
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.InvalidKind, AttributeID: raw.ID})
		return nil, diags
	}
}

func checkUnsupportedProperties(diags diag.Diagnostics, raw Raw) diag.Diagnostics {
	if raw.Schema != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.SchemaPresent, AttributeID: raw.ID})
	}
	if raw.IsSummary != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.SummaryPresent, AttributeID: raw.ID})
	}
	if raw.IsModifier != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ModifierPresent, AttributeID: raw.ID})
	}
	if raw.IsUnique != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.UniquePresent, AttributeID: raw.ID})
	}
	if raw.Order != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.OrderPresent, AttributeID: raw.ID})
	}
	return diags
}

// resolveEntityRef validates that ref's resourceType is "Entity" and
// returns its id. It always returns the id (even on mismatch) so that
// downstream processing can still try, per the validator's design of
// keeping the resource id even when the reference kind tag is wrong.
func resolveEntityRef(diags diag.Diagnostics, attrID string, ref Reference) (string, bool, diag.Diagnostics) {
	if ref.ResourceType != "Entity" {
		diags = diag.Append(diags, diag.Diagnostic{
			Kind: diag.InvalidEntityReference, AttributeID: attrID, Value: ref.ResourceType,
		})
		return ref.ID, false, diags
	}
	return ref.ID, true, diags
}

func resolveValueSetRef(diags diag.Diagnostics, attrID string, ref Reference) (string, bool, diag.Diagnostics) {
	if ref.ResourceType != "ValueSet" {
		diags = diag.Append(diags, diag.Diagnostic{
			Kind: diag.InvalidValuesetReference, AttributeID: attrID, Value: ref.ResourceType,
		})
		return "", false, diags
	}
	return ref.ID, true, diags
}

// checkKnownResource flags a resource type outside the fixed allow-list.
// It never blocks conversion: the diagnostic is informational.
func checkKnownResource(diags diag.Diagnostics, attrID, resourceType string) diag.Diagnostics {
	if !fhirmeta.KnownResourceTypes.Contains(resourceType) {
		diags = diag.Append(diags, diag.Diagnostic{
			Kind: diag.NotAllowedTargetResource, AttributeID: attrID, Target: resourceType,
		})
	}
	return diags
}

func readConcrete(diags diag.Diagnostics, raw Raw) (*Typed, diag.Diagnostics) {
	resourceType, resourceOK, d := resolveEntityRef(diags, raw.ID, raw.Resource)
	diags = d
	if resourceOK {
		diags = checkKnownResource(diags, raw.ID, resourceType)
	}

	if boolVal(raw.IsOpen) {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ConcreteOpenSchema, AttributeID: raw.ID})
	}

	var valueSet *string
	if raw.ValueSet != nil {
		if vs, ok, d := resolveValueSetRef(diags, raw.ID, *raw.ValueSet); ok {
			valueSet = &vs
			diags = d
		} else {
			diags = d
		}
	}

	target, targetOK, d := resolveEntityRef(diags, raw.ID, *raw.Type)
	diags = d
	if !targetOK {
		// A recursive (Attribute-kind) type reference is not supported;
		// the attribute is dropped outright.
		return nil, diags
	}

	if valueSet != nil && !fhirmeta.CodedTypes.Contains(target) {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ValueSetOnWrongType, AttributeID: raw.ID, Target: target})
	}
	if raw.Enum != nil && !fhirmeta.StringTypes.Contains(target) {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.EnumOnNonStringType, AttributeID: raw.ID, Target: target})
	}
	if raw.Refers != nil && target != "Reference" {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.RefersOnNonReferenceType, AttributeID: raw.ID, Target: target})
	}

	if !resourceOK {
		return nil, diags
	}

	typed := &Typed{
		ID:           raw.ID,
		Path:         raw.Path,
		ResourceType: resourceType,
		Array:        boolVal(raw.IsCollection),
		Required:     boolVal(raw.IsRequired),
		FCE:          raw.ExtensionURL,
		Kind:         KindConcrete,
		Concrete: Concrete{
			Target:      target,
			ValueSet:    valueSet,
			Refers:      raw.Refers,
			Enumeration: raw.Enum,
		},
	}
	return typed, diags
}

func readPolymorphic(diags diag.Diagnostics, raw Raw) (*Typed, diag.Diagnostics) {
	resourceType, resourceOK, d := resolveEntityRef(diags, raw.ID, raw.Resource)
	diags = d
	if resourceOK {
		diags = checkKnownResource(diags, raw.ID, resourceType)
	}

	if boolVal(raw.IsOpen) {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolyOpenSchema, AttributeID: raw.ID})
	}
	if raw.ValueSet != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolyValueSetPresent, AttributeID: raw.ID})
	}
	if raw.Enum != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolyEnumPresent, AttributeID: raw.ID})
	}
	if raw.Refers != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolyRefersPresent, AttributeID: raw.ID})
	}
	if len(raw.Union) == 0 {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolyNoTargets, AttributeID: raw.ID})
	}

	var targets []string
	for _, ref := range raw.Union {
		target, ok, dd := resolveEntityRef(diags, raw.ID, ref)
		diags = dd
		if ok {
			targets = append(targets, target)
		}
	}

	if !resourceOK || len(targets) == 0 {
		return nil, diags
	}

	typed := &Typed{
		ID:           raw.ID,
		Path:         raw.Path,
		ResourceType: resourceType,
		Array:        boolVal(raw.IsCollection),
		Required:     boolVal(raw.IsRequired),
		FCE:          raw.ExtensionURL,
		Kind:         KindPolymorphic,
		Polymorphic:  Polymorphic{Targets: targets},
	}
	return typed, diags
}

func readComplex(diags diag.Diagnostics, raw Raw) (*Typed, diag.Diagnostics) {
	resourceType, resourceOK, d := resolveEntityRef(diags, raw.ID, raw.Resource)
	diags = d
	if resourceOK {
		diags = checkKnownResource(diags, raw.ID, resourceType)
	}

	if raw.ValueSet != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ComplexValueSetPresent, AttributeID: raw.ID})
	}
	if raw.Enum != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ComplexEnumPresent, AttributeID: raw.ID})
	}
	if raw.Refers != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ComplexRefersPresent, AttributeID: raw.ID})
	}

	if !resourceOK {
		return nil, diags
	}

	typed := &Typed{
		ID:           raw.ID,
		Path:         raw.Path,
		ResourceType: resourceType,
		Array:        boolVal(raw.IsCollection),
		Required:     boolVal(raw.IsRequired),
		FCE:          raw.ExtensionURL,
		Kind:         KindComplex,
		Complex:      Complex{Open: boolVal(raw.IsOpen)},
	}
	return typed, diags
}
