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

package sd

import (
	"strings"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/fhirmeta"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/invert"
)

// CollectExtensions walks resourceType's url-inverted trie and returns one
// StructureDefinition per extension found anywhere in it - every place a
// non-extension node carries an extension map contributes its own SD,
// anchored to that node's path via context. Extensions nested inside a
// complex extension's own Children are not collected separately here:
// they are rendered inline by emitComplexDifferential's nested child
// groups, since they have no standalone context of their own.
func CollectExtensions(resourceType string, root invert.NormalNode) []StructureDefinition {
	var out []StructureDefinition
	collectAt(resourceType, nil, root, &out)
	return out
}

func collectAt(resourceType string, path []string, n invert.NormalNode, out *[]StructureDefinition) {
	var children *collection.OrderedMap[invert.NormalNode]
	var exts *collection.OrderedMap[invert.Extension]
	switch v := n.(type) {
	case invert.ComplexNode:
		children, exts = v.Children, v.Extensions
	case invert.InferredNode:
		children, exts = v.Children, v.Extensions
	default:
		return // ConcreteNode / PolymorphicNode are leaves, nothing to collect
	}

	expression := resourceType
	if len(path) > 0 {
		expression = resourceType + "." + strings.Join(path, ".")
	}
	exts.Range(func(_ string, ext invert.Extension) bool {
		*out = append(*out, buildExtensionSD(ext, expression))
		return true
	})
	children.Range(func(name string, child invert.NormalNode) bool {
		collectAt(resourceType, append(append([]string{}, path...), name), child, out)
		return true
	})
}

func buildExtensionSD(ext invert.Extension, expression string) StructureDefinition {
	var url string
	var elements []Element
	switch v := ext.(type) {
	case invert.SimpleExtension:
		url = v.URL
		elements = emitSimpleDifferential(v)
	case invert.ComplexExtension:
		url = v.URL
		elements = emitComplexDifferential(v)
	}
	return StructureDefinition{
		ResourceType:   "StructureDefinition",
		URL:            url,
		Name:           extensionName(url),
		Status:         "active",
		Kind:           "complex-type",
		Abstract:       false,
		Type:           "Extension",
		BaseDefinition: fhirmeta.ExtensionBaseDefinitionURL,
		Derivation:     "constraint",
		Context:        []Context{{Type: "element", Expression: expression}},
		Differential:   Differential{Element: elements},
	}
}

func emitSimpleDifferential(se invert.SimpleExtension) []Element {
	min, max := cardinality(se.Required, se.Array)
	elements := []Element{
		{ID: "Extension", Path: "Extension", Min: min, Max: max, Extension: marker(se.FCEProperty)},
		{ID: "Extension.url", Path: "Extension.url", Min: intPtr(1), Max: "1", FixedURI: se.URL},
		{ID: "Extension.value[x]", Path: "Extension.value[x]", Min: intPtr(1), Max: "1", Type: valueTypes(se.Targets)},
	}
	elements = append(elements, valueSetSlices("Extension.value[x]", "Extension.value[x]", se.Targets)...)
	return elements
}

func emitComplexDifferential(ce invert.ComplexExtension) []Element {
	min, max := cardinality(ce.Required, ce.Array)
	elements := []Element{
		{ID: "Extension", Path: "Extension", Min: min, Max: max, Extension: marker(ce.FCEProperty)},
		{ID: "Extension.extension", Path: "Extension.extension", Min: intPtr(1), Slicing: &Slicing{Rules: "open"}},
	}
	parent := elementPointer{ID: "Extension.extension", Path: "Extension.extension"}
	ce.Children.Range(func(_ string, child invert.Extension) bool {
		elements = append(elements, emitNestedChildGroup(parent, child)...)
		return true
	})
	elements = append(elements,
		Element{ID: "Extension.url", Path: "Extension.url", Min: intPtr(1), Max: "1", FixedURI: ce.URL},
		Element{ID: "Extension.value[x]", Path: "Extension.value[x]", Min: intPtr(0), Max: "0"},
	)
	return elements
}

type elementPointer struct {
	ID, Path string
}

func emitNestedChildGroup(p elementPointer, child invert.Extension) []Element {
	switch v := child.(type) {
	case invert.SimpleExtension:
		id := p.ID + ":" + v.FCEProperty
		valuePath := p.Path + ".value[x]"
		elements := []Element{
			{ID: id, Path: p.Path, SliceName: v.FCEProperty, Min: intPtr(0), Max: "*", Extension: marker(v.FCEProperty)},
			{ID: id + ".url", Path: p.Path + ".url", Min: intPtr(1), Max: "1", FixedURI: v.URL},
			{ID: id + ".value[x]", Path: valuePath, Min: intPtr(1), Max: "1", Type: valueTypes(v.Targets)},
		}
		elements = append(elements, valueSetSlices(id+".value[x]", valuePath, v.Targets)...)
		return elements
	case invert.ComplexExtension:
		id := p.ID + ":" + v.FCEProperty
		min, max := optionalCardinality(v.Required, v.Array)
		elements := []Element{
			{ID: id, Path: p.Path, Min: min, Max: max, Extension: marker(v.FCEProperty)},
			{ID: id + ".extension", Path: p.Path + ".extension", Min: intPtr(1), Slicing: &Slicing{Rules: "open"}},
		}
		nested := elementPointer{ID: id + ".extension", Path: p.Path + ".extension"}
		v.Children.Range(func(_ string, gc invert.Extension) bool {
			elements = append(elements, emitNestedChildGroup(nested, gc)...)
			return true
		})
		elements = append(elements,
			Element{ID: id + ".url", Path: p.Path + ".url", Min: intPtr(1), Max: "1", FixedURI: v.URL},
			Element{ID: id + ".value[x]", Path: p.Path + ".value[x]", Min: intPtr(0), Max: "0"},
		)
		return elements
	default:
		return nil
	}
}

// optionalCardinality implements the nested complex child's cardinality
// rule, distinct from the root cardinality rule: min is absent (not 0)
// when not required, and max is absent (not "*") when an array.
func optionalCardinality(required, array bool) (min *int, max string) {
	if required {
		min = intPtr(1)
	}
	if !array {
		max = "1"
	}
	return min, max
}

func valueTypes(targets *collection.OrderedMap[invert.ExtensionTarget]) []ElementType {
	var types []ElementType
	targets.Range(func(typeName string, t invert.ExtensionTarget) bool {
		et := ElementType{Code: typeName}
		for _, ref := range t.Refers {
			et.TargetProfile = append(et.TargetProfile, fhirmeta.ReferenceTargetProfilePrefix+ref)
		}
		types = append(types, et)
		return true
	})
	return types
}

func valueSetSlices(baseID, path string, targets *collection.OrderedMap[invert.ExtensionTarget]) []Element {
	var elements []Element
	targets.Range(func(typeName string, t invert.ExtensionTarget) bool {
		if t.ValueSet == nil {
			return true
		}
		sliceName := "value" + capitalize(typeName)
		elements = append(elements, Element{
			ID:        baseID + ":" + sliceName,
			Path:      path,
			SliceName: sliceName,
			Binding:   &Binding{Strength: "required", ValueSet: *t.ValueSet},
		})
		return true
	})
	return elements
}

func marker(property string) []MarkerExtension {
	return []MarkerExtension{{URL: fhirmeta.LegacyFCEMarkerURL, ValueString: property}}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func extensionName(url string) string {
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}
