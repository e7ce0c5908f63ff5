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
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/fhirmeta"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/invert"
)

// MakeProfiles returns a profile StructureDefinition for resourceType if
// its inverted trie carries at least one extension anywhere in it, and
// false otherwise - a resource with no extensions at all needs no profile,
// since the profile's only content is its extension slices.
func MakeProfiles(resourceType string, root invert.NormalNode) (StructureDefinition, bool) {
	var elements []Element
	profileElementsAt(resourceType, resourceType, root, &elements)
	if len(elements) == 0 {
		return StructureDefinition{}, false
	}

	differential := append([]Element{{ID: resourceType, Path: resourceType}}, elements...)
	return StructureDefinition{
		ResourceType:   "StructureDefinition",
		URL:            fhirmeta.ProfileURLPrefix + resourceType,
		Name:           resourceType,
		Status:         "active",
		Kind:           "resource",
		Abstract:       false,
		Type:           resourceType,
		BaseDefinition: fhirmeta.ProfileBaseDefinitionPrefix + resourceType,
		Derivation:     "constraint",
		Differential:   Differential{Element: differential},
	}, true
}

// profileElementsAt walks a normal-child subtree emitting one slice entry
// per extension encountered (at any depth), and recursing into
// non-extension children. Concrete and polymorphic leaves contribute
// nothing.
func profileElementsAt(resourceType, path string, n invert.NormalNode, out *[]Element) {
	var children *collection.OrderedMap[invert.NormalNode]
	var exts *collection.OrderedMap[invert.Extension]
	switch v := n.(type) {
	case invert.ComplexNode:
		children, exts = v.Children, v.Extensions
	case invert.InferredNode:
		children, exts = v.Children, v.Extensions
	default:
		return
	}

	extPath := path + ".extension"
	exts.Range(func(_ string, ext invert.Extension) bool {
		*out = append(*out, profileSliceElement(extPath, ext))
		return true
	})
	children.Range(func(name string, child invert.NormalNode) bool {
		profileElementsAt(resourceType, path+"."+name, child, out)
		return true
	})
}

func profileSliceElement(extPath string, ext invert.Extension) Element {
	var fceProperty, url string
	var required, array bool
	switch v := ext.(type) {
	case invert.SimpleExtension:
		fceProperty, url, required, array = v.FCEProperty, v.URL, v.Required, v.Array
	case invert.ComplexExtension:
		fceProperty, url, required, array = v.FCEProperty, v.URL, v.Required, v.Array
	}

	var min *int
	if required {
		min = intPtr(1)
	}
	max := "1"
	if array {
		max = "*"
	}

	return Element{
		ID:        extPath + ":" + fceProperty,
		Path:      extPath,
		SliceName: fceProperty,
		Min:       min,
		Max:       max,
		Type:      []ElementType{{Code: "Extension", Profile: []string{url}}},
	}
}
