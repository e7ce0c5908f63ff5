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

// Package sd implements the SD Emitter (component C6): it walks an
// url-inverted forest and produces FHIR StructureDefinition resources: one
// per extension attached to a complex or inferred node, plus one profile per
// resource type that carries at least one extension. Extensions nested
// inside a complex extension get no StructureDefinition of their own.
package sd

// StructureDefinition is the subset of the FHIR StructureDefinition
// resource this emitter populates - only the fields the differential
// generation in spec §4.6 actually sets.
type StructureDefinition struct {
	ResourceType   string       `json:"resourceType"`
	URL            string       `json:"url"`
	Name           string       `json:"name"`
	Status         string       `json:"status"`
	Kind           string       `json:"kind"`
	Abstract       bool         `json:"abstract"`
	Type           string       `json:"type"`
	BaseDefinition string       `json:"baseDefinition"`
	Derivation     string       `json:"derivation"`
	Context        []Context    `json:"context,omitempty"`
	Differential   Differential `json:"differential"`
}

// Context is one StructureDefinition.context entry; extension SDs carry
// exactly one, anchoring the extension to the element it was found under.
type Context struct {
	Type       string `json:"type"`
	Expression string `json:"expression"`
}

// Differential wraps the element list.
type Differential struct {
	Element []Element `json:"element"`
}

// MarkerExtension is the legacy-fce side-annotation stamped onto every
// generated extension SD's root element, carrying the A-attributes
// property name the extension was originally declared under.
type MarkerExtension struct {
	URL         string `json:"url"`
	ValueString string `json:"valueString"`
}

// ElementType is one ElementDefinition.type entry.
type ElementType struct {
	Code          string   `json:"code"`
	TargetProfile []string `json:"targetProfile,omitempty"`
	Profile       []string `json:"profile,omitempty"`
}

// Slicing is the sole slicing shape this emitter produces: an open
// discriminator-less slice on Extension.extension.
type Slicing struct {
	Rules string `json:"rules"`
}

// Binding is an ElementDefinition.binding, used only for value-set
// bindings on value[x] slices.
type Binding struct {
	Strength string `json:"strength"`
	ValueSet string `json:"valueSet"`
}

// Element is the subset of ElementDefinition this emitter populates.
type Element struct {
	ID        string            `json:"id"`
	Path      string            `json:"path"`
	SliceName string            `json:"sliceName,omitempty"`
	Min       *int              `json:"min,omitempty"`
	Max       string            `json:"max,omitempty"`
	Type      []ElementType     `json:"type,omitempty"`
	Slicing   *Slicing          `json:"slicing,omitempty"`
	Binding   *Binding          `json:"binding,omitempty"`
	FixedURI  string            `json:"fixedUrl,omitempty"`
	Extension []MarkerExtension `json:"extension,omitempty"`
}

func intPtr(v int) *int { return &v }

func cardinality(required, array bool) (min *int, max string) {
	if required {
		min = intPtr(1)
	} else {
		min = intPtr(0)
	}
	if array {
		max = "*"
	} else {
		max = "1"
	}
	return min, max
}
