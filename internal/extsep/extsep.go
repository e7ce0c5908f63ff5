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

// Package extsep implements the Extension Separator (component C4): for
// every complex/inferred node it partitions children into a "normal
// children" map and an "extension children" map, both still keyed by
// property name, and flattens polymorphic children into leaves.
package extsep

import "github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"

// NormalNode is any of the four extension-separated normal node variants.
type NormalNode interface {
	isNormalNode()
}

// Extension is any of the three extension-separated extension variants.
type Extension interface {
	isExtension()
	url() string
}

// ConcreteNode is a childless concrete leaf.
type ConcreteNode struct {
	ID           string
	Array        bool
	Required     bool
	ResourceType string
	Target       string
	ValueSet     *string
	Refers       []string
}

// ConcreteExtension is ConcreteNode declared under an extension URL.
type ConcreteExtension struct {
	ConcreteNode
	FCE string
}

// PolymorphicLeaf is a flattened concrete child of a polymorphic node: no
// nested children, no array, no required.
type PolymorphicLeaf struct {
	ID       string
	Target   string
	ValueSet *string
	Refers   []string
}

// PolymorphicNode carries only flattened polymorphic leaves, keyed by
// property name.
type PolymorphicNode struct {
	ID           string
	Path         []string
	Array        bool
	Required     bool
	ResourceType string
	Targets      []string
	Leaves       *collection.OrderedMap[PolymorphicLeaf]
}

// PolymorphicExtension is PolymorphicNode declared under an extension URL.
type PolymorphicExtension struct {
	PolymorphicNode
	FCE string
}

// ComplexNode splits its children into normal and extension maps, both
// keyed by property name.
type ComplexNode struct {
	ID           string
	Array        bool
	Required     bool
	Open         bool
	ResourceType string
	Children     *collection.OrderedMap[NormalNode]
	ExtChildren  *collection.OrderedMap[Extension]
}

// ComplexExtension is ComplexNode declared under an extension URL; all of
// its children must themselves be extensions, so it carries only the
// extension map.
type ComplexExtension struct {
	ID           string
	Array        bool
	Required     bool
	Open         bool
	ResourceType string
	FCE          string
	ExtChildren  *collection.OrderedMap[Extension]
}

// InferredNode is an interior node never directly declared; like
// ComplexNode it splits children into normal and extension maps.
type InferredNode struct {
	Children    *collection.OrderedMap[NormalNode]
	ExtChildren *collection.OrderedMap[Extension]
}

func (ConcreteNode) isNormalNode()    {}
func (PolymorphicNode) isNormalNode() {}
func (ComplexNode) isNormalNode()     {}
func (InferredNode) isNormalNode()    {}

func (ConcreteExtension) isExtension()    {}
func (PolymorphicExtension) isExtension() {}
func (ComplexExtension) isExtension()     {}

func (e ConcreteExtension) url() string    { return e.FCE }
func (e PolymorphicExtension) url() string { return e.FCE }
func (e ComplexExtension) url() string     { return e.FCE }

// URL returns the extension URL carried by any Extension variant.
func URL(e Extension) string { return e.url() }
