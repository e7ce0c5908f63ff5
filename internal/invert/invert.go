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

// Package invert implements the Extension Inverter (component C5): it
// re-keys every node's extension children by their declared extension URL
// instead of by property name, and folds both concrete and polymorphic
// extension children into a single SimpleExtension shape keyed by target
// type - FHIR models an extension's value[x] as a choice of types, not as
// a property name, so a concrete extension is simply the one-target case
// of the same shape a polymorphic extension produces.
package invert

import "github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"

// NormalNode is any of the four url-inverted normal node variants.
type NormalNode interface {
	isNormalNode()
}

// Extension is either a SimpleExtension (a value[x] choice of types) or a
// ComplexExtension (a container of nested sub-extensions).
type Extension interface {
	isExtension()
}

// ConcreteNode is a childless concrete leaf, unchanged from extsep.
type ConcreteNode struct {
	ID           string
	Array        bool
	Required     bool
	ResourceType string
	Target       string
	ValueSet     *string
	Refers       []string
}

// PolymorphicLeaf mirrors extsep.PolymorphicLeaf.
type PolymorphicLeaf struct {
	ID       string
	Target   string
	ValueSet *string
	Refers   []string
}

// PolymorphicNode carries flattened polymorphic leaves, unchanged from
// extsep aside from recursion through this package's own node types.
type PolymorphicNode struct {
	ID           string
	Path         []string
	Array        bool
	Required     bool
	ResourceType string
	Targets      []string
	Leaves       *collection.OrderedMap[PolymorphicLeaf]
}

// ComplexNode splits normal children (by property name, as before) from
// extension children (now by URL).
type ComplexNode struct {
	ID           string
	Array        bool
	Required     bool
	Open         bool
	ResourceType string
	Children     *collection.OrderedMap[NormalNode]
	Extensions   *collection.OrderedMap[Extension]
}

// InferredNode is an interior node never directly declared.
type InferredNode struct {
	Children   *collection.OrderedMap[NormalNode]
	Extensions *collection.OrderedMap[Extension]
}

// ExtensionTarget is one type choice of a SimpleExtension's value[x].
type ExtensionTarget struct {
	ValueSet *string
	Refers   []string
}

// SimpleExtension is an extension whose content is a single value element,
// which may itself be a choice of several types (Targets has more than one
// entry only when folded from a polymorphic extension child).
type SimpleExtension struct {
	URL         string
	FCEProperty string
	Array       bool
	Required    bool
	Targets     *collection.OrderedMap[ExtensionTarget]
}

// ComplexExtension is an extension whose content is itself a set of
// nested sub-extensions, keyed by their own URL.
type ComplexExtension struct {
	URL         string
	FCEProperty string
	Array       bool
	Required    bool
	Open        bool
	Children    *collection.OrderedMap[Extension]
}

func (ConcreteNode) isNormalNode()    {}
func (PolymorphicNode) isNormalNode() {}
func (ComplexNode) isNormalNode()     {}
func (InferredNode) isNormalNode()    {}

func (SimpleExtension) isExtension()  {}
func (ComplexExtension) isExtension() {}
