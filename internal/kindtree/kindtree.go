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

// Package kindtree implements the Kind-Annotated Lifter (component C3): it
// converts untyped path-trie nodes into kind-tagged nodes, inferring
// interior structure where no attribute was ever directly declared.
//
// Node is a disjoint tagged union implemented Go-style: an interface with
// an unexported marker method, and one concrete type per variant, switched
// over exhaustively by every consumer (see internal/extsep).
package kindtree

import "github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"

// Node is any of the seven kind-annotated node variants.
type Node interface {
	isNode()
}

// Concrete is the shared payload of a concrete attribute, normal or
// extension.
type Concrete struct {
	ID           string
	Array        bool
	Required     bool
	ResourceType string
	Target       string
	ValueSet     *string
	Refers       []string
	Children     *collection.OrderedMap[Node]
}

// Polymorphic is the shared payload of a polymorphic attribute, normal or
// extension.
type Polymorphic struct {
	ID           string
	Path         []string
	Array        bool
	Required     bool
	ResourceType string
	Targets      []string
	Children     *collection.OrderedMap[Node]
}

// Complex is the shared payload of a complex attribute, normal or
// extension.
type Complex struct {
	ID           string
	Array        bool
	Required     bool
	Open         bool
	ResourceType string
	Children     *collection.OrderedMap[Node]
}

// Inferred is an interior path component that was never directly declared.
type Inferred struct {
	Children *collection.OrderedMap[Node]
}

// NormalConcrete is a Concrete attribute with no extension URL.
type NormalConcrete struct{ Concrete }

// NormalPolymorphic is a Polymorphic attribute with no extension URL.
type NormalPolymorphic struct{ Polymorphic }

// NormalComplex is a Complex attribute with no extension URL.
type NormalComplex struct{ Complex }

// NormalInferred is an interior node never directly declared.
type NormalInferred struct{ Inferred }

// ExtConcrete is a Concrete attribute declared under an extension URL.
type ExtConcrete struct {
	Concrete
	FCE string
}

// ExtPolymorphic is a Polymorphic attribute declared under an extension URL.
type ExtPolymorphic struct {
	Polymorphic
	FCE string
}

// ExtComplex is a Complex attribute declared under an extension URL.
type ExtComplex struct {
	Complex
	FCE string
}

func (NormalConcrete) isNode()    {}
func (NormalPolymorphic) isNode() {}
func (NormalComplex) isNode()     {}
func (NormalInferred) isNode()    {}
func (ExtConcrete) isNode()       {}
func (ExtPolymorphic) isNode()    {}
func (ExtComplex) isNode()        {}

// IsExtension reports whether n is one of the three Extension variants.
func IsExtension(n Node) bool {
	switch n.(type) {
	case ExtConcrete, ExtPolymorphic, ExtComplex:
		return true
	default:
		return false
	}
}

// AsNormal converts an Extension-variant node to its Normal counterpart,
// discarding the extension URL. Used when the trie root is an Extension
// (RootIsExtension) and must be coerced back into a usable tree.
func AsNormal(n Node) Node {
	switch v := n.(type) {
	case ExtConcrete:
		return NormalConcrete{Concrete: v.Concrete}
	case ExtPolymorphic:
		return NormalPolymorphic{Polymorphic: v.Polymorphic}
	case ExtComplex:
		return NormalComplex{Complex: v.Complex}
	default:
		return n
	}
}
