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

package kindtree

import (
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/attribute"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/forest"
)

// Lift recursively transforms a raw path-trie node into its kind-annotated
// form. It never fails: every raw node has an unambiguous lifted shape.
func Lift(n *forest.Node) Node {
	children := collection.NewOrderedMap[Node]()
	n.Children.Range(func(name string, child *forest.Node) bool {
		children.Set(name, Lift(child))
		return true
	})

	attr := n.Attribute
	if attr == nil {
		return NormalInferred{Inferred{Children: children}}
	}

	switch attr.Kind {
	case attribute.KindConcrete:
		payload := Concrete{
			ID:           attr.ID,
			Array:        attr.Array,
			Required:     attr.Required,
			ResourceType: attr.ResourceType,
			Target:       attr.Concrete.Target,
			ValueSet:     attr.Concrete.ValueSet,
			Refers:       attr.Concrete.Refers,
			Children:     children,
		}
		if attr.FCE != nil {
			return ExtConcrete{Concrete: payload, FCE: *attr.FCE}
		}
		return NormalConcrete{payload}
	case attribute.KindPolymorphic:
		payload := Polymorphic{
			ID:           attr.ID,
			Path:         attr.Path,
			Array:        attr.Array,
			Required:     attr.Required,
			ResourceType: attr.ResourceType,
			Targets:      attr.Polymorphic.Targets,
			Children:     children,
		}
		if attr.FCE != nil {
			return ExtPolymorphic{Polymorphic: payload, FCE: *attr.FCE}
		}
		return NormalPolymorphic{payload}
	default: // attribute.KindComplex
		payload := Complex{
			ID:           attr.ID,
			Array:        attr.Array,
			Required:     attr.Required,
			Open:         attr.Complex.Open,
			ResourceType: attr.ResourceType,
			Children:     children,
		}
		if attr.FCE != nil {
			return ExtComplex{Complex: payload, FCE: *attr.FCE}
		}
		return NormalComplex{payload}
	}
}
