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

package extsep

import (
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/kindtree"
)

// Separate walks a kind-annotated root node and returns its
// extension-separated form. If the root itself is an extension, it is
// coerced back to its normal counterpart (RootIsExtension) rather than
// dropped, since a resource's own trie root can never sensibly be an
// extension-only node.
func Separate(id string, root kindtree.Node) (NormalNode, diag.Diagnostics) {
	var diags diag.Diagnostics
	if kindtree.IsExtension(root) {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.RootIsExtension, AttributeID: id})
		root = kindtree.AsNormal(root)
	}
	n, d := separateNormal(root)
	diags = diag.AppendAll(diags, d)
	return n, diags
}

func separateNormal(n kindtree.Node) (NormalNode, diag.Diagnostics) {
	switch v := n.(type) {
	case kindtree.NormalConcrete:
		return separateConcreteChildren(v.Concrete)
	case kindtree.NormalPolymorphic:
		return separatePolymorphic(v.Polymorphic)
	case kindtree.NormalComplex:
		node, ext, diags := splitChildren(v.Children)
		return ComplexNode{
			ID:           v.ID,
			Array:        v.Array,
			Required:     v.Required,
			Open:         v.Open,
			ResourceType: v.ResourceType,
			Children:     node,
			ExtChildren:  ext,
		}, diags
	default: // kindtree.NormalInferred
		inferred := n.(kindtree.NormalInferred)
		node, ext, diags := splitChildren(inferred.Children)
		return InferredNode{Children: node, ExtChildren: ext}, diags
	}
}

// separateConcreteChildren converts a concrete node, flagging any children
// it was declared with: a concrete attribute is a leaf by definition.
func separateConcreteChildren(c kindtree.Concrete) (NormalNode, diag.Diagnostics) {
	var diags diag.Diagnostics
	if c.Children.Len() > 0 {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ConcreteHasChild, AttributeID: c.ID})
	}
	return ConcreteNode{
		ID:           c.ID,
		Array:        c.Array,
		Required:     c.Required,
		ResourceType: c.ResourceType,
		Target:       c.Target,
		ValueSet:     c.ValueSet,
		Refers:       c.Refers,
	}, diags
}

// separatePolymorphic flattens a polymorphic node's children into leaves,
// rejecting any shape a polymorphic target cannot declare: an extension
// URL, a non-concrete child, an inferred (undeclared) child, an array, or
// a required flag.
func separatePolymorphic(p kindtree.Polymorphic) (NormalNode, diag.Diagnostics) {
	var diags diag.Diagnostics
	leaves := collection.NewOrderedMap[PolymorphicLeaf]()
	p.Children.Range(func(name string, child kindtree.Node) bool {
		switch cv := child.(type) {
		case kindtree.NormalConcrete:
			if cv.Array {
				diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolymorphicChildHasArray, AttributeID: cv.ID})
			}
			if cv.Required {
				diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolymorphicChildIsRequired, AttributeID: cv.ID})
			}
			if cv.Children.Len() > 0 {
				diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ConcreteHasChild, AttributeID: cv.ID})
			}
			leaves.Set(name, PolymorphicLeaf{
				ID:       cv.ID,
				Target:   cv.Target,
				ValueSet: cv.ValueSet,
				Refers:   cv.Refers,
			})
		case kindtree.ExtConcrete, kindtree.ExtPolymorphic, kindtree.ExtComplex:
			diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolymorphicChildExtension, AttributeID: p.ID, ChildProp: name})
		case kindtree.NormalInferred:
			diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolymorphicInferredChild, AttributeID: p.ID, ChildProp: name})
		default:
			diags = diag.Append(diags, diag.Diagnostic{Kind: diag.PolymorphicNonConcreteChild, AttributeID: p.ID, ChildProp: name})
		}
		return true
	})
	return PolymorphicNode{
		ID:           p.ID,
		Path:         p.Path,
		Array:        p.Array,
		Required:     p.Required,
		ResourceType: p.ResourceType,
		Targets:      p.Targets,
		Leaves:       leaves,
	}, diags
}

// splitChildren partitions a children map into normal and extension maps,
// recursing into each side appropriately.
func splitChildren(children *collection.OrderedMap[kindtree.Node]) (*collection.OrderedMap[NormalNode], *collection.OrderedMap[Extension], diag.Diagnostics) {
	normal := collection.NewOrderedMap[NormalNode]()
	ext := collection.NewOrderedMap[Extension]()
	var diags diag.Diagnostics
	children.Range(func(name string, child kindtree.Node) bool {
		if kindtree.IsExtension(child) {
			e, d := separateExtension(child)
			diags = diag.AppendAll(diags, d)
			ext.Set(name, e)
			return true
		}
		n, d := separateNormal(child)
		diags = diag.AppendAll(diags, d)
		normal.Set(name, n)
		return true
	})
	return normal, ext, diags
}

func separateExtension(n kindtree.Node) (Extension, diag.Diagnostics) {
	switch v := n.(type) {
	case kindtree.ExtConcrete:
		node, diags := separateConcreteChildren(v.Concrete)
		return ConcreteExtension{ConcreteNode: node.(ConcreteNode), FCE: v.FCE}, diags
	case kindtree.ExtPolymorphic:
		node, diags := separatePolymorphic(v.Polymorphic)
		return PolymorphicExtension{PolymorphicNode: node.(PolymorphicNode), FCE: v.FCE}, diags
	default: // kindtree.ExtComplex
		ec := n.(kindtree.ExtComplex)
		var diags diag.Diagnostics
		extChildren := collection.NewOrderedMap[Extension]()
		ec.Children.Range(func(name string, child kindtree.Node) bool {
			if !kindtree.IsExtension(child) {
				if _, inferred := child.(kindtree.NormalInferred); inferred {
					diags = diag.Append(diags, diag.Diagnostic{
						Kind: diag.MissingChild, ParentID: ec.ID, ChildProp: name,
					})
					return true
				}
				diags = diag.Append(diags, diag.Diagnostic{
					Kind: diag.NonExtensionInsideExtension, ParentID: ec.ID, ChildID: childID(child), ChildProp: name,
				})
				return true
			}
			e, d := separateExtension(child)
			diags = diag.AppendAll(diags, d)
			extChildren.Set(name, e)
			return true
		})
		return ComplexExtension{
			ID:           ec.ID,
			Array:        ec.Array,
			Required:     ec.Required,
			Open:         ec.Open,
			ResourceType: ec.ResourceType,
			FCE:          ec.FCE,
			ExtChildren:  extChildren,
		}, diags
	}
}

func childID(n kindtree.Node) string {
	switch v := n.(type) {
	case kindtree.NormalConcrete:
		return v.ID
	case kindtree.NormalPolymorphic:
		return v.ID
	case kindtree.NormalComplex:
		return v.ID
	case kindtree.ExtConcrete:
		return v.ID
	case kindtree.ExtPolymorphic:
		return v.ID
	case kindtree.ExtComplex:
		return v.ID
	default:
		return ""
	}
}
