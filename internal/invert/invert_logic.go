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

package invert

import (
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/extsep"
)

// Invert converts an extension-separated root node into its url-inverted
// form, recursing through every normal child and re-keying every
// extension map by URL along the way.
func Invert(n extsep.NormalNode) (NormalNode, diag.Diagnostics) {
	switch v := n.(type) {
	case extsep.ConcreteNode:
		return ConcreteNode{
			ID:           v.ID,
			Array:        v.Array,
			Required:     v.Required,
			ResourceType: v.ResourceType,
			Target:       v.Target,
			ValueSet:     v.ValueSet,
			Refers:       v.Refers,
		}, nil
	case extsep.PolymorphicNode:
		leaves := collection.NewOrderedMap[PolymorphicLeaf]()
		v.Leaves.Range(func(name string, leaf extsep.PolymorphicLeaf) bool {
			leaves.Set(name, PolymorphicLeaf{
				ID: leaf.ID, Target: leaf.Target, ValueSet: leaf.ValueSet, Refers: leaf.Refers,
			})
			return true
		})
		return PolymorphicNode{
			ID: v.ID, Path: v.Path, Array: v.Array, Required: v.Required,
			ResourceType: v.ResourceType, Targets: v.Targets, Leaves: leaves,
		}, nil
	case extsep.ComplexNode:
		children, diags := invertChildren(v.Children)
		exts, d := invertExtensionMap(v.ExtChildren)
		diags = diag.AppendAll(diags, d)
		return ComplexNode{
			ID: v.ID, Array: v.Array, Required: v.Required, Open: v.Open,
			ResourceType: v.ResourceType, Children: children, Extensions: exts,
		}, diags
	default: // extsep.InferredNode
		iv := n.(extsep.InferredNode)
		children, diags := invertChildren(iv.Children)
		exts, d := invertExtensionMap(iv.ExtChildren)
		diags = diag.AppendAll(diags, d)
		return InferredNode{Children: children, Extensions: exts}, diags
	}
}

func invertChildren(children *collection.OrderedMap[extsep.NormalNode]) (*collection.OrderedMap[NormalNode], diag.Diagnostics) {
	out := collection.NewOrderedMap[NormalNode]()
	var diags diag.Diagnostics
	children.Range(func(name string, child extsep.NormalNode) bool {
		n, d := Invert(child)
		diags = diag.AppendAll(diags, d)
		out.Set(name, n)
		return true
	})
	return out, diags
}

// invertExtensionMap re-keys a property-keyed extension map by URL,
// flagging any URL collision between two distinctly-named children and
// keeping the first.
func invertExtensionMap(children *collection.OrderedMap[extsep.Extension]) (*collection.OrderedMap[Extension], diag.Diagnostics) {
	out := collection.NewOrderedMap[Extension]()
	var diags diag.Diagnostics
	children.Range(func(name string, child extsep.Extension) bool {
		url := extsep.URL(child)
		if out.Has(url) {
			diags = diag.Append(diags, diag.Diagnostic{Kind: diag.DuplicateExtensionUrl, URL: url, ChildProp: name})
			return true
		}
		e, d := invertExtension(name, child)
		diags = diag.AppendAll(diags, d)
		out.Set(url, e)
		return true
	})
	return out, diags
}

func invertExtension(property string, e extsep.Extension) (Extension, diag.Diagnostics) {
	switch v := e.(type) {
	case extsep.ConcreteExtension:
		targets := collection.NewOrderedMap[ExtensionTarget]()
		targets.Set(v.Target, ExtensionTarget{ValueSet: v.ValueSet, Refers: v.Refers})
		return SimpleExtension{
			URL: v.FCE, FCEProperty: property, Array: v.Array, Required: v.Required, Targets: targets,
		}, nil
	case extsep.PolymorphicExtension:
		var diags diag.Diagnostics
		declared := make(map[string]bool, len(v.Targets))
		for _, t := range v.Targets {
			declared[t] = true
		}
		targets := collection.NewOrderedMap[ExtensionTarget]()
		v.Leaves.Range(func(_ string, leaf extsep.PolymorphicLeaf) bool {
			if !declared[leaf.Target] {
				diags = diag.Append(diags, diag.Diagnostic{
					Kind: diag.PolymorphicUndeclaredTarget, AttributeID: v.ID, Target: leaf.Target,
				})
			}
			targets.Set(leaf.Target, ExtensionTarget{ValueSet: leaf.ValueSet, Refers: leaf.Refers})
			return true
		})
		return SimpleExtension{
			URL: v.FCE, FCEProperty: property, Array: v.Array, Required: v.Required, Targets: targets,
		}, diags
	default: // extsep.ComplexExtension
		cv := e.(extsep.ComplexExtension)
		children, diags := invertExtensionMap(cv.ExtChildren)
		return ComplexExtension{
			URL: cv.FCE, FCEProperty: property, Array: cv.Array, Required: cv.Required, Open: cv.Open, Children: children,
		}, diags
	}
}
