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
	"testing"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/kindtree"
)

func concreteLeaf(id string, children *collection.OrderedMap[kindtree.Node]) kindtree.Concrete {
	if children == nil {
		children = collection.NewOrderedMap[kindtree.Node]()
	}
	return kindtree.Concrete{ID: id, Target: "string", Children: children}
}

func TestSeparateConcreteWithChildrenEmitsDiagnostic(t *testing.T) {
	children := collection.NewOrderedMap[kindtree.Node]()
	children.Set("oops", kindtree.NormalConcrete{concreteLeaf("oops", nil)})
	root := kindtree.NormalConcrete{concreteLeaf("x", children)}

	_, diags := Separate("x", root)
	if len(diags) != 1 || diags[0].Kind != diag.ConcreteHasChild {
		t.Fatalf("Separate() diagnostics = %v, want a single ConcreteHasChild", diags)
	}
}

func TestSeparateRootExtensionIsCoerced(t *testing.T) {
	root := kindtree.ExtConcrete{Concrete: concreteLeaf("x", nil), FCE: "http://example.org/ext"}

	n, diags := Separate("x", root)
	if len(diags) != 1 || diags[0].Kind != diag.RootIsExtension {
		t.Fatalf("Separate() diagnostics = %v, want a single RootIsExtension", diags)
	}
	if _, ok := n.(ConcreteNode); !ok {
		t.Errorf("Separate() node = %T, want ConcreteNode (coerced to normal)", n)
	}
}

func TestSeparatePolymorphicFlattensValidLeaves(t *testing.T) {
	children := collection.NewOrderedMap[kindtree.Node]()
	children.Set("quantity", kindtree.NormalConcrete{concreteLeaf("q", nil)})
	root := kindtree.NormalPolymorphic{kindtree.Polymorphic{ID: "p", Children: children, Targets: []string{"string"}}}

	n, diags := Separate("p", root)
	if len(diags) != 0 {
		t.Fatalf("Separate() diagnostics = %v, want none", diags)
	}
	poly, ok := n.(PolymorphicNode)
	if !ok {
		t.Fatalf("Separate() node = %T, want PolymorphicNode", n)
	}
	if poly.Leaves.Len() != 1 {
		t.Errorf("Leaves.Len() = %d, want 1", poly.Leaves.Len())
	}
}

func TestSeparatePolymorphicChildCardinalityRejected(t *testing.T) {
	childConcrete := concreteLeaf("q", nil)
	childConcrete.Array = true
	childConcrete.Required = true
	children := collection.NewOrderedMap[kindtree.Node]()
	children.Set("quantity", kindtree.NormalConcrete{childConcrete})
	root := kindtree.NormalPolymorphic{kindtree.Polymorphic{ID: "p", Children: children}}

	_, diags := Separate("p", root)
	var kinds []diag.Kind
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	if !containsKind(kinds, diag.PolymorphicChildHasArray) || !containsKind(kinds, diag.PolymorphicChildIsRequired) {
		t.Errorf("Separate() diagnostics = %v, want PolymorphicChildHasArray and PolymorphicChildIsRequired", diags)
	}
}

func TestSeparateComplexSplitsNormalAndExtensionChildren(t *testing.T) {
	children := collection.NewOrderedMap[kindtree.Node]()
	children.Set("normalChild", kindtree.NormalConcrete{concreteLeaf("n", nil)})
	children.Set("extChild", kindtree.ExtConcrete{Concrete: concreteLeaf("e", nil), FCE: "http://example.org/ext"})
	root := kindtree.NormalComplex{kindtree.Complex{ID: "c", Children: children}}

	n, diags := Separate("c", root)
	if len(diags) != 0 {
		t.Fatalf("Separate() diagnostics = %v, want none", diags)
	}
	complex, ok := n.(ComplexNode)
	if !ok {
		t.Fatalf("Separate() node = %T, want ComplexNode", n)
	}
	if complex.Children.Len() != 1 || complex.ExtChildren.Len() != 1 {
		t.Errorf("Children.Len()=%d ExtChildren.Len()=%d, want 1 and 1", complex.Children.Len(), complex.ExtChildren.Len())
	}
}

func TestSeparateComplexExtensionRejectsNonExtensionChild(t *testing.T) {
	children := collection.NewOrderedMap[kindtree.Node]()
	children.Set("normalChild", kindtree.NormalConcrete{concreteLeaf("n", nil)})
	rootChildren := collection.NewOrderedMap[kindtree.Node]()
	rootChildren.Set("ext", kindtree.ExtComplex{Complex: kindtree.Complex{ID: "c", Children: children}, FCE: "http://example.org/ext"})
	root := kindtree.NormalInferred{kindtree.Inferred{Children: rootChildren}}

	_, diags := Separate("r", root)
	if len(diags) != 1 || diags[0].Kind != diag.NonExtensionInsideExtension {
		t.Fatalf("Separate() diagnostics = %v, want a single NonExtensionInsideExtension", diags)
	}
}

func TestSeparateComplexExtensionRejectsInferredChild(t *testing.T) {
	grandchildren := collection.NewOrderedMap[kindtree.Node]()
	grandchildren.Set("leaf", kindtree.NormalConcrete{concreteLeaf("leaf", nil)})
	children := collection.NewOrderedMap[kindtree.Node]()
	children.Set("inferredChild", kindtree.NormalInferred{kindtree.Inferred{Children: grandchildren}})
	rootChildren := collection.NewOrderedMap[kindtree.Node]()
	rootChildren.Set("ext", kindtree.ExtComplex{Complex: kindtree.Complex{ID: "c", Children: children}, FCE: "http://example.org/ext"})
	root := kindtree.NormalInferred{kindtree.Inferred{Children: rootChildren}}

	_, diags := Separate("r", root)
	if len(diags) != 1 || diags[0].Kind != diag.MissingChild {
		t.Fatalf("Separate() diagnostics = %v, want a single MissingChild", diags)
	}
	if diags[0].ParentID != "c" || diags[0].ChildProp != "inferredChild" {
		t.Errorf("MissingChild diagnostic = %+v, want ParentID=c ChildProp=inferredChild", diags[0])
	}
}

func containsKind(kinds []diag.Kind, want diag.Kind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
