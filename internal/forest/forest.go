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

// Package forest implements the Raw Forest Builder (component C2): it
// inserts Typed attributes into a per-resource-type path trie, detecting
// path collisions along the way.
package forest

import (
	"strings"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/attribute"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/collection"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
)

// Node is one slot of a path trie. Interior nodes that were never directly
// asserted hold a nil Attribute.
type Node struct {
	Attribute *attribute.Typed
	Children  *collection.OrderedMap[*Node]
}

func newNode() *Node {
	return &Node{Children: collection.NewOrderedMap[*Node]()}
}

// Trie is the path trie for a single resource type.
type Trie struct {
	ResourceType string
	Root         *Node
}

// Forest is a collection of Trie, one per resource type, keyed by resource
// type name.
type Forest struct {
	ByResourceType *collection.OrderedMap[*Trie]
}

// New returns an empty Forest.
func New() *Forest {
	return &Forest{ByResourceType: collection.NewOrderedMap[*Trie]()}
}

func (f *Forest) trie(resourceType string) *Trie {
	if t, ok := f.ByResourceType.Get(resourceType); ok {
		return t
	}
	t := &Trie{ResourceType: resourceType, Root: newNode()}
	f.ByResourceType.Set(resourceType, t)
	return t
}

// Insert descends the trie for attr.ResourceType, creating missing interior
// nodes, and sets the attribute slot at the addressed path. If that slot is
// already set, the earlier attribute is kept (deterministic first-wins) and
// an AlreadyExists diagnostic is returned.
func (f *Forest) Insert(attr *attribute.Typed) diag.Diagnostics {
	trie := f.trie(attr.ResourceType)
	node := trie.Root
	for _, component := range attr.Path {
		child, ok := node.Children.Get(component)
		if !ok {
			child = newNode()
			node.Children.Set(component, child)
		}
		node = child
	}
	if node.Attribute != nil {
		return diag.Diagnostics{{
			Kind: diag.AlreadyExists,
			Path: strings.Join(node.Attribute.Path, "."),
		}}
	}
	node.Attribute = attr
	return nil
}

// Build inserts every typed attribute into a fresh Forest, in order,
// accumulating diagnostics.
func Build(attrs []*attribute.Typed) (*Forest, diag.Diagnostics) {
	f := New()
	var diags diag.Diagnostics
	for _, attr := range attrs {
		diags = diag.AppendAll(diags, f.Insert(attr))
	}
	return f, diags
}
