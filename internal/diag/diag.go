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

// Package diag is the diagnostic plumbing shared by every pipeline stage
// (component C7). Every stage returns its result alongside a Diagnostics
// slice instead of aborting on the first problem; nothing in this package
// panics or returns a bare error for a validation failure.
//
// The shape mirrors util.Errors in the teacher repo (a plain
// append-and-carry-on slice of error) but carries a typed Kind plus the
// offending attribute id and any relevant field values, since the driver
// needs to filter by Kind (see Diagnostics.WithoutKinds) and print
// structured detail, not just a message.
package diag

import "fmt"

// Kind identifies the taxonomy of a Diagnostic, as enumerated in the
// project's error handling design.
type Kind string

const (
	// Unsupported input.
	SchemaPresent   Kind = "SchemaPresent"
	SummaryPresent  Kind = "SummaryPresent"
	ModifierPresent Kind = "ModifierPresent"
	UniquePresent   Kind = "UniquePresent"
	OrderPresent    Kind = "OrderPresent"

	// Mis-shaped attribute.
	InvalidKind               Kind = "InvalidKind"
	InvalidEntityReference    Kind = "InvalidEntityReference"
	InvalidValuesetReference  Kind = "InvalidValuesetReference"
	ValueSetOnWrongType       Kind = "ValueSetOnWrongType"
	EnumOnNonStringType       Kind = "EnumOnNonStringType"
	RefersOnNonReferenceType  Kind = "RefersOnNonReferenceType"
	ConcreteOpenSchema        Kind = "ConcreteOpenSchema"

	// Polymorphic-specific.
	PolyValueSetPresent Kind = "PolyValueSetPresent"
	PolyOpenSchema      Kind = "PolyOpenSchema"
	PolyEnumPresent     Kind = "PolyEnumPresent"
	PolyRefersPresent   Kind = "PolyRefersPresent"
	PolyNoTargets       Kind = "PolyNoTargets"

	// Complex-specific.
	ComplexValueSetPresent Kind = "ComplexValueSetPresent"
	ComplexEnumPresent     Kind = "ComplexEnumPresent"
	ComplexRefersPresent   Kind = "ComplexRefersPresent"

	// Structural (C4/C5).
	AlreadyExists               Kind = "AlreadyExists"
	ConcreteHasChild            Kind = "ConcreteHasChild"
	PolymorphicChildExtension   Kind = "PolymorphicChildExtension"
	PolymorphicNonConcreteChild Kind = "PolymorphicNonConcreteChild"
	PolymorphicInferredChild    Kind = "PolymorphicInferredChild"
	PolymorphicChildHasArray    Kind = "PolymorphicChildHasArray"
	PolymorphicChildIsRequired  Kind = "PolymorphicChildIsRequired"
	RootIsExtension             Kind = "RootIsExtension"
	NonExtensionInsideExtension Kind = "NonExtensionInsideExtension"
	MissingChild                Kind = "MissingChild"
	DuplicateExtensionUrl       Kind = "DuplicateExtensionUrl"
	PolymorphicUndeclaredTarget Kind = "PolymorphicUndeclaredTarget"

	// I/O / boundary.
	Walk                     Kind = "Walk"
	ReadFile                 Kind = "ReadFile"
	BadJson                  Kind = "BadJson"
	BadYaml                  Kind = "BadYaml"
	MissingResourceType      Kind = "MissingResourceType"
	NotSupportedResourceType Kind = "NotSupportedResourceType"
	NotAllowedTargetResource Kind = "NotAllowedTargetResource"
)

// Diagnostic carries the kind of problem plus whatever context is relevant
// to it. Not every field is populated for every Kind; AttributeID is set
// whenever the diagnostic traces back to one input record.
type Diagnostic struct {
	Kind        Kind
	AttributeID string
	Path        string
	Field       string
	Value       string
	URL         string
	Target      string
	ParentID    string
	ChildID     string
	ChildProp   string
	File        string
	Err         error
}

// Error implements the error interface so a Diagnostic can be used directly
// wherever an error is expected (e.g. wrapping from os/io calls).
func (d Diagnostic) Error() string {
	switch d.Kind {
	case SchemaPresent:
		return fmt.Sprintf("attribute %s: JSON Schema is not supported", d.AttributeID)
	case SummaryPresent:
		return fmt.Sprintf("attribute %s: isSummary is not supported", d.AttributeID)
	case ModifierPresent:
		return fmt.Sprintf("attribute %s: isModifier is not supported", d.AttributeID)
	case UniquePresent:
		return fmt.Sprintf("attribute %s: isUnique is not supported", d.AttributeID)
	case OrderPresent:
		return fmt.Sprintf("attribute %s: order is not supported", d.AttributeID)
	case InvalidKind:
		return fmt.Sprintf("attribute %s: both type and union are present", d.AttributeID)
	case InvalidEntityReference:
		return fmt.Sprintf("attribute %s: invalid entity reference %s", d.AttributeID, d.Value)
	case InvalidValuesetReference:
		return fmt.Sprintf("attribute %s: invalid ValueSet reference %s", d.AttributeID, d.Value)
	case ValueSetOnWrongType:
		return fmt.Sprintf("attribute %s: valueSet binding declared on type not supporting bindings: %s", d.AttributeID, d.Target)
	case EnumOnNonStringType:
		return fmt.Sprintf("attribute %s: enum specified on non-string type: %s", d.AttributeID, d.Target)
	case RefersOnNonReferenceType:
		return fmt.Sprintf("attribute %s: refers binding on non-reference type: %s", d.AttributeID, d.Target)
	case ConcreteOpenSchema:
		return fmt.Sprintf("attribute %s: isOpen is not allowed on target attributes", d.AttributeID)
	case PolyValueSetPresent:
		return fmt.Sprintf("attribute %s: ValueSet binding on polymorphic is not allowed", d.AttributeID)
	case PolyOpenSchema:
		return fmt.Sprintf("attribute %s: isOpen on polymorphic is not allowed", d.AttributeID)
	case PolyEnumPresent:
		return fmt.Sprintf("attribute %s: enum on polymorphic is not allowed", d.AttributeID)
	case PolyRefersPresent:
		return fmt.Sprintf("attribute %s: reference target binding on polymorphic is not allowed", d.AttributeID)
	case PolyNoTargets:
		return fmt.Sprintf("attribute %s: empty list of union targets", d.AttributeID)
	case ComplexValueSetPresent:
		return fmt.Sprintf("attribute %s: ValueSet binding is not allowed on complex attributes", d.AttributeID)
	case ComplexEnumPresent:
		return fmt.Sprintf("attribute %s: enum is not allowed on complex attributes", d.AttributeID)
	case ComplexRefersPresent:
		return fmt.Sprintf("attribute %s: refers is not allowed on complex attributes", d.AttributeID)
	case AlreadyExists:
		return fmt.Sprintf("path %s already exists", d.Path)
	case ConcreteHasChild:
		return fmt.Sprintf("node %s: concrete element has a child", d.AttributeID)
	case PolymorphicChildExtension:
		return fmt.Sprintf("node %s: polymorphic has child with extension", d.AttributeID)
	case PolymorphicNonConcreteChild:
		return fmt.Sprintf("node %s: polymorphic has non-concrete child", d.AttributeID)
	case PolymorphicInferredChild:
		return fmt.Sprintf("node %s: polymorphic has inferred (undeclared) child", d.AttributeID)
	case PolymorphicChildHasArray:
		return fmt.Sprintf("node %s: polymorphic target declares isCollection", d.AttributeID)
	case PolymorphicChildIsRequired:
		return fmt.Sprintf("node %s: polymorphic target declares isRequired", d.AttributeID)
	case RootIsExtension:
		return fmt.Sprintf("resource %s: trie root is an extension", d.AttributeID)
	case NonExtensionInsideExtension:
		return fmt.Sprintf("node %s: non-extension child %s inside extension", d.ParentID, d.ChildID)
	case MissingChild:
		return fmt.Sprintf("node %s: missing declared child %q", d.ParentID, d.ChildProp)
	case DuplicateExtensionUrl:
		return fmt.Sprintf("duplicate extension url %s", d.URL)
	case PolymorphicUndeclaredTarget:
		return fmt.Sprintf("attribute %s: polymorphic target %s not in declared union", d.AttributeID, d.Target)
	case Walk:
		return fmt.Sprintf("walking %s: %v", d.File, d.Err)
	case ReadFile:
		return fmt.Sprintf("reading %s: %v", d.File, d.Err)
	case BadJson:
		return fmt.Sprintf("%s: could not parse as JSON: %v", d.File, d.Err)
	case BadYaml:
		return fmt.Sprintf("%s: could not parse as YAML: %v", d.File, d.Err)
	case MissingResourceType:
		return fmt.Sprintf("%s: missing resourceType field", d.File)
	case NotSupportedResourceType:
		return fmt.Sprintf("%s: unsupported resourceType %q", d.File, d.Value)
	case NotAllowedTargetResource:
		return fmt.Sprintf("attribute %s: resource type %q is not in the known resource type list", d.AttributeID, d.Target)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.AttributeID)
	}
}

// Diagnostics is an accumulating slice of Diagnostic, mirroring the
// teacher's util.Errors accumulator shape (AppendErr/AppendErrs/ToString).
type Diagnostics []Diagnostic

// Append appends d to diags and returns the result.
func Append(diags Diagnostics, d Diagnostic) Diagnostics {
	return append(diags, d)
}

// AppendAll appends every diagnostic in more to diags and returns the result.
func AppendAll(diags Diagnostics, more Diagnostics) Diagnostics {
	return append(diags, more...)
}

// Error implements the error interface, joining every diagnostic's message.
func (d Diagnostics) Error() string {
	return d.String()
}

// String renders every diagnostic, one per line.
func (d Diagnostics) String() string {
	var out string
	for i, diagnostic := range d {
		if i != 0 {
			out += "\n"
		}
		out += diagnostic.Error()
	}
	return out
}

// WithoutKinds returns a copy of d with every diagnostic whose Kind is in
// kinds removed. Used by the driver to implement --ignore-flags.
func (d Diagnostics) WithoutKinds(kinds ...Kind) Diagnostics {
	if len(kinds) == 0 {
		return d
	}
	drop := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		drop[k] = true
	}
	out := make(Diagnostics, 0, len(d))
	for _, diagnostic := range d {
		if !drop[diagnostic.Kind] {
			out = append(out, diagnostic)
		}
	}
	return out
}
