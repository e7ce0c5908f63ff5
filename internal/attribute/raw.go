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

// Package attribute implements the Attribute Validator (component C1): it
// classifies a raw A-attribute record into a Concrete, Polymorphic, or
// Complex TypedAttribute, rejecting unsupported properties along the way.
package attribute

// Reference is a pointer to another Aidbox entity, identified by id and
// disambiguated by the entity's kind tag (e.g. "Entity", "ValueSet").
type Reference struct {
	ID           string `json:"id" yaml:"id"`
	ResourceType string `json:"resourceType" yaml:"resourceType"`
}

// Raw is the external input record: one path slot of one resource type,
// exactly as authored in an A-attribute file.
type Raw struct {
	ID             string     `json:"id" yaml:"id"`
	Path           []string   `json:"path" yaml:"path"`
	Resource       Reference  `json:"resource" yaml:"resource"`
	Type           *Reference `json:"type,omitempty" yaml:"type,omitempty"`
	Union          []Reference `json:"union,omitempty" yaml:"union,omitempty"`
	ExtensionURL   *string    `json:"extensionUrl,omitempty" yaml:"extensionUrl,omitempty"`
	ValueSet       *Reference `json:"valueSet,omitempty" yaml:"valueSet,omitempty"`
	Refers         []string   `json:"refers,omitempty" yaml:"refers,omitempty"`
	Enum           *string    `json:"enum,omitempty" yaml:"enum,omitempty"`
	IsRequired     *bool      `json:"isRequired,omitempty" yaml:"isRequired,omitempty"`
	IsCollection   *bool      `json:"isCollection,omitempty" yaml:"isCollection,omitempty"`
	IsOpen         *bool      `json:"isOpen,omitempty" yaml:"isOpen,omitempty"`
	Schema         any        `json:"schema,omitempty" yaml:"schema,omitempty"`
	IsUnique       *bool      `json:"isUnique,omitempty" yaml:"isUnique,omitempty"`
	Order          *int64     `json:"order,omitempty" yaml:"order,omitempty"`
	IsSummary      *bool      `json:"isSummary,omitempty" yaml:"isSummary,omitempty"`
	IsModifier     *bool      `json:"isModifier,omitempty" yaml:"isModifier,omitempty"`
}

func boolVal(p *bool) bool {
	return p != nil && *p
}
