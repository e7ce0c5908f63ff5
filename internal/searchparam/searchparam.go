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

// Package searchparam decodes SearchParameter source records just far
// enough to confirm they parse; conversion to a path expression is out of
// scope, so SearchParameter (decoded by internal/source) is a typed
// pass-through rather than a rejection - only
// an unrecognized resourceType is a diagnostic, not a SearchParameter one.
package searchparam

// SearchParameter is the subset of the resource this tool ever looks at:
// enough to log what was skipped and why, nothing more.
type SearchParameter struct {
	ID           string `json:"id" yaml:"id"`
	ResourceType string `json:"resourceType" yaml:"resourceType"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Expression   string `json:"expression,omitempty" yaml:"expression,omitempty"`
}
