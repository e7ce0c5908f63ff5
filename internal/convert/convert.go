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

// Package convert wires every pipeline stage (C1 through C6, riding on
// C7's diagnostic plumbing) into the single entry point the driver calls:
// read a source directory, merge in the standards bundle, run the tree
// pipeline per resource type, and collect every emitted
// StructureDefinition.
package convert

import (
	"github.com/golang/glog"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/attribute"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/bundle"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/extsep"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/forest"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/invert"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/kindtree"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/sd"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/source"
)

// Options configures one run of the pipeline.
type Options struct {
	SourceDir   string
	FHIRVersion string
	ExcludeIDs  map[string]bool
}

// Result is every artifact the pipeline produced.
type Result struct {
	Extensions []sd.StructureDefinition
	Profiles   []sd.StructureDefinition
}

// Run executes the full pipeline and returns its artifacts alongside every
// diagnostic accumulated along the way. It never aborts early: a
// diagnostic at any stage still lets later stages run to completion.
func Run(opts Options) (Result, diag.Diagnostics) {
	var diags diag.Diagnostics

	docs, d := source.Walk(opts.SourceDir, opts.ExcludeIDs)
	diags = diag.AppendAll(diags, d)
	glog.V(1).Infof("convert: read %d attribute(s), %d search parameter(s) from %s",
		len(docs.Attributes), len(docs.SearchParameters), opts.SourceDir)

	allRaw := docs.Attributes
	if opts.FHIRVersion != "" {
		merged, err := bundle.Merge(docs.Attributes, opts.FHIRVersion)
		if err != nil {
			diags = diag.Append(diags, diag.Diagnostic{Kind: diag.ReadFile, File: opts.FHIRVersion, Err: err})
		} else {
			allRaw = merged
		}
	}

	var typed []*attribute.Typed
	for _, raw := range allRaw {
		t, d := attribute.Validate(raw)
		diags = diag.AppendAll(diags, d)
		if t != nil {
			typed = append(typed, t)
		}
	}
	glog.V(1).Infof("convert: validated %d/%d attribute(s)", len(typed), len(allRaw))

	f, d := forest.Build(typed)
	diags = diag.AppendAll(diags, d)

	var result Result
	for _, resourceType := range f.ByResourceType.Keys() {
		trie, _ := f.ByResourceType.Get(resourceType)

		lifted := kindtree.Lift(trie.Root)
		normal, d := extsep.Separate(resourceType, lifted)
		diags = diag.AppendAll(diags, d)

		inverted, d := invert.Invert(normal)
		diags = diag.AppendAll(diags, d)

		result.Extensions = append(result.Extensions, sd.CollectExtensions(resourceType, inverted)...)
		if profile, ok := sd.MakeProfiles(resourceType, inverted); ok {
			result.Profiles = append(result.Profiles, profile)
		}
	}

	glog.V(1).Infof("convert: emitted %d extension SD(s), %d profile SD(s), %d diagnostic(s)",
		len(result.Extensions), len(result.Profiles), len(diags))
	return result, diags
}
