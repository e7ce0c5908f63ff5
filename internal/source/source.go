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

// Package source walks a directory of A-attribute source files, sniffing
// each one's resourceType to dispatch it to the attribute pipeline or to
// the SearchParameter pass-through, and applies the --exclude pre-filter
// ahead of validation.
package source

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/attribute"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/searchparam"
)

// envelope is decoded first from every file, just far enough to sniff its
// resourceType and id without committing to one of the two record shapes.
type envelope struct {
	ID           string `json:"id" yaml:"id"`
	ResourceType string `json:"resourceType" yaml:"resourceType"`
}

// Documents is the result of a directory walk: the attribute records to
// feed into the pipeline, plus the SearchParameter records that were
// recognized but intentionally skipped.
type Documents struct {
	Attributes       []attribute.Raw
	SearchParameters []searchparam.SearchParameter
}

// Walk recursively reads every .json/.yaml/.yml file under root, excluding
// any Attribute whose resource id (its resource type) is in excludeIDs
// before it is ever validated.
func Walk(root string, excludeIDs map[string]bool) (Documents, diag.Diagnostics) {
	var docs Documents
	var diags diag.Diagnostics

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diags = diag.Append(diags, diag.Diagnostic{Kind: diag.Walk, File: path, Err: err})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			return nil
		}

		diags = diag.AppendAll(diags, readOne(path, ext, excludeIDs, &docs))
		return nil
	})
	if err != nil {
		diags = diag.Append(diags, diag.Diagnostic{Kind: diag.Walk, File: root, Err: err})
	}
	return docs, diags
}

func readOne(path, ext string, excludeIDs map[string]bool, docs *Documents) diag.Diagnostics {
	raw, err := os.ReadFile(path)
	if err != nil {
		return diag.Diagnostics{{Kind: diag.ReadFile, File: path, Err: err}}
	}

	var env envelope
	if decErr := decode(ext, raw, &env); decErr != nil {
		return diag.Diagnostics{badFormat(ext, path, decErr)}
	}

	if env.ResourceType == "" {
		return diag.Diagnostics{{Kind: diag.MissingResourceType, File: path}}
	}

	switch env.ResourceType {
	case "Attribute":
		var a attribute.Raw
		if decErr := decode(ext, raw, &a); decErr != nil {
			return diag.Diagnostics{badFormat(ext, path, decErr)}
		}
		if excludeIDs[a.Resource.ID] {
			glog.V(1).Infof("source: excluding attribute %s of resource type %s (%s)", env.ID, a.Resource.ID, path)
			return nil
		}
		docs.Attributes = append(docs.Attributes, a)
		return nil
	case "SearchParameter":
		var sp searchparam.SearchParameter
		if decErr := decode(ext, raw, &sp); decErr != nil {
			return diag.Diagnostics{badFormat(ext, path, decErr)}
		}
		docs.SearchParameters = append(docs.SearchParameters, sp)
		return nil
	default:
		return diag.Diagnostics{{Kind: diag.NotSupportedResourceType, File: path, Value: env.ResourceType}}
	}
}

func decode(ext string, raw []byte, v any) error {
	if ext == ".yaml" || ext == ".yml" {
		return yaml.Unmarshal(raw, v)
	}
	return json.Unmarshal(raw, v)
}

func badFormat(ext, path string, err error) diag.Diagnostic {
	if ext == ".yaml" || ext == ".yml" {
		return diag.Diagnostic{Kind: diag.BadYaml, File: path, Err: err}
	}
	return diag.Diagnostic{Kind: diag.BadJson, File: path, Err: err}
}
