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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/healthsamurai/fhir-schema-migration-tool/internal/archive"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/convert"
	"github.com/healthsamurai/fhir-schema-migration-tool/internal/diag"
)

func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert <source-dir>",
		Short: "Convert a directory of A-attributes into FHIR StructureDefinition resources",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}

	convertCmd.Flags().String("fhir-version", "", "Target FHIR version tag, e.g. 4.0.1 (required)")
	convertCmd.Flags().String("output", "", "Path to write a gzip-compressed tar package; stdout JSON if omitted")
	convertCmd.Flags().StringArray("exclude", nil, "Resource type id to drop before conversion (repeatable)")
	convertCmd.Flags().Bool("ignore-flags", false, "Suppress SummaryPresent/ModifierPresent/OrderPresent diagnostics")
	convertCmd.Flags().Bool("ignore-errors", false, "Produce output even if diagnostics were emitted")
	convertCmd.MarkFlagRequired("fhir-version")

	return convertCmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	sourceDir := args[0]
	fhirVersion := viper.GetString("fhir-version")
	outputPath := viper.GetString("output")
	excludeList := viper.GetStringSlice("exclude")
	ignoreFlags := viper.GetBool("ignore-flags")
	ignoreErrors := viper.GetBool("ignore-errors")

	excludeIDs := make(map[string]bool, len(excludeList))
	for _, id := range excludeList {
		excludeIDs[id] = true
	}

	result, diags := convert.Run(convert.Options{
		SourceDir:   sourceDir,
		FHIRVersion: fhirVersion,
		ExcludeIDs:  excludeIDs,
	})

	reported := diags
	if ignoreFlags {
		reported = reported.WithoutKinds(diag.SummaryPresent, diag.ModifierPresent, diag.OrderPresent)
	}
	for _, d := range reported {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	log.V(1).Infof("fhirconvert: %d diagnostic(s) reported", len(reported))

	if len(reported) > 0 && !ignoreErrors {
		return fmt.Errorf("conversion produced %d diagnostic(s); rerun with --ignore-errors to emit output anyway", len(reported))
	}

	if outputPath == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Extensions interface{} `json:"extensions"`
			Profiles   interface{} `json:"profiles"`
		}{result.Extensions, result.Profiles})
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output package %s: %w", outputPath, err)
	}
	defer f.Close()

	packageName := "fhir-schema-migration-tool.generated"
	if err := archive.Write(f, packageName, fhirVersion, result.Extensions, result.Profiles); err != nil {
		return fmt.Errorf("writing output package: %w", err)
	}
	return nil
}
