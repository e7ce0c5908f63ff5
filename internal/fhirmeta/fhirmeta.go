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

// Package fhirmeta holds the fixed vocabulary the pipeline is grounded
// against: the coded/string type sets used by the attribute validator, the
// known resource type allow-list, and the hard-coded URLs the SD emitter
// stamps into every generated artifact.
package fhirmeta

// CodedTypes is the set of target types a valueSet binding may be declared
// on.
var CodedTypes = newSet(
	"code", "Coding", "CodeableConcept", "Quantity", "string", "uri", "Duration",
)

// StringTypes is the set of target types an enum marker may be declared on.
var StringTypes = newSet(
	"base64Binary", "canonical", "code", "date", "dateTime", "email", "id",
	"instant", "keyword", "markdown", "oid", "password", "secret", "string",
	"time", "uri", "url", "uuid", "xhtml",
)

// KnownResourceTypes is the fixed allow-list of resource type names that
// NotAllowedTargetResource is checked against. A resource reference outside
// this set still produces a typed attribute (the diagnostic does not block
// conversion), but it flags a likely-misspelled or nonstandard resource.
var KnownResourceTypes = newSet(
	"Patient", "Practitioner", "PractitionerRole", "Organization", "Location",
	"Encounter", "Observation", "Condition", "Procedure", "MedicationRequest",
	"MedicationStatement", "AllergyIntolerance", "Immunization",
	"DiagnosticReport", "Specimen", "ServiceRequest", "CarePlan", "CareTeam",
	"Device", "DocumentReference", "Appointment", "Schedule", "Slot",
	"Coverage", "Claim", "ExplanationOfBenefit", "RelatedPerson", "Group",
	"HealthcareService", "Questionnaire", "QuestionnaireResponse",
	"ValueSet", "CodeSystem", "Bundle", "Composition", "Goal",
)

const (
	// LegacyFCEMarkerURL is the side-annotation extension URL stamped onto
	// every extension SD's root element, carrying the original property
	// name the extension was declared under in A-attributes.
	LegacyFCEMarkerURL = "http://fhir.aidbox.app/fhir/StructureDefinition/legacy-fce"

	// ExtensionBaseDefinitionURL is the base StructureDefinition every
	// generated extension SD constrains.
	ExtensionBaseDefinitionURL = "http://hl7.org/fhir/StructureDefinition/Extension"

	// ProfileBaseDefinitionPrefix is prefixed to a resource type name to
	// form a profile SD's base_definition.
	ProfileBaseDefinitionPrefix = "http://hl7.org/fhir/StructureDefinition/"

	// ProfileURLPrefix is prefixed to a resource type name to form a
	// profile SD's own url.
	ProfileURLPrefix = "http://legacy.aidbox.app/fhir/StructureDefinition/"

	// ReferenceTargetProfilePrefix is prefixed to a refers target resource
	// type name to form an ElementType's target_profile entry.
	ReferenceTargetProfilePrefix = "http://hl7.org/fhir/"
)

type set struct {
	members map[string]struct{}
}

func newSet(values ...string) set {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return set{members: m}
}

// Contains reports whether value is a member of the set.
func (s set) Contains(value string) bool {
	_, ok := s.members[value]
	return ok
}
