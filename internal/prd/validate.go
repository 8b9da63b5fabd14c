package prd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// requiredSections are the top-level keys the gate insists on.
// ai_integration is optional.
var requiredSections = []Section{
	SectionOverview,
	SectionFeatures,
	SectionTechStack,
	SectionUIUXDesign,
	SectionDeployment,
	SectionRoadmap,
}

// Validate reports whether raw is a JSON object carrying every required
// section, the overview and features sub-keys, and list values for
// target_audience, core_features and monetization_model. Checks are on key
// presence only. It never panics, whatever raw holds.
func Validate(raw []byte) bool {
	if !gjson.ValidBytes(raw) {
		return false
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return false
	}
	if !root.Get("startup_name").Exists() {
		return false
	}
	for _, s := range requiredSections {
		if !root.Get(string(s)).IsObject() {
			return false
		}
	}
	for _, path := range []string{
		"overview.idea_summary",
		"overview.problem_statement",
		"overview.solution",
		"features.user_roles",
	} {
		if !root.Get(path).Exists() {
			return false
		}
	}
	for _, path := range []string{
		"overview.target_audience",
		"features.core_features",
		"features.monetization_model",
	} {
		if !root.Get(path).IsArray() {
			return false
		}
	}
	return true
}

// MissingFields lists every schema path absent from raw, including the
// sub-fields the gate does not look at. ai_integration is only inspected
// when present.
func MissingFields(raw []byte) []string {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return []string{"$"}
	}
	root := gjson.ParseBytes(raw)
	var missing []string
	if !root.Get("startup_name").Exists() {
		missing = append(missing, "startup_name")
	}
	for _, s := range Sections {
		sec := root.Get(string(s))
		if !sec.Exists() {
			if s != SectionAIIntegration {
				missing = append(missing, string(s))
			}
			continue
		}
		missing = append(missing, missingIn(sec, string(s), s.Fields())...)
	}
	return missing
}

func missingIn(obj gjson.Result, prefix string, fields []Field) []string {
	var missing []string
	for _, f := range fields {
		v := obj.Get(f.Name)
		path := prefix + "." + f.Name
		switch {
		case !v.Exists():
			missing = append(missing, path)
		case f.Kind == KindList && !v.IsArray():
			missing = append(missing, path)
		case f.Kind == KindRecord:
			missing = append(missing, missingIn(v, path, f.Fields)...)
		}
	}
	return missing
}

// DecodeContent turns a validated JSON object into Content. Lists absent
// from optional places come back empty, never nil.
func DecodeContent(raw []byte) (Content, error) {
	if !Validate(raw) {
		return Content{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(MissingFields(raw), ", "))
	}
	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return Content{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	c.normalize()
	return c, nil
}
