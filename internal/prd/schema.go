package prd

import (
	"fmt"
	"strings"
)

// Section names one of the seven sections of Content.
type Section string

const (
	SectionOverview      Section = "overview"
	SectionFeatures      Section = "features"
	SectionTechStack     Section = "tech_stack"
	SectionAIIntegration Section = "ai_integration"
	SectionUIUXDesign    Section = "ui_ux_design"
	SectionDeployment    Section = "deployment"
	SectionRoadmap       Section = "roadmap"
)

// Sections lists every section in rendering order.
var Sections = []Section{
	SectionOverview,
	SectionFeatures,
	SectionTechStack,
	SectionAIIntegration,
	SectionUIUXDesign,
	SectionDeployment,
	SectionRoadmap,
}

// ParseSection maps a wire name to a Section.
func ParseSection(s string) (Section, error) {
	name := Section(strings.ToLower(strings.TrimSpace(s)))
	for _, sec := range Sections {
		if sec == name {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: unknown section %q", ErrInvalidInput, s)
}

// Title is the human-readable section name used in prompts and headings.
func (s Section) Title() string {
	switch s {
	case SectionOverview:
		return "Overview"
	case SectionFeatures:
		return "Features & Functionality"
	case SectionTechStack:
		return "Technology Stack"
	case SectionAIIntegration:
		return "AI Integration"
	case SectionUIUXDesign:
		return "UI/UX Design"
	case SectionDeployment:
		return "Deployment"
	case SectionRoadmap:
		return "Roadmap"
	}
	return "Section"
}

// FieldKind is the JSON shape of a schema field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindList
	KindRecord
)

// Field describes one required key of a section.
type Field struct {
	Name   string
	Kind   FieldKind
	Fields []Field // sub-fields for KindRecord
}

// Fields returns the section's field table.
func (s Section) Fields() []Field {
	switch s {
	case SectionOverview:
		return []Field{
			{Name: "idea_summary"},
			{Name: "problem_statement"},
			{Name: "solution"},
			{Name: "target_audience", Kind: KindList},
		}
	case SectionFeatures:
		return []Field{
			{Name: "core_features", Kind: KindList},
			{Name: "user_roles", Kind: KindRecord, Fields: []Field{{Name: "guest"}, {Name: "registered"}, {Name: "premium"}}},
			{Name: "monetization_model", Kind: KindList},
		}
	case SectionTechStack:
		return []Field{{Name: "frontend"}, {Name: "backend"}, {Name: "database"}, {Name: "auth"}}
	case SectionAIIntegration:
		return []Field{{Name: "model"}, {Name: "features", Kind: KindList}}
	case SectionUIUXDesign:
		return []Field{{Name: "style"}, {Name: "key_elements", Kind: KindList}}
	case SectionDeployment:
		return []Field{{Name: "hosting"}, {Name: "scalability", Kind: KindList}}
	case SectionRoadmap:
		return []Field{{Name: "mvp"}, {Name: "ui_ux"}, {Name: "ai_integration"}, {Name: "monetization"}, {Name: "launch"}}
	}
	return nil
}
