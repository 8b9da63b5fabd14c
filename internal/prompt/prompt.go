// Package prompt builds the instructions sent to the generation endpoint.
// Every function here is pure string construction.
package prompt

import (
	"fmt"
	"strings"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

// Full asks for a complete document for idea. The schema is described by
// field names and shapes only, never example values.
func Full(idea string) string {
	var b strings.Builder
	b.WriteString("You are a senior product manager. Write a Product Requirements Document for the startup idea below.\n\n")
	fmt.Fprintf(&b, "Idea: %s\n\n", strings.TrimSpace(idea))
	b.WriteString("Respond with exactly one JSON object with this structure:\n")
	b.WriteString("{\n  \"startup_name\": string,\n")
	for i, s := range prd.Sections {
		fmt.Fprintf(&b, "  %q: ", string(s))
		writeShape(&b, s.Fields(), "  ")
		if i < len(prd.Sections)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
	b.WriteString("Return ONLY the JSON object. Do not wrap it in code fences and do not add any prose before or after it.")
	return b.String()
}

// Section asks for a replacement of one section. The reply is expected to
// carry the section's fields at the top level, not nested under its name.
func Section(section prd.Section, startupName, feedback, current string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are improving the %q section of the Product Requirements Document for %s.\n\n", section.Title(), startupName)
	fmt.Fprintf(&b, "Current %s content:\n%s\n\n", section.Title(), strings.TrimSpace(current))
	fmt.Fprintf(&b, "Requested changes: %s\n\n", strings.TrimSpace(feedback))
	b.WriteString("Respond with a JSON object containing only these fields, not nested under the section name:\n")
	writeShape(&b, section.Fields(), "")
	b.WriteString("\n\nReturn ONLY the JSON object, with no code fences and no other text.")
	return b.String()
}

func writeShape(b *strings.Builder, fields []prd.Field, indent string) {
	b.WriteString("{\n")
	for i, f := range fields {
		fmt.Fprintf(b, "%s  %q: ", indent, f.Name)
		switch f.Kind {
		case prd.KindList:
			b.WriteString("[string]")
		case prd.KindRecord:
			writeShape(b, f.Fields, indent+"  ")
		default:
			b.WriteString("string")
		}
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
}

// SectionText dumps one section of c as plain text for use as prompt
// context.
func SectionText(c prd.Content, section prd.Section) string {
	switch section {
	case prd.SectionOverview:
		o := c.Overview
		return fmt.Sprintf("Idea summary: %s\nProblem: %s\nSolution: %s\nTarget audience: %s",
			o.IdeaSummary, o.ProblemStatement, o.Solution, strings.Join(o.TargetAudience, ", "))
	case prd.SectionFeatures:
		f := c.Features
		return fmt.Sprintf("Core features: %s\nUser roles: guest: %s; registered: %s; premium: %s\nMonetization: %s",
			strings.Join(f.CoreFeatures, ", "), f.UserRoles.Guest, f.UserRoles.Registered, f.UserRoles.Premium,
			strings.Join(f.MonetizationModel, ", "))
	case prd.SectionTechStack:
		t := c.TechStack
		return fmt.Sprintf("Frontend: %s\nBackend: %s\nDatabase: %s\nAuth: %s", t.Frontend, t.Backend, t.Database, t.Auth)
	case prd.SectionAIIntegration:
		if c.AIIntegration == nil {
			return "Model: Not specified\nFeatures: Not specified"
		}
		return fmt.Sprintf("Model: %s\nFeatures: %s", c.AIIntegration.Model, strings.Join(c.AIIntegration.Features, ", "))
	case prd.SectionUIUXDesign:
		return fmt.Sprintf("Style: %s\nKey elements: %s", c.UIUXDesign.Style, strings.Join(c.UIUXDesign.KeyElements, ", "))
	case prd.SectionDeployment:
		return fmt.Sprintf("Hosting: %s\nScalability: %s", c.Deployment.Hosting, strings.Join(c.Deployment.Scalability, ", "))
	case prd.SectionRoadmap:
		r := c.Roadmap
		return fmt.Sprintf("MVP: %s\nUI/UX: %s\nAI integration: %s\nMonetization: %s\nLaunch: %s",
			r.MVP, r.UIUX, r.AIIntegration, r.Monetization, r.Launch)
	}
	return ""
}
