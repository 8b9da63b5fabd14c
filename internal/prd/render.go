package prd

import (
	"fmt"
	"strings"
)

const notSpecified = "Not specified"

// Render produces the Markdown form of content. It is a pure function of
// its input: rendering the same content twice yields identical bytes.
// Callers pass schema-valid content.
func Render(c Content) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.StartupName)

	b.WriteString("## 1. Overview\n")
	fmt.Fprintf(&b, "**Idea Summary:** %s  \n\n", c.Overview.IdeaSummary)
	fmt.Fprintf(&b, "**Problem Statement:** %s  \n\n", c.Overview.ProblemStatement)
	fmt.Fprintf(&b, "**Solution:** %s  \n\n", c.Overview.Solution)
	b.WriteString("**Target Audience:**  \n")
	bullets(&b, "- ", c.Overview.TargetAudience, false)
	separator(&b)

	b.WriteString("## 2. Features & Functionality\n")
	b.WriteString("### **Core Features**\n")
	bullets(&b, "- ", c.Features.CoreFeatures, true)
	b.WriteString("\n### **User Roles**\n")
	fmt.Fprintf(&b, "- **Guest Users**: %s  \n", c.Features.UserRoles.Guest)
	fmt.Fprintf(&b, "- **Registered Users**: %s  \n", c.Features.UserRoles.Registered)
	fmt.Fprintf(&b, "- **Premium Users**: %s  \n", c.Features.UserRoles.Premium)
	b.WriteString("\n### **Monetization Model**\n")
	bullets(&b, "- ", c.Features.MonetizationModel, true)
	separator(&b)

	b.WriteString("## 3. Technology Stack\n")
	fmt.Fprintf(&b, "- **Frontend:** %s  \n", c.TechStack.Frontend)
	fmt.Fprintf(&b, "- **Backend:** %s  \n", c.TechStack.Backend)
	fmt.Fprintf(&b, "- **Database:** %s  \n", c.TechStack.Database)
	fmt.Fprintf(&b, "- **Auth:** %s  \n", c.TechStack.Auth)
	separator(&b)

	b.WriteString("## 4. AI Integration\n")
	if ai := c.AIIntegration; ai != nil {
		fmt.Fprintf(&b, "- **AI Model:** %s  \n", ai.Model)
		b.WriteString("- **Features:**  \n")
		bullets(&b, "  - ", ai.Features, false)
	} else {
		fmt.Fprintf(&b, "- **AI Model:** %s  \n", notSpecified)
		fmt.Fprintf(&b, "- **Features:** %s  \n", notSpecified)
	}
	separator(&b)

	b.WriteString("## 5. UI/UX Design\n")
	fmt.Fprintf(&b, "- **Style:** %s  \n", c.UIUXDesign.Style)
	b.WriteString("- **Key Elements:**  \n")
	bullets(&b, "  - ", c.UIUXDesign.KeyElements, false)
	separator(&b)

	b.WriteString("## 6. Deployment\n")
	fmt.Fprintf(&b, "- **Hosting:** %s  \n", c.Deployment.Hosting)
	b.WriteString("- **Scalability:**  \n")
	bullets(&b, "  - ", c.Deployment.Scalability, false)
	separator(&b)

	b.WriteString("## 7. Roadmap\n")
	fmt.Fprintf(&b, "1. **MVP:** %s  \n", c.Roadmap.MVP)
	fmt.Fprintf(&b, "2. **UI/UX:** %s  \n", c.Roadmap.UIUX)
	fmt.Fprintf(&b, "3. **AI Integration:** %s  \n", c.Roadmap.AIIntegration)
	fmt.Fprintf(&b, "4. **Monetization:** %s  \n", c.Roadmap.Monetization)
	fmt.Fprintf(&b, "5. **Launch:** %s  \n", c.Roadmap.Launch)

	return b.String()
}

func bullets(b *strings.Builder, prefix string, items []string, bold bool) {
	for _, item := range items {
		if bold {
			fmt.Fprintf(b, "%s**%s**  \n", prefix, item)
			continue
		}
		fmt.Fprintf(b, "%s%s  \n", prefix, item)
	}
}

func separator(b *strings.Builder) {
	b.WriteString("\n---\n\n")
}
