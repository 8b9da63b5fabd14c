package prompt

import (
	"strings"
	"testing"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
	"github.com/stretchr/testify/require"
)

func TestFullEmbedsIdeaAndSchema(t *testing.T) {
	p := Full("  a tool for dog walkers ")
	require.Contains(t, p, "Idea: a tool for dog walkers\n")
	require.Contains(t, p, `"startup_name": string`)
	for _, s := range prd.Sections {
		require.Contains(t, p, `"`+string(s)+`": {`)
	}
	require.Contains(t, p, `"target_audience": [string]`)
	require.Contains(t, p, `"user_roles": {`)
	require.Contains(t, p, `"premium": string`)
	require.Contains(t, p, "Return ONLY the JSON object")
	require.Equal(t, p, Full("a tool for dog walkers"))
}

func TestSectionPrompt(t *testing.T) {
	p := Section(prd.SectionTechStack, "Dogly", "use Rust instead", "Frontend: React")
	require.Contains(t, p, `"Technology Stack" section`)
	require.Contains(t, p, "for Dogly.")
	require.Contains(t, p, "Requested changes: use Rust instead")
	require.Contains(t, p, "Frontend: React")
	require.Contains(t, p, `"backend": string`)
	require.NotContains(t, p, `"core_features"`)
	require.Contains(t, p, "not nested under the section name")
}

func TestSectionText(t *testing.T) {
	_, c := prd.Fallback("a tool for dog walkers")
	require.Equal(t, "Frontend: Next.js, React, Tailwind CSS\nBackend: Node.js, Express\nDatabase: PostgreSQL, Redis\nAuth: OAuth 2.0, JWT",
		SectionText(c, prd.SectionTechStack))
	require.Contains(t, SectionText(c, prd.SectionFeatures), "premium: Access to advanced features")
	require.Contains(t, SectionText(c, prd.SectionOverview), "Target audience: Small to medium businesses, ")

	c.AIIntegration = nil
	require.Equal(t, "Model: Not specified\nFeatures: Not specified", SectionText(c, prd.SectionAIIntegration))

	for _, s := range prd.Sections {
		require.NotEmpty(t, strings.TrimSpace(SectionText(c, s)), s)
	}
}
