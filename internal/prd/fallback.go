package prd

import "strings"

const fallbackNameLimit = 30

// Fallback builds a complete document from the idea text alone, with no
// external calls. It is used whenever the generation endpoint is unusable.
func Fallback(idea string) (string, Content) {
	c := Content{
		StartupName: fallbackName(idea),
		Overview: Overview{
			IdeaSummary:      "A SaaS platform that " + strings.ToLower(idea),
			ProblemStatement: "Many users struggle with this problem and need an efficient solution.",
			Solution:         "Our platform provides an intuitive and powerful solution to address this need.",
			TargetAudience:   []string{"Small to medium businesses", "Individual professionals", "Enterprise customers"},
		},
		Features: Features{
			CoreFeatures: []string{
				"User-friendly dashboard",
				"Data analytics and reporting",
				"Integration with existing tools",
				"Mobile application",
			},
			UserRoles: UserRoles{
				Guest:      "Limited access to basic features",
				Registered: "Full access to standard features",
				Premium:    "Access to advanced features and priority support",
			},
			MonetizationModel: []string{"Freemium", "Subscription-based", "Enterprise pricing"},
		},
		TechStack: TechStack{
			Frontend: "Next.js, React, Tailwind CSS",
			Backend:  "Node.js, Express",
			Database: "PostgreSQL, Redis",
			Auth:     "OAuth 2.0, JWT",
		},
		AIIntegration: &AIIntegration{
			Model:    "Custom ML models",
			Features: []string{"Predictive analytics", "Natural language processing", "Recommendation engine"},
		},
		UIUXDesign: UIUXDesign{
			Style:       "Modern, minimalist design with intuitive navigation",
			KeyElements: []string{"Responsive layout", "Dark/light mode", "Customizable dashboard", "Accessible design"},
		},
		Deployment: Deployment{
			Hosting:     "AWS, Vercel",
			Scalability: []string{"Containerization with Docker", "Kubernetes orchestration", "CDN for static assets"},
		},
		Roadmap: Roadmap{
			MVP:           "Launch core features with basic functionality",
			UIUX:          "Refine user experience based on initial feedback",
			AIIntegration: "Implement AI features for enhanced functionality",
			Monetization:  "Introduce premium tiers and payment processing",
			Launch:        "Full market launch with marketing campaign",
		},
	}
	return Render(c), c
}

// fallbackName keeps short ideas verbatim. Longer ones are cut to the
// limit, the trailing partial word is dropped and an ellipsis appended.
func fallbackName(idea string) string {
	runes := []rune(idea)
	if len(runes) <= fallbackNameLimit {
		return idea
	}
	words := strings.Split(string(runes[:fallbackNameLimit]), " ")
	return strings.Join(words[:len(words)-1], " ") + "..."
}
