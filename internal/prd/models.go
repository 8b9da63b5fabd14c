package prd

import "time"

// Document is the persisted unit: one generated PRD owned by one user.
// ID and CreatedAt are assigned by the store on first insert.
type Document struct {
	ID          string    `json:"id" bson:"id"`
	Owner       string    `json:"owner" bson:"owner"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Markdown    string    `json:"markdown" bson:"markdown"`
	Content     Content   `json:"content" bson:"content"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Content is the structured document. AIIntegration is optional; every
// other section is always present once a document has been accepted.
type Content struct {
	StartupName   string         `json:"startup_name" bson:"startup_name"`
	Overview      Overview       `json:"overview" bson:"overview"`
	Features      Features       `json:"features" bson:"features"`
	TechStack     TechStack      `json:"tech_stack" bson:"tech_stack"`
	AIIntegration *AIIntegration `json:"ai_integration,omitempty" bson:"ai_integration,omitempty"`
	UIUXDesign    UIUXDesign     `json:"ui_ux_design" bson:"ui_ux_design"`
	Deployment    Deployment     `json:"deployment" bson:"deployment"`
	Roadmap       Roadmap        `json:"roadmap" bson:"roadmap"`
}

type Overview struct {
	IdeaSummary      string   `json:"idea_summary" bson:"idea_summary"`
	ProblemStatement string   `json:"problem_statement" bson:"problem_statement"`
	Solution         string   `json:"solution" bson:"solution"`
	TargetAudience   []string `json:"target_audience" bson:"target_audience"`
}

type UserRoles struct {
	Guest      string `json:"guest" bson:"guest"`
	Registered string `json:"registered" bson:"registered"`
	Premium    string `json:"premium" bson:"premium"`
}

type Features struct {
	CoreFeatures      []string  `json:"core_features" bson:"core_features"`
	UserRoles         UserRoles `json:"user_roles" bson:"user_roles"`
	MonetizationModel []string  `json:"monetization_model" bson:"monetization_model"`
}

type TechStack struct {
	Frontend string `json:"frontend" bson:"frontend"`
	Backend  string `json:"backend" bson:"backend"`
	Database string `json:"database" bson:"database"`
	Auth     string `json:"auth" bson:"auth"`
}

type AIIntegration struct {
	Model    string   `json:"model" bson:"model"`
	Features []string `json:"features" bson:"features"`
}

type UIUXDesign struct {
	Style       string   `json:"style" bson:"style"`
	KeyElements []string `json:"key_elements" bson:"key_elements"`
}

type Deployment struct {
	Hosting     string   `json:"hosting" bson:"hosting"`
	Scalability []string `json:"scalability" bson:"scalability"`
}

type Roadmap struct {
	MVP           string `json:"mvp" bson:"mvp"`
	UIUX          string `json:"ui_ux" bson:"ui_ux"`
	AIIntegration string `json:"ai_integration" bson:"ai_integration"`
	Monetization  string `json:"monetization" bson:"monetization"`
	Launch        string `json:"launch" bson:"launch"`
}

// Clone returns a deep copy; list fields never alias the receiver.
func (c Content) Clone() Content {
	out := c
	out.Overview.TargetAudience = cloneList(c.Overview.TargetAudience)
	out.Features.CoreFeatures = cloneList(c.Features.CoreFeatures)
	out.Features.MonetizationModel = cloneList(c.Features.MonetizationModel)
	if c.AIIntegration != nil {
		ai := *c.AIIntegration
		ai.Features = cloneList(c.AIIntegration.Features)
		out.AIIntegration = &ai
	}
	out.UIUXDesign.KeyElements = cloneList(c.UIUXDesign.KeyElements)
	out.Deployment.Scalability = cloneList(c.Deployment.Scalability)
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Content = d.Content.Clone()
	return &out
}

// normalize replaces nil lists with empty ones so a stored document never
// carries a null where a list is required.
func (c *Content) normalize() {
	c.Overview.TargetAudience = nonNil(c.Overview.TargetAudience)
	c.Features.CoreFeatures = nonNil(c.Features.CoreFeatures)
	c.Features.MonetizationModel = nonNil(c.Features.MonetizationModel)
	if c.AIIntegration != nil {
		c.AIIntegration.Features = nonNil(c.AIIntegration.Features)
	}
	c.UIUXDesign.KeyElements = nonNil(c.UIUXDesign.KeyElements)
	c.Deployment.Scalability = nonNil(c.Deployment.Scalability)
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
