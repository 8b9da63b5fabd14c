package prd

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// NormalizeFragment returns fragment nested under the section key. A
// fragment already wrapped under its section is returned as is; a flat one
// whose keys match the section's fields is wrapped. Anything else fails
// with ErrSectionExtraction.
func NormalizeFragment(section Section, fragment []byte) ([]byte, error) {
	if !gjson.ValidBytes(fragment) {
		return nil, fmt.Errorf("%w: fragment is not JSON", ErrSectionExtraction)
	}
	root := gjson.ParseBytes(fragment)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: fragment is not an object", ErrSectionExtraction)
	}
	if nested := root.Get(string(section)); nested.IsObject() && hasSectionField(nested, section) {
		return fragment, nil
	}
	if !hasSectionField(root, section) {
		return nil, fmt.Errorf("%w: no %s fields in fragment", ErrSectionExtraction, section)
	}
	wrapped, err := sjson.SetRawBytes([]byte("{}"), string(section), []byte(root.Raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSectionExtraction, err)
	}
	return wrapped, nil
}

func hasSectionField(obj gjson.Result, section Section) bool {
	for _, f := range section.Fields() {
		if obj.Get(f.Name).Exists() {
			return true
		}
	}
	return false
}

// MergeSection returns a copy of existing with only the named section
// replaced by fragment and the Markdown re-rendered. Identity fields are
// always those of existing. Fields the fragment omits keep their prior
// values so the result stays complete. existing is never modified.
func MergeSection(existing *Document, section Section, fragment []byte) (*Document, error) {
	if existing == nil {
		return nil, fmt.Errorf("%w: no document to merge into", ErrInvalidInput)
	}
	wrapped, err := NormalizeFragment(section, fragment)
	if err != nil {
		return nil, err
	}
	raw := []byte(gjson.GetBytes(wrapped, string(section)).Raw)

	out := existing.Clone()
	if err := overlaySection(&out.Content, section, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSectionExtraction, err)
	}
	out.Content.normalize()
	out.Markdown = Render(out.Content)

	out.ID = existing.ID
	out.Owner = existing.Owner
	out.Title = existing.Title
	out.Description = existing.Description
	out.CreatedAt = existing.CreatedAt
	return out, nil
}

func overlaySection(c *Content, section Section, raw []byte) error {
	switch section {
	case SectionOverview:
		return json.Unmarshal(raw, &c.Overview)
	case SectionFeatures:
		return json.Unmarshal(raw, &c.Features)
	case SectionTechStack:
		return json.Unmarshal(raw, &c.TechStack)
	case SectionAIIntegration:
		var ai AIIntegration
		if c.AIIntegration != nil {
			ai = *c.AIIntegration
		}
		if err := json.Unmarshal(raw, &ai); err != nil {
			return err
		}
		c.AIIntegration = &ai
		return nil
	case SectionUIUXDesign:
		return json.Unmarshal(raw, &c.UIUXDesign)
	case SectionDeployment:
		return json.Unmarshal(raw, &c.Deployment)
	case SectionRoadmap:
		return json.Unmarshal(raw, &c.Roadmap)
	}
	return fmt.Errorf("unknown section %q", section)
}
