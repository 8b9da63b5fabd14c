package prd

import (
	"encoding/json"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportMarkdown returns the stored Markdown verbatim.
func ExportMarkdown(d *Document) []byte {
	return []byte(d.Markdown)
}

// ExportJSON returns the structured content pretty-printed with two-space
// indentation.
func ExportJSON(d *Document) ([]byte, error) {
	return json.MarshalIndent(d.Content, "", "  ")
}

// ExportFilename builds a download name from the document title: lowercased
// with whitespace runs collapsed to a single hyphen.
func ExportFilename(title, ext string) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	if slug == "" {
		slug = "prd"
	}
	return slug + "." + ext
}

// DeriveTitle picks the title stored for a new document.
func DeriveTitle(c Content) string {
	if name := strings.TrimSpace(c.StartupName); name != "" {
		return name
	}
	return "Untitled PRD"
}

// DeriveDescription picks the description stored for a new document. It is
// never changed afterwards.
func DeriveDescription(c Content, idea string) string {
	if s := strings.TrimSpace(c.Overview.IdeaSummary); s != "" {
		return s
	}
	return idea
}
