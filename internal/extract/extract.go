// Package extract recovers a JSON object from free-form model output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Outcome records which strategy produced the object.
type Outcome int

const (
	// Direct means the located text parsed as is.
	Direct Outcome = iota
	// Repaired means the text parsed after syntactic repair.
	Repaired
	// Skeleton means nothing parsed and only a minimal object could be built.
	Skeleton
)

func (o Outcome) String() string {
	switch o {
	case Direct:
		return "direct"
	case Repaired:
		return "repaired"
	case Skeleton:
		return "skeleton"
	}
	return "unknown"
}

// Placeholders used when a skeleton cannot recover the real values.
const (
	PlaceholderName    = "Generated PRD"
	PlaceholderSummary = "Generated from provided idea"
)

var (
	fencedBlock    = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	trailingComma  = regexp.MustCompile(`,(\s*[}\]])`)
	missingComma   = regexp.MustCompile(`([}\]"])(\s*\n\s*)("[A-Za-z_])`)
	adjacentValues = regexp.MustCompile(`([}\]])(\s*)([{\[])`)
	unquotedKey    = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	nameField      = regexp.MustCompile(`"startup_name"\s*:\s*"([^"]+)"`)
	summaryField   = regexp.MustCompile(`"idea_summary"\s*:\s*"([^"]+)"`)
)

// Result is the recovered object and how it was obtained.
type Result struct {
	JSON    json.RawMessage
	Outcome Outcome
	// Fenced is set when the object came from a ```json block.
	Fenced bool
}

// Extract never fails. A fenced ```json block wins over any brace scan of
// the surrounding prose. When repair cannot make the text parse, the
// result is a skeleton carrying only startup_name and
// overview.idea_summary, which the validation gate will reject.
func Extract(raw string) Result {
	candidate, fenced := locate(raw)

	if candidate != "" && json.Valid([]byte(candidate)) && gjson.Parse(candidate).IsObject() {
		return Result{JSON: json.RawMessage(candidate), Outcome: Direct, Fenced: fenced}
	}

	if candidate != "" {
		if fixed := Repair(candidate); json.Valid([]byte(fixed)) && gjson.Parse(fixed).IsObject() {
			return Result{JSON: json.RawMessage(fixed), Outcome: Repaired, Fenced: fenced}
		}
	}

	return Result{JSON: skeleton(raw), Outcome: Skeleton, Fenced: fenced}
}

// Object returns only the recovered bytes; it is what section regeneration
// passes on to the merge step.
func Object(raw string) (json.RawMessage, bool) {
	r := Extract(raw)
	return r.JSON, r.Outcome != Skeleton
}

func locate(raw string) (string, bool) {
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		if inner := strings.TrimSpace(m[1]); strings.HasPrefix(inner, "{") {
			return inner, true
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], false
}

var repairs = []struct {
	re   *regexp.Regexp
	repl string
}{
	{trailingComma, "$1"},
	{missingComma, "$1,$2$3"},
	{adjacentValues, "$1,$2$3"},
	{unquotedKey, `$1"$2"$3`},
}

// Repair applies purely syntactic fixes in order: trailing commas before a
// closing bracket, missing commas between members, then bare identifier
// keys. It stops at the first step after which s parses, so later and
// more intrusive rewrites only run when needed.
func Repair(s string) string {
	for _, r := range repairs {
		s = r.re.ReplaceAllString(s, r.repl)
		if json.Valid([]byte(s)) {
			return s
		}
	}
	return s
}

func skeleton(raw string) json.RawMessage {
	name := PlaceholderName
	if m := nameField.FindStringSubmatch(raw); m != nil {
		name = m[1]
	}
	summary := PlaceholderSummary
	if m := summaryField.FindStringSubmatch(raw); m != nil {
		summary = m[1]
	}
	out, _ := sjson.SetBytes([]byte("{}"), "startup_name", name)
	out, _ = sjson.SetBytes(out, "overview.idea_summary", summary)
	return out
}
