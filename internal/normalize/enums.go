package normalize

import (
	"strings"

	"github.com/ShayCichocki/auditgate/pkg/models"
)

// wsRun matches any run of internal whitespace.
var wsRun = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Status canonicalizes a status value: lowercase, trimmed, internal
// whitespace collapsed to single underscores ("Needs Changes" →
// "needs_changes"). Non-string values pass through unchanged.
func Status(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	fields := strings.Fields(strings.ToLower(wsRun.Replace(s)))
	return strings.Join(fields, "_")
}

// Severity canonicalizes a severity value via fuzzy prefix matching
// ("Hi" → "high", "crit" → "critical"). Strings matching no known prefix
// are lowercased and otherwise left alone. Non-string values pass through
// unchanged.
func Severity(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return string(models.ParseSeverity(s))
}

// nestedArrayFields lists the array-of-objects fields whose elements also
// carry status/severity values worth canonicalizing.
var nestedArrayFields = []string{
	"findings",
	"issues",
	"unsuppressed_high_findings",
	"suppressed_findings",
	"consolidated",
	"acceptance_criteria_verification",
	"requirements_coverage",
}

// Document canonicalizes the status and severity fields of a decoded JSON
// artifact: the top-level object itself, every element of a top-level
// array, and every element of the known nested array fields. The value is
// mutated in place and returned for convenience.
func Document(v any) any {
	switch doc := v.(type) {
	case map[string]any:
		normalizeObject(doc)
		for _, field := range nestedArrayFields {
			arr, ok := doc[field].([]any)
			if !ok {
				continue
			}
			for _, el := range arr {
				if obj, ok := el.(map[string]any); ok {
					normalizeObject(obj)
				}
			}
		}
	case []any:
		for _, el := range doc {
			if obj, ok := el.(map[string]any); ok {
				normalizeObject(obj)
			}
		}
	}
	return v
}

// normalizeObject canonicalizes the status/severity keys of one object.
func normalizeObject(obj map[string]any) {
	if raw, ok := obj["status"]; ok {
		obj["status"] = Status(raw)
	}
	if raw, ok := obj["severity"]; ok {
		obj["severity"] = Severity(raw)
	}
}
