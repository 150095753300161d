package artifact

import (
	"strconv"
	"strings"

	"github.com/ShayCichocki/auditgate/pkg/models"
)

// Decoders from normalized artifact documents (the any trees produced by
// normalize.ReadArtifact) into the typed models. Artifacts are written by
// LLM agents, so every accessor tolerates absent keys and wrong types and
// returns a zero value instead of failing.

// StringField returns the named string field of an object document, or ""
// when the document is not an object or the field is absent.
func StringField(v any, key string) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

// IntField returns the named numeric field of an object document,
// accepting both JSON numbers and numeric strings.
func IntField(v any, key string) int {
	obj, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	switch n := obj[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// ArrayField returns the named array field of an object document, or nil.
func ArrayField(v any, key string) []any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	arr, _ := obj[key].([]any)
	return arr
}

// StringsField returns the named array field with its string elements
// extracted, skipping non-string entries.
func StringsField(v any, key string) []string {
	arr := ArrayField(v, key)
	if arr == nil {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DecodeFinding converts one object element of a findings array into a
// Finding. Missing fields decode to zero values; validation of what is
// required belongs to the caller.
func DecodeFinding(v any) models.Finding {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Finding{}
	}
	f := models.Finding{
		ID:          StringField(obj, "id"),
		File:        StringField(obj, "file"),
		Affected:    StringField(obj, "affected"),
		Line:        IntField(obj, "line"),
		Severity:    models.ParseSeverity(StringField(obj, "severity")),
		Title:       StringField(obj, "title"),
		Description: StringField(obj, "description"),
	}
	if f.Severity == "" {
		f.Severity = models.ParseSeverity(StringField(obj, "severity_level"))
	}
	if f.Title == "" {
		f.Title = StringField(obj, "name")
	}
	return f
}

// FindingsField decodes the named array field of a document into typed
// findings. Non-object elements are skipped.
func FindingsField(v any, key string) []models.Finding {
	arr := ArrayField(v, key)
	if arr == nil {
		return nil
	}
	findings := make([]models.Finding, 0, len(arr))
	for _, e := range arr {
		if _, ok := e.(map[string]any); !ok {
			continue
		}
		findings = append(findings, DecodeFinding(e))
	}
	return findings
}

// CoverageEntry is one acceptance-criterion row from a review artifact's
// requirements_coverage or acceptance_criteria_verification array.
type CoverageEntry struct {
	// ID is the acceptance criterion identifier, e.g. AC-SEC-001.
	ID string
	// Status is the normalized verification status, e.g. implemented,
	// not_implemented, partial.
	Status string
}

// CoverageField decodes the named coverage array of a review artifact.
// Entries may be objects carrying an id (under "id", "ac_id", or
// "criterion") or bare id strings.
func CoverageField(v any, key string) []CoverageEntry {
	arr := ArrayField(v, key)
	if arr == nil {
		return nil
	}
	entries := make([]CoverageEntry, 0, len(arr))
	for _, e := range arr {
		switch entry := e.(type) {
		case string:
			entries = append(entries, CoverageEntry{ID: entry})
		case map[string]any:
			id := StringField(entry, "id")
			if id == "" {
				id = StringField(entry, "ac_id")
			}
			if id == "" {
				id = StringField(entry, "criterion")
			}
			entries = append(entries, CoverageEntry{
				ID:     id,
				Status: StringField(entry, "status"),
			})
		}
	}
	return entries
}

// AcceptanceCriteriaIDs extracts every AC id referenced by a user-stories
// document: each story's acceptance_criteria array, with object entries
// contributing their id field and string entries contributing any embedded
// AC marker verbatim.
func AcceptanceCriteriaIDs(v any) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	stories := ArrayField(v, "stories")
	if stories == nil {
		stories = ArrayField(v, "user_stories")
	}
	for _, s := range stories {
		for _, c := range ArrayField(s, "acceptance_criteria") {
			switch entry := c.(type) {
			case string:
				add(acMarkerRe.FindString(entry))
			case map[string]any:
				add(StringField(entry, "id"))
			}
		}
	}
	return ids
}
