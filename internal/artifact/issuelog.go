package artifact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ShayCichocki/auditgate/pkg/models"
)

// The issue log is semi-structured Markdown: one `## RT-NNN` heading per
// tracked issue, followed by labelled fields on their own lines. Parsing
// happens in two passes: tokenize on heading boundaries, then run a fixed
// field extractor inside each block's span. Keeping the passes separate
// makes "field absent" distinguishable from "field present but malformed".

// issueHeadingRe delimits one issue record per heading.
var issueHeadingRe = regexp.MustCompile(`(?m)^##\s+(RT-\d+)\b`)

// IssueBlock is one parsed issue-log entry together with any field-level
// problems found inside its span. A block with problems still carries
// whatever was successfully extracted.
type IssueBlock struct {
	// Issue holds the extracted fields.
	Issue models.Issue
	// Problems lists field-level defects, each naming the field and
	// whether it was missing or malformed.
	Problems []string
}

// Malformed reports whether the block has any field-level problems.
func (b IssueBlock) Malformed() bool { return len(b.Problems) > 0 }

// ParseIssueLog parses the issue log document into its issue blocks, in
// document order. Text before the first heading is ignored. A document
// with no issue headings parses to an empty slice.
func ParseIssueLog(content string) []IssueBlock {
	headings := issueHeadingRe.FindAllStringSubmatchIndex(content, -1)
	blocks := make([]IssueBlock, 0, len(headings))
	for i, h := range headings {
		end := len(content)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}
		id := content[h[2]:h[3]]
		span := content[h[1]:end]
		blocks = append(blocks, parseIssueBlock(id, span))
	}
	return blocks
}

// fieldValue extracts a labelled field from a block span. The label may be
// plain ("Severity:"), bold ("**Severity**:"), or a list item
// ("- Severity: ..."). Returns the trimmed value and whether the label was
// present at all.
func fieldValue(span, label string) (string, bool) {
	re := regexp.MustCompile(`(?im)^\s*[-*]*\s*\**` + regexp.QuoteMeta(label) + `\**\s*:\s*(.*)$`)
	m := re.FindStringSubmatch(span)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "*")), true
}

// parseIssueBlock runs the field extractor over one block span.
func parseIssueBlock(id, span string) IssueBlock {
	b := IssueBlock{Issue: models.Issue{ID: id}}
	missing := func(label string) {
		b.Problems = append(b.Problems, fmt.Sprintf("missing field %q", label))
	}
	malformed := func(label, raw string) {
		b.Problems = append(b.Problems, fmt.Sprintf("malformed field %q: %q", label, raw))
	}

	if raw, ok := fieldValue(span, "Severity"); !ok {
		missing("Severity")
	} else {
		sev := models.ParseIssueSeverity(raw)
		if !sev.Valid() {
			malformed("Severity", raw)
		}
		b.Issue.Severity = sev
	}

	if raw, ok := fieldValue(span, "Status"); !ok {
		missing("Status")
	} else {
		status, ok := parseIssueStatus(raw)
		if !ok {
			malformed("Status", raw)
		}
		b.Issue.Status = status
	}

	if title, ok := fieldValue(span, "Title"); ok {
		b.Issue.Title = title
	} else {
		missing("Title")
	}

	if ref, ok := fieldValue(span, "Regression Test Required"); ok {
		b.Issue.RegressionTest = ref
	}

	if raw, ok := fieldValue(span, "Test Verified"); ok {
		b.Issue.TestVerified = parseYes(raw)
	}

	return b
}

// parseIssueStatus canonicalizes a status value, accepting spaces or
// hyphens in place of underscores.
func parseIssueStatus(raw string) (models.IssueStatus, bool) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch models.IssueStatus(norm) {
	case models.IssueOpen, models.IssueFixedPendingVerify, models.IssueClosed:
		return models.IssueStatus(norm), true
	}
	return models.IssueStatus(norm), false
}

// parseYes interprets an affirmative field value.
func parseYes(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "y", "verified", "✓":
		return true
	}
	return false
}
