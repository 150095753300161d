// Package bundle validates blind-review bundles. Certain review stages
// must not see certain material: the spec-compliance reviewer must not see
// source code, the exploit hunter must not see specification prose, and
// the adversarial attacker and defender must not see each other's output
// before dispute resolution. A bundle is a directory snapshot prepared for
// one such stage; this package checks that nothing forbidden leaked in.
package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind names the blindness policy a bundle was prepared under.
type Kind string

const (
	// KindNoCode forbids smart-contract source (spec-compliance review).
	KindNoCode Kind = "no-code"
	// KindNoSpec forbids specification prose (blind exploit hunt).
	KindNoSpec Kind = "no-spec"
	// KindNoAttacker forbids attacker-output markers (defender bundle).
	KindNoAttacker Kind = "no-attacker"
	// KindNoDefender forbids defender-output markers (attacker bundle).
	KindNoDefender Kind = "no-defender"
)

// Violation is one blindness breach found in a bundle. Violations are
// independent of each other, so a check reports all of them rather than
// stopping at the first.
type Violation struct {
	// Path is the offending file, relative to the bundle root.
	Path string
	// Signature names the rule that fired.
	Signature string
	// Detail describes what matched.
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Path, v.Signature, v.Detail)
}

// signature is one content pattern associated with a forbidden class.
type signature struct {
	name string
	re   *regexp.Regexp
}

// Solidity syntax markers. Any one of these identifies a file as contract
// source regardless of its extension.
var codeSignatures = []signature{
	{"solidity pragma", regexp.MustCompile(`(?m)^\s*pragma\s+solidity\b`)},
	{"contract declaration", regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?(?:contract|interface|library)\s+\w+`)},
	{"function visibility modifier", regexp.MustCompile(`function\s+\w+\s*\([^)]*\)\s*(?:external|public|internal|private)\b`)},
}

// Specification prose markers: the threat model's characteristic headings
// and the invariant table's column headers.
var specSignatures = []signature{
	{"threat model heading", regexp.MustCompile(`(?m)^#{1,3}\s*Threat Model\b`)},
	{"invariants heading", regexp.MustCompile(`(?m)^#{1,3}\s*Invariants\b`)},
	{"invariant table columns", regexp.MustCompile(`\|\s*Invariant\s*\|\s*(?:Description|Category|Test)\s*\|`)},
}

// Adversarial output markers: each reviewer's template stamps its findings
// with a distinctive id prefix, so the other reviewer's bundle can be
// checked for leaks by literal marker.
var (
	attackerSignature = signature{"attacker finding marker", regexp.MustCompile(`ATK-\d+`)}
	defenderSignature = signature{"defender finding marker", regexp.MustCompile(`DEF-\d+`)}
)

// codeDirs are excluded from the no-spec content scan: code is expected
// there, and scanning it for English prose patterns false-positives.
var codeDirs = map[string]bool{"src": true, "test": true}

// rule is the complete policy for one bundle kind.
type rule struct {
	deniedNames []string
	signatures  []signature
	// skipCodeDirs excludes src/ and test/ from the content scan.
	skipCodeDirs bool
}

func ruleFor(kind Kind) (rule, error) {
	switch kind {
	case KindNoCode:
		return rule{deniedNames: []string{".sol"}, signatures: codeSignatures}, nil
	case KindNoSpec:
		return rule{deniedNames: []string{"threat-model.md"}, signatures: specSignatures, skipCodeDirs: true}, nil
	case KindNoAttacker:
		return rule{signatures: []signature{attackerSignature}}, nil
	case KindNoDefender:
		return rule{signatures: []signature{defenderSignature}}, nil
	}
	return rule{}, fmt.Errorf("unknown bundle kind %q", kind)
}

// Check walks the bundle directory and returns every blindness violation
// under the given kind's policy. An empty slice means the bundle is clean.
func Check(dir string, kind Kind) ([]Violation, error) {
	r, err := ruleFor(kind)
	if err != nil {
		return nil, err
	}

	var violations []Violation
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}

		for _, denied := range r.deniedNames {
			name := d.Name()
			if name == denied || strings.HasSuffix(name, denied) {
				violations = append(violations, Violation{
					Path:      rel,
					Signature: "forbidden filename",
					Detail:    fmt.Sprintf("files matching %q are not allowed in a %s bundle", denied, kind),
				})
				break
			}
		}

		if r.skipCodeDirs && inCodeDir(rel) {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			// Unreadable bundle content cannot be confirmed clean, but a
			// read error is plumbing, not a leak; skip it.
			return nil
		}
		for _, sig := range r.signatures {
			if m := sig.re.Find(data); m != nil {
				violations = append(violations, Violation{
					Path:      rel,
					Signature: sig.name,
					Detail:    fmt.Sprintf("matched %q", string(m)),
				})
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking bundle %s: %w", dir, walkErr)
	}
	return violations, nil
}

// inCodeDir reports whether the relative path sits under a code directory.
func inCodeDir(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if codeDirs[part] {
			return true
		}
	}
	return false
}

// Summarize renders all violations as one block-reason string.
func Summarize(violations []Violation) string {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}
