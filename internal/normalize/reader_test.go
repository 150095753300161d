package normalize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadArtifact(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		path := writeFixture(t, "report.json", `{"status": "Approved", "findings": []}`)
		got := ReadArtifact(path)
		want := map[string]any{"status": "approved", "findings": []any{}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ReadArtifact mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fenced json with prose", func(t *testing.T) {
		content := "Here is my analysis:\n```json\n{\"severity\": \"Crit\"}\n```\nLet me know.\n"
		path := writeFixture(t, "report.json", content)
		got := ReadArtifact(path)
		want := map[string]any{"severity": "critical"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ReadArtifact mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if got := ReadArtifact(filepath.Join(t.TempDir(), "nope.json")); got != nil {
			t.Errorf("got %v, want nil for missing file", got)
		}
	})

	t.Run("no json content", func(t *testing.T) {
		path := writeFixture(t, "report.json", "The agent declined to produce JSON today.")
		if got := ReadArtifact(path); got != nil {
			t.Errorf("got %v, want nil for non-JSON content", got)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFixture(t, "report.json", "")
		if got := ReadArtifact(path); got != nil {
			t.Errorf("got %v, want nil for empty file", got)
		}
	})
}
