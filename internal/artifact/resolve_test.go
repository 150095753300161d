package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touchAt(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("setting mtime on %s: %v", name, err)
	}
	return path
}

func TestResolveJustWritten(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var r MTimeResolver

	t.Run("most recent wins", func(t *testing.T) {
		dir := t.TempDir()
		older := touchAt(t, dir, "review-sonnet.json", base)
		newer := touchAt(t, dir, "review-opus.json", base.Add(time.Minute))
		got, ok := r.ResolveJustWritten([]string{older, newer}, time.Time{})
		if !ok || got != newer {
			t.Errorf("got %q ok=%v, want %q", got, ok, newer)
		}
	})

	t.Run("since cutoff excludes stale candidates", func(t *testing.T) {
		dir := t.TempDir()
		stale := touchAt(t, dir, "review-sonnet.json", base.Add(-time.Hour))
		fresh := touchAt(t, dir, "review-codex.json", base.Add(time.Second))
		got, ok := r.ResolveJustWritten([]string{stale, fresh}, base)
		if !ok || got != fresh {
			t.Errorf("got %q ok=%v, want %q", got, ok, fresh)
		}
	})

	t.Run("all candidates stale", func(t *testing.T) {
		dir := t.TempDir()
		stale := touchAt(t, dir, "review-sonnet.json", base.Add(-time.Hour))
		if got, ok := r.ResolveJustWritten([]string{stale}, base); ok {
			t.Errorf("got %q, want no match", got)
		}
	})

	t.Run("missing candidates skipped", func(t *testing.T) {
		dir := t.TempDir()
		present := touchAt(t, dir, "review-opus.json", base)
		got, ok := r.ResolveJustWritten([]string{filepath.Join(dir, "absent.json"), present}, time.Time{})
		if !ok || got != present {
			t.Errorf("got %q ok=%v, want %q", got, ok, present)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if got, ok := r.ResolveJustWritten(nil, time.Time{}); ok {
			t.Errorf("got %q from empty candidate list", got)
		}
	})

	t.Run("equal mtimes keep earlier candidate", func(t *testing.T) {
		dir := t.TempDir()
		a := touchAt(t, dir, "review-sonnet.json", base)
		b := touchAt(t, dir, "review-opus.json", base)
		got, ok := r.ResolveJustWritten([]string{a, b}, time.Time{})
		if !ok || got != a {
			t.Errorf("got %q ok=%v, want first-listed %q on tie", got, ok, a)
		}
	})
}
