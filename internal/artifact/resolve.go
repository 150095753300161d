package artifact

import (
	"os"
	"time"
)

// Resolver decides which of several candidate artifacts the agent that
// triggered the current hook invocation most likely wrote. The hook
// protocol does not carry an explicit "I wrote this file" identifier, so
// the decision is necessarily a heuristic; keeping it behind an interface
// lets validators stay ignorant of which heuristic is in use.
type Resolver interface {
	// ResolveJustWritten returns the candidate most likely written since
	// the given time, and false when no candidate qualifies.
	ResolveJustWritten(candidates []string, since time.Time) (string, bool)
}

// MTimeResolver resolves candidates by file modification time: the most
// recently modified existing candidate wins. Known limitation: two files
// written within the file system's mtime resolution window compare equal,
// and the earlier candidate in the slice wins the tie.
type MTimeResolver struct{}

// ResolveJustWritten implements Resolver. Candidates that do not exist are
// skipped. A zero since accepts any mtime; otherwise candidates modified
// before since are excluded.
func (MTimeResolver) ResolveJustWritten(candidates []string, since time.Time) (string, bool) {
	var (
		best      string
		bestMtime time.Time
		found     bool
	)
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		mtime := info.ModTime()
		if !since.IsZero() && mtime.Before(since) {
			continue
		}
		if !found || mtime.After(bestMtime) {
			best, bestMtime, found = path, mtime, true
		}
	}
	return best, found
}
