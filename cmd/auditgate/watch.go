package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/auditgate/internal/gates"
	"github.com/ShayCichocki/auditgate/internal/pipeline"
)

// watchDebounce batches filesystem events. Agents write artifacts in
// bursts; re-running a gate on every partial write is noise.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run gates as artifacts change",
	Long: `Watch the project's artifact directories and re-evaluate the affected
gate whenever a document or report lands.

Watched: docs/, reports/, and .task/ under the project root. The gate to
re-run is chosen from the changed file's name; files that map to no
specific gate re-run everything. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	log := newLogger()
	defer log.Sync()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range watchDirs(root) {
		if err := watcher.Add(dir); err != nil {
			continue
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("nothing to watch under %s; run 'auditgate init' first", root)
	}

	v := gates.New(root, log)
	reg := pipeline.Load(root)
	fmt.Printf("Watching %d directories under %s (Ctrl-C to stop)\n", watched, root)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			for _, id := range affectedGates(ev.Name, reg) {
				pending[id] = true
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			ids := make([]string, 0, len(pending))
			for _, id := range gateOrder(reg) {
				if pending[id] {
					ids = append(ids, id)
				}
			}
			pending = make(map[string]bool)
			rerunGates(v, ids)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printStatus("⚠", fmt.Sprintf("watch error: %v", err), color.FgYellow)

		case <-sig:
			fmt.Println("\nStopped.")
			return nil
		}
	}
}

// watchDirs lists the existing artifact directories under a root.
func watchDirs(root string) []string {
	candidates := []string{
		filepath.Join(root, "docs"),
		filepath.Join(root, "docs", "security"),
		filepath.Join(root, "docs", "architecture"),
		filepath.Join(root, "docs", "testing"),
		filepath.Join(root, "docs", "reviews"),
		filepath.Join(root, "reports"),
		filepath.Join(root, ".task"),
	}
	var dirs []string
	for _, d := range candidates {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// affectedGates maps a changed artifact path to the gate ids it feeds.
func affectedGates(path string, reg *pipeline.Registry) []string {
	base := filepath.Base(path)
	switch {
	case base == "threat-model.md" || base == "design.md" || base == "test-plan.md" || base == "spec-complete.json":
		return []string{gates.GateSpecCompleteness}
	case hasPathElement(path, "reports"):
		return []string{gates.GateEvidence}
	case strings.HasPrefix(base, "stage3-review"):
		return []string{gates.GateSpecCompliance}
	case strings.HasPrefix(base, "stage4-review") ||
		strings.HasPrefix(base, "attack-plan-review") ||
		strings.HasPrefix(base, "exploit-hunt-review") ||
		strings.HasPrefix(base, "dispute-resolution-review"):
		return []string{gates.GateExploitHunt}
	case base == "issue-log.md" || base == "consolidated-findings.json":
		return []string{gates.GateRedTeamClosure}
	case strings.HasPrefix(base, "final-review"):
		return []string{gates.GateFinalApproval}
	case strings.HasPrefix(base, "plan-review"):
		return []string{gates.GateACPlan}
	case strings.HasPrefix(base, "code-review"):
		return []string{gates.GateACCode}
	case base == "user-stories.json":
		return []string{gates.GateACPlan, gates.GateACCode}
	}
	return gateOrder(reg)
}

// hasPathElement reports whether a path contains the given directory as
// one of its elements. Matching on elements rather than substrings keeps
// relative paths like "reports/test-run.log" recognized.
func hasPathElement(path, elem string) bool {
	for _, part := range strings.Split(filepath.Clean(path), string(filepath.Separator)) {
		if part == elem {
			return true
		}
	}
	return false
}

// rerunGates evaluates the given gates and prints the results.
func rerunGates(v *gates.Validator, ids []string) {
	now := time.Now().Format("15:04:05")
	for _, id := range ids {
		blk, err := v.Run(id)
		switch {
		case err != nil:
			printStatus("⚠", fmt.Sprintf("[%s] gate %s: %v", now, id, err), color.FgYellow)
		case blk != nil:
			printStatus("✗", fmt.Sprintf("[%s] %s", now, blk.Reason), color.FgRed)
		default:
			printStatus("✓", fmt.Sprintf("[%s] gate %s passed", now, id), color.FgGreen)
		}
	}
}
