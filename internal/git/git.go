package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Info describes the repository containing a working directory.
type Info struct {
	Repository string
	Branch     string
}

func runGit(workingDir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", workingDir}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// GetInfo resolves repository name and branch for a directory. Outside
// a git repository it falls back to the directory basename and an
// "unknown" branch.
func GetInfo(workingDir string) *Info {
	info := &Info{
		Repository: filepath.Base(workingDir),
		Branch:     "unknown",
	}

	if inside, err := runGit(workingDir, "rev-parse", "--is-inside-work-tree"); err != nil || inside != "true" {
		return info
	}

	// git-common-dir resolves the main repository even from a worktree.
	if gitDir, err := runGit(workingDir, "rev-parse", "--git-common-dir"); err == nil {
		info.Repository = filepath.Base(filepath.Dir(gitDir))
	} else if topLevel, err := runGit(workingDir, "rev-parse", "--show-toplevel"); err == nil {
		info.Repository = filepath.Base(topLevel)
	}

	if branch, err := runGit(workingDir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil && branch != "" {
		info.Branch = branch
	}

	return info
}

// DiffStats summarizes code changes between two commits.
type DiffStats struct {
	LinesAdded   int `json:"linesAdded"`
	LinesRemoved int `json:"linesRemoved"`
	FilesChanged int `json:"filesChanged"`
}

// GetDiffStats runs `git diff --numstat` between two refs and totals
// the per-file counts. An empty toRef compares against HEAD.
func GetDiffStats(projectPath, fromRef, toRef string) (*DiffStats, error) {
	if toRef == "" {
		toRef = "HEAD"
	}

	cmd := exec.Command("git", "diff", "--numstat", fromRef, toRef)
	cmd.Dir = projectPath
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to execute git diff: %w", err)
	}

	return parseNumstat(string(output)), nil
}

// parseNumstat totals numstat lines of the form "<added>\t<removed>\t<file>".
// Binary files report "-" for both counts and still count as changed.
func parseNumstat(output string) *DiffStats {
	stats := &DiffStats{}
	for _, line := range strings.Split(output, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		stats.FilesChanged++
		if added, err := strconv.Atoi(parts[0]); err == nil {
			stats.LinesAdded += added
		}
		if removed, err := strconv.Atoi(parts[1]); err == nil {
			stats.LinesRemoved += removed
		}
	}
	return stats
}
