// Package git shells out to the git CLI for the three operations this
// tool needs: find the repository root, snapshot the staged changes, and
// commit with a message.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"
)

// ErrNothingStaged indicates there are no staged changes to describe.
// It is a terminal condition for a run, not a failure.
var ErrNothingStaged = errors.New("nothing to commit")

// Status letters reported by git diff --name-status.
const (
	StatusAdded    = 'A'
	StatusModified = 'M'
	StatusDeleted  = 'D'
	StatusRenamed  = 'R'
	StatusCopied   = 'C'
)

// FileChange is one staged path with its change status.
type FileChange struct {
	Status byte
	Path   string
}

// Base returns the file name portion of the changed path.
func (f FileChange) Base() string {
	return path.Base(f.Path)
}

// Ext returns the path's extension without the leading dot, lowercased.
func (f FileChange) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(f.Path), "."))
}

// Snapshot is the staged state captured once per run: the changed files
// and the full unified diff of the index against HEAD.
type Snapshot struct {
	Files []FileChange
	Diff  string
}

// RepoRoot returns the repository root of the current working directory.
// A failure means git is unavailable or the directory is not inside a
// repository; the tool's stderr is carried in the error verbatim.
func RepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("not a git repository (or git not found): %v\nOutput: %s", err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

// StagedSnapshot captures the staged file list and unified diff. It
// returns ErrNothingStaged when the index matches HEAD.
func StagedSnapshot() (*Snapshot, error) {
	nameStatus, err := run("diff", "--cached", "--name-status")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}

	files, err := ParseNameStatus(nameStatus)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNothingStaged
	}

	diff, err := run("--no-pager", "diff", "--cached")
	if err != nil {
		return nil, fmt.Errorf("failed to get staged diff: %w", err)
	}

	return &Snapshot{Files: files, Diff: diff}, nil
}

// ParseNameStatus parses git diff --name-status output. Rename and copy
// lines carry two paths separated by tabs; the destination path is kept.
func ParseNameStatus(output string) ([]FileChange, error) {
	var files []FileChange
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("unexpected git name-status line: %q", line)
		}
		status := parts[0][0]
		filePath := parts[1]
		if (status == StatusRenamed || status == StatusCopied) && len(parts) >= 3 {
			filePath = parts[2]
		}
		files = append(files, FileChange{Status: status, Path: filePath})
	}
	return files, nil
}

// Commit runs git commit with the given message over the staged changes.
// Staging state is left exactly as git leaves it on failure.
func Commit(message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git commit failed: %v\nOutput: %s", err, string(output))
	}
	return nil
}

func run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(output), nil
}
