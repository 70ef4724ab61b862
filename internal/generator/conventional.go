package generator

import (
	"regexp"
	"strings"

	"github.com/databydepew/git-auto-commit/internal/git"
)

var conventionalHead = regexp.MustCompile(`^[a-z]+(\([^)]+\))?(!)?: `)

// hasConventionalToken reports whether a message already starts with a
// Conventional Commits head like "feat:" or "fix(parser):".
func hasConventionalToken(message string) bool {
	return conventionalHead.MatchString(message)
}

// ConventionalToken infers the Conventional Commits head for a snapshot,
// including the trailing colon, e.g. "test:" or "fix(config):".
//
// The decision table runs in order: path classes first (test, docs, ci,
// build), then the fix keyword over paths and added diff lines, then the
// status mix (all-config chore, added-dominant feat, modified-dominant
// refactor, chore otherwise). A scope is attached only for feat, fix,
// refactor and chore, and only when every path shares one top-level
// directory.
func ConventionalToken(snap *git.Snapshot) string {
	typ := inferType(snap)

	switch typ {
	case "feat", "fix", "refactor", "chore":
		if scope := sharedTopDir(snap.Files); scope != "" {
			return typ + "(" + scope + "):"
		}
	}
	return typ + ":"
}

func inferType(snap *git.Snapshot) string {
	files := snap.Files

	if all(files, isTestPath) {
		return "test"
	}
	if all(files, isDocPath) {
		return "docs"
	}
	if all(files, isCIPath) {
		return "ci"
	}
	if all(files, isBuildPath) {
		return "build"
	}
	if mentionsFix(snap) {
		return "fix"
	}
	if all(files, isConfigPath) {
		return "chore"
	}

	counts := map[byte]int{}
	for _, f := range files {
		counts[f.Status]++
	}
	total := len(files)
	switch {
	case counts[git.StatusAdded] > 0 && counts[git.StatusAdded] >= total-counts[git.StatusAdded]:
		return "feat"
	case counts[git.StatusModified] > 0 && counts[git.StatusModified] >= total-counts[git.StatusModified]:
		return "refactor"
	default:
		return "chore"
	}
}

func all(files []git.FileChange, pred func(git.FileChange) bool) bool {
	for _, f := range files {
		if !pred(f) {
			return false
		}
	}
	return len(files) > 0
}

func isTestPath(f git.FileChange) bool {
	p := strings.ToLower(f.Path)
	base := strings.ToLower(f.Base())
	return strings.Contains(p, "test/") || strings.Contains(p, "tests/") ||
		strings.HasPrefix(base, "test_") || strings.Contains(base, "_test.") ||
		strings.Contains(base, ".test.") || strings.Contains(base, ".spec.")
}

func isDocPath(f git.FileChange) bool {
	switch f.Ext() {
	case "md", "rst", "txt", "adoc":
		return true
	}
	p := strings.ToLower(f.Path)
	return strings.HasPrefix(p, "docs/") || strings.Contains(p, "/docs/")
}

func isCIPath(f git.FileChange) bool {
	p := strings.ToLower(f.Path)
	return strings.HasPrefix(p, ".github/workflows/") ||
		strings.HasPrefix(p, ".gitlab-ci") ||
		strings.HasPrefix(p, "ci/") || strings.Contains(p, "/ci/") ||
		strings.HasSuffix(p, ".jenkinsfile") || f.Base() == "Jenkinsfile"
}

func isBuildPath(f git.FileChange) bool {
	switch f.Base() {
	case "Makefile", "Dockerfile", "go.mod", "go.sum", "package.json",
		"package-lock.json", "requirements.txt", "setup.py", "pyproject.toml",
		"Cargo.toml", "pom.xml", "build.gradle":
		return true
	}
	return f.Ext() == "mk"
}

func isConfigPath(f git.FileChange) bool {
	switch f.Ext() {
	case "json", "yaml", "yml", "toml", "ini", "cfg", "conf":
		return true
	}
	return false
}

var fixWord = regexp.MustCompile(`(?i)\b(fix|fixes|fixed|bug|bugfix|hotfix)\b`)

// mentionsFix scans the changed paths and the added diff lines for fix
// keywords. Removed lines are ignored so that deleting a "fix me" note
// does not classify the change as a fix.
func mentionsFix(snap *git.Snapshot) bool {
	for _, f := range snap.Files {
		if fixWord.MatchString(f.Path) {
			return true
		}
	}
	for _, line := range strings.Split(snap.Diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			if fixWord.MatchString(line) {
				return true
			}
		}
	}
	return false
}

// sharedTopDir returns the single top-level directory containing every
// changed path, or "" when paths live at the root or spread across
// directories.
func sharedTopDir(files []git.FileChange) string {
	dir := ""
	for _, f := range files {
		idx := strings.IndexByte(f.Path, '/')
		if idx <= 0 {
			return ""
		}
		top := f.Path[:idx]
		if dir == "" {
			dir = top
		} else if top != dir {
			return ""
		}
	}
	return dir
}
