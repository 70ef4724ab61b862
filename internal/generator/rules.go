package generator

import (
	"context"
	"fmt"

	"github.com/databydepew/git-auto-commit/internal/git"
)

// extension class -> phrase used in multi-file rule messages.
var scopePhrases = []struct {
	exts   []string
	phrase string
}{
	{[]string{"js", "ts"}, "JavaScript"},
	{[]string{"py"}, "Python"},
	{[]string{"go"}, "Go"},
	{[]string{"css", "scss"}, "styles"},
	{[]string{"html"}, "HTML"},
	{[]string{"md", "txt"}, "documentation"},
	{[]string{"json", "yaml", "yml", "toml", "ini"}, "configuration"},
}

// RuleBased composes a message from a fixed decision table over the
// staged file statuses and extensions. Deterministic for a given snapshot.
type RuleBased struct{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

func (r *RuleBased) Generate(_ context.Context, snap *git.Snapshot) (string, error) {
	if snap == nil || len(snap.Files) == 0 {
		return "", ErrEmptySnapshot
	}
	return describe(snap.Files), nil
}

func describe(files []git.FileChange) string {
	if len(files) == 1 {
		f := files[0]
		switch f.Status {
		case git.StatusAdded:
			return "Add " + f.Base()
		case git.StatusModified:
			return "Update " + f.Base()
		case git.StatusDeleted:
			return "Delete " + f.Base()
		case git.StatusRenamed:
			return "Rename file to " + f.Base()
		case git.StatusCopied:
			return "Copy file to " + f.Base()
		}
		return "Update " + f.Base()
	}

	counts := map[byte]int{}
	for _, f := range files {
		counts[f.Status]++
	}
	total := len(files)

	var action string
	switch {
	case counts[git.StatusAdded] > 0 && counts[git.StatusAdded] >= total-counts[git.StatusAdded]:
		action = "Add"
	case counts[git.StatusModified] > 0 && counts[git.StatusModified] >= total-counts[git.StatusModified]:
		action = "Update"
	case counts[git.StatusDeleted] > 0 && counts[git.StatusDeleted] >= total-counts[git.StatusDeleted]:
		action = "Remove"
	}

	scope := sharedScopePhrase(files)

	switch {
	case action != "" && scope != "":
		return fmt.Sprintf("%s %s files", action, scope)
	case action != "":
		return fmt.Sprintf("%s %d files", action, total)
	default:
		return fmt.Sprintf("Update %d files", total)
	}
}

// sharedScopePhrase returns the class phrase when every changed file
// falls in the same extension class, otherwise "".
func sharedScopePhrase(files []git.FileChange) string {
	phrase := ""
	for _, f := range files {
		p := phraseForExt(f.Ext())
		if p == "" {
			return ""
		}
		if phrase == "" {
			phrase = p
		} else if p != phrase {
			return ""
		}
	}
	return phrase
}

func phraseForExt(ext string) string {
	for _, class := range scopePhrases {
		for _, e := range class.exts {
			if e == ext {
				return class.phrase
			}
		}
	}
	return ""
}
