package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/databydepew/git-auto-commit/internal/git"
)

// MaxDiffBytes bounds the diff excerpt embedded in the completion prompt.
const MaxDiffBytes = 4000

var ErrEmptyCompletion = errors.New("completion service returned no usable text")

const systemPrompt = `Generate a concise, meaningful git commit message based on the provided diff.
Keep the message under 72 characters. Focus on WHAT changed and WHY, not HOW.
Don't include obvious things like 'Update file.txt'.
Reply with the commit message only, on a single line.`

const conventionalSystemPrompt = `Generate a concise, meaningful git commit message based on the provided diff.
Follow the Conventional Commits format: <type>[(scope)]: <description>

Types: feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert

Keep the message under 72 characters. Focus on WHAT changed and WHY, not HOW.
Don't include obvious things like 'Update file.txt'.
Reply with the commit message only, on a single line.`

// Completer performs one completion request against the text-generation
// service.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// AI asks a Completer to describe the diff and takes the first line of
// the reply. Any service failure falls back to the rule-based variant
// for the same snapshot, with a visible warning.
type AI struct {
	completer    Completer
	fallback     *RuleBased
	conventional bool
}

func NewAI(completer Completer, conventional bool) *AI {
	if completer == nil {
		panic("completer cannot be nil")
	}
	return &AI{
		completer:    completer,
		fallback:     NewRuleBased(),
		conventional: conventional,
	}
}

func (a *AI) Generate(ctx context.Context, snap *git.Snapshot) (string, error) {
	if snap == nil || len(snap.Files) == 0 {
		return "", ErrEmptySnapshot
	}

	candidate, err := a.complete(ctx, snap)
	if err != nil {
		log.Warn().Err(err).Msg("AI generation failed, falling back to rule-based message")
		return a.fallback.Generate(ctx, snap)
	}
	return candidate, nil
}

func (a *AI) complete(ctx context.Context, snap *git.Snapshot) (string, error) {
	system := systemPrompt
	if a.conventional {
		system = conventionalSystemPrompt
	}

	diff := snap.Diff
	if len(diff) > MaxDiffBytes {
		diff = diff[:MaxDiffBytes] + "\n...\n(diff truncated due to size)"
	}
	user := fmt.Sprintf("Here's the git diff:\n\n%s", diff)

	completion, err := a.completer.Complete(ctx, system, user)
	if err != nil {
		return "", err
	}

	candidate := firstLine(completion)
	if candidate == "" {
		return "", ErrEmptyCompletion
	}
	return candidate, nil
}
