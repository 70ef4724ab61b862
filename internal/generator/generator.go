// Package generator derives a candidate commit message from a staged
// snapshot. Two variants exist behind one interface: a deterministic
// rule-based analyzer and an AI-backed generator that falls back to the
// rules when the completion service fails.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/databydepew/git-auto-commit/internal/git"
)

var ErrEmptySnapshot = errors.New("snapshot has no staged files")

// Generator produces a raw candidate message for a staged snapshot.
type Generator interface {
	Generate(ctx context.Context, snap *git.Snapshot) (string, error)
}

// Options controls the post-processing applied to every candidate,
// regardless of which variant produced it.
type Options struct {
	Prefix       string
	MaxLength    int
	Conventional bool
}

// Pipeline combines a Generator with the common post-processing.
type Pipeline struct {
	gen  Generator
	opts Options
}

func NewPipeline(gen Generator, opts Options) *Pipeline {
	if gen == nil {
		panic("generator cannot be nil")
	}
	return &Pipeline{gen: gen, opts: opts}
}

// Propose generates a candidate and applies the conventional token,
// prefix, and length limit.
func (p *Pipeline) Propose(ctx context.Context, snap *git.Snapshot) (string, error) {
	if snap == nil || len(snap.Files) == 0 {
		return "", ErrEmptySnapshot
	}

	candidate, err := p.gen.Generate(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("failed to generate candidate: %w", err)
	}

	return Finalize(candidate, snap, p.opts), nil
}

// Finalize applies the post-processing shared by both variants: the
// inferred conventional token, the configured prefix, and truncation to
// the length limit.
func Finalize(candidate string, snap *git.Snapshot, opts Options) string {
	message := strings.TrimSpace(candidate)

	if opts.Conventional {
		if !hasConventionalToken(message) {
			message = ConventionalToken(snap) + " " + message
		}
	} else if opts.Prefix != "" {
		message = opts.Prefix + " " + message
	}

	if opts.MaxLength > 0 {
		message = Truncate(message, opts.MaxLength)
	}
	return message
}

// Truncate shortens s to at most max characters, backing up to the last
// word boundary when one exists before the limit and marking the cut
// with "...". It operates on runes so multi-byte characters are never
// split.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	cut := max - 3
	for i := cut; i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "..."
}

// firstLine extracts the first non-empty line of a completion, stripping
// markdown fences and surrounding quotes that models tend to add.
func firstLine(completion string) string {
	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.Trim(line, "`")
		line = strings.Trim(line, `"`)
		return strings.TrimSpace(line)
	}
	return ""
}
