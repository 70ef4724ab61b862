package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databydepew/git-auto-commit/internal/git"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit untouched", "Add login handler", 72, "Add login handler"},
		{"exactly at limit untouched", "abcde", 5, "abcde"},
		{"cuts at word boundary", "Add the new login handler module", 20, "Add the new login..."},
		{"no boundary before limit", "Supercalifragilistic", 10, "Superca..."},
		{"boundary exactly at cut", "Add new handler", 11, "Add new..."},
		{"multi-byte runes counted as characters", strings.Repeat("é", 20), 10, strings.Repeat("é", 7) + "..."},
		{"multi-byte with word boundary", "Ajouter été fériés au calendrier", 16, "Ajouter été..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.max)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncate_NeverExceedsLimit(t *testing.T) {
	inputs := []string{
		"one two three four five six seven eight nine ten",
		"word",
		"a b c d e f g h i j k l m n o p q r s t u v w x y z",
		strings.Repeat("long", 50),
		strings.Repeat("é", 30),
		"更新 配置 文件 以及 文档 说明",
	}
	for _, in := range inputs {
		for max := 4; max < utf8.RuneCountInString(in)+5; max++ {
			got := Truncate(in, max)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), max, "input %q max %d", in, max)
			assert.True(t, utf8.ValidString(got), "input %q max %d", in, max)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain line", "Add login handler", "Add login handler"},
		{"leading blank lines", "\n\nAdd login handler\n", "Add login handler"},
		{"takes first of many", "Add login handler\n\nMore detail here.", "Add login handler"},
		{"strips code fence", "```\nfix: handle empty body\n```", "fix: handle empty body"},
		{"strips quotes", `"Add login handler"`, "Add login handler"},
		{"strips backticks", "`Add login handler`", "Add login handler"},
		{"empty completion", "\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstLine(tt.in))
		})
	}
}

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestAI_UsesCompletion(t *testing.T) {
	stub := &stubCompleter{reply: "Add OAuth login flow\n\nextra detail"}
	gen := NewAI(stub, false)

	snap := snapshot(git.FileChange{Status: git.StatusAdded, Path: "auth/oauth.go"})
	got, err := gen.Generate(context.Background(), snap)

	require.NoError(t, err)
	assert.Equal(t, "Add OAuth login flow", got)
	assert.Equal(t, 1, stub.calls)
}

func TestAI_FallsBackToRulesOnError(t *testing.T) {
	snap := snapshot(git.FileChange{Status: git.StatusAdded, Path: "auth/oauth.go"})

	ruleCandidate, err := NewRuleBased().Generate(context.Background(), snap)
	require.NoError(t, err)

	for _, failure := range []*stubCompleter{
		{err: errors.New("connection refused")},
		{err: context.DeadlineExceeded},
		{reply: "\n\n"}, // empty completion
	} {
		got, err := NewAI(failure, false).Generate(context.Background(), snap)
		require.NoError(t, err)
		assert.Equal(t, ruleCandidate, got)
	}
}

func TestAI_TruncatesLargeDiffInPrompt(t *testing.T) {
	var captured string
	capture := completerFunc(func(_ context.Context, _, user string) (string, error) {
		captured = user
		return "Update data pipeline", nil
	})

	snap := &git.Snapshot{
		Files: []git.FileChange{{Status: git.StatusModified, Path: "data/pipeline.go"}},
		Diff:  strings.Repeat("+ line of diff\n", 1000),
	}

	_, err := NewAI(capture, false).Generate(context.Background(), snap)
	require.NoError(t, err)
	assert.Contains(t, captured, "(diff truncated due to size)")
	assert.Less(t, len(captured), MaxDiffBytes+200)
}

type completerFunc func(ctx context.Context, system, user string) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

func TestPipeline_ProposeAppliesPostProcessing(t *testing.T) {
	snap := snapshot(
		git.FileChange{Status: git.StatusAdded, Path: "tests/test_api.py"},
		git.FileChange{Status: git.StatusAdded, Path: "tests/test_db.py"},
	)

	p := NewPipeline(NewRuleBased(), Options{MaxLength: 72, Conventional: true})
	got, err := p.Propose(context.Background(), snap)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "test: "), "got %q", got)
	assert.LessOrEqual(t, len(got), 72)
}

func TestPipeline_FallbackMatchesRuleBasedCandidate(t *testing.T) {
	snap := snapshot(
		git.FileChange{Status: git.StatusModified, Path: "app/models.py"},
		git.FileChange{Status: git.StatusModified, Path: "app/views.py"},
	)
	opts := Options{MaxLength: 72}

	ruleResult, err := NewPipeline(NewRuleBased(), opts).Propose(context.Background(), snap)
	require.NoError(t, err)

	failing := &stubCompleter{err: errors.New("dial tcp: i/o timeout")}
	aiResult, err := NewPipeline(NewAI(failing, false), opts).Propose(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, ruleResult, aiResult)
}

func TestPipeline_EmptySnapshot(t *testing.T) {
	p := NewPipeline(NewRuleBased(), Options{MaxLength: 72})
	_, err := p.Propose(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptySnapshot)
}
