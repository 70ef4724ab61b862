// Package config loads the .git-autocommit file found at the repository
// root. The file is flat INI with a single [autocommit] section:
//
//	[autocommit]
//	prefix =
//	prefixes = feat:, fix:, docs:, style:, refactor:, perf:, test:, build:, ci:, chore:
//	max_length = 72
//	use_ai = false
//	openai_api_key =
//	openai_model = gpt-3.5-turbo
//	conventional_commits = false
//
// A missing file yields defaults. Unknown keys are ignored; a key whose
// value cannot be parsed is a fatal configuration error. OPENAI_API_KEY
// from the environment fills openai_api_key only when the file leaves it
// blank.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// FileName is the config file name, relative to the repository root.
	FileName = ".git-autocommit"

	section = "autocommit"

	// DefaultMaxLength is the commit message length limit when the file
	// does not set max_length.
	DefaultMaxLength = 72

	// DefaultModel is the completion model used when openai_model is unset.
	DefaultModel = "gpt-3.5-turbo"

	defaultPrefixes = "feat:, fix:, docs:, style:, refactor:, perf:, test:, build:, ci:, chore:"

	// EnvAPIKey is the environment variable consulted when the config
	// file leaves openai_api_key blank.
	EnvAPIKey = "OPENAI_API_KEY"
)

// ErrConfigExists is returned by Setup when the config file already exists.
var ErrConfigExists = errors.New("configuration file already exists")

// Config holds all resolved settings for one run. It is built once at
// startup and never mutated afterwards.
type Config struct {
	Prefix              string
	Prefixes            []string
	MaxLength           int
	UseAI               bool
	OpenAIAPIKey        string
	OpenAIModel         string
	ConventionalCommits bool
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		MaxLength:   DefaultMaxLength,
		OpenAIModel: DefaultModel,
	}
}

// Load reads the config file under gitRoot, falling back to defaults for
// absent keys and for an absent file. env supplies the process
// environment lookup, normally os.LookupEnv.
func Load(gitRoot string, env func(string) (string, bool)) (Config, error) {
	cfg := Default()

	path := filepath.Join(gitRoot, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}

	if cfg.OpenAIAPIKey == "" && env != nil {
		if key, ok := env(EnvAPIKey); ok {
			cfg.OpenAIAPIKey = key
		}
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	sec := file.Section(section)

	if sec.HasKey("prefix") {
		cfg.Prefix = strings.TrimSpace(sec.Key("prefix").String())
	}
	if sec.HasKey("prefixes") {
		cfg.Prefixes = splitPrefixes(sec.Key("prefixes").String())
	}
	if sec.HasKey("max_length") {
		n, err := sec.Key("max_length").Int()
		if err != nil {
			return fmt.Errorf("invalid max_length in %s: %w", FileName, err)
		}
		if n <= 0 {
			return fmt.Errorf("invalid max_length in %s: must be positive, got %d", FileName, n)
		}
		cfg.MaxLength = n
	}
	if sec.HasKey("use_ai") {
		b, err := sec.Key("use_ai").Bool()
		if err != nil {
			return fmt.Errorf("invalid use_ai in %s: %w", FileName, err)
		}
		cfg.UseAI = b
	}
	if sec.HasKey("openai_api_key") {
		cfg.OpenAIAPIKey = strings.TrimSpace(sec.Key("openai_api_key").String())
	}
	if sec.HasKey("openai_model") {
		if model := strings.TrimSpace(sec.Key("openai_model").String()); model != "" {
			cfg.OpenAIModel = model
		}
	}
	if sec.HasKey("conventional_commits") {
		b, err := sec.Key("conventional_commits").Bool()
		if err != nil {
			return fmt.Errorf("invalid conventional_commits in %s: %w", FileName, err)
		}
		cfg.ConventionalCommits = b
	}

	return nil
}

func splitPrefixes(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Setup writes the default config file under gitRoot. It fails with
// ErrConfigExists when the file is already present, leaving it untouched.
func Setup(gitRoot string) (string, error) {
	path := filepath.Join(gitRoot, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w at %s", ErrConfigExists, path)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat config file: %w", err)
	}

	file := ini.Empty()
	sec, err := file.NewSection(section)
	if err != nil {
		return "", fmt.Errorf("failed to build default config: %w", err)
	}
	for _, kv := range [][2]string{
		{"prefix", ""},
		{"prefixes", defaultPrefixes},
		{"max_length", fmt.Sprintf("%d", DefaultMaxLength)},
		{"use_ai", "false"},
		{"openai_api_key", ""},
		{"openai_model", DefaultModel},
		{"conventional_commits", "false"},
	} {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return "", fmt.Errorf("failed to build default config: %w", err)
		}
	}

	if err := file.SaveTo(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return path, nil
}
