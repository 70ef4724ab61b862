package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/databydepew/git-auto-commit/internal/clients/openai"
	"github.com/databydepew/git-auto-commit/internal/config"
	"github.com/databydepew/git-auto-commit/internal/generator"
	"github.com/databydepew/git-auto-commit/internal/git"
	"github.com/databydepew/git-auto-commit/internal/tui"
	"github.com/databydepew/git-auto-commit/internal/utils"
)

var version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:     "git-autocommit",
	Short:   "Generate a commit message from your staged changes",
	Long: `git-autocommit inspects the staged changes and proposes a commit
message, either from built-in heuristics or via OpenAI, then commits on
confirmation. Behavior is configured through a .git-autocommit file at
the repository root.`,
	Version: version,
	Run:     run,
}

func init() {
	rootCmd.Flags().Bool("setup", false, "write the default configuration file and exit")
	rootCmd.Flags().Bool("use-ai", false, "use AI to generate the commit message for this run")
	rootCmd.Flags().Bool("conventional", false, "format the message per Conventional Commits for this run")
	rootCmd.Flags().Bool("no-prefix-selection", false, "skip the interactive prefix selection")
	rootCmd.Flags().BoolP("force", "f", false, "commit without confirmation (required in non-interactive environments)")
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) {
	gitRoot, err := git.RepoRoot()
	if err != nil {
		log.Error().Err(err).Msg("Failed to locate repository")
		os.Exit(1)
	}

	if setupFlag, _ := cmd.Flags().GetBool("setup"); setupFlag {
		runSetup(gitRoot)
		return
	}

	cfg, err := config.Load(gitRoot, os.LookupEnv)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	// Flags force-enable features for this run; the file can enable but
	// never veto a flag.
	if useAI, _ := cmd.Flags().GetBool("use-ai"); useAI {
		cfg.UseAI = true
	}
	if conventional, _ := cmd.Flags().GetBool("conventional"); conventional {
		cfg.ConventionalCommits = true
	}

	snap, err := git.StagedSnapshot()
	if err != nil {
		if errors.Is(err, git.ErrNothingStaged) {
			fmt.Println("No changes staged for commit. Stage some changes and try again.")
			return
		}
		log.Error().Err(err).Msg("Failed to read staged changes")
		os.Exit(1)
	}

	skipPicker, _ := cmd.Flags().GetBool("no-prefix-selection")
	if len(cfg.Prefixes) > 0 && !cfg.ConventionalCommits && !skipPicker && utils.IsTTY() {
		prefix, err := tui.SelectPrefix(cfg.Prefixes)
		if err != nil {
			log.Error().Err(err).Msg("Failed to select prefix")
			os.Exit(1)
		}
		cfg.Prefix = prefix
	}

	candidate, err := propose(cfg, snap)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate commit message")
		os.Exit(1)
	}

	forceFlag, _ := cmd.Flags().GetBool("force")
	if !utils.IsTTY() {
		handleNonInteractive(candidate, forceFlag)
		return
	}
	if forceFlag {
		commit(candidate)
		return
	}

	decision, err := tui.Confirm(candidate)
	if err != nil {
		log.Error().Err(err).Msg("Failed to run confirmation prompt")
		os.Exit(1)
	}

	switch decision.Action {
	case tui.ActionCommit:
		commit(decision.Message)
	case tui.ActionCopy:
		if err := clipboard.WriteAll(decision.Message); err != nil {
			log.Error().Err(err).Msg("Failed to copy to clipboard")
			os.Exit(1)
		}
		log.Info().Msg("Commit message copied to clipboard.")
	case tui.ActionCancel:
		fmt.Println("Commit aborted.")
		os.Exit(1)
	}
}

func runSetup(gitRoot string) {
	path, err := config.Setup(gitRoot)
	if err != nil {
		log.Error().Err(err).Msg("Setup failed")
		os.Exit(1)
	}
	fmt.Printf("Created configuration file at %s\n", path)
	fmt.Println("Edit this file to customize the behavior of git-autocommit.")
}

// propose builds the generator for the run and produces the finalized
// candidate. A missing API key with AI requested is fatal before any
// network call.
func propose(cfg config.Config, snap *git.Snapshot) (string, error) {
	var gen generator.Generator = generator.NewRuleBased()

	if cfg.UseAI {
		if cfg.OpenAIAPIKey == "" {
			return "", fmt.Errorf("AI generation requested but no API key configured; set openai_api_key in %s or the %s environment variable", config.FileName, config.EnvAPIKey)
		}
		client := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "", nil)
		gen = generator.NewAI(client, cfg.ConventionalCommits)
	}

	pipeline := generator.NewPipeline(gen, generator.Options{
		Prefix:       cfg.Prefix,
		MaxLength:    cfg.MaxLength,
		Conventional: cfg.ConventionalCommits,
	})

	var spin *tui.Spinner
	if cfg.UseAI {
		spin = tui.NewSpinner()
		spin.Start("Generating commit message...")
	}

	candidate, err := pipeline.Propose(context.Background(), snap)
	if spin != nil {
		spin.Stop()
	}
	return candidate, err
}

func handleNonInteractive(candidate string, force bool) {
	if force {
		commit(candidate)
		return
	}
	fmt.Printf("Generated commit message:\n%s\n", candidate)
	fmt.Println("\nRun with -f to apply this commit in non-interactive environments.")
}

func commit(message string) {
	if err := git.Commit(message); err != nil {
		log.Error().Err(err).Msg("Failed to execute git commit")
		os.Exit(1)
	}
	log.Info().Msg("Commit successfully created!")
}
