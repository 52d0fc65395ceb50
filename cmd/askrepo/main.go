// Command askrepo answers questions about a local repository from the
// command line, using the same bounded-context and model-fallback
// pipeline as the issue assistant.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"askrepo/internal/answer"
	"askrepo/internal/config"
	"askrepo/internal/llmclient"
	"askrepo/internal/repoctx"
)

var (
	repoRoot string
	model    string
	maxChars int
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "askrepo [question...]",
	Short: "Ask questions about a repository",
	Long: `askrepo builds a bounded textual snapshot of a repository and sends it,
together with your question, to a configured model endpoint.

Configuration is read from the environment (or a .env file):
OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL, OPENAI_FALLBACK_MODEL,
OPENAI_MODEL_CANDIDATES.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAsk,
}

func init() {
	rootCmd.Flags().StringVar(&repoRoot, "repo-root", ".", "path to the repository root")
	rootCmd.Flags().StringVar(&model, "model", "", "model name (default: OPENAI_MODEL or "+config.DefaultModel+")")
	rootCmd.Flags().IntVar(&maxChars, "max-context-chars", config.DefaultMaxCharsCLI, "maximum repository context characters to send")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log attempts and fallbacks")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForAsk(); err != nil {
		return err
	}
	if model == "" {
		model = cfg.Model
	}

	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		fmt.Print("Ask about this repo: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		q = strings.TrimSpace(line)
	}
	if q == "" {
		return fmt.Errorf("question is required")
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	repoContext, err := repoctx.Build(repoRoot, maxChars)
	if err != nil {
		return fmt.Errorf("build repository context: %w", err)
	}
	if repoContext == "" {
		return fmt.Errorf("no readable text files found for repo context")
	}

	svc := llmclient.NewService(llmclient.Options{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		GeminiAPIKey: cfg.GeminiAPIKey,
	}, llmclient.SystemPromptCLI, "")
	defer svc.Close()

	gen := answer.NewGenerator(svc, answer.PlanConfig{
		Fallback: cfg.Fallback,
		Extras:   cfg.Candidates,
		BaseURL:  cfg.BaseURL,
	}, logger)

	text, err := gen.Generate(cmd.Context(), q, repoContext, model)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
