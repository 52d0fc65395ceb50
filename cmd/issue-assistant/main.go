// Command issue-assistant answers /ask questions from issue comments.
// It is meant to run inside CI with the repository checked out at the
// working directory: it reads the webhook event payload, builds a
// bounded snapshot of the repository, generates an answer with model
// fallback, and posts the result back to the issue thread.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"askrepo/internal/answer"
	"askrepo/internal/config"
	"askrepo/internal/github"
	"askrepo/internal/llmclient"
	"askrepo/internal/question"
	"askrepo/internal/repoctx"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForIssueRun(); err != nil {
		return err
	}

	f, err := os.Open(cfg.EventPath)
	if err != nil {
		return fmt.Errorf("open event payload: %w", err)
	}
	event, err := github.ParseEvent(f)
	f.Close()
	if err != nil {
		return err
	}

	if event.FromBot() {
		logger.Info("ignoring bot comment", zap.String("author", event.Author))
		return nil
	}
	if event.IsPullRequest {
		logger.Info("ignoring pull request comment")
		return nil
	}
	q := question.Extract(event.CommentBody)
	if q == "" {
		logger.Info("no actionable question in comment")
		return nil
	}
	if event.Repo == "" || event.IssueNumber == 0 {
		return errors.New("missing repository or issue number in event payload")
	}

	poster := github.NewClient(cfg.GitHubToken)

	root, err := filepath.Abs(".")
	if err != nil {
		return err
	}
	repoContext, err := repoctx.Build(root, cfg.MaxContextChars)
	if err != nil {
		return fmt.Errorf("build repository context: %w", err)
	}
	if repoContext == "" {
		return poster.PostIssueComment(ctx, event.Repo, event.IssueNumber, answer.NoContextComment)
	}
	logger.Info("built repository context",
		zap.Int("chars", len(repoContext)),
		zap.String("model", cfg.Model))

	svc := llmclient.NewService(llmclient.Options{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		GeminiAPIKey: cfg.GeminiAPIKey,
	}, llmclient.SystemPromptIssue, llmclient.QuestionLabelIssue)
	defer svc.Close()

	gen := answer.NewGenerator(svc, answer.PlanConfig{
		Fallback: cfg.Fallback,
		Extras:   cfg.Candidates,
		BaseURL:  cfg.BaseURL,
	}, logger)

	text, genErr := gen.Generate(ctx, q, repoContext, cfg.Model)
	if genErr != nil {
		logger.Warn("generation failed", zap.Error(genErr))
		return poster.PostIssueComment(ctx, event.Repo, event.IssueNumber, answer.FormatFailure(genErr))
	}

	if err := poster.PostIssueComment(ctx, event.Repo, event.IssueNumber, answer.FormatComment(q, text)); err != nil {
		if errors.Is(err, github.ErrUnauthorized) {
			return fmt.Errorf("posting comment rejected, check GITHUB_TOKEN permissions: %w", err)
		}
		return err
	}
	return nil
}
