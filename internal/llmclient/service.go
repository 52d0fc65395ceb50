package llmclient

import (
	"context"
	"sync"
)

// Options carries the endpoint credentials needed to dial a backend.
type Options struct {
	APIKey       string
	BaseURL      string
	GeminiAPIKey string
}

// Service routes generation attempts to the right backend per model id
// and assembles the prompt around the repository context. Backends are
// dialed lazily and reused across attempts within one invocation.
type Service struct {
	opts          Options
	system        string
	questionLabel string

	mu      sync.Mutex
	openai  *OpenAIClient
	gemini  *GeminiClient
	geminiE error
}

// maxOutputTokens caps the answer length; replies are posted to issue
// threads and must stay short.
const maxOutputTokens = 400

// NewService creates a Service with the given system prompt. The
// question label precedes the user's question in the prompt body
// ("Question:" for the CLI, a longer form for issue comments).
func NewService(opts Options, system, questionLabel string) *Service {
	if questionLabel == "" {
		questionLabel = "Question:"
	}
	return &Service{opts: opts, system: system, questionLabel: questionLabel}
}

// Ask performs one generation attempt for model against the repository
// context and question. It satisfies answer.ModelCaller.
func (s *Service) Ask(ctx context.Context, model, question, repoContext string) (string, error) {
	cli, err := s.clientFor(ctx, model)
	if err != nil {
		return "", err
	}
	user := "Repository context:\n" + repoContext + "\n\n" + s.questionLabel + "\n" + question
	return cli.Generate(ctx, Request{
		Model:           model,
		System:          s.system,
		User:            user,
		MaxOutputTokens: maxOutputTokens,
	})
}

func (s *Service) clientFor(ctx context.Context, model string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if IsGeminiModel(model) {
		if s.gemini == nil && s.geminiE == nil {
			s.gemini, s.geminiE = NewGeminiClient(ctx, s.opts.GeminiAPIKey)
		}
		if s.geminiE != nil {
			return nil, s.geminiE
		}
		return s.gemini, nil
	}
	if s.openai == nil {
		s.openai = NewOpenAIClient(s.opts.APIKey, s.opts.BaseURL)
	}
	return s.openai, nil
}

// Close releases all dialed backends.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	if s.openai != nil {
		if err := s.openai.Close(); err != nil && first == nil {
			first = err
		}
	}
	if s.gemini != nil {
		if err := s.gemini.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SystemPromptIssue is the instruction used when answering from an issue
// comment.
const SystemPromptIssue = "You are a repository assistant. Answer using the provided repository context. " +
	"Be concise and practical. If information is missing, explicitly say so."

// SystemPromptCLI is the instruction used by the local CLI.
const SystemPromptCLI = "You are a software engineering assistant. " +
	"Answer using only the provided repository context when possible. " +
	"If context is missing, say what is missing."

// QuestionLabelIssue precedes questions extracted from issue comments.
const QuestionLabelIssue = "Question from GitHub issue comment:"
