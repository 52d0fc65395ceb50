package answer

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"askrepo/internal/llmclient"
)

const (
	// triesPerCandidate bounds attempts against one model, shared by
	// rate-limit retries, shrink retries and empty responses.
	triesPerCandidate = 3
	// contextFloor is the smallest context variant worth sending; below
	// it, shrinking cannot help and the candidate is abandoned.
	contextFloor = 3000
	// backoffBase is the first rate-limit sleep; it doubles per try.
	backoffBase = time.Second
)

// ErrNoCandidates means the plan was empty, which only happens when the
// primary model id itself is empty.
var ErrNoCandidates = errors.New("no model candidates available")

// ErrEmptyAnswer means every attempt returned an empty answer. An empty
// final output is never reported as success.
var ErrEmptyAnswer = errors.New("model returned an empty answer")

// ModelCaller performs one remote generation attempt. Implemented by
// llmclient.Service; tests substitute a scripted fake.
type ModelCaller interface {
	Ask(ctx context.Context, model, question, repoContext string) (string, error)
}

// PlanConfig is the configuration slice the planner needs.
type PlanConfig struct {
	Fallback string
	Extras   string
	BaseURL  string
}

// Generator walks the candidate plan with per-failure recovery: bounded
// backoff for rate limits, context shrinking for memory pressure,
// skipping for unknown models, immediate abort for everything else.
type Generator struct {
	caller ModelCaller
	plan   PlanConfig
	log    *zap.Logger

	// floor and sleep are overridable for tests.
	floor int
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a Generator. log may be nil.
func NewGenerator(caller ModelCaller, plan PlanConfig, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		caller: caller,
		plan:   plan,
		log:    log,
		floor:  contextFloor,
		sleep:  sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Machine states for one generation run. Succeeded and failed are
// terminal; the rest loop until a terminal state is reached.
type genState int

const (
	stateTrying genState = iota
	stateBackoff
	stateShrinking
	stateNextCandidate
	stateSucceeded
	stateFailed
)

// Generate runs the full plan for primary and returns the first
// successful answer, or the last classified failure once every recovery
// avenue is exhausted. Candidates and tries are strictly sequential.
func (g *Generator) Generate(ctx context.Context, question, repoContext, primary string) (string, error) {
	candidates := Candidates(primary, g.plan.Fallback, g.plan.Extras, g.plan.BaseURL)
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	var (
		idx     int
		tries   int
		variant = repoContext
		answer  string
		lastErr error
		state   = stateTrying
	)

	for {
		switch state {
		case stateTrying:
			model := candidates[idx]
			tries++
			out, err := g.caller.Ask(ctx, model, question, variant)
			if err == nil {
				if out = strings.TrimSpace(out); out != "" {
					answer = out
					state = stateSucceeded
					continue
				}
				// Empty output consumes a try without backoff.
				g.log.Debug("empty answer", zap.String("model", model), zap.Int("try", tries))
				if lastErr == nil {
					lastErr = ErrEmptyAnswer
				}
				if tries >= triesPerCandidate {
					state = stateNextCandidate
				}
				continue
			}

			lastErr = err
			// A 2xx reply with no usable text is the same outcome as an
			// empty answer string: consume a try, no backoff.
			if errors.Is(err, llmclient.ErrEmptyResponse) {
				g.log.Debug("empty response", zap.String("model", model), zap.Int("try", tries))
				if tries >= triesPerCandidate {
					state = stateNextCandidate
				}
				continue
			}
			kind := llmclient.Classify(err)
			g.log.Debug("attempt failed",
				zap.String("model", model),
				zap.Int("try", tries),
				zap.String("kind", string(kind)),
				zap.Error(err))
			switch kind {
			case llmclient.KindRateLimited:
				if tries >= triesPerCandidate {
					state = stateNextCandidate
				} else {
					state = stateBackoff
				}
			case llmclient.KindMemoryPressure:
				if len(variant) > g.floor && tries < triesPerCandidate {
					state = stateShrinking
				} else {
					state = stateNextCandidate
				}
			case llmclient.KindModelUnavailable:
				state = stateNextCandidate
			default:
				state = stateFailed
			}

		case stateBackoff:
			// 1s after the first failed try, 2s after the second.
			d := backoffBase << (tries - 1)
			if err := g.sleep(ctx, d); err != nil {
				lastErr = err
				state = stateFailed
				continue
			}
			state = stateTrying

		case stateShrinking:
			half := len(variant) / 2
			if half < g.floor {
				half = g.floor
			}
			variant = variant[:half]
			g.log.Debug("shrunk context", zap.Int("chars", half))
			state = stateTrying

		case stateNextCandidate:
			idx++
			if idx >= len(candidates) {
				state = stateFailed
				continue
			}
			tries = 0
			variant = repoContext
			state = stateTrying

		case stateSucceeded:
			return answer, nil

		case stateFailed:
			if lastErr == nil {
				lastErr = ErrNoCandidates
			}
			return "", lastErr
		}
	}
}
