package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ai-interview-server/internal/config"
	"ai-interview-server/internal/prompts"
	"ai-interview-server/internal/storage"
)

const (
	noHistoryMessage       = "No score history found."
	notEnoughScoresMessage = "Not enough scores to analyze."
)

// ScoreStore is the slice of the session store the analyzer reads from.
type ScoreStore interface {
	GetScoreHistory(ctx context.Context, username string) (*storage.ScoreHistory, error)
}

// Generator produces the natural-language trend summary.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Report is the progress analysis returned to the client.
type Report struct {
	Scores     []int  `json:"scores"`
	Suggestion string `json:"suggestion"`
}

// Service aggregates historical scores and asks the gateway for a trend
// summary. It never mutates the score history.
type Service struct {
	store   ScoreStore
	gateway Generator
	cfg     *config.Config
}

func NewService(store ScoreStore, gateway Generator, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		gateway: gateway,
		cfg:     cfg,
	}
}

// Analyze returns the user's recent scores and a trend suggestion. The
// gateway is only consulted once a full window of scores is available.
func (s *Service) Analyze(ctx context.Context, username string) (*Report, error) {
	hist, err := s.store.GetScoreHistory(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return &Report{Scores: []int{}, Suggestion: noHistoryMessage}, nil
	}
	if err != nil {
		return nil, err
	}

	window := s.cfg.GetProgressWindow()
	scores := ParseScores(hist.Scores)
	if len(scores) > window {
		scores = scores[len(scores)-window:]
	}

	if len(scores) < window {
		return &Report{Scores: scores, Suggestion: notEnoughScoresMessage}, nil
	}

	suggestion, err := s.gateway.Generate(ctx, prompts.ProgressTrend(scores, s.cfg.GetTrendWordLimit()))
	if err != nil {
		return nil, fmt.Errorf("analyzing progress: %w", err)
	}

	return &Report{Scores: scores, Suggestion: suggestion}, nil
}

// ParseScores decodes an underscore-joined score sequence. Empty and
// malformed segments are dropped, order is preserved.
func ParseScores(serialized string) []int {
	scores := []int{}
	for _, segment := range strings.Split(serialized, "_") {
		if segment == "" {
			continue
		}
		score, err := strconv.Atoi(segment)
		if err != nil {
			continue
		}
		scores = append(scores, score)
	}
	return scores
}
