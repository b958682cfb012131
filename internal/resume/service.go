package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-interview-server/internal/prompts"
)

var ErrEmptyResume = errors.New("resume text is required")

// Generator produces the critique text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service proxies resume-critique requests to the AI gateway.
type Service struct {
	gateway Generator
}

func NewService(gateway Generator) *Service {
	return &Service{gateway: gateway}
}

// Critique reviews the given resume text.
func (s *Service) Critique(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", ErrEmptyResume
	}

	critique, err := s.gateway.Generate(ctx, prompts.ResumeCritique(resumeText))
	if err != nil {
		return "", fmt.Errorf("critiquing resume: %w", err)
	}

	return critique, nil
}
