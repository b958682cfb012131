package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"ai-interview-server/internal/config"
	"ai-interview-server/internal/metrics"
	"ai-interview-server/internal/prompts"
	"ai-interview-server/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrEmptyDomain      = errors.New("domain is required")
	ErrNoActiveQuestion = errors.New("no active question for the user")
	ErrNoTranscript     = errors.New("no interview transcript for the user")
)

// Store is the slice of the session store the state machine needs.
type Store interface {
	GetTranscript(ctx context.Context, username string) (*storage.Transcript, error)
	SaveTranscript(ctx context.Context, username, body string) error
	DeleteTranscript(ctx context.Context, username string) error
	GetCounter(ctx context.Context, username string) (*storage.QuestionCounter, error)
	SaveCounter(ctx context.Context, username string, qno int) error
	DeleteCounter(ctx context.Context, username string) error
	GetScoreHistory(ctx context.Context, username string) (*storage.ScoreHistory, error)
	SaveScoreHistory(ctx context.Context, username, scores string) error
}

// Generator is the text side of the AI gateway.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, out any) error
}

// Service drives a user through question generation, answer capture and
// scoring. All operations for a given username are serialized.
type Service struct {
	store   Store
	gateway Generator
	cfg     *config.Config
	metrics *metrics.Metrics
	locks   *userLocks
}

func NewService(store Store, gateway Generator, cfg *config.Config, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		gateway: gateway,
		cfg:     cfg,
		metrics: m,
		locks:   newUserLocks(),
	}
}

// NextQuestion generates the next interview question for username. A missing
// counter behaves exactly like qno=0: the first question is seeded with the
// domain, every later one is a follow-up built from the full transcript.
// Nothing is persisted if the gateway call fails.
func (s *Service) NextQuestion(ctx context.Context, username, domain string) (*Question, error) {
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	unlock := s.locks.Lock(username)
	defer unlock()

	body, err := s.transcriptBody(ctx, username)
	if err != nil {
		return nil, err
	}

	qno, err := s.counterValue(ctx, username)
	if err != nil {
		return nil, err
	}

	var prompt string
	if qno == 0 {
		prompt = prompts.FirstQuestion(domain, s.cfg.GetFirstQuestionLevel())
	} else {
		prompt = prompts.FollowUpQuestion(body)
	}

	question, err := s.gateway.Generate(ctx, prompt)
	s.metrics.IncrementGatewayCall(err == nil)
	if err != nil {
		return nil, fmt.Errorf("generating question: %w", err)
	}

	body += fmt.Sprintf("\nQ%d: %s", qno+1, question)
	if err := s.store.SaveTranscript(ctx, username, body); err != nil {
		return nil, err
	}
	if err := s.store.SaveCounter(ctx, username, qno+1); err != nil {
		return nil, err
	}

	s.metrics.IncrementQuestionsAsked()

	return &Question{Qno: qno + 1, Question: question}, nil
}

// RecordAnswer appends the answer for the current question to the
// transcript. A question must already have been asked; the transcript itself
// is created lazily if absent.
func (s *Service) RecordAnswer(ctx context.Context, username, answer string) error {
	unlock := s.locks.Lock(username)
	defer unlock()

	counter, err := s.store.GetCounter(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNoActiveQuestion
	}
	if err != nil {
		return err
	}

	body, err := s.transcriptBody(ctx, username)
	if err != nil {
		return err
	}

	body += fmt.Sprintf("\nA%d: %s", counter.Qno, answer)
	if err := s.store.SaveTranscript(ctx, username, body); err != nil {
		return err
	}

	s.metrics.IncrementAnswersRecorded()

	return nil
}

// ResetSession clears the user's transcript and counter. Idempotent:
// resetting an already-clean session is not an error.
func (s *Service) ResetSession(ctx context.Context, username string) error {
	unlock := s.locks.Lock(username)
	defer unlock()

	if err := s.store.DeleteTranscript(ctx, username); err != nil {
		return err
	}
	if err := s.store.DeleteCounter(ctx, username); err != nil {
		return err
	}

	return nil
}

// ComputeScore evaluates the accumulated transcript, appends the overall
// score to the user's history, clears the transcript and resets the counter
// to 1. The reset-to-1 is deliberate: without an explicit session reset the
// next question is built as a follow-up, not a fresh opener.
func (s *Service) ComputeScore(ctx context.Context, username string) (*ScoreReport, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	tr, err := s.store.GetTranscript(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoTranscript
	}
	if err != nil {
		return nil, err
	}
	if tr.Body == "" {
		return nil, ErrNoTranscript
	}

	var report ScoreReport
	err = s.gateway.GenerateJSON(ctx, prompts.ScoreReport(tr.Body), &report)
	s.metrics.IncrementGatewayCall(err == nil)
	if err != nil {
		return nil, fmt.Errorf("scoring transcript: %w", err)
	}

	report.ReportID = uuid.NewString()
	report.Timestamp = time.Now().UTC().Format(time.RFC3339)

	scores := ""
	if hist, err := s.store.GetScoreHistory(ctx, username); err == nil {
		scores = hist.Scores
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	scores = appendScore(scores, int(math.Round(report.OverallScore)))
	if err := s.store.SaveScoreHistory(ctx, username, scores); err != nil {
		return nil, err
	}

	if err := s.store.SaveTranscript(ctx, username, ""); err != nil {
		return nil, err
	}
	if err := s.store.SaveCounter(ctx, username, 1); err != nil {
		return nil, err
	}

	s.metrics.IncrementScoresComputed()

	return &report, nil
}

// transcriptBody returns the current transcript text, defaulting to empty
// when no record exists yet.
func (s *Service) transcriptBody(ctx context.Context, username string) (string, error) {
	tr, err := s.store.GetTranscript(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tr.Body, nil
}

// counterValue returns the current question number, defaulting to 0 when no
// record exists yet.
func (s *Service) counterValue(ctx context.Context, username string) (int, error) {
	counter, err := s.store.GetCounter(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Qno, nil
}

// appendScore joins the new score onto the underscore-separated sequence.
func appendScore(scores string, score int) string {
	segment := strconv.Itoa(score)
	if scores == "" {
		return segment
	}
	return scores + "_" + segment
}
