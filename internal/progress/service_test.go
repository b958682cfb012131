package progress

import (
	"context"
	"testing"

	"ai-interview-server/internal/config"
	"ai-interview-server/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScoreStore struct {
	histories map[string]string
}

func (f *fakeScoreStore) GetScoreHistory(_ context.Context, username string) (*storage.ScoreHistory, error) {
	scores, ok := f.histories[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.ScoreHistory{Username: username, Scores: scores}, nil
}

type fakeGenerator struct {
	response string
	calls    int
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, nil
}

func testConfig() *config.Config {
	return &config.Config{
		InterviewConfig: config.InterviewConfig{
			FirstQuestionLevel: "entry-level",
			ProgressWindow:     5,
			TrendWordLimit:     70,
		},
	}
}

func TestAnalyze_NoHistory(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	svc := NewService(&fakeScoreStore{histories: map[string]string{}}, gen, testConfig())

	report, err := svc.Analyze(context.Background(), "alice")
	require.NoError(t, err)

	assert.Empty(t, report.Scores)
	assert.Equal(t, "No score history found.", report.Suggestion)
	assert.Zero(t, gen.calls)
}

func TestAnalyze_NotEnoughScoresNeverCallsGateway(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	store := &fakeScoreStore{histories: map[string]string{"alice": "7_8_6_9"}}
	svc := NewService(store, gen, testConfig())

	report, err := svc.Analyze(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []int{7, 8, 6, 9}, report.Scores)
	assert.Equal(t, "Not enough scores to analyze.", report.Suggestion)
	assert.Zero(t, gen.calls)
}

func TestAnalyze_FullWindowCallsGateway(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "Scores trend upward."}
	store := &fakeScoreStore{histories: map[string]string{"alice": "7_8_6_9_5"}}
	svc := NewService(store, gen, testConfig())

	report, err := svc.Analyze(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []int{7, 8, 6, 9, 5}, report.Scores)
	assert.Equal(t, "Scores trend upward.", report.Suggestion)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], "70 words")
}

func TestAnalyze_TakesLastFiveInOrder(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "Steady."}
	store := &fakeScoreStore{histories: map[string]string{"alice": "1_2_3_4_5_6_7"}}
	svc := NewService(store, gen, testConfig())

	report, err := svc.Analyze(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4, 5, 6, 7}, report.Scores)
}

func TestParseScores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		serialized string
		want       []int
	}{
		{"empty", "", []int{}},
		{"single", "7", []int{7}},
		{"plain", "7_8_9", []int{7, 8, 9}},
		{"empty segment dropped", "7_8__9", []int{7, 8, 9}},
		{"leading and trailing separators", "_7_8_", []int{7, 8}},
		{"malformed segment dropped", "7_x_9", []int{7, 9}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseScores(tt.serialized))
		})
	}
}
