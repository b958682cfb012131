package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstQuestion(t *testing.T) {
	t.Parallel()

	prompt := FirstQuestion("backend engineering", "entry-level")

	assert.Contains(t, prompt, "backend engineering")
	assert.Contains(t, prompt, "entry-level")
	assert.Contains(t, prompt, "ONLY the question text")
}

func TestFollowUpQuestion(t *testing.T) {
	t.Parallel()

	transcript := "\nQ1: What is a closure?\nA1: A function with captured scope."
	prompt := FollowUpQuestion(transcript)

	assert.Contains(t, prompt, transcript)
	assert.Contains(t, prompt, "Increase the difficulty")
	assert.Contains(t, prompt, "ONLY the question text")
}

func TestScoreReport_RequestsAllCategories(t *testing.T) {
	t.Parallel()

	prompt := ScoreReport("\nQ1: q\nA1: a")

	for _, key := range []string{
		"communication_skills",
		"technical_knowledge",
		"problem_solving",
		"confidence_and_clarity",
	} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, "overall_score")
	assert.Contains(t, prompt, "ONLY valid JSON")
}

func TestProgressTrend(t *testing.T) {
	t.Parallel()

	prompt := ProgressTrend([]int{7, 8, 6, 9, 5}, 70)

	assert.Contains(t, prompt, "7, 8, 6, 9, 5")
	assert.Contains(t, prompt, "last 5")
	assert.Contains(t, prompt, "70 words")
}
