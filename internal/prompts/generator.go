package prompts

import (
	"fmt"
	"strings"
)

// FirstQuestion builds the prompt for the opening question of an interview,
// seeded with the candidate's chosen domain.
func FirstQuestion(domain, level string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an experienced technical interviewer.\n\n")
	prompt.WriteString(fmt.Sprintf("Generate the first interview question for a candidate in the domain: %s.\n\n", domain))
	prompt.WriteString("REQUIREMENTS:\n")
	prompt.WriteString(fmt.Sprintf("- Calibrate the question for an %s candidate\n", level))
	prompt.WriteString("- Ask exactly one question\n")
	prompt.WriteString("- Return ONLY the question text, no commentary, no numbering")

	return prompt.String()
}

// FollowUpQuestion builds the prompt for the next question, carrying the
// full transcript so the model can raise the difficulty.
func FollowUpQuestion(transcript string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an experienced technical interviewer continuing an interview.\n\n")
	prompt.WriteString("INTERVIEW SO FAR:\n")
	prompt.WriteString(transcript)
	prompt.WriteString("\n\nREQUIREMENTS:\n")
	prompt.WriteString("- Generate a follow-up question based on the answers above\n")
	prompt.WriteString("- Increase the difficulty compared to the previous question\n")
	prompt.WriteString("- Ask exactly one question\n")
	prompt.WriteString("- Return ONLY the question text, no commentary, no numbering")

	return prompt.String()
}

// ScoreReport builds the prompt requesting a structured JSON evaluation of
// the full transcript across the four fixed categories.
func ScoreReport(transcript string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an experienced interview assessor. Analyze the interview transcript below and produce a JSON report.\n\n")
	prompt.WriteString("INSTRUCTIONS:\n")
	prompt.WriteString("1. Score the overall interview out of 10\n")
	prompt.WriteString("2. Score each category out of 10 with specific feedback\n")
	prompt.WriteString("3. Be concrete, avoid generic phrases\n")
	prompt.WriteString("4. Return ONLY valid JSON, no markdown and no comments\n\n")
	prompt.WriteString("JSON FORMAT:\n")
	prompt.WriteString(`{
  "overall_score": number,
  "overall_feedback": string,
  "breakdown": {
    "communication_skills": {"score": number, "feedback": string},
    "technical_knowledge": {"score": number, "feedback": string},
    "problem_solving": {"score": number, "feedback": string},
    "confidence_and_clarity": {"score": number, "feedback": string}
  },
  "strengths": string,
  "improvements": [string]
}`)
	prompt.WriteString("\n\nTRANSCRIPT:\n")
	prompt.WriteString(transcript)
	prompt.WriteString("\n\nANSWER (JSON only):")

	return prompt.String()
}

// ProgressTrend builds the prompt summarizing the user's recent scores.
func ProgressTrend(scores []int, wordLimit int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%d", s)
	}

	return fmt.Sprintf(
		"Analyze the progress of a candidate whose last %d interview scores out of 10 were: %s. "+
			"Describe the trend and give one concrete suggestion in at most %d words.",
		len(scores), strings.Join(parts, ", "), wordLimit)
}

// ResumeCritique builds the prompt for a structured resume review.
func ResumeCritique(resumeText string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an experienced technical recruiter. Review the resume below.\n\n")
	prompt.WriteString("COVER:\n")
	prompt.WriteString("- Strengths of the resume\n")
	prompt.WriteString("- Weaknesses and missing information\n")
	prompt.WriteString("- Concrete wording improvements for each section\n\n")
	prompt.WriteString("RESUME:\n")
	prompt.WriteString(resumeText)

	return prompt.String()
}
