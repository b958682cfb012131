package interview

// Question is the result of advancing the interview by one turn.
type Question struct {
	Qno      int    `json:"qno"`
	Question string `json:"question"`
}

// CategoryScore is the per-category part of a score report.
type CategoryScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Breakdown is the fixed four-category evaluation of a transcript.
type Breakdown struct {
	CommunicationSkills  CategoryScore `json:"communication_skills"`
	TechnicalKnowledge   CategoryScore `json:"technical_knowledge"`
	ProblemSolving       CategoryScore `json:"problem_solving"`
	ConfidenceAndClarity CategoryScore `json:"confidence_and_clarity"`
}

// ScoreReport is the structured evaluation returned after scoring an
// interview. ReportID and Timestamp are set server-side.
type ScoreReport struct {
	ReportID        string    `json:"report_id"`
	Timestamp       string    `json:"timestamp"`
	OverallScore    float64   `json:"overall_score"`
	OverallFeedback string    `json:"overall_feedback"`
	Breakdown       Breakdown `json:"breakdown"`
	Strengths       string    `json:"strengths"`
	Improvements    []string  `json:"improvements"`
}
