package server

// Request and response bodies for the JSON API.

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninResponse struct {
	Token string `json:"token"`
}

type NextQuestionRequest struct {
	Domain string `json:"domain" binding:"required"`
}

type RecordAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type ProgressResponse struct {
	ValidUser  bool   `json:"valid_user"`
	Scores     []int  `json:"scores"`
	Suggestion string `json:"suggestion"`
}

type SetImageRequest struct {
	Image string `json:"image" binding:"required"`
}

type ImageResponse struct {
	Image string `json:"image"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

type ResumeCritiqueRequest struct {
	ResumeText string `json:"resume_text" binding:"required"`
}

type ResumeCritiqueResponse struct {
	Critique string `json:"critique"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
