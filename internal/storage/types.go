package storage

import "time"

// Account is a registered user. The password is stored as a bcrypt hash.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Transcript accumulates the Q/A text of the user's current interview.
type Transcript struct {
	Username string
	Body     string
}

// QuestionCounter tracks how many questions the current interview has asked.
type QuestionCounter struct {
	Username string
	Qno      int
}

// ScoreHistory is the underscore-joined sequence of past interview scores.
type ScoreHistory struct {
	Username string
	Scores   string
}

// ProfileImage is the user's encoded profile picture.
type ProfileImage struct {
	Username string
	Image    string
}
