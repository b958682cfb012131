package config

// Config holds interview tuning loaded from config/interview.yaml.
type Config struct {
	InterviewConfig InterviewConfig `yaml:"interview_config"`
	Categories      []Category      `yaml:"score_categories"`
}

// InterviewConfig contains the knobs for question generation and progress analysis.
type InterviewConfig struct {
	FirstQuestionLevel string `yaml:"first_question_level"`
	ProgressWindow     int    `yaml:"progress_window"`
	TrendWordLimit     int    `yaml:"trend_word_limit"`
}

// Category is one of the fixed scoring categories in a score report.
type Category struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

func (c *Config) GetProgressWindow() int {
	return c.InterviewConfig.ProgressWindow
}

func (c *Config) GetTrendWordLimit() int {
	return c.InterviewConfig.TrendWordLimit
}

func (c *Config) GetFirstQuestionLevel() string {
	return c.InterviewConfig.FirstQuestionLevel
}
