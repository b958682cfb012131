package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the interview configuration from a YAML file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig checks the loaded configuration for consistency.
func validateConfig(config *Config) error {
	if config.InterviewConfig.ProgressWindow <= 0 {
		return fmt.Errorf("progress_window must be greater than 0")
	}

	if config.InterviewConfig.TrendWordLimit <= 0 {
		return fmt.Errorf("trend_word_limit must be greater than 0")
	}

	if config.InterviewConfig.FirstQuestionLevel == "" {
		return fmt.Errorf("first_question_level is required")
	}

	// The score report format is fixed at four categories.
	if len(config.Categories) != 4 {
		return fmt.Errorf("score_categories must contain exactly 4 entries, got %d", len(config.Categories))
	}

	for i, cat := range config.Categories {
		if cat.Key == "" {
			return fmt.Errorf("category %d must have a key", i)
		}
		if cat.Name == "" {
			return fmt.Errorf("category %q must have a name", cat.Key)
		}
	}

	return nil
}
