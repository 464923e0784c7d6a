package review

// Pre-commit code review is currently disabled: the agent integration
// that produced review verdicts was removed. The configuration surface
// and decision types are kept so existing configs keep parsing, and
// every review resolves to an allow decision.

// Config controls the pre-commit review gate.
type Config struct {
	Enabled             bool     `json:"enabled" yaml:"enabled"`
	QualityThreshold    float64  `json:"quality_threshold" yaml:"quality_threshold"`
	BlockCriticalIssues bool     `json:"block_critical_issues" yaml:"block_critical_issues"`
	BlockMajorIssues    bool     `json:"block_major_issues" yaml:"block_major_issues"`
	ReviewScope         string   `json:"review_scope" yaml:"review_scope"` // "security", "performance", or "all"
	ExcludePatterns     []string `json:"exclude_patterns" yaml:"exclude_patterns"`
	MaxFilesToReview    int      `json:"max_files_to_review" yaml:"max_files_to_review"`
	ShowSuggestions     bool     `json:"show_suggestions" yaml:"show_suggestions"`
}

// DefaultConfig returns the review defaults used when no configuration
// is supplied.
func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		QualityThreshold:    6.0,
		BlockCriticalIssues: true,
		BlockMajorIssues:    false,
		ReviewScope:         "all",
		ExcludePatterns: []string{
			"node_modules/**",
			"dist/**",
			"build/**",
			"target/**",
			"*.min.js",
			"*.bundle.js",
			".git/**",
		},
		MaxFilesToReview: 20,
		ShowSuggestions:  true,
	}
}

// Decision is the outcome of a pre-commit review.
type Decision struct {
	Allowed     bool     `json:"allowed"`
	Message     string   `json:"message"`
	Reason      string   `json:"reason,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// ExecutePreCommitReview always allows the commit while review is
// disabled.
func ExecutePreCommitReview(projectPath string, cfg *Config) Decision {
	return Decision{
		Allowed:     true,
		Message:     "Code review functionality has been disabled",
		Suggestions: []string{},
	}
}
