package hooks

// ConditionalTrigger gates a hook on an expression evaluated against
// the current context. Priority is accepted from configuration but does
// not reorder execution; hooks always run in list order.
type ConditionalTrigger struct {
	Condition string `json:"condition" yaml:"condition"`
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Priority  *int   `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Definition is one configured hook: a shell command plus its execution
// policy. Immutable once loaded into a chain run.
type Definition struct {
	Command   string              `json:"command" yaml:"command"`
	Timeout   *uint64             `json:"timeout,omitempty" yaml:"timeout,omitempty"` // seconds
	Retry     *uint32             `json:"retry,omitempty" yaml:"retry,omitempty"`
	Condition *ConditionalTrigger `json:"condition,omitempty" yaml:"condition,omitempty"`
	OnSuccess []string            `json:"on_success,omitempty" yaml:"on_success,omitempty"`
	OnFailure []string            `json:"on_failure,omitempty" yaml:"on_failure,omitempty"`
}

// TimeoutSeconds returns the configured timeout or the 30s default.
func (d *Definition) TimeoutSeconds() uint64 {
	if d.Timeout != nil {
		return *d.Timeout
	}
	return 30
}

// MaxRetries returns the configured retry budget or zero.
func (d *Definition) MaxRetries() uint32 {
	if d.Retry != nil {
		return *d.Retry
	}
	return 0
}

// ExecutionResult is the outcome of one hook invocation.
type ExecutionResult struct {
	Success         bool   `json:"success"`
	Output          string `json:"output"`
	Error           string `json:"error,omitempty"`
	ExecutionTimeMs int64  `json:"execution_time_ms"`
	HookCommand     string `json:"hook_command"`
}

// ChainResult aggregates one chain run. len(Results) always equals
// TotalHooks, and Successful+Failed always equals TotalHooks.
type ChainResult struct {
	Event          string            `json:"event"`
	TotalHooks     int               `json:"total_hooks"`
	Successful     int               `json:"successful"`
	Failed         int               `json:"failed"`
	Results        []ExecutionResult `json:"results"`
	ShouldContinue bool              `json:"should_continue"`
}
