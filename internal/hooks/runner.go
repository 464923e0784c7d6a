package hooks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/forgeworks/agent-hooks/internal/git"
	"github.com/forgeworks/agent-hooks/internal/logging"
	"github.com/forgeworks/agent-hooks/internal/notify"
)

// ChainRun is the persisted record of one chain execution.
type ChainRun struct {
	ID          string       `json:"id"`
	Event       string       `json:"event"`
	SessionID   string       `json:"session_id"`
	ProjectPath string       `json:"project_path"`
	Repo        string       `json:"repo"`
	Branch      string       `json:"branch"`
	StartedAt   time.Time    `json:"started_at"`
	DurationMs  int64        `json:"duration_ms"`
	Result      *ChainResult `json:"result"`
}

// Recorder persists chain runs. Recording is best-effort; the runner
// logs and ignores recorder failures.
type Recorder interface {
	SaveChainRun(run *ChainRun) error
}

// Runner executes an ordered hook list for one event and context. It
// never fails: every hook-level error becomes a failure result so the
// chain always completes with a full aggregate.
type Runner struct {
	executor *Executor
	bus      notify.Publisher
	recorder Recorder
	log      *logrus.Entry
}

// NewRunner wires a runner to its executor and notification bus. Both
// bus and recorder may be nil when delivery or history is not kept.
func NewRunner(executor *Executor, bus notify.Publisher, recorder Recorder) *Runner {
	return &Runner{
		executor: executor,
		bus:      bus,
		recorder: recorder,
		log:      logging.NewLogger("hooks.runner"),
	}
}

// Run iterates the hook list in order and aggregates the outcome.
// should_continue is false only when the triggering event is
// PreToolUse and at least one hook failed; failures on any other event
// never block continuation.
func (r *Runner) Run(ctx context.Context, event Event, hctx *Context, hooks []Definition) *ChainResult {
	start := time.Now()

	r.log.WithFields(logrus.Fields{
		"event": event.String(),
		"hooks": len(hooks),
	}).Info("Executing hook chain")

	results := make([]ExecutionResult, 0, len(hooks))
	successful := 0
	failed := 0

	for i := range hooks {
		def := &hooks[i]

		r.log.WithFields(logrus.Fields{
			"index":   i + 1,
			"total":   len(hooks),
			"command": def.Command,
		}).Debug("Executing hook")

		result, err := r.executor.ExecuteHook(ctx, def, hctx)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"command": def.Command,
				"error":   err.Error(),
			}).Error("Hook execution error")
			failed++
			results = append(results, ExecutionResult{
				Success:         false,
				Error:           err.Error(),
				ExecutionTimeMs: 0,
				HookCommand:     def.Command,
			})
			continue
		}

		if result.Success {
			successful++
		} else {
			failed++
		}
		results = append(results, *result)
	}

	shouldContinue := true
	if event == EventPreToolUse && failed > 0 {
		shouldContinue = false
		r.log.Warn("PreToolUse hook failed, blocking operation")
	}

	chainResult := &ChainResult{
		Event:          event.String(),
		TotalHooks:     len(hooks),
		Successful:     successful,
		Failed:         failed,
		Results:        results,
		ShouldContinue: shouldContinue,
	}

	if r.bus != nil {
		r.bus.Publish("hook-chain-complete:"+hctx.SessionID, results)
	}

	if r.recorder != nil {
		info := git.GetInfo(hctx.ProjectPath)
		run := &ChainRun{
			ID:          uuid.New().String(),
			Event:       event.String(),
			SessionID:   hctx.SessionID,
			ProjectPath: hctx.ProjectPath,
			Repo:        info.Repository,
			Branch:      info.Branch,
			StartedAt:   start,
			DurationMs:  time.Since(start).Milliseconds(),
			Result:      chainResult,
		}
		if err := r.recorder.SaveChainRun(run); err != nil {
			r.log.WithField("error", err.Error()).Warn("Failed to record chain run")
		}
	}

	return chainResult
}
