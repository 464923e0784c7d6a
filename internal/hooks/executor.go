package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/forgeworks/agent-hooks/internal/logging"
)

const (
	// SkippedOutput is reported when a hook's condition gate fails.
	SkippedOutput = "Skipped: condition not met"

	defaultRetryBackoff = time.Second
)

// TimeoutError reports a hook that exceeded its deadline. It is a
// distinct failure mode: timed-out hooks are not retried and do not run
// on_failure cascades. The child process is killed at the deadline.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("hook execution timeout after %s: %s", e.Timeout, e.Command)
}

// Executor runs a single hook to completion: condition gate, spawn,
// timeout, retry, and success/failure cascades.
type Executor struct {
	shell        string
	retryBackoff time.Duration
	log          *logrus.Entry
}

// NewExecutor creates an executor that interprets hook commands through
// bash, so pipes and redirection in command strings work as written.
func NewExecutor() *Executor {
	return &Executor{
		shell:        "bash",
		retryBackoff: defaultRetryBackoff,
		log:          logging.NewLogger("hooks.executor"),
	}
}

// ExecuteHook runs one hook and returns its result. A returned error
// means the hook produced no usable outcome: the process could not be
// spawned, or it exceeded its deadline. Non-zero exit status is not an
// error here; it is a failure result, produced after the retry budget
// is exhausted and on_failure cascades have run.
func (e *Executor) ExecuteHook(ctx context.Context, def *Definition, hctx *Context) (*ExecutionResult, error) {
	start := time.Now()

	if !shouldRun(def, hctx) {
		e.log.WithFields(logrus.Fields{
			"command": def.Command,
			"event":   hctx.Event,
		}).Debug("Hook condition not met, skipping execution")
		return &ExecutionResult{
			Success:         true,
			Output:          SkippedOutput,
			ExecutionTimeMs: 0,
			HookCommand:     def.Command,
		}, nil
	}

	contextJSON, err := hctx.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize hook context: %w", err)
	}

	timeout := time.Duration(def.TimeoutSeconds()) * time.Second
	maxRetries := def.MaxRetries()
	var attempt uint32

	for {
		var stdout, stderr bytes.Buffer

		cmdCtx, cancel := context.WithTimeout(ctx, timeout)
		cmd := exec.CommandContext(cmdCtx, e.shell, "-c", def.Command)
		cmd.Env = append(os.Environ(),
			"HOOK_CONTEXT="+contextJSON,
			"HOOK_EVENT="+hctx.Event,
			"SESSION_ID="+hctx.SessionID,
			"PROJECT_PATH="+hctx.ProjectPath,
		)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		runErr := cmd.Run()
		timedOut := errors.Is(cmdCtx.Err(), context.DeadlineExceeded)
		cancel()

		elapsed := time.Since(start).Milliseconds()

		if runErr == nil {
			e.runCascade(def.OnSuccess, hctx, "on_success")
			return &ExecutionResult{
				Success:         true,
				Output:          stdout.String(),
				ExecutionTimeMs: elapsed,
				HookCommand:     def.Command,
			}, nil
		}

		if timedOut {
			// The child's state at the deadline is unknown, so the
			// outcome is neither retried nor cascaded. CommandContext
			// has already killed the shell process.
			return nil, &TimeoutError{Command: def.Command, Timeout: timeout}
		}

		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("failed to spawn hook process: %w", runErr)
		}

		if attempt < maxRetries {
			attempt++
			e.log.WithFields(logrus.Fields{
				"command": def.Command,
				"attempt": attempt,
				"max":     maxRetries,
			}).Warn("Hook failed, retrying")
			time.Sleep(e.retryBackoff)
			continue
		}

		e.runCascade(def.OnFailure, hctx, "on_failure")
		return &ExecutionResult{
			Success:         false,
			Output:          "",
			Error:           stderr.String(),
			ExecutionTimeMs: elapsed,
			HookCommand:     def.Command,
		}, nil
	}
}

// runCascade executes secondary commands sequentially with no timeout
// and no retry. Cascade outcomes never affect the hook's own result;
// failures are recorded on the diagnostic log only.
func (e *Executor) runCascade(commands []string, hctx *Context, kind string) {
	for _, command := range commands {
		cmd := exec.Command(e.shell, "-c", command)
		cmd.Env = append(os.Environ(),
			"SESSION_ID="+hctx.SessionID,
			"PROJECT_PATH="+hctx.ProjectPath,
		)

		output, err := cmd.CombinedOutput()
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"cascade": kind,
				"command": command,
				"error":   err.Error(),
				"output":  string(output),
			}).Warn("Cascade command failed")
			continue
		}
		e.log.WithFields(logrus.Fields{
			"cascade": kind,
			"command": command,
		}).Debug("Cascade command completed")
	}
}
