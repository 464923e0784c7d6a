package hooks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testExecutor() *Executor {
	e := NewExecutor()
	e.retryBackoff = 10 * time.Millisecond
	return e
}

func testContext() *Context {
	return &Context{
		Event:       "Stop",
		SessionID:   "test-session",
		ProjectPath: "/tmp",
	}
}

func timeoutSecs(s uint64) *uint64 { return &s }
func retries(r uint32) *uint32     { return &r }

func TestExecuteHookSuccess(t *testing.T) {
	e := testExecutor()
	def := &Definition{Command: "echo hello"}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if strings.TrimSpace(result.Output) != "hello" {
		t.Errorf("unexpected output: %q", result.Output)
	}
	if result.Error != "" {
		t.Errorf("expected empty error, got %q", result.Error)
	}
	if result.HookCommand != "echo hello" {
		t.Errorf("unexpected hook command: %q", result.HookCommand)
	}
}

func TestExecuteHookEnvironment(t *testing.T) {
	e := testExecutor()
	def := &Definition{Command: `echo "$HOOK_EVENT|$SESSION_ID|$PROJECT_PATH"`}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	want := "Stop|test-session|/tmp"
	if strings.TrimSpace(result.Output) != want {
		t.Errorf("environment output = %q, want %q", strings.TrimSpace(result.Output), want)
	}
}

func TestExecuteHookContextSerialized(t *testing.T) {
	e := testExecutor()
	def := &Definition{Command: `echo "$HOOK_CONTEXT"`}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	for _, fragment := range []string{`"event":"Stop"`, `"session_id":"test-session"`} {
		if !strings.Contains(result.Output, fragment) {
			t.Errorf("HOOK_CONTEXT missing %s: %q", fragment, result.Output)
		}
	}
}

func TestExecuteHookFailureCapturesStderr(t *testing.T) {
	e := testExecutor()
	def := &Definition{Command: "echo out; echo broken >&2; exit 1"}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if result.Success {
		t.Error("expected failure")
	}
	if strings.TrimSpace(result.Error) != "broken" {
		t.Errorf("expected stderr in error, got %q", result.Error)
	}
	if result.Output != "" {
		t.Errorf("failed hook should not retain stdout, got %q", result.Output)
	}
}

func TestExecuteHookSkippedByCondition(t *testing.T) {
	e := testExecutor()
	marker := filepath.Join(t.TempDir(), "ran")
	def := &Definition{
		Command:   "touch " + marker,
		Condition: &ConditionalTrigger{Condition: "event == 'OnSessionEnd'", Enabled: true},
	}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if !result.Success {
		t.Error("skipped hook should report success")
	}
	if result.Output != SkippedOutput {
		t.Errorf("unexpected output: %q", result.Output)
	}
	if result.ExecutionTimeMs != 0 {
		t.Errorf("skipped hook should report zero elapsed time, got %d", result.ExecutionTimeMs)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("skipped hook must not spawn its command")
	}
}

func TestExecuteHookRetriesThenFails(t *testing.T) {
	e := testExecutor()
	counter := filepath.Join(t.TempDir(), "attempts")
	def := &Definition{
		Command: "echo attempt >> " + counter + "; exit 1",
		Retry:   retries(2),
	}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if result.Success {
		t.Error("expected failure after retries")
	}

	data, err := os.ReadFile(counter)
	if err != nil {
		t.Fatalf("failed to read attempt counter: %v", err)
	}
	attempts := strings.Count(string(data), "attempt")
	if attempts != 3 {
		t.Errorf("expected 3 attempts (retry=2), got %d", attempts)
	}
}

func TestExecuteHookRetrySucceedsEventually(t *testing.T) {
	e := testExecutor()
	marker := filepath.Join(t.TempDir(), "state")
	// Fails on the first attempt, succeeds once the marker exists.
	def := &Definition{
		Command: "test -f " + marker + " || { touch " + marker + "; exit 1; }; echo recovered",
		Retry:   retries(1),
	}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected eventual success, got error %q", result.Error)
	}
	if strings.TrimSpace(result.Output) != "recovered" {
		t.Errorf("unexpected output: %q", result.Output)
	}
}

func TestExecuteHookTimeout(t *testing.T) {
	e := testExecutor()
	cascadeMarker := filepath.Join(t.TempDir(), "cascade")
	def := &Definition{
		Command:   "sleep 5",
		Timeout:   timeoutSecs(1),
		Retry:     retries(3),
		OnFailure: []string{"touch " + cascadeMarker},
	}

	start := time.Now()
	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err == nil {
		t.Fatalf("expected timeout error, got result %+v", result)
	}

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %T: %v", err, err)
	}

	// Timeouts bypass retries entirely.
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timed-out hook appears to have been retried, took %s", elapsed)
	}

	// Timeouts bypass on_failure cascades.
	if _, err := os.Stat(cascadeMarker); !os.IsNotExist(err) {
		t.Error("on_failure cascade must not run after a timeout")
	}
}

func TestExecuteHookSpawnFailure(t *testing.T) {
	e := testExecutor()
	e.shell = "/nonexistent/shell"
	def := &Definition{Command: "echo hi"}

	if _, err := e.ExecuteHook(context.Background(), def, testContext()); err == nil {
		t.Fatal("expected spawn failure error")
	}
}

func TestOnSuccessCascadeRuns(t *testing.T) {
	e := testExecutor()
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	def := &Definition{
		Command:   "true",
		OnSuccess: []string{"touch " + first, "touch " + second},
	}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	for _, marker := range []string{first, second} {
		if _, err := os.Stat(marker); err != nil {
			t.Errorf("on_success cascade did not run: %s", marker)
		}
	}
}

func TestOnFailureCascadeRunsAfterRetries(t *testing.T) {
	e := testExecutor()
	marker := filepath.Join(t.TempDir(), "failed")
	def := &Definition{
		Command:   "exit 1",
		Retry:     retries(1),
		OnFailure: []string{"touch " + marker},
	}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Error("on_failure cascade did not run after retries were exhausted")
	}
}

func TestCascadeFailureDoesNotAffectResult(t *testing.T) {
	e := testExecutor()
	def := &Definition{
		Command:   "echo fine",
		OnSuccess: []string{"exit 7"},
	}

	result, err := e.ExecuteHook(context.Background(), def, testContext())
	if err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}
	if !result.Success {
		t.Error("cascade failure must not affect the hook's own result")
	}
}

func TestCascadeEnvironmentOmitsContext(t *testing.T) {
	e := testExecutor()
	outFile := filepath.Join(t.TempDir(), "env")
	def := &Definition{
		Command:   "true",
		OnSuccess: []string{`printf '%s' "$HOOK_CONTEXT" > ` + outFile},
	}

	if _, err := e.ExecuteHook(context.Background(), def, testContext()); err != nil {
		t.Fatalf("ExecuteHook returned error: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("cascade did not run: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("cascades must not receive HOOK_CONTEXT, got %q", data)
	}
}
