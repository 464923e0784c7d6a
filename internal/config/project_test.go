package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProjectHooks(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProjectHooksFile), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write hooks file: %v", err)
	}
	return dir
}

func TestLoadProjectHooksMissingFile(t *testing.T) {
	result, err := LoadProjectHooks(t.TempDir())
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(result))
	}
}

func TestLoadProjectHooks(t *testing.T) {
	dir := writeProjectHooks(t, `
hooks:
  PreToolUse:
    - command: "make lint"
      timeout: 10
      retry: 2
      on_failure:
        - "echo lint failed"
    - command: "make test"
  OnSessionEnd:
    - command: "git status"
      condition:
        condition: "event == 'OnSessionEnd'"
        enabled: true
`)

	result, err := LoadProjectHooks(dir)
	if err != nil {
		t.Fatalf("LoadProjectHooks returned error: %v", err)
	}

	pre := result["PreToolUse"]
	if len(pre) != 2 {
		t.Fatalf("expected 2 PreToolUse hooks, got %d", len(pre))
	}
	if pre[0].Command != "make lint" {
		t.Errorf("unexpected first command: %q", pre[0].Command)
	}
	if pre[0].TimeoutSeconds() != 10 {
		t.Errorf("timeout = %d, want 10", pre[0].TimeoutSeconds())
	}
	if pre[0].MaxRetries() != 2 {
		t.Errorf("retries = %d, want 2", pre[0].MaxRetries())
	}
	if len(pre[0].OnFailure) != 1 {
		t.Errorf("expected one on_failure cascade, got %d", len(pre[0].OnFailure))
	}
	if pre[1].TimeoutSeconds() != 30 {
		t.Errorf("default timeout = %d, want 30", pre[1].TimeoutSeconds())
	}

	end := result["OnSessionEnd"]
	if len(end) != 1 || end[0].Condition == nil || !end[0].Condition.Enabled {
		t.Errorf("condition not loaded: %+v", end)
	}
}

func TestLoadProjectHooksDropsMalformedEntries(t *testing.T) {
	dir := writeProjectHooks(t, `
hooks:
  Stop:
    - command: "echo good"
    - "just a bare string"
    - timeout: 5
    - command: "echo also good"
`)

	result, err := LoadProjectHooks(dir)
	if err != nil {
		t.Fatalf("malformed entries must be dropped, not surfaced: %v", err)
	}

	stop := result["Stop"]
	if len(stop) != 2 {
		t.Fatalf("expected 2 surviving hooks, got %d", len(stop))
	}
	if stop[0].Command != "echo good" || stop[1].Command != "echo also good" {
		t.Errorf("unexpected surviving hooks: %+v", stop)
	}
}

func TestLoadProjectHooksSkipsUnknownEvents(t *testing.T) {
	dir := writeProjectHooks(t, `
hooks:
  NotARealEvent:
    - command: "echo nope"
  Stop:
    - command: "echo ok"
`)

	result, err := LoadProjectHooks(dir)
	if err != nil {
		t.Fatalf("LoadProjectHooks returned error: %v", err)
	}
	if _, ok := result["NotARealEvent"]; ok {
		t.Error("unknown events must be excluded from the mapping")
	}
	if len(result["Stop"]) != 1 {
		t.Error("known events must survive alongside unknown ones")
	}
}
