package hooks

import (
	"context"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturePublisher) Publish(topic string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
}

type captureRecorder struct {
	runs []*ChainRun
}

func (r *captureRecorder) SaveChainRun(run *ChainRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func testRunner(bus *capturePublisher, recorder Recorder) *Runner {
	if bus == nil {
		bus = &capturePublisher{}
	}
	return NewRunner(testExecutor(), bus, recorder)
}

func TestRunAggregatesResults(t *testing.T) {
	r := testRunner(nil, nil)
	hooks := []Definition{
		{Command: "echo one"},
		{Command: "exit 1"},
		{Command: "echo three"},
	}

	result := r.Run(context.Background(), EventStop, testContext(), hooks)

	if result.TotalHooks != 3 {
		t.Errorf("TotalHooks = %d, want 3", result.TotalHooks)
	}
	if len(result.Results) != result.TotalHooks {
		t.Errorf("len(Results) = %d, want %d", len(result.Results), result.TotalHooks)
	}
	if result.Successful != 2 || result.Failed != 1 {
		t.Errorf("Successful/Failed = %d/%d, want 2/1", result.Successful, result.Failed)
	}
	if result.Successful+result.Failed != result.TotalHooks {
		t.Error("Successful + Failed must equal TotalHooks")
	}
	if !result.ShouldContinue {
		t.Error("failures on Stop must not block continuation")
	}
}

func TestRunPreservesOrder(t *testing.T) {
	r := testRunner(nil, nil)
	hooks := []Definition{
		{Command: "echo first"},
		{Command: "echo second"},
		{Command: "echo third"},
	}

	result := r.Run(context.Background(), EventOnSessionStart, testContext(), hooks)

	for i, want := range []string{"echo first", "echo second", "echo third"} {
		if result.Results[i].HookCommand != want {
			t.Errorf("Results[%d].HookCommand = %q, want %q", i, result.Results[i].HookCommand, want)
		}
	}
}

func TestRunBlocksOnPreToolUseFailure(t *testing.T) {
	r := testRunner(nil, nil)
	failing := []Definition{{Command: "exit 1", Retry: retries(1)}}

	ctx := testContext()
	ctx.Event = EventPreToolUse.String()
	result := r.Run(context.Background(), EventPreToolUse, ctx, failing)

	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if result.ShouldContinue {
		t.Error("a failed PreToolUse chain must block continuation")
	}
}

func TestRunDoesNotBlockOtherEvents(t *testing.T) {
	r := testRunner(nil, nil)
	failing := []Definition{{Command: "exit 1", Retry: retries(1)}}

	for _, event := range KnownEvents() {
		if event == EventPreToolUse {
			continue
		}
		ctx := testContext()
		ctx.Event = event.String()
		result := r.Run(context.Background(), event, ctx, failing)
		if !result.ShouldContinue {
			t.Errorf("event %s must not block continuation on failure", event)
		}
	}
}

func TestRunConvertsExecutorErrorToFailureResult(t *testing.T) {
	executor := testExecutor()
	executor.shell = "/nonexistent/shell"
	r := NewRunner(executor, &capturePublisher{}, nil)

	result := r.Run(context.Background(), EventStop, testContext(), []Definition{{Command: "echo hi"}})

	if result.TotalHooks != 1 || result.Failed != 1 {
		t.Fatalf("expected one failure, got %+v", result)
	}
	synthetic := result.Results[0]
	if synthetic.Success {
		t.Error("synthetic result must be a failure")
	}
	if synthetic.Error == "" {
		t.Error("synthetic result must carry the error text")
	}
	if synthetic.ExecutionTimeMs != 0 {
		t.Errorf("synthetic result must report zero elapsed time, got %d", synthetic.ExecutionTimeMs)
	}
}

func TestRunPublishesChainCompletion(t *testing.T) {
	bus := &capturePublisher{}
	r := testRunner(bus, nil)

	r.Run(context.Background(), EventStop, testContext(), []Definition{{Command: "true"}})

	if len(bus.topics) != 1 {
		t.Fatalf("expected one notification, got %d", len(bus.topics))
	}
	if bus.topics[0] != "hook-chain-complete:test-session" {
		t.Errorf("unexpected topic: %q", bus.topics[0])
	}
}

func TestRunRecordsChainRun(t *testing.T) {
	recorder := &captureRecorder{}
	r := testRunner(nil, recorder)

	started := time.Now()
	result := r.Run(context.Background(), EventOnSessionEnd, testContext(), []Definition{{Command: "true"}})

	if len(recorder.runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(recorder.runs))
	}
	run := recorder.runs[0]
	if run.ID == "" {
		t.Error("recorded run must have an id")
	}
	if run.Event != EventOnSessionEnd.String() {
		t.Errorf("recorded event = %q", run.Event)
	}
	if run.SessionID != "test-session" {
		t.Errorf("recorded session = %q", run.SessionID)
	}
	if run.Result != result {
		t.Error("recorded run must carry the chain result")
	}
	if run.StartedAt.Before(started.Add(-time.Second)) {
		t.Error("recorded run has implausible start time")
	}
}

func TestRunEmptyHookList(t *testing.T) {
	r := testRunner(nil, nil)

	result := r.Run(context.Background(), EventPreToolUse, testContext(), nil)

	if result.TotalHooks != 0 || result.Successful != 0 || result.Failed != 0 {
		t.Errorf("empty chain counts = %+v", result)
	}
	if !result.ShouldContinue {
		t.Error("empty chain must not block continuation")
	}
	if len(result.Results) != 0 {
		t.Errorf("empty chain must have no results, got %d", len(result.Results))
	}
}
