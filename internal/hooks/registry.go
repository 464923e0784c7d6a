package hooks

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/forgeworks/agent-hooks/internal/logging"
)

// Registry maps events to hook lists for programmatic registration,
// where hooks are not loaded from configuration on every trigger. The
// lock guards only read/replace of the map; it is never held across
// hook execution.
type Registry struct {
	mu     sync.Mutex
	runner *Runner
	hooks  map[string][]Definition
	log    *logrus.Entry
}

func NewRegistry(runner *Runner) *Registry {
	return &Registry{
		runner: runner,
		hooks:  make(map[string][]Definition),
		log:    logging.NewLogger("hooks.registry"),
	}
}

// Register replaces the hook list for an event wholesale.
func (r *Registry) Register(event Event, hooks []Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[event.String()] = hooks
}

// Trigger snapshots the registered list under the lock, releases it,
// then delegates to the chain runner. No hooks registered yields a
// trivial result without invoking the runner.
func (r *Registry) Trigger(ctx context.Context, event Event, hctx *Context) *ChainResult {
	r.mu.Lock()
	registered := r.hooks[event.String()]
	snapshot := make([]Definition, len(registered))
	copy(snapshot, registered)
	r.mu.Unlock()

	if len(snapshot) == 0 {
		r.log.WithField("event", event.String()).Debug("No hooks registered for event")
		return &ChainResult{
			Event:          event.String(),
			TotalHooks:     0,
			Successful:     0,
			Failed:         0,
			Results:        []ExecutionResult{},
			ShouldContinue: true,
		}
	}

	return r.runner.Run(ctx, event, hctx, snapshot)
}
