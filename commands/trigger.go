package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/config"
	"github.com/forgeworks/agent-hooks/internal/hooks"
	"github.com/forgeworks/agent-hooks/internal/logging"
	"github.com/forgeworks/agent-hooks/internal/notify"
	"github.com/forgeworks/agent-hooks/internal/storage/disk"
)

// ChainBlockedError signals that a gating chain failed and the caller
// should not proceed with the pending operation.
type ChainBlockedError struct {
	Event string
}

func (e *ChainBlockedError) Error() string {
	return fmt.Sprintf("hook chain for %s failed, blocking operation", e.Event)
}

// NewTriggerCmd creates the trigger command: resolve the event, load
// the project's hook list, execute the chain, and print the aggregate
// result as JSON.
func NewTriggerCmd() *cobra.Command {
	var sessionID string
	var projectPath string
	var dataJSON string

	cmd := &cobra.Command{
		Use:   "trigger <event>",
		Short: "Trigger a hook event and run its configured chain",
		Long: `Trigger resolves the event name against the event catalog, loads the
hook list for the project from ` + config.ProjectHooksFile + `, executes the
chain, and prints the chain result as JSON.

The execution context is read as JSON from stdin when input is piped;
flags fill in any missing fields. Exits with code 2 when a PreToolUse
chain fails, so callers can gate the pending tool call.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := hooks.ParseEvent(args[0])
			if err != nil {
				return err
			}

			hctx, err := buildContext(cmd.InOrStdin(), event, sessionID, projectPath, dataJSON)
			if err != nil {
				return err
			}

			projectHooks, err := config.LoadProjectHooks(hctx.ProjectPath)
			if err != nil {
				return err
			}

			runner := newRunner()
			result := runner.Run(context.Background(), event, hctx, projectHooks[event.String()])

			output, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal chain result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))

			if !result.ShouldContinue {
				return &ChainBlockedError{Event: event.String()}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (generated when omitted)")
	cmd.Flags().StringVar(&projectPath, "project", "", "Project path (defaults to the working directory)")
	cmd.Flags().StringVar(&dataJSON, "data", "", "Event payload as a JSON document")

	return cmd
}

// buildContext assembles the execution context from piped stdin JSON
// and command flags; flags win over piped fields.
func buildContext(stdin io.Reader, event hooks.Event, sessionID, projectPath, dataJSON string) (*hooks.Context, error) {
	hctx := &hooks.Context{}

	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read context from stdin: %w", err)
		}
		if len(input) > 0 {
			if err := json.Unmarshal(input, hctx); err != nil {
				return nil, fmt.Errorf("failed to parse context JSON: %w", err)
			}
		}
	}

	hctx.Event = event.String()
	if sessionID != "" {
		hctx.SessionID = sessionID
	}
	if hctx.SessionID == "" {
		hctx.SessionID = uuid.New().String()
	}
	if projectPath != "" {
		hctx.ProjectPath = projectPath
	}
	if hctx.ProjectPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		hctx.ProjectPath = cwd
	}
	if dataJSON != "" {
		if !json.Valid([]byte(dataJSON)) {
			return nil, fmt.Errorf("invalid --data payload: not valid JSON")
		}
		hctx.Data = json.RawMessage(dataJSON)
	}

	return hctx, nil
}

// newRunner wires the chain runner to the configured notification bus
// and, when enabled, the chain-history store.
func newRunner() *hooks.Runner {
	log := logging.NewLogger("commands.trigger")
	cfg := config.Load()

	var bus notify.Publisher = notify.NewLogPublisher()
	if cfg.Ntfy.Enabled && cfg.Ntfy.Topic != "" {
		bus = notify.NewNtfyPublisher(cfg.Ntfy.URL, cfg.Ntfy.Topic)
	}

	var recorder hooks.Recorder
	if cfg.History.Enabled {
		store, err := disk.NewSQLiteStore()
		if err != nil {
			log.WithField("error", err.Error()).Warn("Chain history unavailable")
		} else {
			recorder = store
		}
	}

	return hooks.NewRunner(hooks.NewExecutor(), bus, recorder)
}
