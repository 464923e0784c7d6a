package interfaces

import (
	"time"

	"github.com/forgeworks/agent-hooks/internal/hooks"
)

// ChainStorer defines the interface for chain-run history persistence.
type ChainStorer interface {
	// SaveChainRun records one chain execution with its per-hook results.
	SaveChainRun(run *hooks.ChainRun) error

	// GetChainRun returns a single run by id.
	GetChainRun(id string) (*hooks.ChainRun, error)

	// ListChainRuns returns the most recent runs, newest first.
	ListChainRuns(limit int) ([]*hooks.ChainRun, error)

	// DeleteChainRunsBefore removes runs started before the cutoff and
	// returns how many were deleted.
	DeleteChainRunsBefore(cutoff time.Time) (int64, error)

	Close() error
}
