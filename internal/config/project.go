package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/forgeworks/agent-hooks/internal/hooks"
	"github.com/forgeworks/agent-hooks/internal/logging"
)

// ProjectHooksFile is the per-project hook configuration, discovered in
// the project root.
const ProjectHooksFile = ".agent-hooks.yaml"

// projectHooksConfig defers per-entry decoding so one malformed hook
// does not invalidate the whole file.
type projectHooksConfig struct {
	Hooks map[string][]yaml.Node `yaml:"hooks"`
}

// LoadProjectHooks returns the event → hook list mapping configured for
// a project. A missing file yields an empty mapping. Malformed entries
// are dropped silently rather than failing the chain; entries for
// unknown events are kept out of the result.
func LoadProjectHooks(projectPath string) (map[string][]hooks.Definition, error) {
	log := logging.NewLogger("config.project")
	result := make(map[string][]hooks.Definition)

	configPath := filepath.Join(projectPath, ProjectHooksFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ProjectHooksFile, err)
	}

	var raw projectHooksConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectHooksFile, err)
	}

	for eventName, nodes := range raw.Hooks {
		if _, err := hooks.ParseEvent(eventName); err != nil {
			log.WithField("event", eventName).Debug("Skipping hooks for unknown event")
			continue
		}

		defs := make([]hooks.Definition, 0, len(nodes))
		for i := range nodes {
			var def hooks.Definition
			if err := nodes[i].Decode(&def); err != nil || def.Command == "" {
				log.WithField("event", eventName).Debug("Dropping malformed hook entry")
				continue
			}
			defs = append(defs, def)
		}
		if len(defs) > 0 {
			result[eventName] = defs
		}
	}

	return result, nil
}
