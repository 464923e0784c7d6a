package hooks

import "encoding/json"

// Context is the immutable snapshot passed to every hook in a chain.
// It is created once per trigger and shared read-only across hooks and
// cascades; the Data payload is event-specific.
type Context struct {
	Event       string          `json:"event"`
	SessionID   string          `json:"session_id"`
	ProjectPath string          `json:"project_path"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// NewContext builds a context for one trigger occurrence.
func NewContext(event Event, sessionID, projectPath string, data json.RawMessage) *Context {
	return &Context{
		Event:       event.String(),
		SessionID:   sessionID,
		ProjectPath: projectPath,
		Data:        data,
	}
}

// Marshal returns the canonical JSON form injected into hook processes
// via the HOOK_CONTEXT environment variable.
func (c *Context) Marshal() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
