package hooks

import "fmt"

// Event identifies a lifecycle trigger in the host application.
type Event string

const (
	EventPreToolUse       Event = "PreToolUse"
	EventPostToolUse      Event = "PostToolUse"
	EventNotification     Event = "Notification"
	EventStop             Event = "Stop"
	EventSubagentStop     Event = "SubagentStop"
	EventOnContextCompact Event = "OnContextCompact"
	EventOnAgentSwitch    Event = "OnAgentSwitch"
	EventOnFileChange     Event = "OnFileChange"
	EventOnSessionStart   Event = "OnSessionStart"
	EventOnSessionEnd     Event = "OnSessionEnd"
	EventOnTabSwitch      Event = "OnTabSwitch"
)

var knownEvents = []Event{
	EventPreToolUse,
	EventPostToolUse,
	EventNotification,
	EventStop,
	EventSubagentStop,
	EventOnContextCompact,
	EventOnAgentSwitch,
	EventOnFileChange,
	EventOnSessionStart,
	EventOnSessionEnd,
	EventOnTabSwitch,
}

// KnownEvents returns the full event catalog in declaration order.
func KnownEvents() []Event {
	out := make([]Event, len(knownEvents))
	copy(out, knownEvents)
	return out
}

func (e Event) String() string {
	return string(e)
}

// IsKnown reports whether e is part of the catalog.
func (e Event) IsKnown() bool {
	for _, known := range knownEvents {
		if known == e {
			return true
		}
	}
	return false
}

// ParseEvent resolves an event name against the catalog.
func ParseEvent(name string) (Event, error) {
	ev := Event(name)
	if !ev.IsKnown() {
		return "", fmt.Errorf("unknown hook event: %s", name)
	}
	return ev, nil
}
