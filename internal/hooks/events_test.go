package hooks

import "testing"

func TestParseEvent(t *testing.T) {
	for _, event := range KnownEvents() {
		parsed, err := ParseEvent(event.String())
		if err != nil {
			t.Errorf("ParseEvent(%q) returned error: %v", event, err)
		}
		if parsed != event {
			t.Errorf("ParseEvent(%q) = %q", event, parsed)
		}
	}

	if _, err := ParseEvent("NotAnEvent"); err == nil {
		t.Error("ParseEvent should reject unknown event names")
	}
	if _, err := ParseEvent(""); err == nil {
		t.Error("ParseEvent should reject empty event names")
	}
}

func TestKnownEventsIsACopy(t *testing.T) {
	events := KnownEvents()
	events[0] = Event("Mutated")

	if KnownEvents()[0] != EventPreToolUse {
		t.Error("KnownEvents should return a copy of the catalog")
	}
}
