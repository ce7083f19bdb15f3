package notify

import "testing"

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Title != "Croptag" {
		t.Errorf("Title = %q, want %q", prefs.Title, "Croptag")
	}
	for _, event := range []Event{EventSave, EventBatch, EventCopy} {
		if prefs.Events[event].Template == "" {
			t.Errorf("event %s has no template", event)
		}
	}
}

func TestLoadPreferencesEnvOverride(t *testing.T) {
	t.Setenv("CROPTAG_NOTIFY_TITLE", "Custom")
	t.Setenv("CROPTAG_NOTIFY_SAVE_TEXT", "Wrote %s")

	prefs := LoadPreferences()
	if prefs.Title != "Custom" {
		t.Errorf("Title = %q, want %q", prefs.Title, "Custom")
	}
	if got := prefs.Events[EventSave].Template; got != "Wrote %s" {
		t.Errorf("save template = %q, want %q", got, "Wrote %s")
	}
	if got := prefs.Events[EventBatch].Template; got != "Batch finished: %s" {
		t.Errorf("batch template = %q, want default", got)
	}
}

func TestEventsDisabledByDefault(t *testing.T) {
	n := New(DefaultPreferences())
	for _, event := range []Event{EventSave, EventBatch, EventCopy} {
		if n.enabledFor(event) {
			t.Errorf("event %s enabled by default", event)
		}
	}
	n.Enable(EventSave, true)
	if !n.enabledFor(EventSave) {
		t.Error("EventSave not enabled after Enable")
	}
	if n.enabledFor(EventBatch) {
		t.Error("EventBatch enabled unexpectedly")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("out/example.png")
	n.Batch("3 of 3 images saved")
	n.Copy("example")
}
