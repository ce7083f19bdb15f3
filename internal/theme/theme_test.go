package theme

import "testing"

func TestLoadBuiltins(t *testing.T) {
	for _, name := range Names() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if th.Name != name {
			t.Errorf("Load(%q) returned theme named %q", name, th.Name)
		}
	}
}

func TestLoadEmptyNameIsDefault(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Name != "default" {
		t.Fatalf("expected default theme, got %q", th.Name)
	}
}

func TestLoadIsCaseInsensitive(t *testing.T) {
	th, err := Load("  DARK ")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Name != "dark" {
		t.Fatalf("expected dark theme, got %q", th.Name)
	}
}

func TestLoadUnknownName(t *testing.T) {
	if _, err := Load("hotdog"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}
