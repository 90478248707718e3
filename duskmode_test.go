package duskmode

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"light", ModeLight, true},
		{"dark", ModeDark, true},
		{"system", ModeSystem, true},
		{"", "", false},
		{"Dark", "", false},
		{"solarized", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCycleMode(t *testing.T) {
	tests := []struct {
		in, want Mode
	}{
		{ModeLight, ModeDark},
		{ModeDark, ModeSystem},
		{ModeSystem, ModeLight},
		{Mode("bogus"), ModeLight},
	}
	for _, tt := range tests {
		if got := CycleMode(tt.in); got != tt.want {
			t.Errorf("CycleMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeSchemeID(t *testing.T) {
	safe := []string{"default", "high-contrast", "nord_dark", "Scheme2"}
	for _, id := range safe {
		if !SafeSchemeID(id) {
			t.Errorf("SafeSchemeID(%q) = false, want true", id)
		}
	}
	unsafe := []string{"", "../etc", "a b", `"><script>`, "sch.eme", "a/b"}
	for _, id := range unsafe {
		if SafeSchemeID(id) {
			t.Errorf("SafeSchemeID(%q) = true, want false", id)
		}
	}
}

func TestNormalize(t *testing.T) {
	known := []string{"default", "nord"}

	tests := []struct {
		name string
		in   State
		want State
	}{
		{"valid passes through", State{ModeDark, "nord"}, State{ModeDark, "nord"}},
		{"bad mode becomes system", State{Mode("bogus"), "nord"}, State{ModeSystem, "nord"}},
		{"empty mode becomes system", State{"", "default"}, State{ModeSystem, "default"}},
		{"unknown scheme becomes first known", State{ModeLight, "dracula"}, State{ModeLight, "default"}},
		{"unsafe scheme becomes first known", State{ModeLight, "../etc"}, State{ModeLight, "default"}},
		{"empty scheme becomes first known", State{ModeDark, ""}, State{ModeDark, "default"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in, known); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmptyRegistry(t *testing.T) {
	got := Normalize(State{ModeLight, "../etc"}, []string{})
	if got.Scheme != DefaultScheme {
		t.Errorf("scheme with empty registry: got %q, want %q", got.Scheme, DefaultScheme)
	}
}

func TestNormalizeNilRegistryKeepsSafeScheme(t *testing.T) {
	got := Normalize(State{ModeLight, "anything-safe"}, nil)
	if got.Scheme != "anything-safe" {
		t.Errorf("scheme with nil registry: got %q, want %q", got.Scheme, "anything-safe")
	}
}
