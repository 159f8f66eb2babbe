package config

import "testing"

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ToolPath != "" {
		t.Fatalf("expected empty tool path, got %q", cfg.App.ToolPath)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected trace disabled by default")
	}
}

func TestLoadArgsEnvFallback(t *testing.T) {
	environ := []string{
		"FEATBOARD_TOOL_PATH=/opt/tools",
		"FEATBOARD_WIDTH=120",
		"FEATBOARD_TRACE=1",
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ToolPath != "/opt/tools" {
		t.Fatalf("expected env tool path, got %q", cfg.App.ToolPath)
	}
	if cfg.App.Width != 120 {
		t.Fatalf("expected width 120, got %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace enabled via env")
	}
}

func TestLoadArgsFlagBeatsEnv(t *testing.T) {
	cfg, err := LoadArgs([]string{"-tool-path", "/flag/tools"}, []string{"FEATBOARD_TOOL_PATH=/env/tools"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ToolPath != "/flag/tools" {
		t.Fatalf("expected flag to win, got %q", cfg.App.ToolPath)
	}
}

func TestToolOverrideBeatsEverything(t *testing.T) {
	environ := []string{
		"FEATBOARD_TOOL_PATH=/env/tools",
		"FEATBOARD_TOOL_OVERRIDE=/override/tool",
	}
	cfg, err := LoadArgs([]string{"-tool-path", "/flag/tools"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ToolPath != "/override/tool" {
		t.Fatalf("expected override to win, got %q", cfg.App.ToolPath)
	}
}

func TestEditorResolutionOrder(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
		want    string
	}{
		{"featboard editor wins", []string{"FEATBOARD_EDITOR=hx", "VISUAL=code", "EDITOR=vi"}, "hx"},
		{"visual next", []string{"VISUAL=code", "EDITOR=vi"}, "code"},
		{"editor last", []string{"EDITOR=vi"}, "vi"},
		{"absent means inline", nil, ""},
	}
	for _, tc := range cases {
		cfg, err := LoadArgs(nil, tc.environ)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if cfg.App.Editor != tc.want {
			t.Fatalf("%s: expected editor %q, got %q", tc.name, tc.want, cfg.App.Editor)
		}
	}
}

func TestNegativeDimensionsRejected(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-2"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
}
