package loader

import (
	"testing"
	"time"
)

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"GRIDDROP_SENSOR_DISTANCE=3",
		"GRIDDROP_SENSOR_DELAY=250ms",
		"GRIDDROP_LOG_LEVEL=debug",
		"GRIDDROP_ENABLE_MOUSE=off",
		"GRIDDROP_ZONES_BOXES_PER_ROW=4",
		"HOME=/root",
		"MALFORMED",
	)

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"sensor.distance", int64(3)},
		{"sensor.delay", 250 * time.Millisecond},
		{"logging.level", "debug"},
		{"sensor.enableMouse", false},
		{"zones.boxesPerRow", int64(4)},
	}
	for _, tt := range tests {
		got, ok := Lookup(cfg, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := cfg["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_Empty(t *testing.T) {
	cfg, err := newTestEnvLoader("GRIDDROP_UI_TITLE=").Load()
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := Lookup(cfg, "ui.title"); !ok || v != "" {
		t.Errorf("ui.title = %v, %v; want empty string, set", v, ok)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := newTestEnvLoader("GRIDDROP_TOL=5")
	l.AddMapping("GRIDDROP_TOL", "sensor.tolerance")

	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := Lookup(cfg, "sensor.tolerance"); v != int64(5) {
		t.Errorf("sensor.tolerance = %v, want 5", v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("GRIDDROP_")

	tests := []struct {
		env  string
		want string
	}{
		{"GRIDDROP_SENSOR_DELAY", "sensor.delay"},
		{"GRIDDROP_UI_SHOW_STATUS_BAR", "ui.showStatusBar"},
		{"GRIDDROP_SIMPLE", "simple"},
		{"GRIDDROP_", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"0", int64(0)},
		{"1", int64(1)},
		{"-7", int64(-7)},
		{"2.5", 2.5},
		{"1s", time.Second},
		{"xy", "xy"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}

	obj, ok := parseValue(`{"x":4,"y":6}`).(map[string]any)
	if !ok || obj["x"] != float64(4) || obj["y"] != float64(6) {
		t.Errorf("parseValue(json object) = %v", obj)
	}
}
