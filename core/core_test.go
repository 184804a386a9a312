package core

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window: expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Camera.Speed != 2.5 {
		t.Errorf("camera.speed: expected 2.5, got %v", cfg.Camera.Speed)
	}
	if cfg.World.Padding != 0.25 || cfg.World.RayDistance != 5 {
		t.Errorf("world: unexpected padding/ray distance %v/%v", cfg.World.Padding, cfg.World.RayDistance)
	}
	if len(cfg.World.Map) != 8 || cfg.World.Map[0][0] != 3 {
		t.Errorf("world.map: unexpected default %v", cfg.World.Map)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilegl.yaml")
	data := `
window:
  width: 800
  height: 600
world:
  ray_distance: 8
  map:
    - [1, 1, 1]
    - [1, 0, 1]
    - [1, 1, 1]
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Title != "LearnOpenGL" {
		t.Errorf("window: expected 800 wide with default title, got %+v", cfg.Window)
	}
	if cfg.World.RayDistance != 8 {
		t.Errorf("world.ray_distance: expected 8, got %v", cfg.World.RayDistance)
	}
	if len(cfg.World.Map) != 3 || cfg.World.Map[1][1] != 0 {
		t.Errorf("world.map: unexpected %v", cfg.World.Map)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level: expected debug, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("window.width", 0)
	if _, err := LoadConfig(v); err == nil {
		t.Errorf("LoadConfig: expected error for zero width")
	}

	v = viper.New()
	v.Set("assets.lit_vert_shader", "lit.vert")
	if _, err := LoadConfig(v); err == nil {
		t.Errorf("LoadConfig: expected error for a vertex shader without fragment shader")
	}

	v = viper.New()
	v.Set("camera.position", []float32{1, 2})
	if _, err := LoadConfig(v); err == nil {
		t.Errorf("LoadConfig: expected error for a 2D camera position")
	}
}

func TestAssetPath(t *testing.T) {
	a := AssetSettings{Dir: "assets"}
	if got := a.Path("tile.png"); got != filepath.Join("assets", "tile.png") {
		t.Errorf("Path: got %q", got)
	}
	if got := a.Path(""); got != "" {
		t.Errorf("Path: expected empty, got %q", got)
	}
}

func TestClock(t *testing.T) {
	c := Clock{MaxDelta: 0.05}
	if dt := c.Tick(10); dt != 0 {
		t.Errorf("first tick: expected 0, got %v", dt)
	}
	if dt := c.Tick(10.02); dt < 0.0199 || dt > 0.0201 {
		t.Errorf("second tick: expected 0.02, got %v", dt)
	}
	if dt := c.Tick(11); dt != 0.05 {
		t.Errorf("capped tick: expected 0.05, got %v", dt)
	}
}

func TestPackVertices(t *testing.T) {
	got := PackVertices([]Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		UV:       mgl32.Vec2{0.5, 1},
	}})
	want := []float32{1, 2, 3, 0, 1, 0, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("PackVertices: expected %d floats, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PackVertices[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf)

	SetLogLevel("warn")
	log.Info("hidden")
	log.Warn("shown")
	SetLogLevel("info")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("logger: unexpected output %q", out)
	}
}
