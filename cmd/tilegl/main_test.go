package main

import (
	"testing"

	"github.com/spf13/viper"

	"tilegl/core"
)

func TestCommands(t *testing.T) {
	root := newRootCmd(viper.New())
	for _, name := range []string{"hello", "color", "tester", "world"} {
		if findCmd(root, name) == nil {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	v := viper.New()
	root := newRootCmd(v)
	if err := root.PersistentFlags().Set("width", "640"); err != nil {
		t.Fatal(err)
	}
	w := findCmd(root, "world")
	if err := w.Flags().Set("ray", "3"); err != nil {
		t.Fatal(err)
	}
	if err := w.Flags().Set("dig", "true"); err != nil {
		t.Fatal(err)
	}

	cfg, err := core.LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("width: expected 640, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("height: expected default 720, got %d", cfg.Window.Height)
	}
	if cfg.World.RayDistance != 3 || !cfg.World.Dig {
		t.Errorf("world flags: expected ray 3 and dig, got %+v", cfg.World)
	}
}
