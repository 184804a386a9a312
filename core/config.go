package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is everything the demos read at start-up. It is filled from
// defaults, an optional tilegl.yaml, TILEGL_* environment variables and
// command line flags, in increasing priority.
type Config struct {
	Window WindowSettings `mapstructure:"window"`
	Assets AssetSettings  `mapstructure:"assets"`
	Camera CameraSettings `mapstructure:"camera"`
	World  WorldSettings  `mapstructure:"world"`
	Log    LogSettings    `mapstructure:"log"`
}

type WindowSettings struct {
	Width         int    `mapstructure:"width"`
	Height        int    `mapstructure:"height"`
	Title         string `mapstructure:"title"`
	VSync         bool   `mapstructure:"vsync"`
	Fullscreen    bool   `mapstructure:"fullscreen"`
	CaptureCursor bool   `mapstructure:"capture_cursor"`
}

type AssetSettings struct {
	Dir              string   `mapstructure:"dir"`
	FlipTextures     bool     `mapstructure:"flip_textures"`
	ContainerTexture string   `mapstructure:"container_texture"`
	DiffuseTexture   string   `mapstructure:"diffuse_texture"`
	TileTexture      string   `mapstructure:"tile_texture"`
	SpecularTexture  string   `mapstructure:"specular_texture"`
	WindowTexture    string   `mapstructure:"window_texture"`
	Models           []string `mapstructure:"models"`
	OutlineModel     string   `mapstructure:"outline_model"`
	// Optional replacements for the built-in Phong shader, loaded from disk.
	LitVertShader string `mapstructure:"lit_vert_shader"`
	LitFragShader string `mapstructure:"lit_frag_shader"`
}

// Path resolves an asset name against Dir.
func (a AssetSettings) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.Dir, name)
}

type CameraSettings struct {
	Position    []float32 `mapstructure:"position"`
	Speed       float32   `mapstructure:"speed"`
	Sensitivity float32   `mapstructure:"sensitivity"`
	Zoom        float32   `mapstructure:"zoom"`
}

type WorldSettings struct {
	Map         [][]int `mapstructure:"map"`
	Padding     float32 `mapstructure:"padding"`
	RayDistance float32 `mapstructure:"ray_distance"`
	// Dig clears the tile a ray cast hits.
	Dig bool `mapstructure:"dig"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// WindowConfig converts the window section into a WindowConfig.
func (c Config) WindowConfig() WindowConfig {
	wc := DefaultWindowConfig()
	wc.Width = c.Window.Width
	wc.Height = c.Window.Height
	wc.Title = c.Window.Title
	wc.VSync = c.Window.VSync
	wc.Fullscreen = c.Window.Fullscreen
	wc.CaptureCursor = c.Window.CaptureCursor
	return wc
}

var defaultMap = [][]int{
	{3, 2, 2, 2, 2, 2, 2, 3},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1},
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "LearnOpenGL")
	v.SetDefault("window.vsync", true)
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.capture_cursor", true)

	v.SetDefault("assets.dir", "assets")
	v.SetDefault("assets.flip_textures", true)
	v.SetDefault("assets.container_texture", "container.jpg")
	v.SetDefault("assets.diffuse_texture", "textures/container2.png")
	v.SetDefault("assets.tile_texture", "tile.png")
	v.SetDefault("assets.specular_texture", "textures/container2_specular.png")
	v.SetDefault("assets.window_texture", "textures/blending_transparent_window.png")
	v.SetDefault("assets.models", []string{"nanosuit/nanosuit.obj"})
	v.SetDefault("assets.outline_model", "planet/planet.obj")
	v.SetDefault("assets.lit_vert_shader", "")
	v.SetDefault("assets.lit_frag_shader", "")

	v.SetDefault("camera.position", []float32{2, 0, 4})
	v.SetDefault("camera.speed", 2.5)
	v.SetDefault("camera.sensitivity", 0.1)
	v.SetDefault("camera.zoom", 45)

	v.SetDefault("world.map", defaultMap)
	v.SetDefault("world.padding", 0.25)
	v.SetDefault("world.ray_distance", 5)
	v.SetDefault("world.dig", false)

	v.SetDefault("log.level", "info")
}

// LoadConfig reads configuration into a Config. A missing config file is not
// an error; a malformed one is.
func LoadConfig(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("tilegl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("tilegl")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if len(c.Camera.Position) != 3 {
		return fmt.Errorf("camera.position needs 3 components, got %d", len(c.Camera.Position))
	}
	if (c.Assets.LitVertShader == "") != (c.Assets.LitFragShader == "") {
		return fmt.Errorf("assets.lit_vert_shader and assets.lit_frag_shader must be set together")
	}
	if c.World.RayDistance <= 0 {
		return fmt.Errorf("world.ray_distance must be positive, got %v", c.World.RayDistance)
	}
	return nil
}
