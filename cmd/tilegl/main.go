// Command tilegl runs the OpenGL demos: hello, color, tester and world.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tilegl/core"
	"tilegl/demo"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "tilegl",
		Short:         "OpenGL tutorial demos and a walkable tile world",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default ./tilegl.yaml)")
	flags.String("assets", "assets", "asset directory")
	flags.Bool("debug", false, "enable debug logging")
	flags.Int("width", 1280, "window width")
	flags.Int("height", 720, "window height")
	flags.Bool("fullscreen", false, "open on the primary monitor")
	mustBind(v, map[string]string{
		"assets.dir":        "assets",
		"window.width":      "width",
		"window.height":     "height",
		"window.fullscreen": "fullscreen",
	}, flags.Lookup)

	for _, name := range demo.Names() {
		root.AddCommand(newDemoCmd(v, name))
	}

	worldCmd := findCmd(root, "world")
	worldCmd.Flags().Bool("dig", false, "clear the tile a ray cast hits")
	worldCmd.Flags().Float32("ray", 5, "ray cast distance")
	mustBind(v, map[string]string{
		"world.dig":          "dig",
		"world.ray_distance": "ray",
	}, worldCmd.Flags().Lookup)

	return root
}

var demoShort = map[string]string{
	"hello":  "Textured quad drawn with an element buffer",
	"color":  "Ten lit containers with point lights and a flashlight",
	"tester": "Containers and loaded models under mixed lighting",
	"world":  "Walk the tile map, cast rays, toggle the flashlight",
}

func newDemoCmd(v *viper.Viper, name string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: demoShort[name],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := core.LoadConfig(v)
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = "debug"
			}
			core.SetLogLevel(level)
			log := core.NewLogger(os.Stderr)
			if used := v.ConfigFileUsed(); used != "" {
				log.Debug("config loaded", "file", used)
			}

			d, err := demo.New(name)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return demo.Run(ctx, cfg, log, d)
		},
	}
}

func findCmd(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	panic("missing command " + name)
}

// mustBind ties config keys to the flags returned by lookup. Unknown flags
// are programming errors.
func mustBind(v *viper.Viper, keys map[string]string, lookup func(string) *pflag.Flag) {
	for key, name := range keys {
		if err := v.BindPFlag(key, lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s to --%s: %v", key, name, err))
		}
	}
}
