package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters shared by the front-ends.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	Width      int
	Height     int
	ConfigPath string
	Watch      bool
	DumpConfig bool
	HUDWidth   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sandfall", Scale: 8, TPS: 60, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the first session (0 keeps the config seed)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells (0 keeps the config width)")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells (0 keeps the config height)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML tuning file")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload the tuning file when it changes")
	fs.BoolVar(&c.DumpConfig, "dump-config", c.DumpConfig, "print the effective tuning file and exit")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
}

// Options converts the flags into the string map sim factories accept.
// Zero values are left out so factory defaults apply.
func (c *Config) Options() map[string]string {
	opts := map[string]string{}
	if c.TPS > 0 {
		opts["tps"] = strconv.Itoa(c.TPS)
	}
	if c.Seed != 0 {
		opts["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if c.Width > 0 {
		opts["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		opts["h"] = strconv.Itoa(c.Height)
	}
	return opts
}
