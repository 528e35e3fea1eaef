package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the command line overrides of a Config.
type Flags struct {
	set     *pflag.FlagSet
	path    string
	level   int
	enable  []string
	disable []string
	verbose int
}

// BindFlags registers --config, --level, --enable, --disable and -v on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{set: fs}
	fs.StringVar(&f.path, "config", "", "configuration file (default "+DefaultFile+" when present)")
	fs.IntVar(&f.level, "level", 0, "Java language level")
	fs.StringSliceVar(&f.enable, "enable", nil, "language features to enable")
	fs.StringSliceVar(&f.disable, "disable", nil, "language features to disable")
	fs.CountVarP(&f.verbose, "verbose", "v", "more logging, repeat for debug output")
	return f
}

// Path is the --config value.
func (f *Flags) Path() string {
	return f.path
}

// ApplyFlags overrides c with the flags given on the command line and
// validates the result.
func (c *Config) ApplyFlags(f *Flags) error {
	if f.set.Changed("level") {
		c.Level = f.level
	}
	c.Features.Enable = append(c.Features.Enable, f.enable...)
	c.Features.Disable = append(c.Features.Disable, f.disable...)
	c.Verbosity += f.verbose
	return c.Validate()
}
