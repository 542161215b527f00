// internal/clibase/common.go
package clibase

import (
	"flag"
)

// Common holds the run-control flags shared by every promoscan command.
type Common struct {
	Config     string
	Progress   bool
	Profile    string // "", cpu, mem or block
	ProfileDir string
	Quiet      bool
	Verbose    bool
	Examples   bool
	Version    bool
}

// ProfileModes are the accepted --profile values.
var ProfileModes = []string{"cpu", "mem", "block"}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.Config, "config", "", "config file (toml|yaml|json)")
	fs.BoolVar(&c.Progress, "progress", false, "show a job progress bar on stderr [false]")
	fs.StringVar(&c.Profile, "profile", "", "write a profile: cpu | mem | block")
	fs.StringVar(&c.ProfileDir, "profile-dir", ".", "directory for profile output [.]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log warnings and errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "log debug detail (timings, workers) [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Explicit returns the long names of flags given on the command line.
// aliases maps short names to their long name.
func Explicit(fs *flag.FlagSet, aliases map[string]string) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		set[name] = true
	})
	return set
}
