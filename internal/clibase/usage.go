// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"promoscan/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections between the header and the shared
// run-control block.
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s: sigma70 promoter consensus for genes homologous to a reference set\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nRun control:")
		fmt.Fprintln(out, "      --config file           Config file; PROMOSCAN_* env vars also apply (flags win)")
		fmt.Fprintf(out, "      --progress              Show a job progress bar on stderr [%s]\n", def("progress"))
		fmt.Fprintln(out, "      --profile string        Write a profile: cpu | mem | block")
		fmt.Fprintf(out, "      --profile-dir dir       Directory for profile output [%s]\n", def("profile-dir"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Only log warnings and errors [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Log debug detail (timings, workers) [%s]\n", def("verbose"))
		fmt.Fprintln(out, "      --examples              Print usage examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
