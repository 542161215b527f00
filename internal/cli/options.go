// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"promoscan/internal/clibase"
	"promoscan/internal/cliutil"
	"promoscan/internal/config"
	"promoscan/internal/homology"
	"promoscan/internal/partition"
	"promoscan/internal/promoter"
	"promoscan/internal/upstream"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	References string
	Inputs     []string // --genomes values then positionals; dirs are walked later

	// Analysis
	Strategy      string
	Upstream      int
	MinScore      float64
	GapOpen       float64
	GapExtend     float64
	MinConfidence float64

	// Performance
	Threads int // 0 = all CPUs

	// Output and checks
	Output        string
	Baseline      string
	WriteBaseline string
	Verify        bool

	clibase.Common

	// Keys taken from the config file or environment, for logging.
	FromConfig []string
}

// Formats accepted by --output.
var Formats = []string{"text", "json", "jsonl"}

var aliases = map[string]string{
	"r": "references",
	"g": "genomes",
	"s": "strategy",
	"t": "threads",
	"o": "output",
	"q": "quiet",
	"v": "version",
}

// NewFlagSet returns a clean FlagSet with ContinueOnError and promoscan usage.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n  %s --references genes.list --genomes DIR [options] [files...]\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -r, --references file       Reference list: name line, peptide line, ... [*]")
		fmt.Fprintln(out, "  -g, --genomes path          GenBank directory (walked recursively) or file (repeatable) [*]")

		fmt.Fprintln(out, "\nAnalysis:")
		fmt.Fprintf(out, "      --upstream int          Max upstream window (bp) [%s]\n", def("upstream"))
		fmt.Fprintf(out, "      --min-score float       Homology threshold (score >= min) [%s]\n", def("min-score"))
		fmt.Fprintf(out, "      --gap-open float        Gap open penalty [%s]\n", def("gap-open"))
		fmt.Fprintf(out, "      --gap-extend float      Gap extension penalty [%s]\n", def("gap-extend"))
		fmt.Fprintf(out, "      --min-confidence float  Promoter match threshold [%s]\n", def("min-confidence"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -s, --strategy string       %s [%s]\n", partition.Names(), def("strategy"))
		fmt.Fprintf(out, "  -t, --threads int           Workers (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         %s [%s]\n", strings.Join(Formats, " | "), def("output"))
		fmt.Fprintln(out, "      --baseline file         Compare against a known-good TOML baseline (exit 1 on mismatch)")
		fmt.Fprintln(out, "      --write-baseline file   Save this run as a TOML baseline")
		fmt.Fprintf(out, "      --verify                Cross-check every strategy against sequential [%s]\n", def("verify"))
	})
	return fs
}

// PrintExamples writes the --examples text.
func PrintExamples(out io.Writer, name string) {
	clibase.PrintExamples(out, name, func(w io.Writer) {
		fmt.Fprintf(w, "  %s -r referenceGenes.list -g Ecoli\n", name)
		fmt.Fprintf(w, "  %s -r referenceGenes.list -g Ecoli -s by-file -t 8 -o json\n", name)
		fmt.Fprintf(w, "  %s -r referenceGenes.list -g Ecoli --write-baseline known.toml\n", name)
		fmt.Fprintf(w, "  %s -r referenceGenes.list -g Ecoli --baseline known.toml --verify\n", name)
		fmt.Fprintf(w, "  %s -r referenceGenes.list data/*.gbk.gz\n", name)
	})
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

// ParseArgs registers and parses all flags, layers in the config file and
// environment for flags not given explicitly, and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var genomes stringSlice

	fs.StringVar(&opt.References, "references", "", "reference gene list [*]")
	fs.StringVar(&opt.References, "r", "", "alias of --references")
	fs.Var(&genomes, "genomes", "GenBank directory or file (repeatable) [*]")
	fs.Var(&genomes, "g", "alias of --genomes")

	fs.IntVar(&opt.Upstream, "upstream", upstream.DefaultDistance, "max upstream window")
	fs.Float64Var(&opt.MinScore, "min-score", homology.DefaultMinScore, "homology threshold")
	fs.Float64Var(&opt.GapOpen, "gap-open", homology.DefaultGapOpen, "gap open penalty")
	fs.Float64Var(&opt.GapExtend, "gap-extend", homology.DefaultGapExtend, "gap extension penalty")
	fs.Float64Var(&opt.MinConfidence, "min-confidence", promoter.DefaultMinConfidence, "promoter match threshold")

	fs.StringVar(&opt.Strategy, "strategy", string(partition.ByIndex), "partitioning strategy")
	fs.StringVar(&opt.Strategy, "s", string(partition.ByIndex), "alias of --strategy")
	fs.IntVar(&opt.Threads, "threads", 0, "worker threads (0 = all CPUs)")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")

	fs.StringVar(&opt.Output, "output", "text", "output format")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.StringVar(&opt.Baseline, "baseline", "", "known-good TOML baseline")
	fs.StringVar(&opt.WriteBaseline, "write-baseline", "", "save run as TOML baseline")
	fs.BoolVar(&opt.Verify, "verify", false, "cross-check strategies")

	clibase.Register(fs, &opt.Common)
	fs.BoolVar(&help, "h", false, "show this help message")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}

	src, err := config.Load(opt.Config)
	if err != nil {
		return opt, err
	}
	opt.FromConfig, err = src.Apply(bindings(&opt, (*[]string)(&genomes)), clibase.Explicit(fs, aliases))
	if err != nil {
		return opt, err
	}
	opt.Inputs = append(append([]string(nil), genomes...), posArgs...)
	return opt, Validate(&opt)
}

func bindings(o *Options, genomes *[]string) []config.Binding {
	return []config.Binding{
		{Key: "references", Dst: &o.References},
		{Key: "genomes", Dst: genomes},
		{Key: "strategy", Dst: &o.Strategy},
		{Key: "threads", Dst: &o.Threads},
		{Key: "output", Dst: &o.Output},
		{Key: "baseline", Dst: &o.Baseline},
		{Key: "write-baseline", Dst: &o.WriteBaseline},
		{Key: "verify", Dst: &o.Verify},
		{Key: "upstream", Dst: &o.Upstream},
		{Key: "min-score", Dst: &o.MinScore},
		{Key: "gap-open", Dst: &o.GapOpen},
		{Key: "gap-extend", Dst: &o.GapExtend},
		{Key: "min-confidence", Dst: &o.MinConfidence},
		{Key: "progress", Dst: &o.Progress},
		{Key: "profile", Dst: &o.Profile},
		{Key: "profile-dir", Dst: &o.ProfileDir},
		{Key: "quiet", Dst: &o.Quiet},
		{Key: "verbose", Dst: &o.Verbose},
	}
}

// Validate applies CLI invariants. It normalises Strategy and Output.
func Validate(o *Options) error {
	if o.References == "" {
		return errors.New("--references is required")
	}
	if len(o.Inputs) == 0 {
		return errors.New("provide --genomes or at least one GenBank file")
	}
	st, err := partition.Parse(o.Strategy)
	if err != nil {
		return fmt.Errorf("invalid --strategy: %w", err)
	}
	o.Strategy = string(st)
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.Upstream < 1 {
		return errors.New("--upstream must be ≥ 1")
	}
	if o.GapOpen < 0 || o.GapExtend < 0 {
		return errors.New("gap penalties must be ≥ 0")
	}
	if o.MinConfidence <= 0 || o.MinConfidence > 1 {
		return errors.New("--min-confidence must be in (0,1]")
	}
	o.Output = strings.ToLower(o.Output)
	if !contains(Formats, o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Profile != "" && !contains(clibase.ProfileModes, o.Profile) {
		return fmt.Errorf("invalid --profile %q (want %s)", o.Profile, strings.Join(clibase.ProfileModes, " | "))
	}
	if o.Baseline != "" && o.Baseline == o.WriteBaseline {
		return errors.New("--baseline and --write-baseline must be different files")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
