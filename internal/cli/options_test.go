package cli

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promoscan/internal/clibase"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "--references", "genes.list", "--genomes", "Ecoli")
	if o.Strategy != "by-index" || o.Upstream != 250 || o.MinScore != 60 || o.GapOpen != 10 || o.GapExtend != 0.5 || o.MinConfidence != 0.7 {
		t.Errorf("bad defaults %+v", o)
	}
	if o.Output != "text" || o.Threads != 0 || o.Verify {
		t.Errorf("bad defaults %+v", o)
	}
}

func TestAliasesAndPositionals(t *testing.T) {
	o := mustParse(t, "a.gb", "-r", "genes.list", "-g", "Ecoli", "-s", "BY-FILE", "-t", "4", "-o", "json", "b.gb")
	if o.References != "genes.list" || o.Strategy != "by-file" || o.Threads != 4 || o.Output != "json" {
		t.Errorf("bad alias parse %+v", o)
	}
	if len(o.Inputs) != 3 || o.Inputs[0] != "Ecoli" || o.Inputs[1] != "a.gb" || o.Inputs[2] != "b.gb" {
		t.Errorf("inputs %v", o.Inputs)
	}
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{"--genomes", "Ecoli"},
		{"--references", "genes.list"},
		{"-r", "g", "-g", "x", "--strategy", "round-robin"},
		{"-r", "g", "-g", "x", "--threads", "-1"},
		{"-r", "g", "-g", "x", "--upstream", "0"},
		{"-r", "g", "-g", "x", "--min-confidence", "1.5"},
		{"-r", "g", "-g", "x", "--output", "fasta"},
		{"-r", "g", "-g", "x", "--profile", "heap"},
		{"-r", "g", "-g", "x", "--baseline", "b.toml", "--write-baseline", "b.toml"},
	}
	for _, args := range cases {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestHelpVersionExamples(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("want ErrHelp, got %v", err)
	}
	o, err := ParseArgs(newFS(), []string{"--version"})
	if err != nil || !o.Version {
		t.Errorf("version should short-circuit validation: %v", err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, clibase.ErrPrintedAndExitOK) {
		t.Errorf("want ErrPrintedAndExitOK, got %v", err)
	}
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "run.yaml")
	body := "references: genes.list\ngenomes: [Ecoli]\nstrategy: by-pair\nthreads: 3\nmin-score: 42\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	o := mustParse(t, "--config", cfg, "-t", "9")
	if o.References != "genes.list" || o.Strategy != "by-pair" || o.MinScore != 42 || len(o.Inputs) != 1 {
		t.Errorf("config not applied: %+v", o)
	}
	if o.Threads != 9 {
		t.Errorf("explicit -t must win over config, got %d", o.Threads)
	}
	if len(o.FromConfig) != 4 {
		t.Errorf("FromConfig %v", o.FromConfig)
	}
}

func TestEnvironmentFillsUnsetFlags(t *testing.T) {
	t.Setenv("PROMOSCAN_STRATEGY", "sequential")
	o := mustParse(t, "-r", "g", "-g", "x")
	if o.Strategy != "sequential" {
		t.Errorf("env strategy not applied: %q", o.Strategy)
	}
	o = mustParse(t, "-r", "g", "-g", "x", "--strategy", "by-file")
	if o.Strategy != "by-file" {
		t.Errorf("flag must win over env: %q", o.Strategy)
	}
}

func TestUsageMentionsEveryStrategy(t *testing.T) {
	fs := NewFlagSet("promoscan")
	_, _ = ParseArgs(fs, []string{"-h"})
	var b bytes.Buffer
	fs.SetOutput(&b)
	fs.Usage()
	for _, want := range []string{"sequential|by-file|by-pair|by-index", "--references", "--baseline", "--profile"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("usage missing %q:\n%s", want, b.String())
		}
	}
}
