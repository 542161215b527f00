package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestApplyFromTOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
strategy = "by-file"
threads = 6
min-score = 55.5
verify = true
genomes = ["Ecoli", "Salmonella"]
`)
	src, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var (
		strategy = "by-index"
		threads  = 0
		minScore = 60.0
		verify   bool
		genomes  []string
		output   = "text"
	)
	applied, err := src.Apply([]Binding{
		{"strategy", &strategy},
		{"threads", &threads},
		{"min-score", &minScore},
		{"verify", &verify},
		{"genomes", &genomes},
		{"output", &output},
	}, map[string]bool{"threads": true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if strategy != "by-file" || minScore != 55.5 || !verify || len(genomes) != 2 {
		t.Fatalf("config values not applied: %s %v %v %v", strategy, minScore, verify, genomes)
	}
	if threads != 0 {
		t.Fatalf("explicit flag must win over config, got threads=%d", threads)
	}
	if output != "text" {
		t.Fatalf("unset keys must keep their defaults, got %q", output)
	}
	if len(applied) != 4 {
		t.Fatalf("applied %v", applied)
	}
	if src.File() != path {
		t.Fatalf("File() = %q", src.File())
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("PROMOSCAN_MIN_CONFIDENCE", "0.8")
	src, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	conf := 0.7
	if _, err := src.Apply([]Binding{{"min-confidence", &conf}}, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if conf != 0.8 {
		t.Fatalf("env value not applied, got %v", conf)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing config file should fail")
	}
	bad := writeFile(t, "bad.toml", "threads = = 3\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("malformed config should fail")
	}
	src, _ := Load("")
	var ch chan int
	t.Setenv("PROMOSCAN_ODD", "1")
	if _, err := src.Apply([]Binding{{"odd", &ch}}, nil); err == nil {
		t.Fatal("unsupported destination should fail")
	}
}
