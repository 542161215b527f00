// internal/cliutil/cliutil.go
package cliutil

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals so that
// flags may follow file names. '--' ends flag parsing; '--x=y' is one arg.
// Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			posArgs = append(posArgs, argv[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			posArgs = append(posArgs, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if !boolFlags[name] && i+1 < len(argv) {
			flagArgs = append(flagArgs, argv[i+1])
			i++
		}
	}
	return
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands globs among path positionals and hands every
// directory to expandDir (if non-nil) for recursive discovery. Order is
// preserved; glob matches are lexical.
func ExpandPositionals(posArgs []string, expandDir func(string) ([]string, error)) ([]string, error) {
	var out []string
	add := func(p string) error {
		if expandDir != nil {
			if fi, err := os.Stat(p); err == nil && fi.IsDir() {
				files, err := expandDir(p)
				if err != nil {
					return err
				}
				out = append(out, files...)
				return nil
			}
		}
		out = append(out, p)
		return nil
	}
	for _, a := range posArgs {
		if !hasGlobMeta(a) {
			if err := add(a); err != nil {
				return nil, err
			}
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		for _, p := range m {
			if err := add(p); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
