// internal/genbank/corpus.go
package genbank

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"

	"promoscan/internal/seq"
)

// Discover lists every non-directory entry below dir, recursively, in
// lexical order. No extension filtering is applied.
func Discover(dir string) ([]string, error) {
	var list []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		list = append(list, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Result is the outcome of ingesting one file: exactly one of Record or Err
// is meaningful. Failed results never enter the job space.
type Result struct {
	Path   string
	Record seq.GenomeRecord
	Err    error
}

// OK reports whether the file was ingested.
func (r Result) OK() bool { return r.Err == nil }

// Ingest parses paths with up to threads concurrent readers and returns one
// Result per path, in input order. Files not yet started when ctx is done
// carry ctx.Err().
func Ingest(ctx context.Context, paths []string, threads int) []Result {
	if threads < 1 {
		threads = 1
	}
	out := make([]Result, len(paths))
	for i, p := range paths {
		out[i].Path = p
	}

	jobs := make(chan int, threads*2)
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					out[i].Err = err
					continue
				}
				out[i].Record, out[i].Err = ParseFile(ctx, paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// Records keeps the successfully ingested records, preserving order.
func Records(results []Result) []seq.GenomeRecord {
	recs := make([]seq.GenomeRecord, 0, len(results))
	for _, r := range results {
		if r.OK() {
			recs = append(recs, r.Record)
		}
	}
	return recs
}
