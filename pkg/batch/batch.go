// Package batch runs the synthesize-and-extract pipeline over a set of
// topology documents on a bounded worker pool. Each document's pipeline is
// independent; results are collected in completion order. Cancellation is
// cooperative: an aborted batch stops dispatching remaining documents while
// in-flight pipelines run to completion.
package batch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/l3aro/go-callgraph-oracle/pkg/oracle"
	"github.com/l3aro/go-callgraph-oracle/pkg/synth"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

// Result is the outcome of one document's pipeline.
type Result struct {
	Doc        string `json:"doc"`
	Model      string `json:"model,omitempty"`
	SourcePath string `json:"source_path,omitempty"`
	OraclePath string `json:"oracle_path,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	Err        error  `json:"-"`
	Error      string `json:"error,omitempty"`
}

// Options configures a batch run.
type Options struct {
	// OutDir receives the generated .c and .oracle files.
	OutDir string
	// Workers bounds pipeline concurrency. Defaults to 4 when zero.
	Workers int
	// EntryDepth is passed through to the synthesizer.
	EntryDepth int
	// ManifestPath overrides the manifest location.
	// Defaults to OutDir/manifest.bin.
	ManifestPath string
}

// DefaultWorkers bounds concurrency when Options.Workers is unset.
const DefaultWorkers = 4

// Runner executes batch pipelines.
type Runner struct {
	opts     Options
	mu       sync.Mutex
	manifest *Manifest
}

// New creates a batch runner.
func New(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.ManifestPath == "" {
		opts.ManifestPath = filepath.Join(opts.OutDir, "manifest.bin")
	}
	return &Runner{opts: opts}
}

// Run processes the given topology documents and returns one result per
// document that was dispatched before ctx was canceled, in completion order.
func (r *Runner) Run(ctx context.Context, docs []string) []Result {
	r.manifest = LoadManifest(r.opts.ManifestPath)

	jobs := make(chan string)
	results := make(chan Result, len(docs))

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				results <- r.process(doc)
			}
		}()
	}

dispatch:
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	var out []Result
	for res := range results {
		out = append(out, res)
	}

	// Best effort: a failed manifest write only costs a future re-run.
	_ = r.manifest.Save(r.opts.ManifestPath)

	return out
}

// process runs the full pipeline for one document: hash, manifest check,
// load, synthesize, extract, write.
func (r *Runner) process(doc string) Result {
	res := Result{Doc: doc}

	hash, err := hashFile(doc)
	if err != nil {
		return res.fail(err)
	}

	r.mu.Lock()
	entry, ok := r.manifest.UpToDate(doc, hash)
	r.mu.Unlock()
	if ok {
		res.SourcePath = entry.SourcePath
		res.OraclePath = entry.OraclePath
		res.Skipped = true
		return res
	}

	model, err := topology.LoadModel(doc)
	if err != nil {
		return res.fail(err)
	}
	res.Model = model.Name

	source, err := synth.Synthesize(model, synth.Options{EntryDepth: r.opts.EntryDepth})
	if err != nil {
		return res.fail(err)
	}

	base := model.Name
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(doc), filepath.Ext(doc))
	}
	res.SourcePath = filepath.Join(r.opts.OutDir, base+".c")
	res.OraclePath = filepath.Join(r.opts.OutDir, base+".oracle")

	if err := writeFile(res.SourcePath, source); err != nil {
		return res.fail(err)
	}
	if err := oracle.Extract(model).WriteFile(res.OraclePath); err != nil {
		return res.fail(err)
	}

	r.mu.Lock()
	r.manifest.Entries[doc] = ManifestEntry{Hash: hash, SourcePath: res.SourcePath, OraclePath: res.OraclePath}
	r.mu.Unlock()

	return res
}

func (res Result) fail(err error) Result {
	res.Err = err
	res.Error = err.Error()
	return res
}
