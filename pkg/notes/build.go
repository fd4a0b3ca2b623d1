package notes

import (
	"context"
	"fmt"
	"os"

	"notegraph/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Builder runs the full discovery → parse → assemble pipeline for one
// corpus root. Per-file parsing is embarrassingly parallel; assembly is a
// single-threaded reduction that starts only after every parse has
// completed or failed.
type Builder struct {
	root          string
	parallelFiles int
}

// NewBuilderParams defines the configuration for creating a Builder.
//
// Root is the corpus root directory. ParallelFiles controls how many files
// are parsed concurrently.
type NewBuilderParams struct {
	Root          string
	ParallelFiles int
}

// NewBuilder creates a Builder for the given corpus root.
func NewBuilder(params NewBuilderParams) *Builder {
	parallel := params.ParallelFiles
	if parallel <= 0 {
		parallel = 8
	}
	return &Builder{
		root:          params.Root,
		parallelFiles: parallel,
	}
}

// Build scans the corpus and returns the assembled graph. Discovery failure
// is fatal to the build; a single unreadable file only degrades coverage:
// it is logged and contributes an empty parse result.
func (b *Builder) Build(ctx context.Context) (*Graph, error) {
	files, err := Discover(b.root)
	if err != nil {
		return nil, fmt.Errorf("failed to discover corpus files: %w", err)
	}

	logger.Info("[Notes] Building graph", "total_files", len(files), "root", b.root)

	results := make([]*fileResult, len(files))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.parallelFiles)
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
				rel, err := RelPath(b.root, file)
				if err != nil {
					return fmt.Errorf("failed to relativize %s: %w", file, err)
				}
				content, err := os.ReadFile(file)
				if err != nil {
					logger.Warn("[Notes] Skipping unreadable file", "file", rel, "err", err)
					results[i] = emptyResult(rel)
					return nil
				}
				results[i] = ParseFile(rel, content)
				return nil
			}
		})
	}

	// Join barrier: assembly must not start before all parses are done.
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to parse corpus files: %w", err)
	}

	graph := Assemble(results)

	logger.Info("[Notes] Graph built", "nodes", len(graph.Nodes), "links", len(graph.Links))

	return graph, nil
}
