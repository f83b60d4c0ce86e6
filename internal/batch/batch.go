// Package batch extracts the structure of every source file under a directory.
package batch

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/agusespa/classweave/internal/discovery"
	"github.com/agusespa/classweave/internal/source"
	"github.com/agusespa/classweave/internal/structure"
	"github.com/agusespa/classweave/internal/syntax"
	"github.com/agusespa/classweave/internal/types"
)

// Options configures a batch extraction.
type Options struct {
	Discovery discovery.Options
	// Workers bounds concurrent extractions. Values below 1 mean sequential.
	Workers int
	// Logger receives per-file warnings. Nil uses the standard logger.
	Logger *log.Logger
	// OnDiscovered is called once with the number of files to process.
	OnDiscovered func(total int)
	// OnFile is called after each file, from the worker that processed it.
	OnFile func(result types.FileResult)
}

// ExtractDir extracts every matching file under root. Results follow
// discovery order. A file that cannot be read or parsed gets an entry with
// Error set and does not stop the batch.
func ExtractDir(ctx context.Context, root string, opts Options) ([]types.FileResult, error) {
	if len(opts.Discovery.Extensions) == 0 {
		opts.Discovery.Extensions = syntax.Extensions()
	}

	files, err := discovery.ListSourceFiles(root, opts.Discovery)
	if err != nil {
		return nil, err
	}
	if opts.OnDiscovered != nil {
		opts.OnDiscovered(len(files))
	}

	return ExtractFiles(ctx, files, opts)
}

// ExtractFiles extracts the given files, isolating per-file failures.
func ExtractFiles(ctx context.Context, files []string, opts Options) ([]types.FileResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]types.FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := extractOne(file)
			if res.Failed() {
				logger.Printf("Warning: failed to extract %s: %s", file, res.Error)
			}
			results[i] = res

			if opts.OnFile != nil {
				opts.OnFile(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction interrupted: %w", err)
	}

	return results, nil
}

func extractOne(path string) types.FileResult {
	res := types.FileResult{File: path}

	f, err := source.Read(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.File = f.Path

	fs, err := structure.ExtractFile(f.Path, f.Text)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Structure = fs
	return res
}
