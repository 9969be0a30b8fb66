package scan

import (
	"context"
	"sync"
)

// parallelism bounds the number of files read concurrently.
const parallelism = 16

// File is an inventory entry with the facts parsed from it.
type File struct {
	Entry

	// Facts is nil for directories, when parsing was skipped, or when the
	// file could not be read.
	Facts *Facts

	// Err records why a file could not be read. Such files stay in the
	// inventory without facts.
	Err error
}

// Scan walks root and parses every file. Files are returned in walk order.
// Read failures are recorded per file in [File.Err] and never fail the scan.
func Scan(ctx context.Context, root string, opts Options) ([]File, error) {
	entries, err := Walk(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	files := make([]File, len(entries))
	for i, e := range entries {
		files[i].Entry = e
	}
	if opts.SkipParse {
		return files, nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallelism)

	for i := range files {
		if files[i].IsDir {
			continue
		}
		wg.Add(1)
		go func(f *File) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			if ctx.Err() != nil {
				return
			}
			f.Facts, f.Err = ParseFile(f.AbsPath)
		}(&files[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
