package pipeline

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/source"
)

// LoadResult holds the output of loading a set of expense files.
type LoadResult struct {
	Records     []expense.Record
	Files       []source.ParseResult
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	RowErrors   int
	LegacyFiles int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load parses expense files with a bounded worker pool. Records come back in
// argument order regardless of which worker finished first.
func Load(paths []string, defaultKind expense.Kind, progressFn ProgressFunc) *LoadResult {
	result := &LoadResult{TotalFiles: len(paths)}
	if len(paths) == 0 {
		return result
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	work := make(chan int, len(paths))
	results := make([]source.ParseResult, len(paths))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range paths {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(paths[idx], defaultKind)
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(paths))
				}
			}
		}()
	}

	wg.Wait()

	result.Files = results
	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.RowErrors += len(pr.Rejected)
		if pr.Shape == source.ShapeLegacy {
			result.LegacyFiles++
		}
		result.Records = append(result.Records, pr.Records...)
	}

	return result
}
