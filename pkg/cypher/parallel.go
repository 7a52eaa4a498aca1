package cypher

import (
	"runtime"
	"sync"
)

// ParallelConfig controls batch correction behavior.
type ParallelConfig struct {
	// MaxWorkers is the maximum number of goroutines to use.
	// Default: runtime.NumCPU()
	MaxWorkers int

	// MinBatchSize is the minimum number of queries before parallelizing.
	// Below this threshold, sequential execution is used (overhead not
	// worth it). Default: 64
	MinBatchSize int
}

// DefaultParallelConfig returns the default batch configuration.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		MaxWorkers:   runtime.NumCPU(),
		MinBatchSize: 64,
	}
}

// FixAll corrects a batch of queries against the Fixer's schema and returns
// the results in input order. Each entry follows the FixDirections contract:
// corrected text, or "" when that query cannot be made to agree with the
// schema. One bad query never affects its neighbors.
func (f *Fixer) FixAll(queries []string) []string {
	return f.FixAllWith(queries, DefaultParallelConfig())
}

// FixAllWith is FixAll with explicit batch configuration. A Fixer is
// immutable, so workers share it without locking.
func (f *Fixer) FixAllWith(queries []string, config ParallelConfig) []string {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.NumCPU()
	}
	if config.MinBatchSize <= 0 {
		config.MinBatchSize = 64
	}

	out := make([]string, len(queries))
	if len(queries) < config.MinBatchSize || config.MaxWorkers == 1 {
		// Sequential fallback for small batches.
		for i, q := range queries {
			out[i] = f.fixOrEmpty(q)
		}
		return out
	}

	numWorkers := config.MaxWorkers
	if numWorkers > len(queries) {
		numWorkers = len(queries)
	}
	chunkSize := (len(queries) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		if start >= len(queries) {
			break
		}
		end := start + chunkSize
		if end > len(queries) {
			end = len(queries)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = f.fixOrEmpty(queries[i])
			}
		}(start, end)
	}
	wg.Wait()

	return out
}

func (f *Fixer) fixOrEmpty(query string) string {
	res, err := f.Fix(query)
	if err != nil {
		return ""
	}
	return res.Query
}
