package fingerprint

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// PrecomputeFileHashes hashes every path in paths concurrently using a
// bounded dynamic worker pool. It touches nothing but the filesystem: no
// registry, no dirty set, no DDC state, so running it ahead of a batch
// import is safe even though Manager's own public methods are
// single-threaded.
//
// Returns a map from path to its HashFileContents digest.
func PrecomputeFileHashes(paths []string) map[string]string {
	results := make(map[string]string, len(paths))
	if len(paths) == 0 {
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := max(runtime.NumCPU()-1, 1)
	pool := worker.NewDynamicWorkerPool(workers, len(paths), time.Second)

	for i, p := range paths {
		wg.Add(1)
		path := p
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				hash := HashFileContents(path)
				mu.Lock()
				results[path] = hash
				mu.Unlock()
				return nil, nil
			},
		})
	}

	wg.Wait()
	return results
}
