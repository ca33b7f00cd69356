package cpu

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Program is one .hex image to run in a batch.
type Program struct {
	Name  string
	Words []uint32
}

// BatchResult is one program's outcome from RunBatch.
type BatchResult struct {
	Name      string
	Regs      [32]uint32
	StepCount int
}

// RunBatch executes each program to completion on a small worker pool (sized
// to runtime.NumCPU unless workers > 0 overrides it), the same bounded
// fan-out shape the teacher's search workers use, adapted here to run
// independent CPU instances instead of independent search shards. Results
// are returned in the same order as programs; a shared atomic counter tracks
// total completions for progress reporting.
func RunBatch(programs []Program, workers, maxSteps int) ([]BatchResult, int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(programs) {
		workers = len(programs)
	}
	if workers == 0 {
		return nil, 0
	}

	results := make([]BatchResult, len(programs))
	var completed int64
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := programs[i]
				machine := NewCPU(&InstrMemory{Words: p.Words}, NewDataMemory())
				machine.Run(maxSteps)
				results[i] = BatchResult{
					Name:      p.Name,
					Regs:      machine.Regs.regs,
					StepCount: machine.StepCount,
				}
				atomic.AddInt64(&completed, 1)
			}
		}()
	}

	for i := range programs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, int(completed)
}
