// Package progress draws a self-overwriting progress bar on stderr for long
// computations split across goroutines.
//
// An Indicator owns a sharded counter and, unless quiet mode is on, one
// reporter goroutine that polls the counter and redraws the bar until the
// target is reached. Workers only bump their own counter lane:
//
//	ind := progress.New(uint64(len(items)), "Indexing")
//	var wg sync.WaitGroup
//	for lane := range workers {
//	    wg.Add(1)
//	    go func() {
//	        defer wg.Done()
//	        for _, it := range shard(items, lane, workers) {
//	            process(it)
//	            ind.AdvanceLane(lane)
//	        }
//	    }()
//	}
//	wg.Wait()
//	if err := ind.Close(); err != nil {
//	    return err
//	}
//
// Close waits for the reporter to draw the final 100% frame and line break.
// There is no cancellation: Close blocks until the counter reaches the total,
// so callers that abandon work early must never call it.
//
// Setting SMT_QUIET to "true", "TRUE" or a positive integer suppresses the
// bar; the environment is consulted once, when the Indicator is built.
package progress
