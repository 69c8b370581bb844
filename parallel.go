package mindnet

import "golang.org/x/sync/errgroup"

// forEachPair invokes fn exactly once for every unordered index pair (i, j)
// with i < j. Pair computations only touch read-only per-region state plus
// cells they own, so they dispatch as independent units of work; workers <= 1
// falls back to the sequential baseline with identical results.
func forEachPair(n, workers int, fn func(i, j int) error) error {
	if workers <= 1 || n < 3 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := fn(i, j); err != nil {
					return err
				}
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			g.Go(func() error { return fn(i, j) })
		}
	}
	return g.Wait()
}
