package scoring

import (
	"context"
	"sync"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/signals"
)

// EvaluateAll scores every candidate with a fixed pool of workers. Results
// come back indexed by candidate position, preserving the listing order that
// the ranker's stable sort uses to break ties.
func (e *Evaluator) EvaluateAll(ctx context.Context, games []contracts.Game, sc *signals.Context, workers int) []contracts.Evaluation {
	if workers < 1 {
		workers = 1
	}
	if workers > len(games) {
		workers = len(games)
	}

	evals := make([]contracts.Evaluation, len(games))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				evals[i] = e.Evaluate(ctx, &games[i], sc)
			}
		}()
	}

	for i := range games {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Drain nothing further; workers exit once jobs closes.
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	return evals
}
