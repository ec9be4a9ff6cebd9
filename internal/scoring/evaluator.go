package scoring

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/signals"
)

// signalParallelism bounds concurrent signal calls per game. Together with
// the batch worker count this caps total in-flight upstream requests.
const signalParallelism = 4

// Evaluator runs every enabled signal against a game and merges the
// outcomes into one Evaluation. Signal failures and panics never escape:
// they become recorded degradations on the affected game only.
type Evaluator struct {
	signals []signals.Signal
	weights WeightTable
	timeout time.Duration
	log     *logger.Logger
}

func NewEvaluator(reg *signals.Registry, weights WeightTable, timeout time.Duration, log *logger.Logger) *Evaluator {
	return &Evaluator{
		signals: reg.Signals(),
		weights: weights,
		timeout: timeout,
		log:     log,
	}
}

// Evaluate scores one game with all signals running concurrently, bounded
// by signalParallelism, each under its own deadline.
func (e *Evaluator) Evaluate(ctx context.Context, game *contracts.Game, sc *signals.Context) contracts.Evaluation {
	outcomes := make([]contracts.SignalOutcome, len(e.signals))

	sem := make(chan struct{}, signalParallelism)
	var wg sync.WaitGroup

	for i, sig := range e.signals {
		wg.Add(1)
		go func(i int, sig signals.Signal) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = e.invoke(ctx, sig, game, sc)
		}(i, sig)
	}
	wg.Wait()

	return e.merge(game, outcomes)
}

// invoke runs one signal under its deadline, converting panics to failures.
func (e *Evaluator) invoke(ctx context.Context, sig signals.Signal, game *contracts.Game, sc *signals.Context) (out contracts.SignalOutcome) {
	out.Signal = sig.Name()
	start := time.Now()

	defer func() {
		out.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	sctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out.Result, out.Err = sig.Evaluate(sctx, game, sc)
	return out
}

// merge folds the per-signal outcomes into the game's evaluation. Outcomes
// are visited in registry order so the failure list is deterministic; the
// aggregate itself is order-independent since the registry guarantees
// disjoint score keys.
func (e *Evaluator) merge(game *contracts.Game, outcomes []contracts.SignalOutcome) contracts.Evaluation {
	ev := contracts.Evaluation{
		Game:   *game,
		Scores: make(map[string]contracts.Score),
	}

	tagSet := make(map[string]struct{})

	for _, out := range outcomes {
		if out.Failed() {
			ev.Failures = append(ev.Failures, out.FailureReason())
			e.log.WithError(out.Err).WithFields(map[string]interface{}{
				"signal":  out.Signal,
				"game":    game.Name,
				"elapsed": out.Elapsed.String(),
			}).Warn("signal failed, degrading game score")
			continue
		}

		for _, s := range out.Result.Scores {
			ev.Scores[s.Key] = s
			if s.Contributes {
				ev.Aggregate += s.Value * e.weights.Multiplier(s.Key)
			}
		}
		for _, tag := range out.Result.Tags {
			tagSet[tag] = struct{}{}
		}
	}

	ev.Tags = make([]string, 0, len(tagSet))
	for tag := range tagSet {
		ev.Tags = append(ev.Tags, tag)
	}
	sort.Strings(ev.Tags)

	return ev
}
