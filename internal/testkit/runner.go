package testkit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Scenario is one independent fixture case: a name for reporting and the
// work to run against a fresh engine instance. Scenarios must not share
// mutable state — each is expected to build its own interner/engine so
// RunScenarios can fan them out concurrently.
type Scenario struct {
	Name string
	Run  func(ctx context.Context) error
}

// ScenarioResult pairs a Scenario's name with the error it returned, if any.
type ScenarioResult struct {
	Name string
	Err  error
}

// RunScenarios runs every scenario concurrently via errgroup, bounded by
// maxConcurrency (0 means unbounded), and returns one result per scenario in
// input order. Scenarios run independently: one failing does not cancel the
// others, since each result is wanted for reporting rather than short-
// circuiting (spec.md §8.2's fixture suite wants a full pass/fail report,
// not a fail-fast run).
//
// This harness is strictly test/fixture-only: a single Check invocation
// itself runs on one goroutine end to end (spec.md §5's single-logical-
// thread guarantee) and must never reach for errgroup internally.
func RunScenarios(ctx context.Context, maxConcurrency int, scenarios []Scenario) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			results[i] = ScenarioResult{Name: sc.Name, Err: runIsolated(gctx, sc)}
			return nil
		})
	}
	_ = g.Wait() // per-scenario errors are captured in results, never propagated
	return results
}

func runIsolated(ctx context.Context, sc Scenario) error {
	if sc.Run == nil {
		return nil
	}
	return sc.Run(ctx)
}
