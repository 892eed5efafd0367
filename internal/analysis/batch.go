package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one query in a batch. Exactly one of Result and
// Err is set.
type Outcome struct {
	Query  Query
	Result *Result
	Err    error
}

// Batch analyzes queries with at most limit calls in flight. Outcomes keep the
// order of queries and one failed company does not stop the others. The rate
// limiter still applies to every call.
func (a *Analyzer) Batch(ctx context.Context, queries []Query, limit int) []Outcome {
	if limit <= 0 {
		limit = 1
	}
	outcomes := make([]Outcome, len(queries))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, q := range queries {
		g.Go(func() error {
			res, err := a.Analyze(ctx, q)
			outcomes[i] = Outcome{Query: q, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
