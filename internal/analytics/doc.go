// Package analytics implements the sales aggregation engine: a batch
// transform from raw order headers, order lines and reference dictionaries
// into a multi-dimensional analytics report.
//
// # Core Components
//
// The engine runs a fixed sequence of stages over the same immutable input:
//
//  1. Reference resolution: id -> display name lookup with ordered fallbacks
//  2. Per-entity folds: customer, product and sales rep statistics
//  3. Temporal bucketing: daily / ISO-week / monthly series with growth
//  4. Cross-sell pairs: co-occurrence of product pairs inside orders
//  5. Cross-dimension joins: customer x product, rep x product, product x customer
//  6. Ranking and concentration: top-N leaderboards and Pareto shares
//  7. RFM segmentation: recency/frequency/value customer cohorts
//  8. Summary: global KPIs, growth rate, churn estimate, lifetime value
//
// # Architecture
//
// The package separates concerns per file:
//
//   - types.go: report structures returned to consumers
//   - dataset.go: input bundle and the normalized internal index
//   - resolver.go: reference name resolution
//   - customers.go, products.go, reps.go: per-entity folds
//   - temporal.go: day/week/month bucketing and growth
//   - pairs.go: cross-sell pair analysis
//   - joins.go: nested cross-dimension groupings
//   - ranking.go: leaderboards and concentration metrics
//   - rfm.go: customer segmentation
//   - summary.go: global metrics and team performance
//   - engine.go: stage orchestration, progress and cancellation
//
// # Usage Example
//
//	engine := analytics.NewEngine(analytics.DefaultOptions(), slog.Default())
//	engine.OnProgress(func(percent int, phase string) {
//	    slog.Info("analysis progress", "percent", percent, "phase", phase)
//	})
//
//	report, err := engine.Analyze(ctx, dataset)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The engine holds no state between calls: a report is a pure function of
// the dataset and the reference date, so identical inputs produce identical
// output.
package analytics
