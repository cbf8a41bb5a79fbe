package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Options configures one engine instance.
type Options struct {
	TopCustomers int
	TopProducts  int
	TopReps      int
	TopPairs     int

	// Concurrency > 1 runs the independent stages on separate goroutines.
	// Output is identical either way.
	Concurrency int
}

// DefaultOptions returns the standard leaderboard sizes.
func DefaultOptions() Options {
	return Options{
		TopCustomers: 10,
		TopProducts:  10,
		TopReps:      10,
		TopPairs:     20,
		Concurrency:  1,
	}
}

// Engine computes analytics reports from sales datasets. It holds no state
// between runs; construct once and reuse, or construct per call.
type Engine struct {
	opts     Options
	logger   *slog.Logger
	tracer   trace.Tracer
	progress ProgressBroadcaster
}

// NewEngine creates an engine. A nil logger falls back to slog.Default.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopCustomers <= 0 {
		opts.TopCustomers = 10
	}
	if opts.TopProducts <= 0 {
		opts.TopProducts = 10
	}
	if opts.TopReps <= 0 {
		opts.TopReps = 10
	}
	if opts.TopPairs <= 0 {
		opts.TopPairs = 20
	}
	return &Engine{
		opts:   opts,
		logger: logger,
		tracer: otel.Tracer("salespulse/analytics"),
	}
}

// SetTracer overrides the tracer used for stage spans.
func (e *Engine) SetTracer(t trace.Tracer) {
	if t != nil {
		e.tracer = t
	}
}

// OnProgress subscribes a listener to stage-boundary progress milestones.
func (e *Engine) OnProgress(fn ProgressFunc) {
	e.progress.Subscribe(fn)
}

// Analyze runs the full aggregation over the dataset and returns the
// composite report. It never fails on malformed data; the only error paths
// are context cancellation, checked between stages so partially aggregated
// entities cannot leak into the result.
func (e *Engine) Analyze(ctx context.Context, ds Dataset) (*Report, error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "analytics.Analyze",
		trace.WithAttributes(
			attribute.Int("orders", len(ds.Orders)),
			attribute.Int("lines", len(ds.Lines)),
		))
	defer span.End()

	e.logger.InfoContext(ctx, "starting sales analysis",
		slog.Int("orders", len(ds.Orders)),
		slog.Int("lines", len(ds.Lines)),
		slog.Int("customers", len(ds.Customers)),
		slog.Int("products", len(ds.Products)),
		slog.Int("reps", len(ds.Reps)),
		slog.Int("concurrency", e.opts.Concurrency))

	// Reference maps must be fully built before any fold starts.
	idx := buildIndex(ds)
	res := NewResolver(ds.Customers, ds.Products, ds.Reps, e.logger)
	e.progress.Emit(5, "resolving references")

	var (
		customerAccs map[string]*customerAcc
		productAccs  map[string]*productAcc
		repAccs      map[string]*repAcc
		temporal     temporalResult
		pairs        []ProductPair
		custProducts []CustomerProductJoin
		repProducts  []RepProductJoin
		prodCusts    []ProductCustomerJoin
	)

	// The folds, the bucketer, the pair analyzer and the joiners read the
	// same immutable index and write disjoint outputs, so they may run in
	// any order or in parallel.
	stages := []struct {
		name string
		run  func()
	}{
		{"fold_customers", func() { customerAccs = foldCustomers(idx) }},
		{"fold_products", func() { productAccs = foldProducts(idx) }},
		{"fold_reps", func() { repAccs = foldReps(idx) }},
		{"temporal_buckets", func() { temporal = bucketTemporal(idx, res) }},
		{"cross_sell_pairs", func() { pairs = analyzePairs(idx, res, e.opts.TopPairs) }},
		{"join_customer_products", func() { custProducts = joinCustomerProducts(idx, res) }},
		{"join_rep_products", func() { repProducts = joinRepProducts(idx, res) }},
		{"join_product_customers", func() { prodCusts = joinProductCustomers(idx, res) }},
	}

	if e.opts.Concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Concurrency)
		for _, st := range stages {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("%s: %w", st.name, err)
				}
				_, sp := e.tracer.Start(gctx, st.name)
				defer sp.End()
				st.run()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, st := range stages {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%s: %w", st.name, err)
			}
			_, sp := e.tracer.Start(ctx, st.name)
			st.run()
			sp.End()
		}
	}

	// Milestones are emitted after the parallel section in a fixed order to
	// keep the percentage monotonic.
	e.progress.Emit(20, "customer analysis")
	e.progress.Emit(32, "product analysis")
	e.progress.Emit(42, "sales rep analysis")
	e.progress.Emit(55, "temporal analysis")
	e.progress.Emit(65, "cross-sell analysis")
	e.progress.Emit(80, "cross-dimension analysis")

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}

	customers := deriveCustomers(customerAccs, res, idx.today)
	products := deriveProducts(productAccs, res, idx.today)
	reps := deriveReps(repAccs, res)

	rankings := buildRankings(customers, products, reps, e.opts)
	concentration := buildConcentration(customers, products)
	e.progress.Emit(88, "ranking and concentration")

	rfm := classifyRFM(customers)
	e.progress.Emit(94, "customer segmentation")

	summary := buildSummary(idx, customers, products, reps, temporal)
	team := buildTeam(summary, reps)

	report := &Report{
		ReferenceDate:    idx.today,
		Customers:        customers,
		Products:         products,
		Reps:             reps,
		Daily:            temporal.daily,
		Weekly:           temporal.weekly,
		Monthly:          temporal.monthly,
		Rankings:         rankings,
		Concentration:    concentration,
		Pairs:            pairs,
		RFM:              rfm,
		CustomerProducts: custProducts,
		RepProducts:      repProducts,
		ProductCustomers: prodCusts,
		Summary:          summary,
		Team:             team,
	}
	e.progress.Emit(100, "summary")

	e.logger.InfoContext(ctx, "sales analysis complete",
		slog.Int("customers", len(customers)),
		slog.Int("products", len(products)),
		slog.Int("reps", len(reps)),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}
