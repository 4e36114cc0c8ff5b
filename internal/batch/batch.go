package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bilusteknoloji/playdetails/internal/product"
)

// Parser defines the interface for parsing many product details documents.
type Parser interface {
	Parse(ctx context.Context, requests []Request) ([]Result, error)
}

// Request describes a single document to parse.
type Request struct {
	Name        string // file name or other label used in errors and logs
	ProductType product.Type
	JSON        string
}

// Result is the outcome of parsing a single document.
type Result struct {
	Name    string
	Details *product.Details
	Err     error // only set when keep-going is enabled
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxWorkers sets the maximum number of documents parsed at once.
// Defaults to runtime.GOMAXPROCS(0).
func WithMaxWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxWorkers = n
		}
	}
}

// WithKeepGoing records per-document failures in Result.Err instead of
// aborting the batch on the first one.
func WithKeepGoing(keepGoing bool) Option {
	return func(m *Manager) {
		m.keepGoing = keepGoing
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager parses documents concurrently using errgroup.
type Manager struct {
	maxWorkers int
	keepGoing  bool
	logger     *slog.Logger
}

// compile-time proof that Manager implements Parser.
var _ Parser = (*Manager)(nil)

// New creates a new batch parser.
func New(opts ...Option) *Manager {
	m := &Manager{
		maxWorkers: runtime.GOMAXPROCS(0),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Parse parses all requests concurrently. Results are in request order.
// Without keep-going the first parse error is returned; with it, only
// context cancellation fails the call.
func (m *Manager) Parse(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.maxWorkers)

	for i, req := range requests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("parsing %s: %w", req.Name, err)
			}

			details, err := product.Parse(req.ProductType, req.JSON)
			if err != nil {
				m.logger.Debug("parse failed",
					slog.String("name", req.Name),
					slog.String("error", err.Error()),
				)

				if !m.keepGoing {
					return fmt.Errorf("parsing %s: %w", req.Name, err)
				}

				// Each goroutine owns its own slot.
				results[i] = Result{Name: req.Name, Err: err}

				return nil
			}

			m.logger.Debug("parsed",
				slog.String("name", req.Name),
				slog.String("product", details.ProductID()),
				slog.Int("offers", len(details.SubscriptionOfferDetails())),
			)

			results[i] = Result{Name: req.Name, Details: details}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
