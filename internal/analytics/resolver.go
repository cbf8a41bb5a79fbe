package analytics

import (
	"log/slog"
	"strings"

	"salespulse/pkg/contracts/domain"
)

// Placeholder labels returned when no reference entry yields a usable name.
const (
	PlaceholderCustomer = "customer not identified"
	PlaceholderProduct  = "product not identified"
	PlaceholderRep      = "sales rep not identified"
)

// Resolver resolves entity identifiers to display names. It is built once
// per run from the three reference dictionaries and shared read-only by
// every stage. Resolution tries the preferred name field and then each
// fallback in declared order, stopping at the first non-blank value;
// unresolved lookups return a per-kind placeholder and are logged at Warn,
// never raised as errors.
type Resolver struct {
	customers map[string]domain.CustomerRef
	products  map[string]domain.ProductRef
	reps      map[string]domain.SalesRepRef
	logger    *slog.Logger
}

// NewResolver builds the lookup tables. A nil logger falls back to
// slog.Default.
func NewResolver(customers []domain.CustomerRef, products []domain.ProductRef, reps []domain.SalesRepRef, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		customers: make(map[string]domain.CustomerRef, len(customers)),
		products:  make(map[string]domain.ProductRef, len(products)),
		reps:      make(map[string]domain.SalesRepRef, len(reps)),
		logger:    logger,
	}
	for _, c := range customers {
		if id := NormalizeID(c.ID); id != "" {
			r.customers[id] = c
		}
	}
	for _, p := range products {
		if id := NormalizeID(p.ID); id != "" {
			r.products[id] = p
		}
	}
	for _, s := range reps {
		if id := NormalizeID(s.ID); id != "" {
			r.reps[id] = s
		}
	}
	return r
}

// firstNonBlank returns the first candidate with non-whitespace content.
func firstNonBlank(candidates ...string) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(c); s != "" {
			return s
		}
	}
	return ""
}

// Customer resolves a customer id to its display name.
func (r *Resolver) Customer(id string) string {
	key := NormalizeID(id)
	if c, ok := r.customers[key]; ok {
		if name := firstNonBlank(c.Name, c.TradeName, c.LegalName); name != "" {
			return name
		}
	}
	r.logger.Warn("customer name not resolved", slog.String("customer_id", key))
	return PlaceholderCustomer
}

// Product resolves a product id to its display name.
func (r *Resolver) Product(id string) string {
	key := NormalizeID(id)
	if p, ok := r.products[key]; ok {
		if name := firstNonBlank(p.Description, p.Name, p.Code); name != "" {
			return name
		}
	}
	r.logger.Warn("product name not resolved", slog.String("product_id", key))
	return PlaceholderProduct
}

// Rep resolves a sales rep id to its display name.
func (r *Resolver) Rep(id string) string {
	key := NormalizeID(id)
	if s, ok := r.reps[key]; ok {
		if name := firstNonBlank(s.Name, s.Alias, s.Login); name != "" {
			return name
		}
	}
	r.logger.Warn("sales rep name not resolved", slog.String("rep_id", key))
	return PlaceholderRep
}
