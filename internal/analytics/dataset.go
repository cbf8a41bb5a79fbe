package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"salespulse/pkg/contracts/domain"
)

// Dataset bundles the immutable inputs of one analysis run. Today is the
// reference date for recency calculations; the zero value means wall clock.
type Dataset struct {
	Orders    []domain.OrderHeader
	Lines     []domain.OrderLine
	Customers []domain.CustomerRef
	Products  []domain.ProductRef
	Reps      []domain.SalesRepRef

	Today time.Time
}

const dateLayout = "2006-01-02"

// NormalizeID canonicalizes an identifier so that string/number mismatches
// between header and line foreign keys ("7", "007", "7.0", " 7 ") all key
// the same entity. Non-numeric identifiers are compared as trimmed strings.
func NormalizeID(id string) string {
	s := strings.TrimSpace(id)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// round2 rounds ratio and percentage outputs to two decimal places.
// Currency sums are left unrounded until presentation.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// parseDate parses an ISO-8601 calendar date. The zero time and false are
// returned for anything else.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysBetween returns whole days from a to b, zero when either date does not
// parse or b precedes a.
func daysBetween(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if !okA || !okB {
		return 0
	}
	d := int(tb.Sub(ta).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// order is the normalized internal view of an OrderHeader.
type order struct {
	id       string
	date     string
	customer string
	rep      string
	total    float64
}

// line is the normalized internal view of an OrderLine.
type line struct {
	orderID   string
	productID string
	qty       float64
	unitPrice float64
	total     float64
}

// index is the normalized, pre-joined view of a dataset shared read-only by
// every stage. It is built once per run, before any fold starts.
type index struct {
	orders       []order
	ordersByID   map[string]order
	linesByOrder map[string][]line
	orphans      []line
	today        string
}

// buildIndex normalizes identifiers, drops unusable records and joins lines
// to their parent orders. Lines without a matching header are kept aside for
// header-independent product aggregation.
func buildIndex(ds Dataset) *index {
	today := ds.Today
	if today.IsZero() {
		today = time.Now()
	}

	idx := &index{
		ordersByID:   make(map[string]order, len(ds.Orders)),
		linesByOrder: make(map[string][]line),
		today:        today.Format(dateLayout),
	}

	for _, h := range ds.Orders {
		id := NormalizeID(h.ID)
		if id == "" {
			continue
		}
		if _, dup := idx.ordersByID[id]; dup {
			continue
		}
		o := order{
			id:       id,
			date:     strings.TrimSpace(h.Date),
			customer: NormalizeID(h.CustomerID),
			rep:      NormalizeID(h.SalesRepID),
			total:    h.Total,
		}
		idx.ordersByID[id] = o
		idx.orders = append(idx.orders, o)
	}

	for _, l := range ds.Lines {
		ln := line{
			orderID:   NormalizeID(l.OrderID),
			productID: NormalizeID(l.ProductID),
			qty:       l.Quantity,
			unitPrice: l.UnitPrice,
			total:     l.Total,
		}
		if ln.productID == "" {
			continue
		}
		if _, ok := idx.ordersByID[ln.orderID]; ok {
			idx.linesByOrder[ln.orderID] = append(idx.linesByOrder[ln.orderID], ln)
		} else {
			idx.orphans = append(idx.orphans, ln)
		}
	}

	return idx
}

// sortedKeys returns the map keys in ascending order; used wherever bucket
// processing order matters.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
