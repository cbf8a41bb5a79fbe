package analytics

import "sort"

type productAcc struct {
	id        string
	qty       float64
	value     float64
	orders    map[string]struct{}
	customers map[string]struct{}
	reps      map[string]struct{}
	priceMin  float64
	priceMax  float64
	priceSum  float64
	priceN    int
	first     string
	last      string
}

// foldProducts accumulates over every line, header-joined or not: orphan
// lines still contribute quantity, value, prices and order counts, while
// customer/rep/date signals require the parent header.
func foldProducts(idx *index) map[string]*productAcc {
	accs := make(map[string]*productAcc)

	observe := func(l line, parent *order) {
		acc, ok := accs[l.productID]
		if !ok {
			acc = &productAcc{
				id:        l.productID,
				orders:    make(map[string]struct{}),
				customers: make(map[string]struct{}),
				reps:      make(map[string]struct{}),
			}
			accs[l.productID] = acc
		}

		acc.qty += l.qty
		acc.value += l.total
		if l.orderID != "" {
			acc.orders[l.orderID] = struct{}{}
		}
		if l.unitPrice > 0 {
			if acc.priceN == 0 || l.unitPrice < acc.priceMin {
				acc.priceMin = l.unitPrice
			}
			if l.unitPrice > acc.priceMax {
				acc.priceMax = l.unitPrice
			}
			acc.priceSum += l.unitPrice
			acc.priceN++
		}

		if parent == nil {
			return
		}
		if parent.customer != "" {
			acc.customers[parent.customer] = struct{}{}
		}
		if parent.rep != "" {
			acc.reps[parent.rep] = struct{}{}
		}
		if parent.date != "" {
			if acc.first == "" || parent.date < acc.first {
				acc.first = parent.date
			}
			if parent.date > acc.last {
				acc.last = parent.date
			}
		}
	}

	for _, o := range idx.orders {
		parent := o
		for _, l := range idx.linesByOrder[o.id] {
			observe(l, &parent)
		}
	}
	for _, l := range idx.orphans {
		observe(l, nil)
	}

	return accs
}

// deriveProducts computes price statistics, velocity, margin spread and
// recency from the accumulators. Output is sorted by total value descending
// with id as tie break.
func deriveProducts(accs map[string]*productAcc, res *Resolver, today string) []ProductStats {
	stats := make([]ProductStats, 0, len(accs))

	for _, id := range sortedKeys(accs) {
		acc := accs[id]
		ps := ProductStats{
			ID:            acc.id,
			Name:          res.Product(acc.id),
			Quantity:      acc.qty,
			TotalValue:    acc.value,
			OrderCount:    len(acc.orders),
			CustomerCount: len(acc.customers),
			RepCount:      len(acc.reps),
			FirstSale:     acc.first,
			LastSale:      acc.last,
		}

		if acc.priceN > 0 {
			ps.PriceMin = acc.priceMin
			ps.PriceMax = acc.priceMax
			ps.PriceAvg = round2(acc.priceSum / float64(acc.priceN))
		}
		if ps.PriceMax > 0 {
			ps.MarginSpread = round2((ps.PriceMax - ps.PriceMin) / ps.PriceMax * 100)
		}

		// Quantity per day over the product's sale span, minimum one day.
		span := daysBetween(acc.first, acc.last)
		if span < 1 {
			span = 1
		}
		ps.Velocity = round2(acc.qty / float64(span))

		if acc.last != "" {
			ps.DaysSinceLastSale = daysBetween(acc.last, today)
		}

		stats = append(stats, ps)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalValue != stats[j].TotalValue {
			return stats[i].TotalValue > stats[j].TotalValue
		}
		return stats[i].ID < stats[j].ID
	})
	return stats
}
