package analytics

import (
	"math"
	"sort"
)

// buildRankings derives the top-N leaderboards from the per-entity stats,
// without re-scanning raw records. Equal values tie-break on id so the
// output is stable regardless of input order.
func buildRankings(customers []CustomerStats, products []ProductStats, reps []RepStats, opts Options) Rankings {
	r := Rankings{
		TopCustomersByValue: rank(customers, opts.TopCustomers, func(c CustomerStats) (string, string, float64) {
			return c.ID, c.Name, c.TotalSales
		}),
		TopProductsByQuantity: rank(products, opts.TopProducts, func(p ProductStats) (string, string, float64) {
			return p.ID, p.Name, p.Quantity
		}),
		TopProductsByValue: rank(products, opts.TopProducts, func(p ProductStats) (string, string, float64) {
			return p.ID, p.Name, p.TotalValue
		}),
		TopRepsByValue: rank(reps, opts.TopReps, func(s RepStats) (string, string, float64) {
			return s.ID, s.Name, s.TotalSales
		}),
		TopRepsByEfficiency: rank(reps, opts.TopReps, func(s RepStats) (string, string, float64) {
			return s.ID, s.Name, s.OrdersPerDay
		}),
	}

	// The ticket-average ranking excludes one-off customers: a single order
	// makes the average the order itself.
	repeat := make([]CustomerStats, 0, len(customers))
	for _, c := range customers {
		if c.OrderCount >= 2 {
			repeat = append(repeat, c)
		}
	}
	r.TopCustomersByTicket = rank(repeat, opts.TopCustomers, func(c CustomerStats) (string, string, float64) {
		return c.ID, c.Name, c.TicketAverage
	})

	return r
}

func rank[T any](items []T, topN int, key func(T) (id, name string, value float64)) []RankEntry {
	entries := make([]RankEntry, 0, len(items))
	for _, it := range items {
		id, name, value := key(it)
		entries = append(entries, RankEntry{ID: id, Name: name, Value: value})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].ID < entries[j].ID
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// buildConcentration computes the Pareto shares: what fraction of total
// revenue the top 20% of customers and products contribute, plus the single
// highest-value entity of each kind.
func buildConcentration(customers []CustomerStats, products []ProductStats) Concentration {
	var c Concentration

	customerValues := make([]RankEntry, 0, len(customers))
	var customerTotal float64
	for _, cs := range customers {
		customerValues = append(customerValues, RankEntry{ID: cs.ID, Name: cs.Name, Value: cs.TotalSales})
		customerTotal += cs.TotalSales
	}
	c.CustomerTop20Share, c.TopCustomer = concentration(customerValues, customerTotal)

	productValues := make([]RankEntry, 0, len(products))
	var productTotal float64
	for _, ps := range products {
		productValues = append(productValues, RankEntry{ID: ps.ID, Name: ps.Name, Value: ps.TotalValue})
		productTotal += ps.TotalValue
	}
	c.ProductTop20Share, c.TopProduct = concentration(productValues, productTotal)

	return c
}

func concentration(entries []RankEntry, total float64) (float64, Dependency) {
	if len(entries) == 0 || total == 0 {
		return 0, Dependency{}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].ID < entries[j].ID
	})

	topCount := int(math.Ceil(float64(len(entries)) * 0.2))
	if topCount < 1 {
		topCount = 1
	}
	var topSum float64
	for _, e := range entries[:topCount] {
		topSum += e.Value
	}

	dep := Dependency{
		ID:    entries[0].ID,
		Name:  entries[0].Name,
		Value: entries[0].Value,
		Share: round2(entries[0].Value / total * 100),
	}
	return round2(topSum / total * 100), dep
}
