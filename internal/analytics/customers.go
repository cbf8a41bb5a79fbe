package analytics

import "sort"

// Recency buckets derived from days since last purchase.
const (
	RecencyActive   = "Active"
	RecencyWarm     = "Warm"
	RecencyCold     = "Cold"
	RecencyInactive = "Inactive"
)

type customerAcc struct {
	id         string
	total      float64
	orders     int
	qty        float64
	lineValue  float64
	lineCount  int
	first      string
	last       string
	dates      map[string]struct{}
	productQty map[string]float64
}

// foldCustomers runs the branch-free accumulation pass over order headers
// joined to their lines. Headers without a customer id are skipped; they
// still count in the global summary.
func foldCustomers(idx *index) map[string]*customerAcc {
	accs := make(map[string]*customerAcc)

	for _, o := range idx.orders {
		if o.customer == "" {
			continue
		}
		acc, ok := accs[o.customer]
		if !ok {
			acc = &customerAcc{
				id:         o.customer,
				dates:      make(map[string]struct{}),
				productQty: make(map[string]float64),
			}
			accs[o.customer] = acc
		}

		acc.total += o.total
		acc.orders++
		if o.date != "" {
			acc.dates[o.date] = struct{}{}
			if acc.first == "" || o.date < acc.first {
				acc.first = o.date
			}
			if o.date > acc.last {
				acc.last = o.date
			}
		}

		for _, l := range idx.linesByOrder[o.id] {
			acc.qty += l.qty
			acc.lineValue += l.total
			acc.lineCount++
			acc.productQty[l.productID] += l.qty
		}
	}

	return accs
}

// deriveCustomers is the second pass: ratios, recency buckets and purchase
// intervals computed from the accumulators. Output is sorted by total sales
// descending with id as tie break.
func deriveCustomers(accs map[string]*customerAcc, res *Resolver, today string) []CustomerStats {
	stats := make([]CustomerStats, 0, len(accs))

	for _, id := range sortedKeys(accs) {
		acc := accs[id]
		cs := CustomerStats{
			ID:            acc.id,
			Name:          res.Customer(acc.id),
			TotalSales:    acc.total,
			OrderCount:    acc.orders,
			Quantity:      acc.qty,
			FirstPurchase: acc.first,
			LastPurchase:  acc.last,
			TopProducts:   topProductsByQuantity(acc.productQty, res, 3),
		}

		if acc.lineCount > 0 {
			cs.AvgLineValue = round2(acc.lineValue / float64(acc.lineCount))
		}
		if acc.orders > 0 {
			cs.TicketAverage = round2(acc.total / float64(acc.orders))
		}
		if acc.last != "" {
			cs.DaysSinceLast = daysBetween(acc.last, today)
		}
		cs.RecencyBucket = recencyBucket(cs.DaysSinceLast)
		cs.PurchaseInterval = purchaseInterval(acc.dates, acc.orders)

		stats = append(stats, cs)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalSales != stats[j].TotalSales {
			return stats[i].TotalSales > stats[j].TotalSales
		}
		return stats[i].ID < stats[j].ID
	})
	return stats
}

func recencyBucket(daysSinceLast int) string {
	switch {
	case daysSinceLast <= 30:
		return RecencyActive
	case daysSinceLast <= 60:
		return RecencyWarm
	case daysSinceLast <= 90:
		return RecencyCold
	default:
		return RecencyInactive
	}
}

// purchaseInterval averages the gaps between sorted distinct purchase dates.
// It is defined only for customers with at least two orders.
func purchaseInterval(dates map[string]struct{}, orders int) float64 {
	if orders < 2 || len(dates) < 2 {
		return 0
	}
	sorted := sortedKeys(dates)

	var totalDays int
	for i := 1; i < len(sorted); i++ {
		totalDays += daysBetween(sorted[i-1], sorted[i])
	}
	return round2(float64(totalDays) / float64(len(sorted)-1))
}

func topProductsByQuantity(qtyByProduct map[string]float64, res *Resolver, n int) []ProductShare {
	shares := make([]ProductShare, 0, len(qtyByProduct))
	for _, id := range sortedKeys(qtyByProduct) {
		shares = append(shares, ProductShare{ID: id, Name: res.Product(id), Quantity: qtyByProduct[id]})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Quantity != shares[j].Quantity {
			return shares[i].Quantity > shares[j].Quantity
		}
		return shares[i].ID < shares[j].ID
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}
