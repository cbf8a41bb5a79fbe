package analytics

import "sort"

type repAcc struct {
	id             string
	total          float64
	orders         int
	qty            float64
	customers      map[string]struct{}
	products       map[string]struct{}
	days           map[string]struct{}
	customerOrders map[string]int
	mixSum         int
}

// foldReps accumulates per-sales-rep statistics over headers joined to
// their lines. Headers without a rep id are skipped.
func foldReps(idx *index) map[string]*repAcc {
	accs := make(map[string]*repAcc)

	for _, o := range idx.orders {
		if o.rep == "" {
			continue
		}
		acc, ok := accs[o.rep]
		if !ok {
			acc = &repAcc{
				id:             o.rep,
				customers:      make(map[string]struct{}),
				products:       make(map[string]struct{}),
				days:           make(map[string]struct{}),
				customerOrders: make(map[string]int),
			}
			accs[o.rep] = acc
		}

		acc.total += o.total
		acc.orders++
		if o.customer != "" {
			acc.customers[o.customer] = struct{}{}
			acc.customerOrders[o.customer]++
		}
		if o.date != "" {
			acc.days[o.date] = struct{}{}
		}

		orderProducts := make(map[string]struct{})
		for _, l := range idx.linesByOrder[o.id] {
			acc.qty += l.qty
			acc.products[l.productID] = struct{}{}
			orderProducts[l.productID] = struct{}{}
		}
		acc.mixSum += len(orderProducts)
	}

	return accs
}

// deriveReps computes per-rep ratios from the accumulators. A loyal customer
// placed at least two orders with the rep. Output is sorted by total sales
// descending with id as tie break.
func deriveReps(accs map[string]*repAcc, res *Resolver) []RepStats {
	stats := make([]RepStats, 0, len(accs))

	for _, id := range sortedKeys(accs) {
		acc := accs[id]
		rs := RepStats{
			ID:            acc.id,
			Name:          res.Rep(acc.id),
			TotalSales:    acc.total,
			OrderCount:    acc.orders,
			Quantity:      acc.qty,
			CustomerCount: len(acc.customers),
			ProductCount:  len(acc.products),
			ActiveDays:    len(acc.days),
		}

		if rs.ActiveDays > 0 {
			rs.OrdersPerDay = round2(float64(acc.orders) / float64(rs.ActiveDays))
		}
		if acc.orders > 0 {
			rs.TicketAverage = round2(acc.total / float64(acc.orders))
			rs.ProductMix = round2(float64(acc.mixSum) / float64(acc.orders))
		}
		for _, n := range acc.customerOrders {
			if n >= 2 {
				rs.LoyalCustomers++
			}
		}
		if rs.CustomerCount > 0 {
			rs.LoyalRatio = round2(float64(rs.LoyalCustomers) / float64(rs.CustomerCount) * 100)
		}

		stats = append(stats, rs)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalSales != stats[j].TotalSales {
			return stats[i].TotalSales > stats[j].TotalSales
		}
		return stats[i].ID < stats[j].ID
	})
	return stats
}
