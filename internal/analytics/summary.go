package analytics

// buildSummary derives the global KPIs from the raw index and the stage
// outputs. Growth rate compares the first half of the monthly series with
// the second by simple split, not calendar-aware; churn compares customer
// sets of the earlier and later halves of the daily series.
func buildSummary(idx *index, customers []CustomerStats, products []ProductStats, reps []RepStats, t temporalResult) Summary {
	var s Summary

	for _, o := range idx.orders {
		s.TotalRevenue += o.total
		s.TotalOrders++
	}
	for _, ls := range idx.linesByOrder {
		for _, l := range ls {
			s.TotalQuantity += l.qty
		}
	}
	for _, l := range idx.orphans {
		s.TotalQuantity += l.qty
	}

	s.ProductCount = len(products)
	s.CustomerCount = len(customers)
	s.RepCount = len(reps)

	if s.TotalOrders > 0 {
		s.GlobalTicketAverage = round2(s.TotalRevenue / float64(s.TotalOrders))
		s.ItemsPerOrder = round2(s.TotalQuantity / float64(s.TotalOrders))
	}
	if s.TotalQuantity > 0 {
		s.ValuePerItem = round2(s.TotalRevenue / s.TotalQuantity)
	}
	if s.CustomerCount > 0 {
		s.LifetimeValue = round2(s.TotalRevenue / float64(s.CustomerCount))
	}

	s.GrowthRate = growthRate(t.monthly)
	s.ChurnRate = churnRate(t.daily)

	return s
}

func growthRate(monthly []MonthBucket) float64 {
	if len(monthly) < 2 {
		return 0
	}
	mid := len(monthly) / 2
	var first, second float64
	for _, m := range monthly[:mid] {
		first += m.Total
	}
	for _, m := range monthly[mid:] {
		second += m.Total
	}
	if first == 0 {
		return 0
	}
	return round2((second - first) / first * 100)
}

// churnRate estimates the share of earlier-half customers that never
// reappear in the later half of the daily series.
func churnRate(daily []DayBucket) float64 {
	if len(daily) < 2 {
		return 0
	}
	mid := len(daily) / 2

	earlier := make(map[string]struct{})
	for _, d := range daily[:mid] {
		for _, c := range d.ByCustomer {
			earlier[c.ID] = struct{}{}
		}
	}
	if len(earlier) == 0 {
		return 0
	}

	later := make(map[string]struct{})
	for _, d := range daily[mid:] {
		for _, c := range d.ByCustomer {
			later[c.ID] = struct{}{}
		}
	}

	churned := 0
	for c := range earlier {
		if _, ok := later[c]; !ok {
			churned++
		}
	}
	return round2(float64(churned) / float64(len(earlier)) * 100)
}

// buildTeam derives per-rep and per-customer averages plus the single most
// efficient rep by ticket average.
func buildTeam(s Summary, reps []RepStats) TeamPerformance {
	var team TeamPerformance

	if s.RepCount > 0 {
		team.OrdersPerRep = round2(float64(s.TotalOrders) / float64(s.RepCount))
	}
	if s.CustomerCount > 0 {
		team.SalesPerCustomer = round2(s.TotalRevenue / float64(s.CustomerCount))
	}

	for _, r := range reps {
		if team.TopRep.ID == "" || r.TicketAverage > team.TopRep.Value {
			team.TopRep = Dependency{
				ID:    r.ID,
				Name:  r.Name,
				Value: r.TicketAverage,
			}
			if s.TotalRevenue > 0 {
				team.TopRep.Share = round2(r.TotalSales / s.TotalRevenue * 100)
			}
		}
	}

	return team
}
