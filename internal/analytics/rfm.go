package analytics

// classifyRFM buckets customers into cohorts from the recency, frequency
// and value signals already computed by the customer fold. Rules are tried
// in order and buckets are mutually exclusive; a customer matching none of
// the rules is counted in no bucket at all (intentional, the counts are
// presented as totals elsewhere).
func classifyRFM(customers []CustomerStats) RFMSegments {
	var seg RFMSegments
	if len(customers) == 0 {
		return seg
	}

	var sum float64
	for _, c := range customers {
		sum += c.TotalSales
	}
	mean := sum / float64(len(customers))

	for _, c := range customers {
		highValue := c.TotalSales > mean
		highFrequency := c.OrderCount >= 3
		recent := c.DaysSinceLast <= 30

		switch {
		case highValue && highFrequency && recent:
			seg.Champions++
		case highFrequency && recent:
			seg.Loyal++
		case highValue && !highFrequency:
			seg.Potential++
		case c.DaysSinceLast > 60 && c.DaysSinceLast <= 120:
			seg.AtRisk++
		case c.DaysSinceLast > 120:
			seg.Lost++
		}
	}

	return seg
}
