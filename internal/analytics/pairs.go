package analytics

import "sort"

type pairAcc struct {
	a, b      string
	frequency int
	customers map[string]struct{}
	valueSum  float64
}

// analyzePairs enumerates unordered product pairs co-occurring inside each
// order. Pairs are keyed canonically (lower id first) so (A,B) and (B,A)
// merge into one record. Quadratic per order in the distinct item count,
// which is fine for typical small orders.
func analyzePairs(idx *index, res *Resolver, topN int) []ProductPair {
	accs := make(map[string]*pairAcc)

	for _, o := range idx.orders {
		distinct := make(map[string]struct{})
		for _, l := range idx.linesByOrder[o.id] {
			distinct[l.productID] = struct{}{}
		}
		if len(distinct) < 2 {
			continue
		}
		products := sortedKeys(distinct)

		for i := 0; i < len(products); i++ {
			for j := i + 1; j < len(products); j++ {
				a, b := products[i], products[j]
				key := a + "\x00" + b
				acc, ok := accs[key]
				if !ok {
					acc = &pairAcc{a: a, b: b, customers: make(map[string]struct{})}
					accs[key] = acc
				}
				acc.frequency++
				acc.valueSum += o.total
				if o.customer != "" {
					acc.customers[o.customer] = struct{}{}
				}
			}
		}
	}

	pairs := make([]ProductPair, 0, len(accs))
	for _, key := range sortedKeys(accs) {
		acc := accs[key]
		pairs = append(pairs, ProductPair{
			ProductA:      acc.a,
			ProductAName:  res.Product(acc.a),
			ProductB:      acc.b,
			ProductBName:  res.Product(acc.b),
			Frequency:     acc.frequency,
			CustomerCount: len(acc.customers),
			AvgOrderValue: round2(acc.valueSum / float64(acc.frequency)),
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Frequency > pairs[j].Frequency
	})
	if len(pairs) > topN {
		pairs = pairs[:topN]
	}
	return pairs
}
