package analytics

import "sort"

type joinAcc struct {
	qty       float64
	value     float64
	purchases int
	last      string
	buyers    map[string]struct{}
}

func (a *joinAcc) observe(l line, date string) {
	a.qty += l.qty
	a.value += l.total
	a.purchases++
	if date > a.last {
		a.last = date
	}
}

// joinCustomerProducts groups each customer's purchases by product.
func joinCustomerProducts(idx *index, res *Resolver) []CustomerProductJoin {
	byCustomer := make(map[string]map[string]*joinAcc)

	for _, o := range idx.orders {
		if o.customer == "" {
			continue
		}
		for _, l := range idx.linesByOrder[o.id] {
			inner, ok := byCustomer[o.customer]
			if !ok {
				inner = make(map[string]*joinAcc)
				byCustomer[o.customer] = inner
			}
			acc, ok := inner[l.productID]
			if !ok {
				acc = &joinAcc{}
				inner[l.productID] = acc
			}
			acc.observe(l, o.date)
		}
	}

	out := make([]CustomerProductJoin, 0, len(byCustomer))
	for _, cid := range sortedKeys(byCustomer) {
		join := CustomerProductJoin{
			CustomerID:   cid,
			CustomerName: res.Customer(cid),
		}
		inner := byCustomer[cid]
		for _, pid := range sortedKeys(inner) {
			acc := inner[pid]
			join.Products = append(join.Products, CustomerProductRow{
				ProductID:    pid,
				Name:         res.Product(pid),
				Quantity:     acc.qty,
				Value:        acc.value,
				Purchases:    acc.purchases,
				LastPurchase: acc.last,
			})
		}
		sort.SliceStable(join.Products, func(i, j int) bool {
			return join.Products[i].Value > join.Products[j].Value
		})
		out = append(out, join)
	}
	return out
}

// joinRepProducts groups each rep's sales by product, with a distinct buyer
// count per product.
func joinRepProducts(idx *index, res *Resolver) []RepProductJoin {
	byRep := make(map[string]map[string]*joinAcc)

	for _, o := range idx.orders {
		if o.rep == "" {
			continue
		}
		for _, l := range idx.linesByOrder[o.id] {
			inner, ok := byRep[o.rep]
			if !ok {
				inner = make(map[string]*joinAcc)
				byRep[o.rep] = inner
			}
			acc, ok := inner[l.productID]
			if !ok {
				acc = &joinAcc{buyers: make(map[string]struct{})}
				inner[l.productID] = acc
			}
			acc.observe(l, o.date)
			if o.customer != "" {
				acc.buyers[o.customer] = struct{}{}
			}
		}
	}

	out := make([]RepProductJoin, 0, len(byRep))
	for _, rid := range sortedKeys(byRep) {
		join := RepProductJoin{
			RepID:   rid,
			RepName: res.Rep(rid),
		}
		inner := byRep[rid]
		for _, pid := range sortedKeys(inner) {
			acc := inner[pid]
			join.Products = append(join.Products, RepProductRow{
				ProductID: pid,
				Name:      res.Product(pid),
				Quantity:  acc.qty,
				Value:     acc.value,
				Buyers:    len(acc.buyers),
				LastSale:  acc.last,
			})
		}
		sort.SliceStable(join.Products, func(i, j int) bool {
			return join.Products[i].Value > join.Products[j].Value
		})
		out = append(out, join)
	}
	return out
}

// joinProductCustomers groups each product's buyers, with a per-customer
// ticket average for that product.
func joinProductCustomers(idx *index, res *Resolver) []ProductCustomerJoin {
	byProduct := make(map[string]map[string]*joinAcc)

	for _, o := range idx.orders {
		if o.customer == "" {
			continue
		}
		for _, l := range idx.linesByOrder[o.id] {
			inner, ok := byProduct[l.productID]
			if !ok {
				inner = make(map[string]*joinAcc)
				byProduct[l.productID] = inner
			}
			acc, ok := inner[o.customer]
			if !ok {
				acc = &joinAcc{}
				inner[o.customer] = acc
			}
			acc.observe(l, o.date)
		}
	}

	out := make([]ProductCustomerJoin, 0, len(byProduct))
	for _, pid := range sortedKeys(byProduct) {
		join := ProductCustomerJoin{
			ProductID:   pid,
			ProductName: res.Product(pid),
		}
		inner := byProduct[pid]
		for _, cid := range sortedKeys(inner) {
			acc := inner[cid]
			row := ProductCustomerRow{
				CustomerID:   cid,
				Name:         res.Customer(cid),
				Quantity:     acc.qty,
				Value:        acc.value,
				Purchases:    acc.purchases,
				LastPurchase: acc.last,
			}
			if acc.purchases > 0 {
				row.TicketAverage = round2(acc.value / float64(acc.purchases))
			}
			join.Customers = append(join.Customers, row)
		}
		sort.SliceStable(join.Customers, func(i, j int) bool {
			return join.Customers[i].Value > join.Customers[j].Value
		})
		out = append(out, join)
	}
	return out
}
