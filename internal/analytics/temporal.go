package analytics

import (
	"fmt"
	"sort"
)

type shareAcc struct {
	total float64
	qty   float64
	n     int
}

type dayAcc struct {
	total      float64
	orders     int
	qty        float64
	customers  map[string]struct{}
	byCustomer map[string]*shareAcc
	byProduct  map[string]*shareAcc
	byRep      map[string]*shareAcc
}

type periodAcc struct {
	total     float64
	orders    int
	qty       float64
	customers map[string]struct{}
}

type temporalResult struct {
	daily   []DayBucket
	weekly  []WeekBucket
	monthly []MonthBucket
}

// bucketTemporal groups orders by exact date, ISO week and calendar month.
// Orders whose date does not parse are excluded from the time series.
func bucketTemporal(idx *index, res *Resolver) temporalResult {
	days := make(map[string]*dayAcc)
	weeks := make(map[string]*periodAcc)
	months := make(map[string]*periodAcc)
	monthCustomers := make(map[string]map[string]struct{})

	for _, o := range idx.orders {
		date, ok := parseDate(o.date)
		if !ok {
			continue
		}
		dayKey := o.date
		year, week := date.ISOWeek()
		weekKey := fmt.Sprintf("%04d-W%02d", year, week)
		monthKey := dayKey[:7]

		var qty float64
		for _, l := range idx.linesByOrder[o.id] {
			qty += l.qty
		}

		day, ok := days[dayKey]
		if !ok {
			day = &dayAcc{
				customers:  make(map[string]struct{}),
				byCustomer: make(map[string]*shareAcc),
				byProduct:  make(map[string]*shareAcc),
				byRep:      make(map[string]*shareAcc),
			}
			days[dayKey] = day
		}
		day.total += o.total
		day.orders++
		day.qty += qty
		if o.customer != "" {
			day.customers[o.customer] = struct{}{}
			addShare(day.byCustomer, o.customer, o.total, qty)
		}
		if o.rep != "" {
			addShare(day.byRep, o.rep, o.total, qty)
		}
		for _, l := range idx.linesByOrder[o.id] {
			addShare(day.byProduct, l.productID, l.total, l.qty)
		}

		addPeriod(weeks, weekKey, o, qty)
		addPeriod(months, monthKey, o, qty)
		if o.customer != "" {
			set, ok := monthCustomers[monthKey]
			if !ok {
				set = make(map[string]struct{})
				monthCustomers[monthKey] = set
			}
			set[o.customer] = struct{}{}
		}
	}

	out := temporalResult{
		daily:   make([]DayBucket, 0, len(days)),
		weekly:  make([]WeekBucket, 0, len(weeks)),
		monthly: make([]MonthBucket, 0, len(months)),
	}

	for _, key := range sortedKeys(days) {
		d := days[key]
		out.daily = append(out.daily, DayBucket{
			Date:          key,
			Total:         d.total,
			Orders:        d.orders,
			Quantity:      d.qty,
			CustomerCount: len(d.customers),
			ByCustomer:    shares(d.byCustomer, res.Customer),
			ByProduct:     shares(d.byProduct, res.Product),
			ByRep:         shares(d.byRep, res.Rep),
		})
	}

	// Growth needs the previous bucket, so keys are walked ascending.
	var prevWeekTotal float64
	for i, key := range sortedKeys(weeks) {
		w := weeks[key]
		wb := WeekBucket{
			Week:          key,
			Total:         w.total,
			Orders:        w.orders,
			Quantity:      w.qty,
			CustomerCount: len(w.customers),
		}
		if i > 0 && prevWeekTotal != 0 {
			wb.Growth = round2((w.total - prevWeekTotal) / prevWeekTotal * 100)
		}
		prevWeekTotal = w.total
		out.weekly = append(out.weekly, wb)
	}

	// New customers carry a running set forward month by month, so the
	// ascending walk is load-bearing here as well.
	seen := make(map[string]struct{})
	var prevMonthTotal float64
	for i, key := range sortedKeys(months) {
		m := months[key]
		mb := MonthBucket{
			Month:         key,
			Total:         m.total,
			Orders:        m.orders,
			Quantity:      m.qty,
			CustomerCount: len(m.customers),
		}
		if i > 0 && prevMonthTotal != 0 {
			mb.Growth = round2((m.total - prevMonthTotal) / prevMonthTotal * 100)
		}
		prevMonthTotal = m.total

		for _, c := range sortedKeys(monthCustomers[key]) {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				mb.NewCustomers++
			}
		}
		out.monthly = append(out.monthly, mb)
	}

	return out
}

func addShare(m map[string]*shareAcc, id string, total, qty float64) {
	s, ok := m[id]
	if !ok {
		s = &shareAcc{}
		m[id] = s
	}
	s.total += total
	s.qty += qty
	s.n++
}

func addPeriod(m map[string]*periodAcc, key string, o order, qty float64) {
	p, ok := m[key]
	if !ok {
		p = &periodAcc{customers: make(map[string]struct{})}
		m[key] = p
	}
	p.total += o.total
	p.orders++
	p.qty += qty
	if o.customer != "" {
		p.customers[o.customer] = struct{}{}
	}
}

func shares(m map[string]*shareAcc, resolve func(string) string) []EntityShare {
	out := make([]EntityShare, 0, len(m))
	for _, id := range sortedKeys(m) {
		s := m[id]
		es := EntityShare{ID: id, Name: resolve(id), Total: s.total, Quantity: s.qty}
		if s.n > 0 {
			es.Average = round2(s.total / float64(s.n))
		}
		out = append(out, es)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].ID < out[j].ID
	})
	return out
}
