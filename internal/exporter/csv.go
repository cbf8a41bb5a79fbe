package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salespulse/internal/analytics"
)

// writeOptions configures one CSV file write.
type writeOptions struct {
	headers []string
	records [][]string
}

// WriteCSV writes the tabular sections of the report, one CSV file per
// table.
func (w *Writer) WriteCSV(report *analytics.Report) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	files := map[string]writeOptions{
		CustomersFile: customerTable(report.Customers),
		ProductsFile:  productTable(report.Products),
		RepsFile:      repTable(report.Reps),
		DailyFile:     dailyTable(report.Daily),
		WeeklyFile:    weeklyTable(report.Weekly),
		MonthlyFile:   monthlyTable(report.Monthly),
		PairsFile:     pairTable(report.Pairs),
		SummaryFile:   summaryTable(report),
	}

	for _, name := range []string{
		CustomersFile, ProductsFile, RepsFile,
		DailyFile, WeeklyFile, MonthlyFile, PairsFile, SummaryFile,
	} {
		if err := w.writeFile(name, files[name]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFile(name string, opts writeOptions) error {
	path := filepath.Join(w.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer file.Close()

	// BOM so Excel recognizes UTF-8.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM to %s: %w", name, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(opts.headers); err != nil {
		return fmt.Errorf("write headers to %s: %w", name, err)
	}
	for i, record := range opts.records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d to %s: %w", i, name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}

	w.logger.Debug("csv written", slog.String("path", path),
		slog.Int("records", len(opts.records)))
	return nil
}

func customerTable(customers []analytics.CustomerStats) writeOptions {
	opts := writeOptions{headers: []string{
		"id", "name", "total_sales", "orders", "quantity", "ticket_average",
		"first_purchase", "last_purchase", "days_since_last",
		"recency_bucket", "purchase_interval_days",
	}}
	for _, c := range customers {
		opts.records = append(opts.records, []string{
			c.ID, c.Name,
			formatFloat(c.TotalSales),
			formatInt(c.OrderCount),
			formatFloat(c.Quantity),
			formatFloat(c.TicketAverage),
			c.FirstPurchase, c.LastPurchase,
			formatInt(c.DaysSinceLast),
			c.RecencyBucket,
			formatFloat(c.PurchaseInterval),
		})
	}
	return opts
}

func productTable(products []analytics.ProductStats) writeOptions {
	opts := writeOptions{headers: []string{
		"id", "name", "quantity", "total_value", "orders",
		"price_min", "price_avg", "price_max", "margin_spread",
		"customers", "reps", "first_sale", "last_sale", "velocity",
	}}
	for _, p := range products {
		opts.records = append(opts.records, []string{
			p.ID, p.Name,
			formatFloat(p.Quantity),
			formatFloat(p.TotalValue),
			formatInt(p.OrderCount),
			formatFloat(p.PriceMin),
			formatFloat(p.PriceAvg),
			formatFloat(p.PriceMax),
			formatFloat(p.MarginSpread),
			formatInt(p.CustomerCount),
			formatInt(p.RepCount),
			p.FirstSale, p.LastSale,
			formatFloat(p.Velocity),
		})
	}
	return opts
}

func repTable(reps []analytics.RepStats) writeOptions {
	opts := writeOptions{headers: []string{
		"id", "name", "total_sales", "orders", "quantity", "customers",
		"products", "active_days", "orders_per_day", "ticket_average",
		"loyal_customers", "loyal_ratio", "product_mix",
	}}
	for _, r := range reps {
		opts.records = append(opts.records, []string{
			r.ID, r.Name,
			formatFloat(r.TotalSales),
			formatInt(r.OrderCount),
			formatFloat(r.Quantity),
			formatInt(r.CustomerCount),
			formatInt(r.ProductCount),
			formatInt(r.ActiveDays),
			formatFloat(r.OrdersPerDay),
			formatFloat(r.TicketAverage),
			formatInt(r.LoyalCustomers),
			formatFloat(r.LoyalRatio),
			formatFloat(r.ProductMix),
		})
	}
	return opts
}

func dailyTable(days []analytics.DayBucket) writeOptions {
	opts := writeOptions{headers: []string{
		"date", "total", "orders", "quantity", "customers",
	}}
	for _, d := range days {
		opts.records = append(opts.records, []string{
			d.Date,
			formatFloat(d.Total),
			formatInt(d.Orders),
			formatFloat(d.Quantity),
			formatInt(d.CustomerCount),
		})
	}
	return opts
}

func weeklyTable(weeks []analytics.WeekBucket) writeOptions {
	opts := writeOptions{headers: []string{
		"week", "total", "orders", "quantity", "customers", "growth",
	}}
	for _, wk := range weeks {
		opts.records = append(opts.records, []string{
			wk.Week,
			formatFloat(wk.Total),
			formatInt(wk.Orders),
			formatFloat(wk.Quantity),
			formatInt(wk.CustomerCount),
			formatFloat(wk.Growth),
		})
	}
	return opts
}

func monthlyTable(months []analytics.MonthBucket) writeOptions {
	opts := writeOptions{headers: []string{
		"month", "total", "orders", "quantity", "customers",
		"new_customers", "growth",
	}}
	for _, m := range months {
		opts.records = append(opts.records, []string{
			m.Month,
			formatFloat(m.Total),
			formatInt(m.Orders),
			formatFloat(m.Quantity),
			formatInt(m.CustomerCount),
			formatInt(m.NewCustomers),
			formatFloat(m.Growth),
		})
	}
	return opts
}

func pairTable(pairs []analytics.ProductPair) writeOptions {
	opts := writeOptions{headers: []string{
		"product_a", "product_a_name", "product_b", "product_b_name",
		"frequency", "customers", "avg_order_value",
	}}
	for _, p := range pairs {
		opts.records = append(opts.records, []string{
			p.ProductA, p.ProductAName, p.ProductB, p.ProductBName,
			formatInt(p.Frequency),
			formatInt(p.CustomerCount),
			formatFloat(p.AvgOrderValue),
		})
	}
	return opts
}

func summaryTable(report *analytics.Report) writeOptions {
	s := report.Summary
	return writeOptions{
		headers: []string{"metric", "value"},
		records: [][]string{
			{"total_revenue", formatFloat(s.TotalRevenue)},
			{"total_orders", formatInt(s.TotalOrders)},
			{"total_quantity", formatFloat(s.TotalQuantity)},
			{"global_ticket_average", formatFloat(s.GlobalTicketAverage)},
			{"customers", formatInt(s.CustomerCount)},
			{"products", formatInt(s.ProductCount)},
			{"sales_reps", formatInt(s.RepCount)},
			{"items_per_order", formatFloat(s.ItemsPerOrder)},
			{"value_per_item", formatFloat(s.ValuePerItem)},
			{"growth_rate", formatFloat(s.GrowthRate)},
			{"churn_rate", formatFloat(s.ChurnRate)},
			{"lifetime_value", formatFloat(s.LifetimeValue)},
			{"customer_top20_share", formatFloat(report.Concentration.CustomerTop20Share)},
			{"product_top20_share", formatFloat(report.Concentration.ProductTop20Share)},
		},
	}
}
