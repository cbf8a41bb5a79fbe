package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salespulse/internal/analytics"
	"salespulse/pkg/contracts/domain"
)

// Standard file names inside a dataset directory. The reference files are
// optional; missing references just mean placeholder names downstream.
const (
	OrdersFile    = "orders.csv"
	LinesFile     = "order_lines.csv"
	CustomersFile = "customers.csv"
	ProductsFile  = "products.csv"
	RepsFile      = "sales_reps.csv"
)

// Loader reads datasets from disk.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadDir reads the five standard CSV files from a directory. Orders and
// lines are required; reference dictionaries are optional.
func (l *Loader) LoadDir(dir string) (analytics.Dataset, error) {
	var ds analytics.Dataset

	orders, err := l.readCSV(filepath.Join(dir, OrdersFile))
	if err != nil {
		return ds, fmt.Errorf("load orders: %w", err)
	}
	lines, err := l.readCSV(filepath.Join(dir, LinesFile))
	if err != nil {
		return ds, fmt.Errorf("load order lines: %w", err)
	}

	ds.Orders = parseOrders(orders)
	ds.Lines = parseLines(lines)
	ds.Customers = parseCustomers(l.readOptionalCSV(filepath.Join(dir, CustomersFile)))
	ds.Products = parseProducts(l.readOptionalCSV(filepath.Join(dir, ProductsFile)))
	ds.Reps = parseReps(l.readOptionalCSV(filepath.Join(dir, RepsFile)))

	l.logger.Info("dataset loaded",
		slog.String("dir", dir),
		slog.Int("orders", len(ds.Orders)),
		slog.Int("lines", len(ds.Lines)),
		slog.Int("customers", len(ds.Customers)),
		slog.Int("products", len(ds.Products)),
		slog.Int("reps", len(ds.Reps)))

	return ds, nil
}

func (l *Loader) readCSV(path string) (*table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return newTable(records), nil
}

func (l *Loader) readOptionalCSV(path string) *table {
	t, err := l.readCSV(path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("skipping unreadable reference file",
				slog.String("path", path), slog.Any("error", err))
		}
		return newTable(nil)
	}
	return t
}

func parseOrders(t *table) []domain.OrderHeader {
	idCol := t.lookup("id", "orderid", "order")
	dateCol := t.lookup("date", "orderdate", "transactiondate")
	custCol := t.lookup("customerid", "customer", "clientid")
	repCol := t.lookup("salesrepid", "salesrep", "repid", "sellerid")
	totalCol := t.lookup("total", "totalvalue", "ordertotal", "value")

	out := make([]domain.OrderHeader, 0, len(t.rows))
	for _, row := range t.rows {
		h := domain.OrderHeader{
			ID:         cell(row, idCol),
			Date:       cell(row, dateCol),
			CustomerID: cell(row, custCol),
			SalesRepID: cell(row, repCol),
			Total:      coerceFloat(cell(row, totalCol)),
		}
		if h.ID == "" {
			continue
		}
		out = append(out, h)
	}
	return out
}

func parseLines(t *table) []domain.OrderLine {
	orderCol := t.lookup("orderid", "order", "parentorderid")
	productCol := t.lookup("productid", "product", "sku")
	qtyCol := t.lookup("quantity", "qty", "amount")
	priceCol := t.lookup("unitprice", "price")
	totalCol := t.lookup("total", "linetotal", "value")

	out := make([]domain.OrderLine, 0, len(t.rows))
	for _, row := range t.rows {
		ln := domain.OrderLine{
			OrderID:   cell(row, orderCol),
			ProductID: cell(row, productCol),
			Quantity:  coerceFloat(cell(row, qtyCol)),
			UnitPrice: coerceFloat(cell(row, priceCol)),
			Total:     coerceFloat(cell(row, totalCol)),
		}
		if ln.ProductID == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func parseCustomers(t *table) []domain.CustomerRef {
	idCol := t.lookup("id", "customerid")
	nameCol := t.lookup("name", "displayname")
	tradeCol := t.lookup("tradename", "fantasyname")
	legalCol := t.lookup("legalname", "companyname")

	out := make([]domain.CustomerRef, 0, len(t.rows))
	for _, row := range t.rows {
		c := domain.CustomerRef{
			ID:        cell(row, idCol),
			Name:      cell(row, nameCol),
			TradeName: cell(row, tradeCol),
			LegalName: cell(row, legalCol),
		}
		if c.ID == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func parseProducts(t *table) []domain.ProductRef {
	idCol := t.lookup("id", "productid", "sku")
	descCol := t.lookup("description", "desc")
	nameCol := t.lookup("name", "productname")
	codeCol := t.lookup("code", "reference")

	out := make([]domain.ProductRef, 0, len(t.rows))
	for _, row := range t.rows {
		p := domain.ProductRef{
			ID:          cell(row, idCol),
			Description: cell(row, descCol),
			Name:        cell(row, nameCol),
			Code:        cell(row, codeCol),
		}
		if p.ID == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseReps(t *table) []domain.SalesRepRef {
	idCol := t.lookup("id", "salesrepid", "repid")
	nameCol := t.lookup("name", "fullname")
	aliasCol := t.lookup("alias", "nickname")
	loginCol := t.lookup("login", "username", "email")

	out := make([]domain.SalesRepRef, 0, len(t.rows))
	for _, row := range t.rows {
		s := domain.SalesRepRef{
			ID:    cell(row, idCol),
			Name:  cell(row, nameCol),
			Alias: cell(row, aliasCol),
			Login: cell(row, loginCol),
		}
		if s.ID == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
