package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestFoldProductsPriceStatsDiscountNonPositive(t *testing.T) {
	idx := buildIndex(Dataset{
		Orders: []domain.OrderHeader{
			{ID: "1", Date: "2026-01-01", CustomerID: "1", SalesRepID: "50", Total: 100},
		},
		Lines: []domain.OrderLine{
			{OrderID: "1", ProductID: "10", Quantity: 1, UnitPrice: 20, Total: 20},
			{OrderID: "1", ProductID: "10", Quantity: 1, UnitPrice: 0, Total: 0},
			{OrderID: "1", ProductID: "10", Quantity: 1, UnitPrice: -5, Total: -5},
			{OrderID: "1", ProductID: "10", Quantity: 1, UnitPrice: 40, Total: 40},
		},
	})
	res := NewResolver(nil, nil, nil, nil)

	stats := deriveProducts(foldProducts(idx), res, "2026-01-10")
	require.Len(t, stats, 1)

	p := stats[0]
	assert.Equal(t, 20.0, p.PriceMin)
	assert.Equal(t, 40.0, p.PriceMax)
	assert.Equal(t, 30.0, p.PriceAvg)
	// (40-20)/40 * 100
	assert.Equal(t, 50.0, p.MarginSpread)
}

func TestFoldProductsVelocity(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		qty   []float64
		want  float64
	}{
		{"single day floors span at one", []string{"2026-01-01"}, []float64{6}, 6},
		{"ten day span", []string{"2026-01-01", "2026-01-11"}, []float64{3, 2}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []domain.OrderHeader
			var lines []domain.OrderLine
			for i, d := range tt.dates {
				id := string(rune('1' + i))
				orders = append(orders, domain.OrderHeader{ID: id, Date: d, CustomerID: "1", Total: 10})
				lines = append(lines, domain.OrderLine{OrderID: id, ProductID: "10", Quantity: tt.qty[i], UnitPrice: 1, Total: tt.qty[i]})
			}
			idx := buildIndex(Dataset{Orders: orders, Lines: lines})
			res := NewResolver(nil, nil, nil, nil)

			stats := deriveProducts(foldProducts(idx), res, "2026-02-01")
			require.Len(t, stats, 1)
			assert.Equal(t, tt.want, stats[0].Velocity)
		})
	}
}

func TestFoldProductsOrphanLines(t *testing.T) {
	idx := buildIndex(Dataset{
		Orders: []domain.OrderHeader{
			{ID: "1", Date: "2026-01-01", CustomerID: "1", SalesRepID: "50", Total: 20},
		},
		Lines: []domain.OrderLine{
			{OrderID: "1", ProductID: "10", Quantity: 2, UnitPrice: 10, Total: 20},
			{OrderID: "missing", ProductID: "10", Quantity: 3, UnitPrice: 8, Total: 24},
		},
	})
	res := NewResolver(nil, nil, nil, nil)

	stats := deriveProducts(foldProducts(idx), res, "2026-01-10")
	require.Len(t, stats, 1)

	p := stats[0]
	// The orphan contributes quantity, value, prices and an order id, but
	// no customer, rep or date signal.
	assert.Equal(t, 5.0, p.Quantity)
	assert.Equal(t, 44.0, p.TotalValue)
	assert.Equal(t, 2, p.OrderCount)
	assert.Equal(t, 8.0, p.PriceMin)
	assert.Equal(t, 1, p.CustomerCount)
	assert.Equal(t, 1, p.RepCount)
	assert.Equal(t, "2026-01-01", p.FirstSale)
	assert.Equal(t, "2026-01-01", p.LastSale)
}
