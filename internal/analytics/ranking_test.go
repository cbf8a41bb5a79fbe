package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRankingsBoundsAndOrder(t *testing.T) {
	customers := make([]CustomerStats, 0, 15)
	for i := 1; i <= 15; i++ {
		customers = append(customers, CustomerStats{
			ID:            fmt.Sprintf("%d", i),
			TotalSales:    float64(i * 10),
			OrderCount:    2,
			TicketAverage: float64(i * 5),
		})
	}

	r := buildRankings(customers, nil, nil, DefaultOptions())

	require.Len(t, r.TopCustomersByValue, 10)
	assert.Equal(t, "15", r.TopCustomersByValue[0].ID)
	for i := 1; i < len(r.TopCustomersByValue); i++ {
		assert.LessOrEqual(t, r.TopCustomersByValue[i].Value, r.TopCustomersByValue[i-1].Value)
	}
}

func TestBuildRankingsTicketExcludesOneOffCustomers(t *testing.T) {
	customers := []CustomerStats{
		{ID: "1", TotalSales: 500, OrderCount: 1, TicketAverage: 500},
		{ID: "2", TotalSales: 90, OrderCount: 3, TicketAverage: 30},
	}

	r := buildRankings(customers, nil, nil, DefaultOptions())
	require.Len(t, r.TopCustomersByTicket, 1)
	assert.Equal(t, "2", r.TopCustomersByTicket[0].ID)
}

func TestBuildRankingsTieBreakByID(t *testing.T) {
	customers := []CustomerStats{
		{ID: "9", TotalSales: 100, OrderCount: 2},
		{ID: "3", TotalSales: 100, OrderCount: 2},
	}

	r := buildRankings(customers, nil, nil, DefaultOptions())
	require.Len(t, r.TopCustomersByValue, 2)
	assert.Equal(t, "3", r.TopCustomersByValue[0].ID)
	assert.Equal(t, "9", r.TopCustomersByValue[1].ID)
}

func TestBuildConcentration(t *testing.T) {
	tests := []struct {
		name      string
		customers []CustomerStats
		wantShare float64
		wantTopID string
	}{
		{
			name: "two customers, top 20% is one",
			customers: []CustomerStats{
				{ID: "1", TotalSales: 30},
				{ID: "2", TotalSales: 50},
			},
			wantShare: 62.5,
			wantTopID: "2",
		},
		{
			name: "ten customers, top 20% is two",
			customers: []CustomerStats{
				{ID: "1", TotalSales: 10}, {ID: "2", TotalSales: 10},
				{ID: "3", TotalSales: 10}, {ID: "4", TotalSales: 10},
				{ID: "5", TotalSales: 10}, {ID: "6", TotalSales: 10},
				{ID: "7", TotalSales: 10}, {ID: "8", TotalSales: 10},
				{ID: "9", TotalSales: 60}, {ID: "10", TotalSales: 40},
			},
			wantShare: 55.56, // (60+40)/180
			wantTopID: "9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := buildConcentration(tt.customers, nil)
			assert.Equal(t, tt.wantShare, c.CustomerTop20Share)
			assert.Equal(t, tt.wantTopID, c.TopCustomer.ID)
			assert.Equal(t, 0.0, c.ProductTop20Share)
			assert.Empty(t, c.TopProduct.ID)
		})
	}
}

func TestBuildConcentrationEmpty(t *testing.T) {
	c := buildConcentration(nil, nil)
	assert.Equal(t, Concentration{}, c)
}
