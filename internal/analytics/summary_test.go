package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name    string
		monthly []MonthBucket
		want    float64
	}{
		{"too short", []MonthBucket{{Total: 100}}, 0},
		{"doubles", []MonthBucket{{Total: 100}, {Total: 200}}, 100},
		{"odd length splits small first half", []MonthBucket{{Total: 100}, {Total: 100}, {Total: 100}}, 100},
		{"zero first half", []MonthBucket{{Total: 0}, {Total: 200}}, 0},
		{"decline", []MonthBucket{{Total: 100}, {Total: 100}, {Total: 50}, {Total: 50}}, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, growthRate(tt.monthly))
		})
	}
}

func TestChurnRate(t *testing.T) {
	day := func(date string, customers ...string) DayBucket {
		d := DayBucket{Date: date}
		for _, c := range customers {
			d.ByCustomer = append(d.ByCustomer, EntityShare{ID: c})
		}
		return d
	}

	tests := []struct {
		name  string
		daily []DayBucket
		want  float64
	}{
		{"too short", []DayBucket{day("2026-01-01", "1")}, 0},
		{
			"half churned",
			[]DayBucket{day("2026-01-01", "1", "2"), day("2026-01-02", "1")},
			50,
		},
		{
			"nobody churned",
			[]DayBucket{day("2026-01-01", "1"), day("2026-01-02", "1")},
			0,
		},
		{
			"everyone churned",
			[]DayBucket{day("2026-01-01", "1", "2"), day("2026-01-02", "3")},
			100,
		},
		{
			"empty earlier half",
			[]DayBucket{day("2026-01-01"), day("2026-01-02", "1")},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, churnRate(tt.daily))
		})
	}
}

func TestBuildTeam(t *testing.T) {
	s := Summary{TotalRevenue: 1000, TotalOrders: 10, RepCount: 2, CustomerCount: 4}
	reps := []RepStats{
		{ID: "1", Name: "A", TotalSales: 700, TicketAverage: 100},
		{ID: "2", Name: "B", TotalSales: 300, TicketAverage: 150},
	}

	team := buildTeam(s, reps)
	assert.Equal(t, 5.0, team.OrdersPerRep)
	assert.Equal(t, 250.0, team.SalesPerCustomer)
	// Most efficient rep is the highest ticket average, not the biggest seller.
	assert.Equal(t, "2", team.TopRep.ID)
	assert.Equal(t, 150.0, team.TopRep.Value)
	assert.Equal(t, 30.0, team.TopRep.Share)
}

func TestBuildTeamEmpty(t *testing.T) {
	assert.Equal(t, TeamPerformance{}, buildTeam(Summary{}, nil))
}
