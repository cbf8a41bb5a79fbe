package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRFM(t *testing.T) {
	// Mean total sales across the set is 100.
	customers := []CustomerStats{
		// high value, high frequency, recent
		{ID: "1", TotalSales: 300, OrderCount: 5, DaysSinceLast: 10},
		// high frequency, recent, not high value
		{ID: "2", TotalSales: 50, OrderCount: 4, DaysSinceLast: 20},
		// high value, low frequency
		{ID: "3", TotalSales: 200, OrderCount: 2, DaysSinceLast: 45},
		// stale but inside the at-risk window
		{ID: "4", TotalSales: 20, OrderCount: 1, DaysSinceLast: 90},
		// gone
		{ID: "5", TotalSales: 20, OrderCount: 1, DaysSinceLast: 200},
		// matches no rule: low value, low frequency, recent
		{ID: "6", TotalSales: 10, OrderCount: 1, DaysSinceLast: 5},
	}

	seg := classifyRFM(customers)
	assert.Equal(t, RFMSegments{
		Champions: 1,
		Loyal:     1,
		Potential: 1,
		AtRisk:    1,
		Lost:      1,
	}, seg)
}

func TestClassifyRFMDisjoint(t *testing.T) {
	customers := []CustomerStats{
		{ID: "1", TotalSales: 300, OrderCount: 5, DaysSinceLast: 10},
		{ID: "2", TotalSales: 100, OrderCount: 3, DaysSinceLast: 25},
		{ID: "3", TotalSales: 10, OrderCount: 1, DaysSinceLast: 61},
		{ID: "4", TotalSales: 10, OrderCount: 1, DaysSinceLast: 121},
		{ID: "5", TotalSales: 5, OrderCount: 1, DaysSinceLast: 1},
	}

	seg := classifyRFM(customers)
	total := seg.Champions + seg.Loyal + seg.Potential + seg.AtRisk + seg.Lost
	// Buckets never double-count; fall-through customers are uncounted.
	assert.LessOrEqual(t, total, len(customers))
}

func TestClassifyRFMBoundaries(t *testing.T) {
	tests := []struct {
		name string
		c    CustomerStats
		want RFMSegments
	}{
		{"at-risk lower bound exclusive", CustomerStats{TotalSales: 1, OrderCount: 1, DaysSinceLast: 60}, RFMSegments{}},
		{"at-risk window start", CustomerStats{TotalSales: 1, OrderCount: 1, DaysSinceLast: 61}, RFMSegments{AtRisk: 1}},
		{"at-risk window end", CustomerStats{TotalSales: 1, OrderCount: 1, DaysSinceLast: 120}, RFMSegments{AtRisk: 1}},
		{"lost threshold", CustomerStats{TotalSales: 1, OrderCount: 1, DaysSinceLast: 121}, RFMSegments{Lost: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A zero-value companion keeps the mean below the subject's
			// total so the value signal does not interfere.
			seg := classifyRFM([]CustomerStats{tt.c, {ID: "x", TotalSales: 1, OrderCount: 1, DaysSinceLast: 0}})
			assert.Equal(t, tt.want.AtRisk, seg.AtRisk)
			assert.Equal(t, tt.want.Lost, seg.Lost)
		})
	}
}

func TestClassifyRFMEmpty(t *testing.T) {
	assert.Equal(t, RFMSegments{}, classifyRFM(nil))
}
