package matching

import (
	"testing"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
)

func day(s string) *types.Date {
	d := types.MustParseDate(s)
	return &d
}

func window(start, end string) types.Window {
	return types.Window{Start: day(start), End: day(end)}
}

func TestDateScore(t *testing.T) {
	tender100 := window("2024-01-01", "2024-04-09")

	tests := []struct {
		name       string
		consultant types.Window
		tender     types.Window
		want       float64
	}{
		{"missing consultant end", types.Window{Start: day("2024-01-01")}, tender100, 0},
		{"missing tender window", window("2024-01-01", "2024-12-31"), types.Window{}, 0},
		{"inverted consultant window", window("2024-12-31", "2024-01-01"), tender100, 0},
		{"gap of 31 days before", window("2024-01-01", "2024-05-01"), window("2024-06-01", "2024-08-31"), 0},
		{"gap of 15 days before", window("2024-01-01", "2024-05-17"), window("2024-06-01", "2024-08-31"), 15},
		{"adjacent windows", window("2024-01-01", "2024-05-31"), window("2024-06-01", "2024-08-31"), 29},
		{"gap of 10 days after", window("2024-09-10", "2024-12-31"), window("2024-06-01", "2024-08-31"), 20},
		{"full coverage with buffers", window("2024-01-01", "2025-06-30"), window("2024-06-01", "2024-12-31"), 100},
		{"identical windows", tender100, tender100, 100},
		{"half coverage", window("2023-12-01", "2024-02-19"), tender100, 45},
		{"ninety percent coverage", window("2024-01-11", "2024-06-01"), tender100, 95},
		{"eighty percent coverage", window("2024-01-21", "2024-06-01"), tender100, 90},
		{"ten percent coverage", window("2023-06-01", "2024-01-10"), tender100, 8.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DateScore(tt.consultant, tt.tender), 1e-9)
		})
	}
}

func TestDateScore_Bounds(t *testing.T) {
	tender := window("2024-03-01", "2024-03-31")
	for offset := -60; offset <= 60; offset += 3 {
		start := types.NewDate(2024, 3, 1+offset)
		end := types.NewDate(2024, 3, 20+offset)
		s := DateScore(types.Window{Start: &start, End: &end}, tender)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}
