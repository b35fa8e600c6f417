// Package report computes sales aggregates over the order collection.
package report

import (
	"strings"
	"time"

	"github.com/bazarlab/chatshop/internal/model"
)

// CategoryBreakdown counts orders per category. Labels keeps first-seen
// order so the chart is stable across refreshes.
type CategoryBreakdown struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Summary holds the day/month/year revenue totals and the per-category
// order counts as of a reference date.
type Summary struct {
	Today      int               `json:"today"`
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	Categories CategoryBreakdown `json:"categories"`
}

// Summarize walks the orders once, bucketing each total by comparing the
// order's timestamp prefix against asOf's ISO date at day (10 chars),
// month (7), and year (4) granularity. An order contributes to every
// bucket its prefix matches, so today's order counts toward all three.
// Category tallies count orders, not revenue.
func Summarize(orders []model.Order, asOf time.Time) Summary {
	dayPrefix := asOf.Format("2006-01-02")
	monthPrefix := dayPrefix[:7]
	yearPrefix := dayPrefix[:4]

	var s Summary
	counts := map[string]int{}
	for _, o := range orders {
		ts := o.Timestamp()
		if strings.HasPrefix(ts, dayPrefix) {
			s.Today += o.Total
		}
		if strings.HasPrefix(ts, monthPrefix) {
			s.Month += o.Total
		}
		if strings.HasPrefix(ts, yearPrefix) {
			s.Year += o.Total
		}

		cat := o.Category
		if cat == "" {
			cat = "Unknown"
		}
		if _, seen := counts[cat]; !seen {
			s.Categories.Labels = append(s.Categories.Labels, cat)
		}
		counts[cat]++
	}
	for _, label := range s.Categories.Labels {
		s.Categories.Counts = append(s.Categories.Counts, counts[label])
	}
	return s
}
