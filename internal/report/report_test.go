package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bazarlab/chatshop/internal/model"
)

func TestSummarizeBuckets(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Total: 100, CreatedAt: "2024-06-15T09:00:00", Category: "ল্যাপটপ"}, // today
		{Total: 200, CreatedAt: "2024-06-01T09:00:00", Category: "মোবাইল"},  // this month
		{Total: 400, CreatedAt: "2024-01-31T09:00:00", Category: "ল্যাপটপ"}, // this year
		{Total: 800, CreatedAt: "2023-12-31T09:00:00", Category: "ল্যাপটপ"}, // last year
	}

	s := Summarize(orders, asOf)

	// A today order contributes to all three buckets simultaneously.
	assert.Equal(t, 100, s.Today)
	assert.Equal(t, 300, s.Month)
	assert.Equal(t, 700, s.Year)
}

func TestSummarizeCategoryCountsFirstSeenOrder(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Total: 1, CreatedAt: "2024-06-15T09:00:00", Category: "মোবাইল"},
		{Total: 1, CreatedAt: "2024-06-15T10:00:00", Category: "ল্যাপটপ"},
		{Total: 1, CreatedAt: "2024-06-15T11:00:00", Category: "মোবাইল"},
		{Total: 1, CreatedAt: "2024-06-15T12:00:00"}, // no category
	}

	s := Summarize(orders, asOf)

	assert.Equal(t, []string{"মোবাইল", "ল্যাপটপ", "Unknown"}, s.Categories.Labels)
	assert.Equal(t, []int{2, 1, 1}, s.Categories.Counts)
}

func TestSummarizeUsesLegacyTimeField(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Total: 50, Time: "2024-06-15T09:00:00", Category: "x"},
	}
	s := Summarize(orders, asOf)
	assert.Equal(t, 50, s.Today)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Now())
	assert.Zero(t, s.Today)
	assert.Zero(t, s.Month)
	assert.Zero(t, s.Year)
	assert.Empty(t, s.Categories.Labels)
}

func TestSummarizeIsPrefixBasedNotCalendarAware(t *testing.T) {
	// 2024-01-31 matches month prefix 2024-01 purely by string
	// comparison; the aggregator does no date arithmetic.
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Total: 10, CreatedAt: "2024-01-31T23:59:59", Category: "x"},
	}
	s := Summarize(orders, asOf)
	assert.Equal(t, 0, s.Today)
	assert.Equal(t, 10, s.Month)
	assert.Equal(t, 10, s.Year)
}
