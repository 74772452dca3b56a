package domain

// Category labels a daily record relative to a sales threshold.
type Category string

const (
	CategoryHigh Category = "High"
	CategoryLow  Category = "Low"
)

// RawSeries holds the generated daily sales values for day 1..N.
// A series is replaced wholesale on regeneration and never edited in place.
type RawSeries []int

// Clone returns an independent copy of the series.
func (s RawSeries) Clone() RawSeries {
	if s == nil {
		return nil
	}
	out := make(RawSeries, len(s))
	copy(out, s)
	return out
}

// DailyRecord is one day's sales value plus the growth rate versus the
// previous day. GrowthRate is a percentage and is 0 for day 1.
type DailyRecord struct {
	Day        int     `json:"day" validate:"min=1"`
	Sales      int     `json:"sales"`
	GrowthRate float64 `json:"growth_rate"`
}

// RecordSet is the ordered set of daily records, one per day of a RawSeries.
type RecordSet []DailyRecord

// Head returns up to the first n records.
func (rs RecordSet) Head(n int) RecordSet {
	if n <= 0 {
		return RecordSet{}
	}
	if n > len(rs) {
		n = len(rs)
	}
	return rs[:n:n]
}

// Tail returns up to the last n records.
func (rs RecordSet) Tail(n int) RecordSet {
	if n <= 0 {
		return RecordSet{}
	}
	if n > len(rs) {
		n = len(rs)
	}
	return rs[len(rs)-n:]
}

// CategorizedRecord is a DailyRecord with a derived category label.
type CategorizedRecord struct {
	DailyRecord
	Category Category `json:"category"`
}

// SummaryStatistics aggregates a RawSeries.
// StandardDeviation is the population standard deviation.
type SummaryStatistics struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standard_deviation"`
}
