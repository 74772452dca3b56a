package sales

import (
	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// BuildRecords derives one DailyRecord per value of series, in day order.
//
// Day 1 has a growth rate of 0. Any later day whose previous value is zero
// fails the whole build with a DivisionByZero error naming that day.
func BuildRecords(series domain.RawSeries) (domain.RecordSet, error) {
	records := make(domain.RecordSet, len(series))
	for i, sales := range series {
		records[i] = domain.DailyRecord{Day: i + 1, Sales: sales}
		if i == 0 {
			continue
		}

		prev := series[i-1]
		if prev == 0 {
			return nil, apierrors.NewDivisionByZeroError(i + 1)
		}
		records[i].GrowthRate = GrowthRate(prev, sales)
	}
	return records, nil
}

// GrowthRate returns the percentage change from prev to curr. prev must be non-zero.
func GrowthRate(prev, curr int) float64 {
	return float64(curr-prev) / float64(prev) * 100
}
